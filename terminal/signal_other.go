//go:build !unix

package terminal

// nativeRouter is inert where OS signals cannot be routed
type nativeRouter struct{}

func startNativeSignals(func(Signal), func(Signal) SignalHandler) *nativeRouter {
	return &nativeRouter{}
}

func (*nativeRouter) route(Signal, SignalHandler) {}

func (*nativeRouter) close() {}
