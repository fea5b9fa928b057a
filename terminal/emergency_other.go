//go:build !(linux || darwin)

package terminal

func resetTerminalMode() {}
