package terminal

import (
	"golang.org/x/sys/unix"
)

func init() {
	osSignals[SIGINFO] = unix.SIGINFO
}
