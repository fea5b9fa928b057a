//go:build linux || darwin

package terminal

import (
	"os"

	"github.com/lixenwraith/ttykit/attr"
)

// resetTerminalMode attempts to restore terminal to cooked mode
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	// Try to restore via /dev/tty (works even if stdin redirected)
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()

	fd := int(tty.Fd())
	a, err := attr.Get(fd)
	if err != nil {
		return
	}
	a.UpdateLocalFlags(attr.NewFlagSet(attr.ECHO, attr.ICANON, attr.ISIG, attr.IEXTEN), true)
	a.SetInputFlag(attr.ICRNL, true)
	attr.Set(fd, a)
}
