//go:build linux || darwin

package attr

import (
	"slices"

	"golang.org/x/sys/unix"
)

// FromTermios decodes kernel termios state into Attributes.
// Flags the platform does not define are never reported as set.
func FromTermios(t *unix.Termios) Attributes {
	var a Attributes
	a.iflag = decodeFlags[InputFlag](tcflag(t.Iflag), inputBits[:])
	a.oflag = decodeFlags[OutputFlag](tcflag(t.Oflag), outputBits[:])
	a.cflag = decodeFlags[ControlFlag](tcflag(t.Cflag), controlBits[:])
	a.lflag = decodeFlags[LocalFlag](tcflag(t.Lflag), localBits[:])

	switch tcflag(t.Cflag) & tcflag(unix.CSIZE) {
	case tcflag(unix.CS5):
		a.cflag = a.cflag.With(CS5)
	case tcflag(unix.CS6):
		a.cflag = a.cflag.With(CS6)
	case tcflag(unix.CS7):
		a.cflag = a.cflag.With(CS7)
	case tcflag(unix.CS8):
		a.cflag = a.cflag.With(CS8)
	}

	for c, idx := range ccIndex {
		if idx >= 0 && idx < len(t.Cc) {
			a.SetControlChar(ControlChar(c), int(t.Cc[idx]))
		}
	}
	return a
}

// ApplyTermios writes a into t. Only bits whose membership differs from t are
// touched, so speed bits, delay sub-values and platform-only flags survive a
// FromTermios/ApplyTermios round trip unchanged. Undefined control chars are
// left as they are.
func (a *Attributes) ApplyTermios(t *unix.Termios) {
	t.Iflag = encodeFlags(tcflag(t.Iflag), a.iflag, inputBits[:])
	t.Oflag = encodeFlags(tcflag(t.Oflag), a.oflag, outputBits[:])
	t.Cflag = encodeFlags(tcflag(t.Cflag), a.cflag, controlBits[:])
	t.Lflag = encodeFlags(tcflag(t.Lflag), a.lflag, localBits[:])

	if size, ok := charSize(a.cflag); ok {
		t.Cflag = t.Cflag&^tcflag(unix.CSIZE) | size
	}

	for c, idx := range ccIndex {
		if idx < 0 || idx >= len(t.Cc) {
			continue
		}
		if v := a.ControlChar(ControlChar(c)); v != Undefined {
			t.Cc[idx] = uint8(v)
		}
	}
}

func decodeFlags[F Flag](v tcflag, table []tcflag) FlagSet[F] {
	var s FlagSet[F]
	for i, bit := range table {
		if bit != 0 && v&bit == bit {
			s = s.With(F(i))
		}
	}
	return s
}

// encodeFlags treats a bit shared by several flags as wanted when any of them
// is set, and touches each distinct bit once.
func encodeFlags[F Flag](v tcflag, s FlagSet[F], table []tcflag) tcflag {
	for i, bit := range table {
		if bit == 0 || slices.Contains(table[:i], bit) {
			continue
		}
		want := false
		for j := i; j < len(table); j++ {
			if table[j] == bit && s.Has(F(j)) {
				want = true
				break
			}
		}
		has := v&bit == bit
		switch {
		case want && !has:
			v |= bit
		case !want && has:
			v &^= bit
		}
	}
	return v
}

// charSize picks the widest requested character size
func charSize(s FlagSet[ControlFlag]) (tcflag, bool) {
	switch {
	case s.Has(CS8):
		return tcflag(unix.CS8), true
	case s.Has(CS7):
		return tcflag(unix.CS7), true
	case s.Has(CS6):
		return tcflag(unix.CS6), true
	case s.Has(CS5):
		return tcflag(unix.CS5), true
	}
	return 0, false
}

// ReadTermios fetches the termios state of fd
func ReadTermios(fd int) (*unix.Termios, error) {
	return unix.IoctlGetTermios(fd, ioctlReadTermios)
}

// WriteTermios applies t to fd immediately
func WriteTermios(fd int, t *unix.Termios) error {
	return unix.IoctlSetTermios(fd, ioctlWriteTermios, t)
}

// Get reads fd's termios state as Attributes
func Get(fd int) (Attributes, error) {
	t, err := ReadTermios(fd)
	if err != nil {
		return Attributes{}, err
	}
	return FromTermios(t), nil
}

// Set applies a to fd, preserving bits the model does not cover
func Set(fd int, a Attributes) error {
	t, err := ReadTermios(fd)
	if err != nil {
		return err
	}
	a.ApplyTermios(t)
	return WriteTermios(fd, t)
}
