// Package attr models POSIX terminal attributes: four independent mode-flag
// groups (input, output, control, local) and the control character table.
//
// Attributes is a plain value. Assigning it copies every group and the whole
// control character table, and == compares them structurally. The model does
// not enforce cross-group consistency; that is the kernel's business.
package attr

// Undefined is returned by ControlChar for roles without a value
const Undefined = -1

// Attributes holds one terminal's mode flags and control characters.
// The zero value has every group empty and every control char undefined.
type Attributes struct {
	iflag FlagSet[InputFlag]
	oflag FlagSet[OutputFlag]
	cflag FlagSet[ControlFlag]
	lflag FlagSet[LocalFlag]

	cc      [numControlChars]int32
	defined FlagSet[ControlChar]
}

// Input group

func (a *Attributes) InputFlags() FlagSet[InputFlag]     { return a.iflag }
func (a *Attributes) SetInputFlags(s FlagSet[InputFlag]) { a.iflag = s }
func (a *Attributes) InputFlag(f InputFlag) bool         { return a.iflag.Has(f) }

func (a *Attributes) UpdateInputFlags(s FlagSet[InputFlag], enabled bool) {
	a.iflag = a.iflag.Update(s, enabled)
}

func (a *Attributes) SetInputFlag(f InputFlag, enabled bool) {
	a.iflag = a.iflag.Set(f, enabled)
}

// Output group

func (a *Attributes) OutputFlags() FlagSet[OutputFlag]     { return a.oflag }
func (a *Attributes) SetOutputFlags(s FlagSet[OutputFlag]) { a.oflag = s }
func (a *Attributes) OutputFlag(f OutputFlag) bool         { return a.oflag.Has(f) }

func (a *Attributes) UpdateOutputFlags(s FlagSet[OutputFlag], enabled bool) {
	a.oflag = a.oflag.Update(s, enabled)
}

func (a *Attributes) SetOutputFlag(f OutputFlag, enabled bool) {
	a.oflag = a.oflag.Set(f, enabled)
}

// Control group

func (a *Attributes) ControlFlags() FlagSet[ControlFlag]     { return a.cflag }
func (a *Attributes) SetControlFlags(s FlagSet[ControlFlag]) { a.cflag = s }
func (a *Attributes) ControlFlag(f ControlFlag) bool         { return a.cflag.Has(f) }

func (a *Attributes) UpdateControlFlags(s FlagSet[ControlFlag], enabled bool) {
	a.cflag = a.cflag.Update(s, enabled)
}

func (a *Attributes) SetControlFlag(f ControlFlag, enabled bool) {
	a.cflag = a.cflag.Set(f, enabled)
}

// Local group

func (a *Attributes) LocalFlags() FlagSet[LocalFlag]     { return a.lflag }
func (a *Attributes) SetLocalFlags(s FlagSet[LocalFlag]) { a.lflag = s }
func (a *Attributes) LocalFlag(f LocalFlag) bool         { return a.lflag.Has(f) }

func (a *Attributes) UpdateLocalFlags(s FlagSet[LocalFlag], enabled bool) {
	a.lflag = a.lflag.Update(s, enabled)
}

func (a *Attributes) SetLocalFlag(f LocalFlag, enabled bool) {
	a.lflag = a.lflag.Set(f, enabled)
}

// ControlChar returns the code bound to role c, or Undefined
func (a *Attributes) ControlChar(c ControlChar) int {
	if c >= numControlChars || !a.defined.Has(c) {
		return Undefined
	}
	return int(a.cc[c])
}

// SetControlChar binds role c to value; a negative value undefines the role
func (a *Attributes) SetControlChar(c ControlChar, value int) {
	if c >= numControlChars {
		return
	}
	if value < 0 {
		a.cc[c] = 0
		a.defined = a.defined.Without(c)
		return
	}
	a.cc[c] = int32(value)
	a.defined = a.defined.With(c)
}

// Copy replaces every group and the control char table with other's
func (a *Attributes) Copy(other *Attributes) {
	*a = *other
}

// Clone returns an independent copy
func (a *Attributes) Clone() Attributes {
	return *a
}

// Equal reports per-group set equality and per-role control char equality
func (a *Attributes) Equal(other *Attributes) bool {
	return *a == *other
}

// Raw derives the attributes used for raw-mode line editing: no canonical
// input, no echo, no signal generation, no CR/NL translation, and reads that
// return after one decisecond without input.
func (a *Attributes) Raw() Attributes {
	raw := *a
	raw.UpdateLocalFlags(NewFlagSet(ICANON, ECHO, IEXTEN, ISIG), false)
	raw.UpdateInputFlags(NewFlagSet(IXON, ICRNL, INLCR), false)
	raw.SetControlChar(VMIN, 0)
	raw.SetControlChar(VTIME, 1)
	return raw
}
