package attr

import (
	"math/bits"
	"strings"
)

// Flag constrains the per-group flag enumerations
type Flag interface {
	~uint8
	String() string
}

// FlagSet is a membership-only set over one flag group.
// Bit i is set iff flag i is a member; the zero value is the empty set.
type FlagSet[F Flag] uint32

// NewFlagSet returns a set holding the given flags
func NewFlagSet[F Flag](flags ...F) FlagSet[F] {
	var s FlagSet[F]
	return s.With(flags...)
}

// Has reports membership of f
func (s FlagSet[F]) Has(f F) bool {
	return s&(FlagSet[F](1)<<f) != 0
}

// With returns s plus the given flags
func (s FlagSet[F]) With(flags ...F) FlagSet[F] {
	for _, f := range flags {
		s |= FlagSet[F](1) << f
	}
	return s
}

// Without returns s minus the given flags
func (s FlagSet[F]) Without(flags ...F) FlagSet[F] {
	for _, f := range flags {
		s &^= FlagSet[F](1) << f
	}
	return s
}

// Set adds or removes a single flag
func (s FlagSet[F]) Set(f F, enabled bool) FlagSet[F] {
	if enabled {
		return s.With(f)
	}
	return s.Without(f)
}

// Update adds (enabled) or removes every member of mask; other flags are untouched
func (s FlagSet[F]) Update(mask FlagSet[F], enabled bool) FlagSet[F] {
	if enabled {
		return s | mask
	}
	return s &^ mask
}

// Len returns the number of members
func (s FlagSet[F]) Len() int {
	return bits.OnesCount32(uint32(s))
}

// Flags returns the members in enumeration order
func (s FlagSet[F]) Flags() []F {
	out := make([]F, 0, s.Len())
	for v := uint32(s); v != 0; v &= v - 1 {
		out = append(out, F(bits.TrailingZeros32(v)))
	}
	return out
}

// String renders the members as space-joined lower-case names
func (s FlagSet[F]) String() string {
	var b strings.Builder
	for i, f := range s.Flags() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.String())
	}
	return b.String()
}
