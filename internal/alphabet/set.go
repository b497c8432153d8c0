package alphabet

import (
	"math/bits"
	"strings"
)

// Set is a set of alphabet symbols packed into a uint32.
// The wildcard is never a member.
type Set uint32

const full = Set(1<<Size - 1)

// FullSet returns the set holding every alphabet symbol.
func FullSet() Set {
	return full
}

// Add returns s with sym added. Symbols outside the alphabet are ignored.
func (s Set) Add(sym Symbol) Set {
	if sym >= Wildcard {
		return s
	}
	return s | 1<<sym
}

// Has reports whether sym is in s.
func (s Set) Has(sym Symbol) bool {
	return sym < Wildcard && s&(1<<sym) != 0
}

func (s Set) Len() int {
	return bits.OnesCount32(uint32(s))
}

// Full reports whether every alphabet symbol is in s.
func (s Set) Full() bool {
	return s&full == full
}

// Complement returns the alphabet symbols missing from s.
func (s Set) Complement() Set {
	return ^s & full
}

// Symbols lists the members of s in alphabet order.
func (s Set) Symbols() []Symbol {
	out := make([]Symbol, 0, s.Len())
	for rest := uint32(s & full); rest != 0; rest &= rest - 1 {
		out = append(out, Symbol(bits.TrailingZeros32(rest)))
	}
	return out
}

func (s Set) String() string {
	var b strings.Builder
	for _, sym := range s.Symbols() {
		b.WriteRune(sym.Rune())
	}
	return b.String()
}
