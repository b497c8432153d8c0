package alphabet

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Symbols excludes ambiguous characters: I, L, O, 0, 1
const Symbols = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// CodeLength is the length of every generated code.
const CodeLength = 6

// Size is the number of symbols in the alphabet.
const Size = len(Symbols)

// Symbol is an index into Symbols. Wildcard is the only value outside it.
type Symbol uint8

// Wildcard matches any one generated symbol.
const Wildcard = Symbol(Size)

var index = func() [128]int8 {
	var idx [128]int8
	for i := range idx {
		idx[i] = -1
	}
	for i := 0; i < Size; i++ {
		idx[Symbols[i]] = int8(i)
	}
	return idx
}()

// Lookup returns the symbol for r if r belongs to the alphabet.
func Lookup(r rune) (Symbol, bool) {
	if r < 0 || r >= rune(len(index)) || index[r] < 0 {
		return 0, false
	}
	return Symbol(index[r]), true
}

// Contains reports whether r is an alphabet symbol.
func Contains(r rune) bool {
	_, ok := Lookup(r)
	return ok
}

// Rune returns the character of s, or '_' for the wildcard.
func (s Symbol) Rune() rune {
	if s >= Wildcard {
		return '_'
	}
	return rune(Symbols[s])
}

func (s Symbol) String() string {
	return string(s.Rune())
}

// Fold uppercases word. Casers are not safe for concurrent use, so one is
// built per call.
func Fold(word string) string {
	return cases.Upper(language.Und).String(word)
}

// Valid reports whether code has exactly CodeLength alphabet symbols.
func Valid(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for _, r := range code {
		if !Contains(r) {
			return false
		}
	}
	return true
}
