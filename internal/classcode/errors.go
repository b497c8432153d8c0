package classcode

import "classcode/internal/trie"

var (
	// ErrEmptyPattern is returned by New when the word list holds "".
	ErrEmptyPattern = trie.ErrEmptyPattern

	// ErrUnsatisfiable is returned when the forbidden words leave no code.
	ErrUnsatisfiable = trie.ErrUnsatisfiable
)
