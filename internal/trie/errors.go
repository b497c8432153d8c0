package trie

import "errors"

var (
	// ErrEmptyPattern indicates an attempt to forbid the empty string,
	// which would rule out every code.
	ErrEmptyPattern = errors.New("cannot forbid the empty string")

	// ErrUnsatisfiable indicates the forbidden patterns leave no valid code.
	ErrUnsatisfiable = errors.New("forbidden patterns do not allow any valid code")
)
