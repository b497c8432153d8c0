package wordlist

import "errors"

var (
	// ErrFetch indicates the list could not be retrieved at all
	// (network or permission failure).
	ErrFetch = errors.New("fetching word list")

	// ErrStatus indicates the server answered with a non-success status.
	ErrStatus = errors.New("word list request failed")

	// ErrFormat indicates a local list could not be decoded.
	ErrFormat = errors.New("malformed word list")
)
