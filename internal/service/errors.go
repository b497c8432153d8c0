package service

import "errors"

// ErrMaxRetries is returned when every generated code collided with a live session.
var ErrMaxRetries = errors.New("max retries exceeded: unable to generate unique code")
