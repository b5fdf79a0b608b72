package contenttype

import "errors"

var (
	ErrNotRegistered     = errors.New("content type not registered")
	ErrInvalidIdentifier = errors.New("invalid sql identifier")
	ErrAlreadyRegistered = errors.New("content type already registered for another table")
)
