package favorite

import "errors"

var (
	ErrConflict = errors.New("favorite already exists")
	ErrNotFound = errors.New("favorite not found")
	ErrMultiple = errors.New("multiple favorites returned")
)
