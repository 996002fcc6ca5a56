package document

import "errors"

// Caller-mistake errors. Every mutation either fully applies or fails with
// one of these and leaves the document untouched.
var (
	ErrUnknownSection   = errors.New("unknown section")
	ErrUnknownField     = errors.New("unknown field")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrMandatorySection = errors.New("mandatory section cannot be excluded")
	ErrInvalidChild     = errors.New("section not allowed under this parent")
	ErrNotRemovable     = errors.New("mandatory section cannot be removed")
)
