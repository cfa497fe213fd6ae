package repository

import "errors"

// Storage-level sentinel errors. The service layer maps these onto the
// application error taxonomy; anything else is an infrastructure failure.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
