package core

import "errors"

// ErrNotFound signals that an update or delete targeted a record that
// does not exist. Reads map it to a 404 at the transport boundary.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or out-of-range input. It is raised
// before any store access and carries enough detail for the caller to
// correct the request.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
