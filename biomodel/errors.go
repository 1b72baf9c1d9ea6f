package biomodel

import "errors"

// ErrInvalidDocument is returned when a model document is structurally unusable.
var ErrInvalidDocument = errors.New("invalid model document")
