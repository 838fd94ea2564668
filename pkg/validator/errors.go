package validator

import "errors"

// ErrNotAnObject is returned when decoding errors from JSON that is not an object.
var ErrNotAnObject = errors.New("validation errors must be a JSON object")
