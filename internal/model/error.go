package model

import "errors"

// ValidationError is a failure the client can act on. Code picks the HTTP
// status it is answered with and Param names the offending input.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidationError finds a ValidationError anywhere in err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}
	return nil, false
}
