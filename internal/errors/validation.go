package errors

import "net/http"

var ErrValidation = &Exception{
	Kind:       KindValidation,
	Message:    "validation failed",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidJSON = &Exception{
	Kind:       KindValidation,
	Message:    "invalid JSON payload",
	StatusCode: http.StatusBadRequest,
}

func NewValidation(field, reason string) *Exception {
	return &Exception{
		Kind:       KindValidation,
		Message:    field + ": " + reason,
		Field:      field,
		StatusCode: http.StatusBadRequest,
	}
}
