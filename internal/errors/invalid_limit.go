package errors

import "net/http"

var ErrInvalidLimit = &Exception{
	Kind:       KindValidation,
	Message:    "limit must be positive",
	Field:      "limit",
	StatusCode: http.StatusBadRequest,
}
