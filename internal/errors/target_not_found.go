package errors

import "net/http"

var ErrTargetNotFound = &Exception{
	Kind:       KindTargetNotFound,
	Message:    "user not found",
	StatusCode: http.StatusNotFound,
}
