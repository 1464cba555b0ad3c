package errors

import "net/http"

var ErrAssignmentNotFound = &Exception{
	Kind:       KindAssignmentNotFound,
	Message:    "assignment not found",
	StatusCode: http.StatusNotFound,
}
