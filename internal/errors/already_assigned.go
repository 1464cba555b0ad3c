package errors

import "net/http"

var ErrAlreadyAssigned = &Exception{
	Kind:       KindAlreadyAssigned,
	Message:    "user is already assigned to this task",
	StatusCode: http.StatusBadRequest,
}
