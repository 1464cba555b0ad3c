package errors

import "net/http"

// ErrNotFound is returned by team-scoped task lookups. A task of another team
// is reported exactly like a missing one.
var ErrNotFound = &Exception{
	Kind:       KindNotFound,
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}

var ErrTaskNotFound = &Exception{
	Kind:       KindTaskNotFound,
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}
