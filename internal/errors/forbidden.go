package errors

import "net/http"

var ErrForbidden = &Exception{
	Kind:       KindForbidden,
	Message:    "forbidden",
	StatusCode: http.StatusForbidden,
}

// NewForbidden names the capability the caller lacks, e.g. "assign other users".
func NewForbidden(capability string) *Exception {
	return &Exception{
		Kind:       KindForbidden,
		Message:    "not allowed to " + capability,
		StatusCode: http.StatusForbidden,
	}
}
