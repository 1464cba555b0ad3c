package errors

import (
	"errors"
	"net/http"
)

// Kind is the stable, machine-readable error identifier returned to callers.
type Kind string

const (
	KindInternal           Kind = "internal_error"
	KindValidation         Kind = "validation_error"
	KindNotFound           Kind = "not_found"
	KindTaskNotFound       Kind = "task_not_found"
	KindTargetNotFound     Kind = "target_not_found"
	KindAssignmentNotFound Kind = "assignment_not_found"
	KindForbidden          Kind = "forbidden"
	KindAlreadyAssigned    Kind = "already_assigned"
	KindUnauthorized       Kind = "unauthorized"
	KindRateLimited        Kind = "rate_limited"
)

type Exception struct {
	Kind       Kind
	Message    string
	Field      string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// Is matches any Exception of the same kind, so errors.Is(err, ErrForbidden)
// holds for every forbidden error regardless of its message.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func KindOf(err error) Kind {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
