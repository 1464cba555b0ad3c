package errors

import "net/http"

var ErrUnauthorized = &Exception{
	Kind:       KindUnauthorized,
	Message:    "missing or invalid bearer token",
	StatusCode: http.StatusUnauthorized,
}

var ErrRateLimited = &Exception{
	Kind:       KindRateLimited,
	Message:    "rate limit exceeded",
	StatusCode: http.StatusTooManyRequests,
}
