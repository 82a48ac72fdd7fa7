package services

import "net/http"

// ErrorKind classifies payment operation failures. Transport status codes are
// derived from the kind in one place rather than attached ad hoc at each
// error site.
type ErrorKind int

const (
	KindMissingCredentials ErrorKind = iota
	KindInvalidAmount
	KindUpstreamOrder
	KindMissingFields
	KindInternal
)

var kindStatus = map[ErrorKind]int{
	KindMissingCredentials: http.StatusInternalServerError,
	KindInvalidAmount:      http.StatusBadRequest,
	KindMissingFields:      http.StatusBadRequest,
	KindInternal:           http.StatusInternalServerError,
}

// ServiceError is a typed error with a kind and an HTTP status code.
// For KindUpstreamOrder the status is the upstream gateway's status, passed
// through verbatim, and Details carries the raw upstream response body.
type ServiceError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Details    string
}

func (e *ServiceError) Error() string { return e.Message }

func newServiceError(kind ErrorKind, message string) *ServiceError {
	return &ServiceError{Kind: kind, StatusCode: kindStatus[kind], Message: message}
}

func newUpstreamError(statusCode int, message, details string) *ServiceError {
	return &ServiceError{Kind: KindUpstreamOrder, StatusCode: statusCode, Message: message, Details: details}
}
