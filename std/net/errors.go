package net

import (
	"errors"
	"fmt"
)

// Every fetch failure wraps exactly one of these. None of them are retried.
var (
	ErrMalformedURL      = errors.New("malformed url")
	ErrConnection        = errors.New("connection error")
	ErrTLS               = errors.New("tls error")
	ErrHTTPStatus        = errors.New("http status error")
	ErrEncoding          = errors.New("encoding error")
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError is returned when the server answers with anything but 200.
// Status is kept verbatim as it appeared on the status line.
type StatusError struct {
	Status      string
	Explanation string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Status, e.Explanation)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}
