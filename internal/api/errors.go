package api

import (
	"fmt"
	"net/http"
)

// TransportError reports a failed round trip: network, DNS, timeout or a
// non-success status.
type TransportError struct {
	Op         string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: server returned %d %s: %v",
			e.Op, e.StatusCode, http.StatusText(e.StatusCode), e.Err)
	}
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError reports a success response missing an expected
// field or carrying it with the wrong shape.
type MalformedResponseError struct {
	Op     string
	Field  string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: malformed response: field %q %s", e.Op, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: malformed response: field %q", e.Op, e.Field)
}

// ApplicationError is a domain-level rejection sent by the service in the
// body of a success response.
type ApplicationError struct {
	Op      string
	Message string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func missing(op, field string) error {
	return &MalformedResponseError{Op: op, Field: field, Reason: "is missing"}
}

func wrongType(op, field, want string) error {
	return &MalformedResponseError{Op: op, Field: field, Reason: "is not " + want}
}
