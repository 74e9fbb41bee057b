package shell

import (
	"context"
	"errors"
	"fmt"

	"teamforge/internal/api"
)

// describeError is the one policy turning a failure into a readable,
// component-scoped message.
func describeError(err error) string {
	if err == nil {
		return ""
	}

	var appErr *api.ApplicationError
	var malformed *api.MalformedResponseError
	var transport *api.TransportError

	switch {
	case errors.As(err, &appErr):
		return appErr.Message
	case errors.As(err, &malformed):
		return fmt.Sprintf("The server sent an unexpected response (field %q %s).", malformed.Field, malformed.Reason)
	case errors.As(err, &transport):
		switch {
		case errors.Is(err, context.Canceled):
			return "The request was cancelled."
		case errors.Is(err, context.DeadlineExceeded):
			return "The server did not answer in time."
		case transport.StatusCode != 0:
			return fmt.Sprintf("The server rejected the request (%d): %v", transport.StatusCode, transport.Err)
		default:
			return fmt.Sprintf("Could not reach the server: %v", transport.Err)
		}
	default:
		return err.Error()
	}
}
