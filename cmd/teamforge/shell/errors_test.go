package shell

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"teamforge/internal/api"
)

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"application", &api.ApplicationError{Op: "update", Message: "skill not found"}, "skill not found"},
		{"wrapped application", fmt.Errorf("save: %w", &api.ApplicationError{Message: "locked"}), "locked"},
		{"malformed", &api.MalformedResponseError{Op: "heroes", Field: "total_pages", Reason: "is missing"},
			`The server sent an unexpected response (field "total_pages" is missing).`},
		{"status", &api.TransportError{Op: "heroes", StatusCode: 503, Err: errors.New("maintenance")},
			"The server rejected the request (503): maintenance"},
		{"unreachable", &api.TransportError{Op: "heroes", Err: errors.New("connection refused")},
			"Could not reach the server: connection refused"},
		{"timeout", &api.TransportError{Op: "heroes", Err: context.DeadlineExceeded}, "The server did not answer in time."},
		{"cancelled", &api.TransportError{Op: "heroes", Err: context.Canceled}, "The request was cancelled."},
		{"other", errors.New("name must not be empty"), "name must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeError(tt.err))
		})
	}
}
