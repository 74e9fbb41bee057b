// Package api is the single point of outbound HTTP calls to the team
// recommendation service. Every response is validated here; callers receive
// typed values or one of TransportError, MalformedResponseError and
// ApplicationError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"teamforge/internal/config"
	"teamforge/internal/logging"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// slowCallThreshold marks calls worth a warning in the api log.
const slowCallThreshold = 3 * time.Second

// Client talks to the recommendation service.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client from configuration. A nil logger disables logging.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.API.BaseURL, "/"),
		userAgent: cfg.API.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.GetAPITimeout(),
		},
		logger: logger,
	}
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// do performs one round trip and returns the parsed body. Non-2xx statuses
// and unparseable bodies fail here; a body carrying "error" is returned as
// an ApplicationError.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any) (gjson.Result, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("%s: failed to marshal request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log := c.logger.With(
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID))
	timer := logging.StartTimer(log, op)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		timer.Stop()
		log.Warn("request failed", zap.Error(err))
		return gjson.Result{}, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	timer.StopWithThreshold(slowCallThreshold)
	if err != nil {
		log.Warn("failed to read response", zap.Int("status", resp.StatusCode), zap.Error(err))
		return gjson.Result{}, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("non-success status", zap.Int("status", resp.StatusCode))
		return gjson.Result{}, &TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        errors.New(serverText(data)),
		}
	}

	if !gjson.ValidBytes(data) {
		log.Warn("invalid JSON body", zap.Int("bytes", len(data)))
		return gjson.Result{}, &MalformedResponseError{Op: op, Field: "(body)", Reason: "is not valid JSON"}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return gjson.Result{}, wrongType(op, "(body)", "an object")
	}
	if msg := root.Get("error"); msg.Exists() && msg.Type != gjson.Null {
		log.Info("application error", zap.String("message", msg.String()))
		return gjson.Result{}, &ApplicationError{Op: op, Message: msg.String()}
	}

	log.Debug("request completed", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(data)))
	return root, nil
}

// serverText extracts the most useful description from an error body.
func serverText(data []byte) string {
	if gjson.ValidBytes(data) {
		root := gjson.ParseBytes(data)
		for _, field := range []string{"error", "message"} {
			if v := root.Get(field); v.Type == gjson.String && v.Str != "" {
				return v.Str
			}
		}
	}
	text := ansi.Truncate(strings.TrimSpace(string(data)), 200, "...")
	if text == "" {
		return "empty response body"
	}
	return text
}

// =============================================================================
// FIELD VALIDATION
// =============================================================================

func requireNumber(op string, root gjson.Result, field string) (float64, error) {
	v := root.Get(field)
	if !v.Exists() || v.Type == gjson.Null {
		return 0, missing(op, field)
	}
	if v.Type != gjson.Number {
		return 0, wrongType(op, field, "a number")
	}
	return v.Num, nil
}

func requireInt(op string, root gjson.Result, field string) (int, error) {
	n, err := requireNumber(op, root, field)
	if err != nil {
		return 0, err
	}
	if n != float64(int(n)) {
		return 0, wrongType(op, field, "an integer")
	}
	return int(n), nil
}

func requireObject(op string, root gjson.Result, field string) (gjson.Result, error) {
	v := root.Get(field)
	if !v.Exists() || v.Type == gjson.Null {
		return v, missing(op, field)
	}
	if !v.IsObject() {
		return v, wrongType(op, field, "an object")
	}
	return v, nil
}

func requireArray(op string, root gjson.Result, field string) (gjson.Result, error) {
	v := root.Get(field)
	if !v.Exists() || v.Type == gjson.Null {
		return v, missing(op, field)
	}
	if !v.IsArray() {
		return v, wrongType(op, field, "an array")
	}
	return v, nil
}

// requireStrings decodes an array of strings.
func requireStrings(op string, root gjson.Result, field string) ([]string, error) {
	arr, err := requireArray(op, root, field)
	if err != nil {
		return nil, err
	}
	items := arr.Array()
	out := make([]string, 0, len(items))
	for i, item := range items {
		if item.Type != gjson.String {
			return nil, wrongType(op, fmt.Sprintf("%s.%d", field, i), "a string")
		}
		out = append(out, item.Str)
	}
	return out, nil
}

// firstOf returns the first of the given keys present on root.
func firstOf(root gjson.Result, keys ...string) (string, gjson.Result) {
	for _, k := range keys {
		if v := root.Get(k); v.Exists() {
			return k, v
		}
	}
	return keys[0], gjson.Result{}
}

// messageOf returns the confirmation message of a write call.
func messageOf(op string, root gjson.Result) (string, error) {
	v := root.Get("message")
	if !v.Exists() || v.Type == gjson.Null {
		return "", missing(op, "message")
	}
	return v.String(), nil
}
