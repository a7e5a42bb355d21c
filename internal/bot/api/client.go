// Package api implements the chat client's HTTP collaborators: product
// search, cart persistence, chat-log persistence and token issuance. All
// failure classification and response-envelope tolerance lives here so the
// rest of the client never inspects transport details.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every outbound collaborator call. A call that
// exceeds it is treated as a network failure, not left pending.
const DefaultTimeout = 10 * time.Second

// Client talks to the backend API. All methods return *CallError on
// failure, already classified and carrying display-ready text. The client
// never retries.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	logger  *slog.Logger
}

func NewClient(baseURL string, session *Session, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		session: session,
		logger:  logger,
	}
}

// Session exposes the token holder, so callers can check authentication
// before attempting persistence-only calls.
func (c *Client) Session() *Session {
	return c.session
}

// envelope is the wrapped response shape. Responses may also arrive as a
// bare payload; unwrapEnvelope tolerates both.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// unwrapData normalizes a response body into its data payload: either the
// "data" field of a wrapped envelope or the bare body itself.
func unwrapData(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '[' {
		return trimmed
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil
	}
	if len(env.Data) > 0 {
		return env.Data
	}
	return trimmed
}

// bodyMessage extracts a human-readable message from an error response
// body, if the collaborator supplied one.
func bodyMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Message
}

// do executes one request and returns the raw response body. Transport
// errors and non-2xx statuses come back as classified *CallError values.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &CallError{Kind: FailureUnknown, Message: MsgUnknown, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, &CallError{Kind: FailureUnknown, Message: MsgUnknown, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyStatus(resp.StatusCode, bodyMessage(body))
	}
	return body, nil
}
