package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

// readyPollInterval is the delay between /ready probes in WaitReady.
const readyPollInterval = 250 * time.Millisecond

// ErrorResponse is the JSON body of every non-2xx server answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusError is returned when the server answers with a 4xx or 5xx code.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Code, e.Message)
}

// Rejected reports whether the server refused the request itself rather
// than failing to process it.
func (e *StatusError) Rejected() bool {
	return e.Code >= 400 && e.Code < 500
}

// IsRejected reports whether err carries a 4xx StatusError.
func IsRejected(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Rejected()
}

// Client talks to a running autopdf server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		// Batches up to the record limit render well within this.
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// Get fetches path and decodes the JSON answer into result.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	body, _, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeInto(body, result)
}

// Post sends body as JSON and decodes the JSON answer into result. A nil
// result discards the answer.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	data, _, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return decodeInto(data, result)
}

// PostRaw sends body as JSON and returns the answer undecoded together with
// its content type. Document endpoints answer with a PDF.
func (c *Client) PostRaw(ctx context.Context, path string, body any) ([]byte, string, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, string, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, "", newStatusError(resp.StatusCode, data)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func decodeInto(body []byte, result any) error {
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newStatusError(code int, body []byte) *StatusError {
	var er ErrorResponse
	if json.Unmarshal(body, &er) == nil && er.Error != "" {
		return &StatusError{Code: code, Message: er.Error}
	}
	return &StatusError{Code: code, Message: string(bytes.TrimSpace(body))}
}

// WaitReady probes /ready until the server answers 200, ctx ends or
// timeout has passed.
func (c *Client) WaitReady(ctx context.Context, timeout time.Duration) error {
	probe := &http.Client{Timeout: 2 * time.Second}
	url := c.baseURL + "/ready"

	attempts := uint(timeout / readyPollInterval)
	if attempts == 0 {
		attempts = 1
	}

	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := probe.Do(req)
			if err != nil {
				return err
			}
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("server not ready: status %d", resp.StatusCode)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(readyPollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}
