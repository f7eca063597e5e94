// Package client talks to the notes HTTP API.
package client

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

	"colornotes/dto"
	"colornotes/model"

	"github.com/google/uuid"
)

const notesPath = "/api/notes"

// APIError is returned for any non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("notes api: %s", http.StatusText(e.Status))
	}
	return fmt.Sprintf("notes api: %s (%d)", e.Message, e.Status)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which has a 10s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a client for the API rooted at baseURL, e.g. http://localhost:5001.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    u.String(),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) List(ctx context.Context) ([]dto.NoteResponse, error) {
	var notes []dto.NoteResponse
	if err := c.do(ctx, http.MethodGet, notesPath, nil, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) Get(ctx context.Context, id string) (*dto.NoteResponse, error) {
	var note dto.NoteResponse
	if err := c.do(ctx, http.MethodGet, notePath(id), nil, nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Create posts a new note. Each call carries a fresh Idempotency-Key.
func (c *Client) Create(ctx context.Context, input model.NoteInput) (*dto.NoteResponse, error) {
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	var note dto.NoteResponse
	if err := c.do(ctx, http.MethodPost, notesPath, headers, input, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) Update(ctx context.Context, id string, input model.NoteInput) (*dto.NoteResponse, error) {
	var note dto.NoteResponse
	if err := c.do(ctx, http.MethodPut, notePath(id), nil, input, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, notePath(id), nil, nil, nil)
}

func notePath(id string) string {
	return notesPath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&errBody); err == nil {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
