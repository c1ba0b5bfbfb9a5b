// Package taskapi implements the service interfaces against the remote
// task JSON API.
package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"taskman/internal/config"
	"taskman/internal/service"
	"taskman/internal/session"
)

// APITimeout is the timeout for API calls.
const APITimeout = 5 * time.Second

// Client implements service.Service against the task API. Every request
// carries the session's bearer token; a missing token is not checked
// locally, the server rejects the bare request instead.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// New creates a task API client bound to the configured base URL and
// the session's current token. The base URL is fixed at construction.
func New(ctx context.Context, cfg *config.Config, store session.Store, logger *log.Logger) *Client {
	token, _ := store.Token()
	return &Client{
		baseURL: cfg.APIURL(),
		http:    bearerClient(ctx, token),
		logger:  logger,
	}
}

// NewWithBaseURL creates a client against an explicit base URL and token
// (for testing).
func NewWithBaseURL(ctx context.Context, baseURL, token string, logger *log.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    bearerClient(ctx, token),
		logger:  logger,
	}
}

// bearerClient returns an HTTP client that attaches
// "Authorization: Bearer <token>" to every request. With an empty token
// the plain client is used so the request still goes out and the server
// answers with its own 401.
func bearerClient(ctx context.Context, token string) *http.Client {
	if token == "" {
		return &http.Client{}
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return oauth2.NewClient(ctx, src)
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, title string) (service.Task, error) {
	var created service.Task
	body := map[string]string{"title": title}
	if err := c.do(ctx, http.MethodPost, "/tasks", body, &created); err != nil {
		return service.Task{}, err
	}
	return created, nil
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	var updated service.Task
	path := "/tasks/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, patch, &updated); err != nil {
		return service.Task{}, err
	}
	return updated, nil
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	path := "/tasks/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return doJSON(ctx, c.http, c.logger, method, c.baseURL+path, body, out)
}

// errorBody is the error payload shape returned by the API.
type errorBody struct {
	Msg string `json:"msg"`
}

// doJSON performs one JSON round-trip. Failures are logged here before
// being returned; the caller never has to log them again.
func doJSON(ctx context.Context, hc *http.Client, logger *log.Logger, method, rawURL string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		remote := &service.RemoteError{Err: err}
		logger.Error("request failed", "method", method, "url", rawURL, "err", err)
		return remote
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, &eb)
		remote := &service.RemoteError{StatusCode: resp.StatusCode, Msg: eb.Msg}
		logger.Error("request rejected", "method", method, "url", rawURL, "status", resp.StatusCode, "msg", eb.Msg)
		return remote
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			remote := &service.RemoteError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
			logger.Error("bad response body", "method", method, "url", rawURL, "err", err)
			return remote
		}
	}
	return nil
}
