package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/me/procsim/pkg/model"
)

const runsPath = "/api/v1/runs"

// Client talks to the run archive of a procsim server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient creates a procsim API client.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
		Logger:     logger,
	}
}

// envelope is the server's response wrapper.
type envelope struct {
	Status     string            `json:"status"`
	RequestID  string            `json:"request_id"`
	Data       json.RawMessage   `json:"data"`
	Pagination *model.Pagination `json:"pagination"`
	Error      *model.APIError   `json:"error"`
}

// CreateRun submits a workload; the server simulates and archives it.
func (c *Client) CreateRun(ctx context.Context, req model.CreateRunRequest) (*model.Run, error) {
	env, err := c.do(ctx, http.MethodPost, runsPath, req)
	if err != nil {
		return nil, err
	}
	var run model.Run
	if err := decodeData(env, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRun fetches one archived run.
func (c *Client) GetRun(ctx context.Context, id string) (*model.Run, error) {
	env, err := c.do(ctx, http.MethodGet, runsPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var run model.Run
	if err := decodeData(env, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns one page of archived runs, newest first.
func (c *Client) ListRuns(ctx context.Context, opts model.ListOptions) ([]model.Run, *model.Pagination, error) {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.Policy != "" {
		q.Set("policy", opts.Policy)
	}
	path := runsPath
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, nil, err
	}
	var runs []model.Run
	if err := decodeData(env, &runs); err != nil {
		return nil, nil, err
	}
	return runs, env.Pagination, nil
}

// DeleteRun removes an archived run.
func (c *Client) DeleteRun(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, runsPath+"/"+url.PathEscape(id), nil)
	return err
}

func decodeData(env *envelope, v any) error {
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("parse response data: %w", err)
	}
	return nil
}

// do sends one request and unwraps the envelope. An error envelope is
// returned as its *model.APIError.
func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	target := c.BaseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.Logger.Debug("HTTP request", "method", method, "url", target)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.Logger.Debug("HTTP response", "status", resp.StatusCode, "request_id", resp.Header.Get("X-Request-ID"), "bytes", len(respBody))

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
	}
	if env.Status == "error" {
		if env.Error != nil {
			return &env, env.Error
		}
		return &env, fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return &env, nil
}
