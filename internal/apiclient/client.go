package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/smartbyte/shopassist/internal/domain"
)

// Client is the HTTP implementation of the exchange and auth
// collaborators, speaking the recommendation backend's JSON API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new API client. A zero timeout disables the
// client-side deadline.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type messageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type loginRequest struct {
	Password string `json:"password"`
}

// errorResponse matches the backend's error body
type errorResponse struct {
	Detail string `json:"detail"`
}

// SendMessage posts one user message and returns the assistant reply
// with any classification and recommendations.
func (c *Client) SendMessage(ctx context.Context, sessionID, message string) (*domain.ExchangeResponse, error) {
	var resp domain.ExchangeResponse
	if err := c.post(ctx, "/api/conversation/message", messageRequest{
		SessionID: sessionID,
		Message:   message,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges the admin password for a token
func (c *Client) Login(ctx context.Context, password string) (*domain.LoginResult, error) {
	var resp domain.LoginResult
	if err := c.post(ctx, "/api/admin/login", loginRequest{Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// post sends a JSON request and decodes the JSON response into out
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: %s", http.StatusText(resp.StatusCode), errorDetail(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// errorDetail extracts the server's detail message from an error body,
// falling back to the raw body
func errorDetail(data []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Detail != "" {
		return errResp.Detail
	}
	detail := strings.TrimSpace(string(data))
	if detail == "" {
		detail = "no error detail"
	}
	return detail
}
