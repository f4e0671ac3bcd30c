// Package apiclient talks to a remote trainer API server. It handles
// login, bearer token persistence, and the questions and explain
// endpoints.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nicojapas/interview-trainer/internal/quiz"
)

// ErrUnauthorized is returned when the server rejects the credentials
// or the stored token. The caller should prompt for the password again.
var ErrUnauthorized = errors.New("unauthorized")

// Client is a remote question source backed by the trainer API.
type Client struct {
	baseURL   string
	http      *http.Client
	tokenPath string
	token     string
}

// New builds a Client for the given server base URL. A previously
// saved token is loaded if present.
func New(baseURL string) *Client {
	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		http:      &http.Client{Timeout: 60 * time.Second},
		tokenPath: defaultTokenPath(),
	}
	c.loadToken()
	return c
}

// defaultTokenPath resolves where the session token is stored,
// following XDG conventions.
func defaultTokenPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "trainer", "token")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "trainer", "token")
}

func (c *Client) loadToken() {
	if c.tokenPath == "" {
		return
	}
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		return
	}
	c.token = strings.TrimSpace(string(data))
}

func (c *Client) saveToken() {
	if c.tokenPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.tokenPath), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(c.tokenPath, []byte(c.token), 0o600)
}

func (c *Client) clearToken() {
	c.token = ""
	if c.tokenPath != "" {
		_ = os.Remove(c.tokenPath)
	}
}

// HasToken reports whether a token is loaded. It says nothing about
// whether the server still accepts it.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// Login exchanges the password for a bearer token and persists it.
func (c *Client) Login(ctx context.Context, password string) error {
	body, _ := json.Marshal(map[string]string{"password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return fmt.Errorf("login: %s", readError(resp))
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("login: decode response: %w", err)
	}
	if out.Token == "" {
		return fmt.Errorf("login: server returned no token")
	}

	c.token = out.Token
	c.saveToken()
	return nil
}

// Questions fetches the grouped question bank.
func (c *Client) Questions(ctx context.Context) ([]quiz.SubtopicGroup, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/questions", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var groups []quiz.SubtopicGroup
	if err := json.NewDecoder(resp.Body).Decode(&groups); err != nil {
		return nil, fmt.Errorf("questions: decode response: %w", err)
	}
	return groups, nil
}

// Explain requests a tutor explanation for one question.
func (c *Client) Explain(ctx context.Context, er quiz.ExplainRequest) (string, error) {
	body, err := json.Marshal(er)
	if err != nil {
		return "", err
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/explain", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		Explanation string `json:"explanation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("explain: decode response: %w", err)
	}
	return out.Explanation, nil
}

// do issues an authenticated request. A 401 clears the stored token so
// the next run prompts for the password again.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		c.clearToken()
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, fmt.Errorf("%s %s: %s", method, path, readError(resp))
	}
	return resp, nil
}

// readError extracts the error message from a JSON error body, falling
// back to the HTTP status.
func readError(resp *http.Response) string {
	var out struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.Error != "" {
		return out.Error
	}
	return resp.Status
}
