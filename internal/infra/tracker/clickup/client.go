package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shrinkstudio/shrink-tools-api/internal/domain/leads"
)

const defaultBaseURL = "https://api.clickup.com/api/v2"

// Client pushes captured leads into a ClickUp list as tasks.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	listID  string
}

func NewClient(apiKey, listID string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		listID:  listID,
	}
}

// NewClientWithBaseURL exists for tests pointing at a local server.
func NewClientWithBaseURL(apiKey, listID, baseURL string) *Client {
	c := NewClient(apiKey, listID)
	c.baseURL = baseURL
	return c
}

// Enabled reports whether the client has credentials to deliver leads.
func (c *Client) Enabled() bool {
	return c.apiKey != "" && c.listID != ""
}

// CreateTask creates a task in the configured list and returns its id.
func (c *Client) CreateTask(ctx context.Context, task leads.Task) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"name":        task.Name,
		"description": task.Description,
		"status":      task.Status,
		"tags":        task.Tags,
	})
	if err != nil {
		return "", fmt.Errorf("marshal task: %w", err)
	}

	url := fmt.Sprintf("%s/list/%s/task", c.baseURL, c.listID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("create task: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("clickup returned status %d: %s", resp.StatusCode, body)
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.ID, nil
}
