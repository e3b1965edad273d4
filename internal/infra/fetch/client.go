package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// Some sites serve a stripped page to unknown agents, so fetches
	// present a desktop browser identity.
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	maxBodyBytes = 10 << 20

	pageTimeout    = 15 * time.Second
	pricingTimeout = 10 * time.Second
)

type Client struct {
	http *http.Client
}

func NewClient() *Client {
	return &Client{http: &http.Client{}}
}

// Page fetches the target URL and returns the body regardless of HTTP
// status. Error pages still carry auditable HTML; only transport
// failures and timeouts count as unreachable.
func (c *Client) Page(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, pageTimeout)
	defer cancel()

	body, _, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	return body, nil
}

// Pricing fetches a secondary page best-effort. Unlike Page, a non-2xx
// status is treated as a miss because there is no point auditing a 404
// shell as pricing content.
func (c *Client) Pricing(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, pricingTimeout)
	defer cancel()

	body, status, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("pricing page returned status %d", status)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", 0, fmt.Errorf("read body: %w", err)
	}
	return string(body), resp.StatusCode, nil
}
