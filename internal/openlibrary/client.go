package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://openlibrary.org"
	defaultUserAgent = "booklens/0.1 (github.com/openshelf/booklens)"
	defaultTimeout   = 15 * time.Second
	defaultRPS       = 10
	maxAttempts      = 3
)

// Client is a rate-limited Open Library API client.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	userAgent  string
}

// NewClient creates a new Open Library client. Empty or zero arguments
// fall back to the package defaults.
func NewClient(baseURL, userAgent string, timeout time.Duration, rps int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if rps <= 0 {
		rps = defaultRPS
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter:   rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// FetchByISBN retrieves the merged raw payload for one ISBN: the
// /api/books data entry plus the last_modified and description members
// of the edition document it references. A missing entry yields
// (nil, nil); no data is not an error.
func (c *Client) FetchByISBN(ctx context.Context, isbn string) ([]byte, error) {
	bibkey := "ISBN:" + isbn

	q := url.Values{}
	q.Set("bibkeys", bibkey)
	q.Set("format", "json")
	q.Set("jscmd", "data")

	body, err := c.get(ctx, c.baseURL+"/api/books?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var index map[string]map[string]any
	if err := json.Unmarshal(body, &index); err != nil {
		return nil, fmt.Errorf("failed to decode books response: %w", err)
	}

	payload, ok := index[bibkey]
	if !ok || payload == nil {
		return nil, nil
	}

	c.mergeDetails(ctx, payload)

	merged, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return merged, nil
}

// mergeDetails copies last_modified and description from the edition
// document into the payload, with empty-object defaults when a member is
// missing. A failed details fetch leaves the payload as-is.
func (c *Client) mergeDetails(ctx context.Context, payload map[string]any) {
	key, _ := payload["key"].(string)
	if key == "" {
		return
	}

	body, err := c.get(ctx, c.baseURL+key+".json")
	if err != nil {
		slog.Warn("Details fetch failed", "key", key, "error", err)
		return
	}

	var details map[string]any
	if err := json.Unmarshal(body, &details); err != nil {
		slog.Warn("Details response is not an object", "key", key, "error", err)
		return
	}

	payload["last_modified"] = memberOrEmpty(details, "last_modified")
	payload["description"] = memberOrEmpty(details, "description")
}

func memberOrEmpty(details map[string]any, member string) any {
	if v, ok := details[member]; ok && v != nil {
		return v
	}
	return map[string]any{}
}

// get performs one rate-limited GET with retries on 429 and 5xx
// responses. Backoff doubles per attempt: 1s, 2s.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("open library returned status %d", resp.StatusCode)
			continue
		default:
			return nil, fmt.Errorf("open library returned status %d", resp.StatusCode)
		}
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", maxAttempts, lastErr)
}
