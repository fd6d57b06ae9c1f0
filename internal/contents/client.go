package contents

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dgallion1/navtree/internal/navtree"
)

// DefaultURL is where the published contents document lives.
const DefaultURL = "https://prolegomenon.s3.amazonaws.com/contents.json"

// Source produces a contents document.
type Source interface {
	Get(ctx context.Context) (*navtree.Content, error)
}

// Client downloads the contents document over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// URL returns the endpoint this client reads from.
func (c *Client) URL() string {
	return c.url
}

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("fetch contents: status %s", e.Status)
	}
	return fmt.Sprintf("fetch contents: status %s: %s", e.Status, e.Body)
}

// Get issues a single GET and decodes the response body.
func (c *Client) Get(ctx context.Context) (*navtree.Content, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("get contents: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(respBody),
		}
	}

	content, err := navtree.Decode(resp.Body)
	if err != nil {
		return nil, err
	}
	return content, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
