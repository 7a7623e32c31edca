// api/cache/transport.go
package cache

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Client wraps an HTTP client with the fetch cache. Only GET requests go
// through the cache because the key ignores request bodies; any other method
// is passed straight to the underlying client.
type Client struct {
	HTTPClient *http.Client
	Cache      *FetchCache
}

func NewClient(httpClient *http.Client, fetchCache *FetchCache) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{HTTPClient: httpClient, Cache: fetchCache}
}

// Get fetches url through the cache.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	key := Key(http.MethodGet, url)
	return c.Cache.Fetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	})
}

// Do executes a non-GET request, bypassing the cache entirely.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.HTTPClient.Do(req)
}
