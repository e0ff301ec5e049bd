package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrCatalogUnavailable marks a failure of the transport to the remote movie
// catalog: connection refused, timeout, or an upstream 5xx. Callers may fall
// back to cached data for this class of error and no other.
var ErrCatalogUnavailable = errors.New("movie catalog unavailable")

// Movie is a record served by the remote catalog.
type Movie struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Year   string `json:"year"`
	Rating string `json:"rating"`
	Crew   string `json:"crew"`
}

// Client looks up movies in the remote catalog. GetByID returns (nil, nil)
// when the movie does not exist.
type Client interface {
	GetAll(ctx context.Context) ([]Movie, error)
	GetByID(ctx context.Context, id string) (*Movie, error)
}

// HTTPClient talks to the catalog over HTTP, authenticating with a configured
// API key header.
type HTTPClient struct {
	baseURL      string
	apiKeyHeader string
	apiKey       string
	client       *http.Client
}

func NewHTTPClient(baseURL, apiKeyHeader, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:      baseURL,
		apiKeyHeader: apiKeyHeader,
		apiKey:       apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) GetAll(ctx context.Context) ([]Movie, error) {
	var movies []Movie

	found, err := c.get(ctx, "/v1/movies", &movies)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	return movies, nil
}

func (c *HTTPClient) GetByID(ctx context.Context, id string) (*Movie, error) {
	var movie Movie

	found, err := c.get(ctx, "/v1/movies/"+id, &movie)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	return &movie, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, dest any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, err
	}

	if c.apiKeyHeader != "" {
		req.Header.Set(c.apiKeyHeader, c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return false, fmt.Errorf("%w: upstream returned status %d", ErrCatalogUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return false, fmt.Errorf("movie catalog returned unexpected status %d", resp.StatusCode)
	}

	err = json.NewDecoder(resp.Body).Decode(dest)
	if err != nil {
		return false, fmt.Errorf("failed to decode movie catalog response: %w", err)
	}

	return true, nil
}
