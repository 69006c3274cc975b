// Package gamma is the HTTP client for the Polymarket Gamma API, the upstream
// source of raw event and market records.
package gamma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/polyfeed/polyfeed/internal/logger"
	"github.com/polyfeed/polyfeed/models"
)

// Client fetches raw event batches from the upstream feed. Implementations
// deserialize JSON and normalize transport failures into an error the caller
// can catch; they never return partially-decoded batches.
type Client interface {
	FetchEvents(ctx context.Context, path string, params map[string]string) ([]models.RawEvent, error)
}

// APIError is a non-2xx response from the upstream.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gamma: upstream returned %d for %s", e.StatusCode, e.URL)
}

// HTTPClient is the production Client backed by net/http with retries.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	logger     logger.Logger
}

// NewClient builds an HTTPClient. maxRetries counts attempts beyond the
// first; zero disables retrying.
func NewClient(baseURL string, timeout time.Duration, maxRetries int, log logger.Logger) *HTTPClient {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		logger:     log,
	}
}

// FetchEvents retrieves one batch of raw events. The upstream returns either
// a bare JSON array or a {data, pagination} wrapper depending on endpoint;
// both decode to the same batch.
func (c *HTTPClient) FetchEvents(ctx context.Context, path string, params map[string]string) ([]models.RawEvent, error) {
	reqURL, err := c.buildURL(path, params)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var events []models.RawEvent
	if err := json.Unmarshal(body, &events); err == nil {
		return events, nil
	}

	var wrapped struct {
		Data []models.RawEvent `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, models.NewTransformError(models.CodeParseFailure, "failed to decode events response", err)
	}
	return wrapped.Data, nil
}

func (c *HTTPClient) buildURL(path string, params map[string]string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("gamma: invalid base url: %w", err)
	}
	u = u.JoinPath(path)

	query := u.Query()
	for key, value := range params {
		query.Set(key, value)
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// get performs the request, retrying transport errors and 5xx responses with
// a linear backoff. 4xx responses are returned immediately.
func (c *HTTPClient) get(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			c.logger.Debug("gamma request failed, retrying", map[string]interface{}{
				"url":     reqURL,
				"attempt": attempt,
				"error":   err.Error(),
			})
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			lastErr = &APIError{StatusCode: resp.StatusCode, URL: reqURL}
			continue
		case resp.StatusCode >= 400:
			return nil, &APIError{StatusCode: resp.StatusCode, URL: reqURL}
		case readErr != nil:
			lastErr = readErr
			continue
		default:
			return body, nil
		}
	}

	return nil, fmt.Errorf("gamma: request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}
