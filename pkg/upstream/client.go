// pkg/upstream/client.go
// Client for the CircuitSense ORDS endpoint that serves raw telemetry
// batches. The decoded payload keeps whatever shape the endpoint returns;
// the analysis normalizer handles the rest.

package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const userAgent = "circuitsense-collector/1.0"

type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Code)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchBatch pulls the latest telemetry batch.
func (c *Client) FetchBatch(ctx context.Context) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch upstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, StatusError{Code: resp.StatusCode}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode upstream body: %w", err)
	}
	return payload, nil
}
