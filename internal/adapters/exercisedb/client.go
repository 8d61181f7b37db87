// Package exercisedb fetches the exercise catalog from the ExerciseDB API on
// RapidAPI.
package exercisedb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/liftdiary/api/internal/core/domain"
	"github.com/liftdiary/api/internal/core/ports"
)

// The full catalog is around 1300 entries.
const fetchLimit = "1300"

type Client struct {
	apiKey     string
	host       string
	baseURL    string
	httpClient *http.Client
}

// Option overrides client defaults, used by tests to point at a local server.
type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func NewClient(apiKey, host string, opts ...Option) ports.CatalogClient {
	c := &Client{
		apiKey:     apiKey,
		host:       host,
		baseURL:    fmt.Sprintf("https://%s", host),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type exercisePayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Target    string `json:"target"`
	BodyPart  string `json:"bodyPart"`
	Equipment string `json:"equipment"`
	GifURL    string `json:"gifUrl"`
}

func (c *Client) FetchAll(ctx context.Context) ([]domain.Exercise, error) {
	endpoint := fmt.Sprintf("%s/exercises?%s", c.baseURL, url.Values{"limit": {fetchLimit}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exercises: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from exercise API", resp.StatusCode)
	}

	var payload []exercisePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode exercises: %w", err)
	}

	exercises := make([]domain.Exercise, 0, len(payload))
	for _, p := range payload {
		exercises = append(exercises, domain.Exercise{
			ID:        p.ID,
			Name:      p.Name,
			Target:    p.Target,
			BodyPart:  p.BodyPart,
			Equipment: p.Equipment,
			GifURL:    p.GifURL,
		})
	}
	return exercises, nil
}
