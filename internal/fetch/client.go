// Simulates fetching API responses, so the cache can be exercised without
// real network I/O
package fetch

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Response is a simulated API response. It is what callers get back and
// what the memoizer persists.
type Response struct {
	URL       string    `json:"url"`
	Status    int       `json:"status"`
	Body      string    `json:"body"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Fetcher produces a response for a request URL
type Fetcher interface {
	Fetch(rawURL string) (*Response, error)
}

// Client is a simulated API client. Every fetch succeeds with a
// deterministic JSON body after an optional artificial latency.
type Client struct {
	latency time.Duration
	now     func() time.Time
}

// NewClient creates a simulated client with the given artificial latency
func NewClient(latency time.Duration) *Client {
	return &Client{
		latency: latency,
		now:     time.Now,
	}
}

// Fetch simulates a round trip to the given URL
func (c *Client) Fetch(rawURL string) (*Response, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL %q: %w", rawURL, err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("request URL %q has no host", rawURL)
	}

	requestID := uuid.NewString()
	logrus.Debugf("Fetching %s (request %s)", rawURL, requestID)

	if c.latency > 0 {
		time.Sleep(c.latency)
	}

	return &Response{
		URL:    rawURL,
		Status: 200,
		Body: fmt.Sprintf(`{"message":"simulated response","host":%q,"path":%q,"request_id":%q}`,
			parsed.Host, parsed.Path, requestID),
		FetchedAt: c.now(),
	}, nil
}
