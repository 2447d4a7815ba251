package holidays

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrMalformedPayload marks a holiday source response whose body is not a
// JSON list of date strings. It counts as a fetch failure for retry and
// circuit breaker purposes.
var ErrMalformedPayload = errors.New("holiday payload is not a list of date strings")

// Fetcher retrieves the raw holiday dates for a source location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]string, error)
}

// HTTPFetcher fetches holiday dates from the external HTTP source.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher creates a fetcher against the given base URL. Retries are
// deliberately not configured on the client: the provider owns the retry
// budget so the circuit breaker sees every attempt.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "businesstime-backend/1.0")

	return &HTTPFetcher{client: client}
}

// Fetch retrieves and structurally validates the holiday list for a
// location. The payload must be a JSON array of strings; anything else is
// ErrMalformedPayload.
func (f *HTTPFetcher) Fetch(ctx context.Context, location string) ([]string, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get("/" + location + ".json")
	if err != nil {
		return nil, fmt.Errorf("holiday source request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("holiday source returned %s", resp.Status())
	}

	var dates []string
	if err := json.Unmarshal(resp.Body(), &dates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return dates, nil
}
