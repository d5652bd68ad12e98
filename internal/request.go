package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Errors returned by the snapshot source.
var (
	ErrNonOkResponse     = errors.New("non-OK response")
	ErrEmptyResponseBody = errors.New("empty response body")
	ErrNonJSONContent    = errors.New("non-JSON content type")
)

const fetchTimeout = 10 * time.Second

// HTTPSource fetches aircraft snapshots from a dump1090-style aircraft.json
// endpoint. Best effort: every failure surfaces as an error for the caller
// to skip the poll on.
type HTTPSource struct {
	url    string
	client *http.Client
	clock  Clock
}

// NewHTTPSource builds a source against the given aircraft.json URL.
func NewHTTPSource(url string, clock Clock) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: fetchTimeout},
		clock:  clock,
	}
}

// Fetch requests the current snapshot and decodes it.
func (s *HTTPSource) Fetch(ctx context.Context) ([]Snapshot, error) {
	body, err := s.sendRequest(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch: error during request: %w", err)
	}

	return DecodeSnapshots(body, s.clock.Now())
}

// sendRequest sends an HTTP GET request and returns a valid byte slice of
// the response body.
func (s *HTTPSource) sendRequest(ctx context.Context) ([]byte, error) {
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if reqErr != nil {
		return nil, fmt.Errorf("sendRequest: invalid request: %s: %w", s.url, reqErr)
	}

	resp, respErr := s.client.Do(req)
	if respErr != nil {
		return nil, fmt.Errorf("sendRequest: failed to send GET request: %s: %w", s.url, respErr)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sendRequest: %w %s", ErrNonOkResponse, resp.Status)
	}

	body, bodyErr := io.ReadAll(resp.Body)
	if bodyErr != nil {
		return nil, fmt.Errorf("sendRequest: failed to read response body: %w", bodyErr)
	}

	if len(body) == 0 {
		return nil, fmt.Errorf("sendRequest: %w", ErrEmptyResponseBody)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return nil, fmt.Errorf("sendRequest: %w, %s", ErrNonJSONContent, contentType)
	}

	return body, nil
}
