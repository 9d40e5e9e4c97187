package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/shrishtravels/routegen/pkg/routegen/dal"
)

// DefaultTimeout bounds a remote fetch.
const DefaultTimeout = 10 * time.Second

// maxBody caps how much of a response is read.
const maxBody = 32 << 20

// HTTPSource reads routes from a JSON endpoint.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource returns an HTTPSource with its own timeout-bounded client.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSource) Name() string { return "http " + s.URL }

// Fetch performs a GET and expects a 200 with a route JSON body.
func (s *HTTPSource) Fetch(ctx context.Context) ([]dal.RawRoute, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return Decode(body)
}

// FileSource reads routes from the local JSON cache.
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string { return "cache " + s.Path }

func (s *FileSource) Fetch(_ context.Context) ([]dal.RawRoute, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
