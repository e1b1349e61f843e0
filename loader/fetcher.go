package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// Fetcher retrieves the raw bytes of a resource.
// Queues route to a fetcher by URI scheme.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// HTTPFetcher fetches resources over HTTP(S) with a single GET.
type HTTPFetcher struct {
	// Client defaults to http.DefaultClient when nil.
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// FileFetcher reads file:// resources from the local disk.
type FileFetcher struct{}

func (f *FileFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}

	return os.ReadFile(parsed.Path)
}

// scheme extracts the URI scheme used for fetcher routing.
func scheme(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}

	return parsed.Scheme
}
