package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// KaggleBaseURL is the root of the Kaggle public API.
const KaggleBaseURL = "https://www.kaggle.com/api/v1"

// Fetcher downloads a remote dataset file.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// HTTPDoer is the part of *http.Client the fetcher needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPFetcher fetches dataset files over HTTP, optionally with basic auth.
type HTTPFetcher struct {
	client   HTTPDoer
	username string
	key      string
}

// NewHTTPFetcher creates a fetcher. A nil client gets one with the given timeout.
func NewHTTPFetcher(client HTTPDoer, timeout time.Duration) *HTTPFetcher {
	if client == nil {
		if timeout <= 0 {
			timeout = 2 * time.Minute
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPFetcher{client: client}
}

// WithBasicAuth returns a copy of f that authenticates as username/key.
func (f *HTTPFetcher) WithBasicAuth(username, key string) *HTTPFetcher {
	cp := *f
	cp.username = username
	cp.key = key
	return &cp
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if f.username != "" {
		req.SetBasicAuth(f.username, f.key)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch url %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// KaggleFileURL builds the download URL of one file of a Kaggle dataset ("owner/name").
func KaggleFileURL(baseURL, dataset, file string) (string, error) {
	owner, name, ok := strings.Cut(strings.Trim(dataset, "/"), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("kaggle dataset %q must look like owner/name", dataset)
	}
	if file == "" {
		return "", fmt.Errorf("kaggle file name is required")
	}
	return fmt.Sprintf("%s/datasets/download/%s/%s/%s",
		strings.TrimRight(baseURL, "/"), url.PathEscape(owner), url.PathEscape(name), url.PathEscape(file)), nil
}
