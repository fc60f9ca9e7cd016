package index

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Reachable probes the package index URL with a HEAD request (falling
// back to GET when the server rejects HEAD). Any response below 500
// counts as reachable. Returns an error on network failure or a 5xx.
func Reachable(ctx context.Context, url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	status, err := probe(ctx, http.MethodHead, url)
	if err == nil && status == http.StatusMethodNotAllowed {
		status, err = probe(ctx, http.MethodGet, url)
	}
	if err != nil {
		return fmt.Errorf("index %s not reachable: %w", url, err)
	}
	if status >= 500 {
		return fmt.Errorf("index %s returned status %d", url, status)
	}
	return nil
}

func probe(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
