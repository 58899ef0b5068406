package crawl

import (
	"context"
	"time"

	"github.com/scrapedown/scrapedown"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays attempts a fetch with backoff retry logic, making
// one initial attempt plus one retry per delay. Per-page errors
// (ENOTFOUND, EUNPROCESSABLE) are not retried: a 404 or a PDF will not
// become HTML on the second attempt.
func FetchWithRetryDelays(ctx context.Context, fetcher scrapedown.Fetcher, url string, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		switch scrapedown.ErrorCode(err) {
		case scrapedown.ENOTFOUND, scrapedown.EUNPROCESSABLE:
			return "", err
		}

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
