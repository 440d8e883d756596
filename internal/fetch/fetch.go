// Package fetch provides the single network primitive the crawl pipeline is
// built on: a one-shot page fetcher plus a fixed-delay retry wrapper around it.
package fetch

import (
	"context"
	"fmt"
)

// Fetcher performs a single fetch attempt and returns the response body.
// A transport error, timeout, or non-success status is surfaced as an error.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Error reports a fetch whose retry budget is exhausted. It is the only
// failure higher pipeline levels see; each level decides locally whether to
// propagate it or absorb it into a default value.
type Error struct {
	URL      string
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
