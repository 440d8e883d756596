package fetch

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// RetryConfig is the fixed-delay retry policy shared by every fetch in the
// pipeline: a flat attempt budget and a constant inter-attempt sleep. There is
// no exponential growth and no jitter.
type RetryConfig struct {
	Times int
	Sleep time.Duration
}

func (c RetryConfig) attempts() int {
	if c.Times < 1 {
		return 1
	}
	return c.Times
}

// Retry runs op up to cfg.Times times, sleeping cfg.Sleep between attempts.
// It returns nil on the first success and the last error on exhaustion.
func Retry(ctx context.Context, cfg RetryConfig, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(cfg.Sleep), uint64(cfg.attempts()-1)),
		ctx,
	)
	return backoff.Retry(op, policy)
}

// Resilient wraps a single-attempt Fetcher with the fixed-delay retry policy.
// It is the sole point where transport failures surface as *Error.
type Resilient struct {
	fetcher Fetcher
	retry   RetryConfig
	logger  *zap.Logger
}

// NewResilient constructs a Resilient fetcher.
func NewResilient(fetcher Fetcher, retry RetryConfig, logger *zap.Logger) *Resilient {
	return &Resilient{fetcher: fetcher, retry: retry, logger: logger}
}

// Get fetches rawURL, retrying failed attempts with the fixed delay. After
// exhausting the attempt budget it returns *Error carrying the URL and the
// number of attempts made.
func (r *Resilient) Get(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte
	attempt := 0
	err := Retry(ctx, r.retry, func() error {
		attempt++
		fetchAttempts.Inc()
		b, err := r.fetcher.Fetch(ctx, rawURL)
		if err != nil {
			fetchRetries.Inc()
			r.logger.Warn("fetch attempt failed",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", r.retry.attempts()),
				zap.Error(err),
			)
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		fetchFailures.Inc()
		return nil, &Error{URL: rawURL, Attempts: attempt, Err: err}
	}
	return body, nil
}
