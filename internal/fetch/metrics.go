package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// fetchAttempts counts every HTTP attempt, including retries.
	fetchAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_fetch_attempts_total",
		Help: "The total number of HTTP fetch attempts dispatched.",
	})
	// fetchRetries counts attempts that failed and may be retried.
	fetchRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_fetch_retries_total",
		Help: "The total number of failed fetch attempts.",
	})
	// fetchFailures counts fetches that exhausted their retry budget.
	fetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_fetch_failures_total",
		Help: "The total number of fetches that failed after all retries.",
	})
)
