package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// booksCrawled tracks books whose metadata and chapters were assembled.
	booksCrawled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_books_crawled_total",
		Help: "The total number of books successfully crawled.",
	})
	// chaptersCrawled tracks chapter fetch rounds, including absorbed defaults.
	chaptersCrawled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_chapters_crawled_total",
		Help: "The total number of chapters processed across all books.",
	})
)
