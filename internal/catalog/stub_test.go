package catalog

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/novelhub/tadu-crawler/internal/fetch"
)

// stubFetcher routes fetches by exact URL. Unknown URLs fail every attempt.
type stubFetcher struct {
	mu        sync.Mutex
	responses map[string][]byte
	attempts  map[string]int
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		responses: make(map[string][]byte),
		attempts:  make(map[string]int),
	}
}

func (f *stubFetcher) serve(url, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[url] = []byte(body)
}

func (f *stubFetcher) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts[rawURL]++
	body, ok := f.responses[rawURL]
	if !ok {
		return nil, errors.New("upstream unavailable")
	}
	return body, nil
}

func (f *stubFetcher) attemptCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts[url]
}

func testConfig() Config {
	return Config{
		ListingURLTemplate: "http://catalog.test/list/%d",
		BookURLTemplate:    "http://catalog.test/book/%s",
		ChapterURLTemplate: "http://catalog.test/book/%s/%d/",
		ContentURLTemplate: "http://catalog.test/content/%s/%d",
		SiteOrigin:         "http://catalog.test",
		MaxBookWorkers:     10,
		MaxChapterWorkers:  5,
	}
}

func testRetry() fetch.RetryConfig {
	return fetch.RetryConfig{Times: 3, Sleep: 0}
}

func testCrawler(fetcher *stubFetcher) *Crawler {
	pages := fetch.NewResilient(fetcher, testRetry(), zap.NewNop())
	return New(testConfig(), pages, fetcher, testRetry(), zap.NewNop())
}
