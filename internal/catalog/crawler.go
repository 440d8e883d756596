package catalog

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/novelhub/tadu-crawler/internal/fetch"
)

// Crawler orchestrates a full catalog crawl: listing discovery, then a
// bounded fan-out over books, each of which runs its own bounded fan-out over
// chapters.
type Crawler struct {
	cfg      Config
	listing  *Listing
	books    *BookExtractor
	chapters *chapterFetcher
	logger   *zap.Logger
}

// New assembles a Crawler. pages is the resilient fetch used for listing and
// book metadata pages, whose exhaustion is a hard failure; fetcher is the
// single-attempt fetch the chapter level retries and absorbs on its own.
func New(cfg Config, pages PageGetter, fetcher fetch.Fetcher, retry fetch.RetryConfig, logger *zap.Logger) *Crawler {
	return &Crawler{
		cfg:      cfg,
		listing:  NewListing(cfg, pages),
		books:    NewBookExtractor(cfg, pages),
		chapters: newChapterFetcher(cfg, fetcher, retry, logger.Named("chapter")),
		logger:   logger,
	}
}

// Crawl resolves the book IDs on the given listing page and crawls metadata
// plus the first numChapters chapters of each. It returns ErrNoBooks when the
// listing yields nothing, and propagates the first metadata or listing fetch
// failure, aborting the whole request. The result preserves the book-ID
// ordering fixed at fan-out launch.
func (c *Crawler) Crawl(ctx context.Context, page, numChapters int) ([]Book, error) {
	if numChapters < 0 {
		numChapters = 0
	}

	ids, err := c.listing.BookIDs(ctx, page)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNoBooks
	}
	c.logger.Info("listing resolved",
		zap.Int("page", page),
		zap.Int("books", len(ids)),
		zap.Int("chapters_per_book", numChapters),
	)

	books := make([]Book, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.MaxBookWorkers)
	for i, id := range ids {
		g.Go(func() error {
			book, err := c.books.Extract(gctx, id)
			if err != nil {
				return err
			}
			book.Chapters = c.crawlChapters(gctx, id, numChapters)
			books[i] = book
			booksCrawled.Inc()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return books, nil
}

// crawlChapters fans out title and content fetches for chapters 1..n under
// the chapter worker cap. Each index's title and content fetches are separate
// tasks sharing the cap. Slots are assigned by index up front, so the output
// is in ascending index order no matter which task finishes first.
func (c *Crawler) crawlChapters(ctx context.Context, bookID string, n int) []Chapter {
	chapters := make([]Chapter, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.MaxChapterWorkers)
	for i := 1; i <= n; i++ {
		idx := i
		chapters[idx-1].Index = idx
		g.Go(func() error {
			chapters[idx-1].Title = c.chapters.Title(gctx, bookID, idx)
			return nil
		})
		g.Go(func() error {
			chapters[idx-1].Content = c.chapters.Content(gctx, bookID, idx)
			return nil
		})
	}
	// Chapter tasks absorb their own failures and never return an error.
	_ = g.Wait()
	chaptersCrawled.Add(float64(n))
	return chapters
}
