// Package catalog implements the book catalog crawl pipeline: listing
// discovery, per-book metadata extraction, chapter fetching, and the nested
// bounded-concurrency orchestration that ties them together.
package catalog

import (
	"context"
	"errors"
)

// ErrNoBooks reports a listing page that yielded zero book identifiers. It is
// a first-class "nothing found" outcome, not a fetch failure.
var ErrNoBooks = errors.New("no books found on listing page")

// Chapter is one fetched chapter of a book. Index is the caller-assigned
// 1-based chapter number, never a value read from the source.
type Chapter struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Book aggregates the metadata and chapters crawled for a single catalog
// entry. String fields default to empty when unextractable; Genres and
// Chapters are never nil.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	CoverURL    string    `json:"cover_url"`
	Description string    `json:"description"`
	Genres      []string  `json:"genres"`
	SourceURL   string    `json:"source_url"`
	Chapters    []Chapter `json:"chapters"`
}

// Config holds the settings for a crawl session. It is decoupled from Viper
// so the pipeline can be constructed and tested independently.
type Config struct {
	ListingURLTemplate string
	BookURLTemplate    string
	ChapterURLTemplate string
	ContentURLTemplate string
	SiteOrigin         string
	MaxBookWorkers     int
	MaxChapterWorkers  int
}

// PageGetter is the resilient fetch used where exhaustion must propagate as a
// hard failure (listing and book metadata pages). *fetch.Resilient satisfies
// it.
type PageGetter interface {
	Get(ctx context.Context, rawURL string) ([]byte, error)
}
