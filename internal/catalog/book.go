package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/novelhub/tadu-crawler/internal/htmldoc"
)

// Selectors for the designated elements on a book detail page.
const (
	titleSelector       = "a.bkNm"
	authorSelector      = ".bookNm .author"
	descriptionSelector = "p.intro"
	genreSelector       = ".sortList a"
	lazyImageSelector   = "img[data-src]"
	imageSelector       = "img"
	ogImageSelector     = `meta[property="og:image"]`

	// placeholderToken marks the site's stand-in cover image filename.
	placeholderToken = "defaultbook"
)

// bareMediaHostPattern matches a media-host URL with no further path, e.g.
// "https://media3.tadu.com/". Such values carry no cover image.
var bareMediaHostPattern = regexp.MustCompile(`^https?://media\d*\.[^/]+/?$`)

// BookExtractor turns a book detail page into a Book record. Only the fetch
// itself can fail; a missing element always resolves to an empty default.
type BookExtractor struct {
	cfg   Config
	pages PageGetter
}

// NewBookExtractor constructs a BookExtractor.
func NewBookExtractor(cfg Config, pages PageGetter) *BookExtractor {
	return &BookExtractor{cfg: cfg, pages: pages}
}

// Extract fetches the detail page for id and builds its metadata record.
// Chapters are left empty; the pipeline attaches them separately.
func (e *BookExtractor) Extract(ctx context.Context, id string) (Book, error) {
	bookURL := fmt.Sprintf(e.cfg.BookURLTemplate, id)
	body, err := e.pages.Get(ctx, bookURL)
	if err != nil {
		return Book{}, err
	}

	doc, err := htmldoc.Parse(body)
	if err != nil {
		return Book{}, err
	}

	book := Book{
		ID:        id,
		CoverURL:  e.coverURL(doc),
		SourceURL: bookURL,
		Genres:    []string{},
		Chapters:  []Chapter{},
	}
	if el, ok := doc.First(titleSelector); ok {
		book.Title, _ = el.Attr("name")
	}
	if el, ok := doc.First(authorSelector); ok {
		book.Author = el.Text()
	}
	if el, ok := doc.First(descriptionSelector); ok {
		book.Description = el.Text()
	}
	for _, el := range doc.All(genreSelector) {
		if genre := el.Text(); genre != "" {
			book.Genres = append(book.Genres, genre)
		}
	}
	return book, nil
}

// coverURL resolves the cover image through the fallback chain: lazy-load
// attribute of the first image, then the first image's src, normalized, and
// finally the social-preview metadata tag when the normalized value is empty
// or a known placeholder.
func (e *BookExtractor) coverURL(doc *htmldoc.Document) string {
	var raw string
	if img, ok := doc.First(lazyImageSelector); ok {
		raw, _ = img.Attr("data-src")
	} else if img, ok := doc.First(imageSelector); ok {
		raw, _ = img.Attr("src")
	}

	raw = e.normalizeImageURL(raw)
	if !isPlaceholderCover(raw) {
		return raw
	}

	if meta, ok := doc.First(ogImageSelector); ok {
		if content, ok := meta.Attr("content"); ok {
			return content
		}
	}
	return ""
}

func (e *BookExtractor) normalizeImageURL(raw string) string {
	switch {
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(raw, "/"):
		return e.cfg.SiteOrigin + raw
	default:
		return raw
	}
}

func isPlaceholderCover(normalized string) bool {
	if normalized == "" {
		return true
	}
	if bareMediaHostPattern.MatchString(normalized) {
		return true
	}
	return strings.Contains(normalized, placeholderToken)
}
