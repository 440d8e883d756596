package catalog

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/novelhub/tadu-crawler/internal/htmldoc"
)

// bookLinkSelector matches the cover-image anchors on a catalog listing page.
const bookLinkSelector = "a.bookImg"

var bookIDPattern = regexp.MustCompile(`/book/(\d+)`)

// Listing extracts book identifiers from paginated catalog listing pages.
type Listing struct {
	cfg   Config
	pages PageGetter
}

// NewListing constructs a Listing extractor.
func NewListing(cfg Config, pages PageGetter) *Listing {
	return &Listing{cfg: cfg, pages: pages}
}

// BookIDs fetches the listing page and returns the distinct book identifiers
// it links to, sorted lexicographically. An empty result is not an error; the
// caller decides what "nothing found" means.
func (l *Listing) BookIDs(ctx context.Context, page int) ([]string, error) {
	listingURL := fmt.Sprintf(l.cfg.ListingURLTemplate, page)
	body, err := l.pages.Get(ctx, listingURL)
	if err != nil {
		return nil, err
	}

	doc, err := htmldoc.Parse(body)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, link := range doc.All(bookLinkSelector) {
		href, ok := link.Attr("href")
		if !ok {
			continue
		}
		m := bookIDPattern.FindStringSubmatch(href)
		if m == nil {
			continue
		}
		seen[m[1]] = struct{}{}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
