package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/novelhub/tadu-crawler/internal/fetch"
)

func newTestBookExtractor(fetcher *stubFetcher) *BookExtractor {
	pages := fetch.NewResilient(fetcher, testRetry(), zap.NewNop())
	return NewBookExtractor(testConfig(), pages)
}

const fullBookPage = `<html><head>
<meta property="og:image" content="https://social.test/preview.jpg">
</head><body>
<a class="bkNm" name="The Long Road" href="/book/42"></a>
<div class="bookNm"><span class="author">  Jane Doe  </span></div>
<p class="intro">
  A story about roads.
</p>
<div class="sortList"><a> Fantasy </a><a>Adventure</a></div>
<img data-src="//media.catalog.test/covers/42.jpg" src="/covers/direct-42.jpg">
</body></html>`

func TestExtractFullMetadata(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.serve("http://catalog.test/book/42", fullBookPage)

	book, err := newTestBookExtractor(fetcher).Extract(context.Background(), "42")
	require.NoError(t, err)
	require.Equal(t, "42", book.ID)
	require.Equal(t, "The Long Road", book.Title)
	require.Equal(t, "Jane Doe", book.Author)
	require.Equal(t, "A story about roads.", book.Description)
	require.Equal(t, []string{"Fantasy", "Adventure"}, book.Genres)
	require.Equal(t, "http://catalog.test/book/42", book.SourceURL)
	// Lazy-load attribute wins over the direct src, protocol-relative value
	// gets the https prefix.
	require.Equal(t, "https://media.catalog.test/covers/42.jpg", book.CoverURL)
}

func TestExtractDefaultsWhenElementsAbsent(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.serve("http://catalog.test/book/7", `<html><body><p>bare page</p></body></html>`)

	book, err := newTestBookExtractor(fetcher).Extract(context.Background(), "7")
	require.NoError(t, err)
	require.Equal(t, "7", book.ID)
	require.Empty(t, book.Title)
	require.Empty(t, book.Author)
	require.Empty(t, book.Description)
	require.NotNil(t, book.Genres)
	require.Empty(t, book.Genres)
	require.Empty(t, book.CoverURL)
}

func TestExtractCoverRootRelativeSrc(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.serve("http://catalog.test/book/9", `<html><body>
		<img src="/covers/9.jpg">
	</body></html>`)

	book, err := newTestBookExtractor(fetcher).Extract(context.Background(), "9")
	require.NoError(t, err)
	require.Equal(t, "http://catalog.test/covers/9.jpg", book.CoverURL)
}

func TestExtractCoverBareMediaHostFallsBackToOGImage(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.serve("http://catalog.test/book/11", `<html><head>
		<meta property="og:image" content="https://social.test/11.jpg">
	</head><body>
		<img data-src="https://media3.tadu.com/">
	</body></html>`)

	book, err := newTestBookExtractor(fetcher).Extract(context.Background(), "11")
	require.NoError(t, err)
	require.Equal(t, "https://social.test/11.jpg", book.CoverURL)
}

func TestExtractCoverPlaceholderTokenFallsBackToOGImage(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.serve("http://catalog.test/book/12", `<html><head>
		<meta property="og:image" content="https://social.test/12.jpg">
	</head><body>
		<img src="/images/defaultbook-cover.png">
	</body></html>`)

	book, err := newTestBookExtractor(fetcher).Extract(context.Background(), "12")
	require.NoError(t, err)
	require.Equal(t, "https://social.test/12.jpg", book.CoverURL)
}

func TestExtractCoverPlaceholderWithoutOGImageIsEmpty(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.serve("http://catalog.test/book/13", `<html><body>
		<img src="https://media.tadu.com/">
	</body></html>`)

	book, err := newTestBookExtractor(fetcher).Extract(context.Background(), "13")
	require.NoError(t, err)
	require.Empty(t, book.CoverURL)
}

func TestExtractIsIdempotent(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.serve("http://catalog.test/book/42", fullBookPage)
	extractor := newTestBookExtractor(fetcher)

	first, err := extractor.Extract(context.Background(), "42")
	require.NoError(t, err)
	second, err := extractor.Extract(context.Background(), "42")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestExtractFetchExhaustionPropagates(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()

	_, err := newTestBookExtractor(fetcher).Extract(context.Background(), "404")
	require.Error(t, err)

	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, 3, fetcher.attemptCount("http://catalog.test/book/404"))
}
