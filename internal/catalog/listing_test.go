package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/novelhub/tadu-crawler/internal/fetch"
)

func newTestListing(fetcher *stubFetcher) *Listing {
	pages := fetch.NewResilient(fetcher, testRetry(), zap.NewNop())
	return NewListing(testConfig(), pages)
}

func TestBookIDsDeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.serve("http://catalog.test/list/1", `<html><body>
		<a class="bookImg" href="/book/6/"><img src="/a.jpg"></a>
		<a class="bookImg" href="/book/50/"><img src="/b.jpg"></a>
		<a class="bookImg" href="/book/6/"><img src="/a.jpg"></a>
		<a class="other" href="/book/999/">not a cover link</a>
	</body></html>`)

	ids, err := newTestListing(fetcher).BookIDs(context.Background(), 1)
	require.NoError(t, err)
	// Lexicographic over identifier strings: "50" sorts before "6".
	require.Equal(t, []string{"50", "6"}, ids)
}

func TestBookIDsEmptyListingIsNotAnError(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.serve("http://catalog.test/list/3", `<html><body><p>nothing here</p></body></html>`)

	ids, err := newTestListing(fetcher).BookIDs(context.Background(), 3)
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestBookIDsIgnoresMalformedHrefs(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.serve("http://catalog.test/list/1", `<html><body>
		<a class="bookImg" href="/author/77/">wrong path</a>
		<a class="bookImg">no href</a>
		<a class="bookImg" href="/book/123/">good</a>
	</body></html>`)

	ids, err := newTestListing(fetcher).BookIDs(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, []string{"123"}, ids)
}

func TestBookIDsFetchFailurePropagates(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()

	_, err := newTestListing(fetcher).BookIDs(context.Background(), 1)
	require.Error(t, err)

	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, 3, fetchErr.Attempts)
	require.Equal(t, 3, fetcher.attemptCount("http://catalog.test/list/1"))
}
