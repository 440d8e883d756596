package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jaytaylor/html2text"
	"go.uber.org/zap"

	"github.com/novelhub/tadu-crawler/internal/fetch"
	"github.com/novelhub/tadu-crawler/internal/htmldoc"
)

const (
	chapterHeadingSelector = "h4"
	contentStatusOK        = 200
)

// chapterFetcher fetches a single chapter's title and content. Every failure
// here is absorbed: after the retry budget runs out the title falls back to a
// synthesized "Chapter N" and the content to an empty string. Nothing at the
// chapter level ever fails the book.
type chapterFetcher struct {
	cfg     Config
	fetcher fetch.Fetcher
	retry   fetch.RetryConfig
	logger  *zap.Logger
}

func newChapterFetcher(cfg Config, fetcher fetch.Fetcher, retry fetch.RetryConfig, logger *zap.Logger) *chapterFetcher {
	return &chapterFetcher{cfg: cfg, fetcher: fetcher, retry: retry, logger: logger}
}

// Title fetches the chapter page and picks its title heading: the second
// heading when the page has at least two, the first when it has one, and the
// synthesized default otherwise. The whole fetch+parse is retried under the
// fixed-delay policy.
func (c *chapterFetcher) Title(ctx context.Context, bookID string, index int) string {
	chapterURL := fmt.Sprintf(c.cfg.ChapterURLTemplate, bookID, index)
	title := fmt.Sprintf("Chapter %d", index)

	err := fetch.Retry(ctx, c.retry, func() error {
		body, err := c.fetcher.Fetch(ctx, chapterURL)
		if err != nil {
			return err
		}
		doc, err := htmldoc.Parse(body)
		if err != nil {
			return err
		}
		headings := doc.All(chapterHeadingSelector)
		switch {
		case len(headings) >= 2:
			title = headings[1].Text()
		case len(headings) == 1:
			title = headings[0].Text()
		}
		return nil
	})
	if err != nil {
		c.logger.Warn("chapter title fetch exhausted, using default",
			zap.String("book_id", bookID),
			zap.Int("chapter", index),
			zap.Error(err),
		)
	}
	return title
}

type contentPayload struct {
	Status int `json:"status"`
	Data   struct {
		Content string `json:"content"`
	} `json:"data"`
}

// Content calls the chapter content endpoint and strips the returned markup
// to plain text with carriage returns removed. A non-success payload status
// counts as a failed attempt; exhaustion is absorbed into an empty string.
func (c *chapterFetcher) Content(ctx context.Context, bookID string, index int) string {
	contentURL := fmt.Sprintf(c.cfg.ContentURLTemplate, bookID, index)
	var text string

	err := fetch.Retry(ctx, c.retry, func() error {
		body, err := c.fetcher.Fetch(ctx, contentURL)
		if err != nil {
			return err
		}
		var payload contentPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			return err
		}
		if payload.Status != contentStatusOK {
			return fmt.Errorf("content endpoint status %d", payload.Status)
		}
		plain, err := html2text.FromString(payload.Data.Content, html2text.Options{TextOnly: true})
		if err != nil {
			return err
		}
		text = strings.ReplaceAll(plain, "\r", "")
		return nil
	})
	if err != nil {
		c.logger.Warn("chapter content fetch exhausted, using empty content",
			zap.String("book_id", bookID),
			zap.Int("chapter", index),
			zap.Error(err),
		)
		return ""
	}
	return text
}
