// Package cmd wires the tadu-crawler CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/novelhub/tadu-crawler/internal/catalog"
	"github.com/novelhub/tadu-crawler/internal/config"
	"github.com/novelhub/tadu-crawler/internal/fetch"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tadu-crawler",
		Short: "Crawl the Tadu book catalog.",
		Long: `tadu-crawler enumerates books from the Tadu catalog listing, extracts
per-book metadata, and fetches the opening chapters of each book. Run it as an
HTTP service with "serve" or as a one-shot crawl with "crawl".`,
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")
	cmd.AddCommand(newServeCmd(), newCrawlCmd())
	return cmd
}

// Execute runs the CLI.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildCrawler assembles the crawl pipeline from loaded configuration.
func buildCrawler(cfg config.Config, logger *zap.Logger) *catalog.Crawler {
	fetcher := fetch.NewCollyFetcher(fetch.CollyConfig{
		UserAgent: cfg.Crawler.UserAgent,
		Timeout:   cfg.Crawler.RequestTimeout(),
	})
	retry := fetch.RetryConfig{
		Times: cfg.Crawler.RetryTimes,
		Sleep: cfg.Crawler.RetrySleep(),
	}
	pages := fetch.NewResilient(fetcher, retry, logger.Named("fetch"))
	return catalog.New(catalog.Config{
		ListingURLTemplate: cfg.Crawler.ListingURLTemplate,
		BookURLTemplate:    cfg.Crawler.BookURLTemplate,
		ChapterURLTemplate: cfg.Crawler.ChapterURLTemplate,
		ContentURLTemplate: cfg.Crawler.ContentURLTemplate,
		SiteOrigin:         cfg.Crawler.SiteOrigin,
		MaxBookWorkers:     cfg.Crawler.MaxBookWorkers,
		MaxChapterWorkers:  cfg.Crawler.MaxChapterWorkers,
	}, pages, fetcher, retry, logger.Named("catalog"))
}
