package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/novelhub/tadu-crawler/internal/config"
	"github.com/novelhub/tadu-crawler/internal/logging"
)

func newCrawlCmd() *cobra.Command {
	var (
		page        int
		numChapters int
	)
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Run one crawl and print the result as JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := logging.New(cfg.Logging.Development)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			crawler := buildCrawler(cfg, logger)
			books, err := crawler.Crawl(cmd.Context(), page, numChapters)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(books); err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "listing page number")
	cmd.Flags().IntVar(&numChapters, "chapters", 5, "number of opening chapters per book")
	return cmd
}
