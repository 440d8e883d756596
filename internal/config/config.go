// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Crawler CrawlerConfig `mapstructure:"crawler"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// CrawlerConfig governs the crawl pipeline: URL templates for the upstream
// catalog, nested worker-pool sizes, and the fixed-delay retry policy.
type CrawlerConfig struct {
	ListingURLTemplate string `mapstructure:"listing_url_template"`
	BookURLTemplate    string `mapstructure:"book_url_template"`
	ChapterURLTemplate string `mapstructure:"chapter_url_template"`
	ContentURLTemplate string `mapstructure:"content_url_template"`
	SiteOrigin         string `mapstructure:"site_origin"`
	UserAgent          string `mapstructure:"user_agent"`
	MaxBookWorkers     int    `mapstructure:"max_book_workers"`
	MaxChapterWorkers  int    `mapstructure:"max_chapter_workers"`
	RetryTimes         int    `mapstructure:"retry_times"`
	RetrySleepMs       int    `mapstructure:"retry_sleep_ms"`
	RequestTimeoutSec  int    `mapstructure:"request_timeout_seconds"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TADU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("crawler.listing_url_template", "https://www.tadu.com/store/98-a-0-4-15-0-1-0-%d")
	v.SetDefault("crawler.book_url_template", "https://www.tadu.com/book/%s")
	v.SetDefault("crawler.chapter_url_template", "https://www.tadu.com/book/%s/%d/")
	v.SetDefault("crawler.content_url_template", "https://www.tadu.com/getPartContentByCodeTable/%s/%d")
	v.SetDefault("crawler.site_origin", "https://www.tadu.com")
	v.SetDefault("crawler.user_agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36")
	v.SetDefault("crawler.max_book_workers", 10)
	v.SetDefault("crawler.max_chapter_workers", 5)
	v.SetDefault("crawler.retry_times", 3)
	v.SetDefault("crawler.retry_sleep_ms", 1000)
	v.SetDefault("crawler.request_timeout_seconds", 15)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Crawler.ListingURLTemplate == "" {
		return fmt.Errorf("crawler.listing_url_template must be set")
	}
	if c.Crawler.BookURLTemplate == "" {
		return fmt.Errorf("crawler.book_url_template must be set")
	}
	if c.Crawler.ChapterURLTemplate == "" {
		return fmt.Errorf("crawler.chapter_url_template must be set")
	}
	if c.Crawler.ContentURLTemplate == "" {
		return fmt.Errorf("crawler.content_url_template must be set")
	}
	if c.Crawler.SiteOrigin == "" {
		return fmt.Errorf("crawler.site_origin must be set")
	}
	if c.Crawler.UserAgent == "" {
		return fmt.Errorf("crawler.user_agent must be set")
	}
	if c.Crawler.MaxBookWorkers <= 0 {
		return fmt.Errorf("crawler.max_book_workers must be > 0")
	}
	if c.Crawler.MaxChapterWorkers <= 0 {
		return fmt.Errorf("crawler.max_chapter_workers must be > 0")
	}
	if c.Crawler.RetryTimes <= 0 {
		return fmt.Errorf("crawler.retry_times must be > 0")
	}
	if c.Crawler.RetrySleepMs < 0 {
		return fmt.Errorf("crawler.retry_sleep_ms must be >= 0")
	}
	if c.Crawler.RequestTimeoutSec <= 0 {
		return fmt.Errorf("crawler.request_timeout_seconds must be > 0")
	}
	return nil
}

// RetrySleep returns the fixed inter-attempt delay as a duration.
func (c CrawlerConfig) RetrySleep() time.Duration {
	return time.Duration(c.RetrySleepMs) * time.Millisecond
}

// RequestTimeout returns the per-attempt HTTP timeout as a duration.
func (c CrawlerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}
