package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config represents the application configuration
type Config struct {
	// Search parameters
	BaseURL      string `env:"OTODOM_BASE_URL" envDefault:"https://www.otodom.pl"`
	Province     string `env:"SEARCH_PROVINCE" envDefault:"mazowieckie"`
	City         string `env:"SEARCH_CITY" envDefault:"warszawa"`
	District     string `env:"SEARCH_DISTRICT"`
	PropertyType string `env:"SEARCH_PROPERTY_TYPE" envDefault:"flat"`
	AuctionType  string `env:"SEARCH_AUCTION_TYPE" envDefault:"sale"`
	PriceMin     int    `env:"SEARCH_PRICE_MIN" envDefault:"0"`
	PriceMax     int    `env:"SEARCH_PRICE_MAX" envDefault:"10000000"`

	// Crawl tuning
	PageWorkers   int           `env:"PAGE_WORKERS" envDefault:"25"`
	DetailWorkers int           `env:"DETAIL_WORKERS" envDefault:"10"`
	FetchRetries  int           `env:"FETCH_RETRIES" envDefault:"3"`
	FetchBackoff  time.Duration `env:"FETCH_BACKOFF" envDefault:"0s"`
	HTTPTimeout   time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	BlockTime     time.Duration `env:"RATE_LIMIT_BLOCK" envDefault:"60s"`

	// Storage
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"otodom"`

	// Publisher
	RedisAddr         string `env:"REDIS_ADDR"`
	RedisDB           int    `env:"REDIS_DB" envDefault:"0"`
	RedisStream       string `env:"REDIS_STREAM" envDefault:"listings"`
	RedisStreamMaxLen int64  `env:"REDIS_STREAM_MAX_LENGTH" envDefault:"500"`

	// Politeness cache
	MemcacheAddr string `env:"MEMCACHE_ADDR"`

	// Export
	CSVFile  string `env:"EXPORT_CSV_FILE"`
	JSONFile string `env:"EXPORT_JSON_FILE"`

	// Environment
	Environment string `env:"OTODOM_ENVIRONMENT" envDefault:"development"`
}

// Load parses the configuration from environment variables and
// normalizes the search location to the URL slugs otodom expects.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("can't parse env variables: %w", err)
	}

	cfg.Province = NormalizeProvince(cfg.Province)
	cfg.City = ReplacePolishCharacters(cfg.City)
	cfg.District = ReplacePolishCharacters(cfg.District)

	return cfg, nil
}

// Validate checks the configuration for values the crawler cannot run with
func (c *Config) Validate() error {
	if c.PriceMin < 0 || c.PriceMax < 0 {
		return fmt.Errorf("prices cannot be negative")
	}
	if c.PriceMin > c.PriceMax {
		return fmt.Errorf("min price cannot be greater than max price")
	}
	if c.PageWorkers < 1 || c.DetailWorkers < 1 {
		return fmt.Errorf("worker pool widths must be positive")
	}
	if c.FetchRetries < 1 {
		return fmt.Errorf("fetch retries must be positive")
	}
	if !IsKnownProvince(c.Province) {
		return fmt.Errorf("unknown province %q", c.Province)
	}
	return nil
}
