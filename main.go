package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"otodomcrawler/config"
	"otodomcrawler/helpers"
	"otodomcrawler/internal/crawler"
	"otodomcrawler/internal/export"
	"otodomcrawler/internal/listing"
	"otodomcrawler/internal/store"
	"otodomcrawler/logger"
	"otodomcrawler/services/cache"
	"otodomcrawler/services/publisher"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	helpers.SetTimeout(cfg.HTTPTimeout)

	log.Info().
		Str("environment", cfg.Environment).
		Str("province", cfg.Province).
		Str("city", cfg.City).
		Msg("Starting crawl")

	// Cancel the crawl on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	search, err := crawler.SearchFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid search parameters")
	}

	services, err := initializeServices(ctx, &cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup(ctx)

	fetcher := crawler.NewFetchClient(cfg.FetchRetries, cfg.FetchBackoff, services.Cache, cfg.BlockTime)
	c := crawler.New(fetcher, services.Store, search, cfg.PageWorkers, cfg.DetailWorkers, cfg.FetchRetries)

	listings, err := c.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Crawl failed")
	}

	log.Info().Int("inserted", len(listings)).Msg("Crawl complete")

	if services.Publisher != nil {
		publishListings(services.Publisher, listings)
	}

	exportListings(&cfg, listings)
}

// Services holds all the initialized services
type Services struct {
	Store     store.Store
	Mongo     *store.MongoStore
	Cache     cache.CacheService
	Publisher publisher.Publisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup(ctx context.Context) {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
	if s.Mongo != nil {
		s.Mongo.Close(ctx)
	}
}

// initializeServices initializes the store, cache and publisher
func initializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	services := &Services{}

	if cfg.MongoURI != "" {
		mongoStore, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		services.Store = mongoStore
		services.Mongo = mongoStore
		logger.Info("Connected to MongoDB (database: %s)", cfg.MongoDatabase)
	} else {
		services.Store = store.NewMemoryStore()
		logger.Warn("MONGO_URI is not set, crawled listings are kept in memory only")
	}

	if cfg.MemcacheAddr != "" {
		services.Cache = cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
	}

	if cfg.RedisAddr != "" {
		services.Publisher = publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			int(cfg.RedisStreamMaxLen),
		)
		logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	return services, nil
}

// publishListings sends each crawled listing to the stream. Publish
// failures do not fail the run; the listings are already persisted.
func publishListings(pub publisher.Publisher, listings []listing.Listing) {
	published := 0
	for _, lst := range listings {
		message, err := json.Marshal(lst.Record())
		if err != nil {
			logger.Error("Failed to serialize listing %d: %v", lst.Property.OtodomID, err)
			continue
		}
		if err := pub.Publish(message); err != nil {
			logger.Error("Failed to publish listing %d: %v", lst.Property.OtodomID, err)
			continue
		}
		published++
	}
	if err := pub.Trim(); err != nil {
		logger.Error("Failed to trim stream: %v", err)
	}
	logger.Info("Published %d listings", published)
}

// exportListings writes the crawled listings to the configured files
func exportListings(cfg *config.Config, listings []listing.Listing) {
	if cfg.CSVFile != "" {
		if err := export.WriteCSVFile(cfg.CSVFile, listings); err != nil {
			logger.Error("Failed to write CSV export: %v", err)
		} else {
			logger.Info("Wrote %d listings to %s", len(listings), cfg.CSVFile)
		}
	}
	if cfg.JSONFile != "" {
		if err := export.WriteJSONFile(cfg.JSONFile, listings); err != nil {
			logger.Error("Failed to write JSON export: %v", err)
		} else {
			logger.Info("Wrote %d listings to %s", len(listings), cfg.JSONFile)
		}
	}
}
