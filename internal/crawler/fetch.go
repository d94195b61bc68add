package crawler

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"otodomcrawler/helpers"
	"otodomcrawler/internal/payload"
	"otodomcrawler/logger"
	"otodomcrawler/pkg/errors"
	"otodomcrawler/services/cache"
)

// Fetcher is the crawl orchestrator's view of page fetching.
type Fetcher interface {
	// FetchPage performs one GET and parses the body. Network and status
	// errors pass through without retries.
	FetchPage(ctx context.Context, pageURL string, params url.Values) (*goquery.Document, error)

	// FetchListing fetches a listing detail page and returns its embedded
	// data payload, retrying when the data block is missing.
	FetchListing(ctx context.Context, pageURL string) (payload.Value, error)
}

// FetchClient fetches pages from the target site with a fixed retry
// budget and an optional politeness block backed by the cache service.
type FetchClient struct {
	Retries   int
	Backoff   time.Duration
	CacheSvc  cache.CacheService
	CacheKey  string
	BlockTime time.Duration

	log *logger.Logger
	// test seam; defaults to helpers.FetchPage
	fetch func(ctx context.Context, pageURL string, params url.Values) (io.Reader, error)
}

// NewFetchClient returns a FetchClient. cacheSvc may be nil, in which
// case no politeness block is kept between requests.
func NewFetchClient(retries int, backoff time.Duration, cacheSvc cache.CacheService, blockTime time.Duration) *FetchClient {
	return &FetchClient{
		Retries:   retries,
		Backoff:   backoff,
		CacheSvc:  cacheSvc,
		CacheKey:  "otodom_rate_limited",
		BlockTime: blockTime,
		log:       logger.ForFetcher(),
		fetch:     helpers.FetchPage,
	}
}

// FetchPage performs a single GET and parses the response into a document.
func (c *FetchClient) FetchPage(ctx context.Context, pageURL string, params url.Values) (*goquery.Document, error) {
	body, err := c.fetchWithBlock(ctx, pageURL, params)
	if err != nil {
		return nil, errors.NewNetwork(pageURL, err)
	}
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, errors.NewNetwork(pageURL, fmt.Errorf("can't parse HTML: %w", err))
	}
	return doc, nil
}

// FetchListing fetches a detail page and validates that the embedded
// data block is present before accepting the response. A missing block
// consumes one retry; a network-level failure passes through unretried.
// The retry budget exhausting yields an extraction error terminal for
// this one listing.
func (c *FetchClient) FetchListing(ctx context.Context, pageURL string) (payload.Value, error) {
	for attempt := 1; attempt <= c.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return payload.Value{}, errors.NewNetwork(pageURL, err)
		}

		doc, err := c.FetchPage(ctx, pageURL, nil)
		if err != nil {
			return payload.Value{}, err
		}

		if v, ok := payload.FromDocument(doc); ok {
			return v, nil
		}

		c.log.Warn().
			Str("url", pageURL).
			Int("attempt", attempt).
			Msg("embedded data block missing, retrying")

		if c.Backoff > 0 && attempt < c.Retries {
			// exponential when configured, none by default
			time.Sleep(c.Backoff * time.Duration(1<<(attempt-1)))
		}
	}
	return payload.Value{}, errors.NewExtraction(pageURL)
}

// fetchWithBlock checks the politeness block before the GET and arms it
// when the host answers with a throttling status.
func (c *FetchClient) fetchWithBlock(ctx context.Context, pageURL string, params url.Values) (io.Reader, error) {
	if c.CacheSvc != nil && c.CacheKey != "" {
		if _, err := c.CacheSvc.Get(c.CacheKey); err == nil {
			return nil, fmt.Errorf("%s: blocked for %d seconds after throttling", c.CacheKey, int(c.BlockTime/time.Second))
		}
	}

	body, err := c.fetch(ctx, pageURL, params)
	if err != nil {
		if c.CacheSvc != nil && c.CacheKey != "" && stderrors.Is(err, helpers.ErrRateLimited) {
			if setErr := c.CacheSvc.Set(c.CacheKey, []byte(fmt.Sprintf("%d", int(c.BlockTime/time.Second))), c.BlockTime); setErr != nil {
				c.log.Warn().Err(setErr).Msg("can't arm politeness block")
			}
		}
		return nil, err
	}
	return body, nil
}
