package crawler

import (
	"context"
	stderrors "errors"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"otodomcrawler/internal/listing"
	"otodomcrawler/internal/payload"
	"otodomcrawler/internal/store"
	"otodomcrawler/logger"
	"otodomcrawler/pkg/errors"
)

// CSS selectors for the search results markup.
const (
	paginationSelector  = "button[aria-current][data-cy]"
	listingItemSelector = "div[data-cy=listing-item]"
	promotedSelector    = "article>span+div"
)

// stub is a lightweight reference to a listing discovered on a results
// page, prior to the detail fetch.
type stub struct {
	link     string
	promoted bool
}

// Crawler drives the end-to-end crawl: pagination discovery, page list
// fan-out, dedup against the store, and detail fan-out.
type Crawler struct {
	fetcher       Fetcher
	store         store.Store
	search        Search
	pageWorkers   int
	detailWorkers int
	retries       int

	log *logger.Logger
}

// New returns a Crawler over the given fetcher and store.
func New(fetcher Fetcher, st store.Store, search Search, pageWorkers, detailWorkers, retries int) *Crawler {
	return &Crawler{
		fetcher:       fetcher,
		store:         st,
		search:        search,
		pageWorkers:   pageWorkers,
		detailWorkers: detailWorkers,
		retries:       retries,
		log:           logger.ForCrawler(),
	}
}

// Run executes one full crawl and returns the newly inserted listings.
// A failed pagination discovery is the only fatal condition; every
// per-listing failure is logged and skipped.
func (c *Crawler) Run(ctx context.Context) ([]listing.Listing, error) {
	pages, err := c.countPages(ctx)
	if err != nil {
		return nil, err
	}
	c.log.Info().Int("pages", pages).Msg("discovered result pages")

	stubs := c.listPages(ctx, pages)
	c.log.Info().Int("stubs", len(stubs)).Msg("collected listing stubs")

	fresh, err := c.filterStubs(ctx, stubs)
	if err != nil {
		return nil, err
	}
	c.log.Info().Int("new", len(fresh)).Msg("stubs left after dedup")

	listings := c.fetchDetails(ctx, fresh)
	c.log.Info().Int("inserted", len(listings)).Msg("crawl finished")
	return listings, nil
}

// countPages reads the pagination control from the first results page.
// The control missing after the retry budget is a discovery failure,
// fatal to the run; a network failure during discovery is fatal too.
func (c *Crawler) countPages(ctx context.Context) (int, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		doc, err := c.fetcher.FetchPage(ctx, c.search.URL(), c.search.Params(0))
		if err != nil {
			return 0, err
		}

		sel := doc.Find(paginationSelector)
		if sel.Length() == 0 {
			lastErr = errors.NewMalformed(c.search.URL())
			c.log.Warn().
				Int("attempt", attempt).
				Msg("no pagination control on results page")
			continue
		}

		pages, err := strconv.Atoi(strings.TrimSpace(sel.Last().Text()))
		if err != nil {
			lastErr = errors.NewMalformed(c.search.URL())
			c.log.Warn().
				Int("attempt", attempt).
				Msg("pagination control is not numeric")
			continue
		}
		return pages, nil
	}
	return 0, errors.NewDiscovery(lastErr)
}

// listPages fans one fetch per results page out across the page worker
// pool and collects every listing stub. Page-level failures are logged
// and the page skipped; ordering across workers is not preserved.
func (c *Crawler) listPages(ctx context.Context, pages int) []stub {
	results := make(chan []stub)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.pageWorkers)

	go func() {
		for page := 1; page <= pages; page++ {
			page := page
			g.Go(func() error {
				doc, err := c.fetcher.FetchPage(gctx, c.search.URL(), c.search.Params(page))
				if err != nil {
					c.log.Error().Err(err).Int("page", page).Msg("can't fetch results page")
					return nil
				}
				results <- c.extractStubs(doc)
				return nil
			})
		}
		g.Wait()
		close(results)
	}()

	var stubs []stub
	for pageStubs := range results {
		stubs = append(stubs, pageStubs...)
	}
	return stubs
}

// extractStubs pulls the listing stubs off one results page.
func (c *Crawler) extractStubs(doc *goquery.Document) []stub {
	var stubs []stub
	doc.Find(listingItemSelector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Find("a").First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		stubs = append(stubs, stub{
			link:     c.absoluteLink(strings.TrimSpace(href)),
			promoted: s.Find(promotedSelector).Length() > 0,
		})
	})
	return stubs
}

func (c *Crawler) absoluteLink(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return c.search.BaseURL + href
}

// filterStubs removes stubs already persisted (one bulk link query) and
// stubs duplicated inside the current discovery pass.
func (c *Crawler) filterStubs(ctx context.Context, stubs []stub) ([]stub, error) {
	known, err := c.store.PropertyLinks(ctx)
	if err != nil {
		return nil, errors.NewStore("can't list persisted links", err)
	}

	unique := lo.UniqBy(stubs, func(s stub) string { return s.link })
	return lo.Filter(unique, func(s stub, _ int) bool {
		_, seen := known[s.link]
		return !seen
	}), nil
}

// fetchDetails fans one fetch-and-build per stub out across the detail
// worker pool, narrower than the page pool because each unit of work is
// heavier on the target site. Every failure here is terminal for its
// one listing only.
func (c *Crawler) fetchDetails(ctx context.Context, stubs []stub) []listing.Listing {
	results := make(chan listing.Listing)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.detailWorkers)

	go func() {
		for _, s := range stubs {
			s := s
			g.Go(func() error {
				if lst, ok := c.processStub(gctx, s); ok {
					results <- lst
				}
				return nil
			})
		}
		g.Wait()
		close(results)
	}()

	var listings []listing.Listing
	for lst := range results {
		listings = append(listings, lst)
	}
	return listings
}

// processStub turns one stub into a persisted Listing. Returns false
// when the listing failed or was already known.
func (c *Crawler) processStub(ctx context.Context, s stub) (listing.Listing, bool) {
	root, err := c.fetcher.FetchListing(ctx, s.link)
	if err != nil {
		c.log.Error().Err(err).Str("url", s.link).Msg("listing fetch failed")
		return listing.Listing{}, false
	}

	property, err := listing.BuildProperty(s.link, s.promoted, root)
	if err != nil {
		c.logBuildFailure(s.link, err)
		return listing.Listing{}, false
	}

	lst := listing.Listing{Property: property}

	if property.OfferedBy == listing.OfferedByEstateAgency {
		agency, ok := c.resolveAgency(ctx, s.link, root)
		if !ok {
			return listing.Listing{}, false
		}
		property.EstateAgencyID = &agency.OtodomID
		lst.Agency = agency
	}

	exists, err := c.store.PropertyExists(ctx, property.OtodomID)
	if err != nil {
		c.log.Error().Err(err).Str("url", s.link).Msg("can't check property existence")
		return listing.Listing{}, false
	}
	if exists {
		return listing.Listing{}, false
	}

	err = c.store.InsertProperty(ctx, property)
	if stderrors.Is(err, store.ErrDuplicate) {
		// another worker got there first; benign no-op
		return listing.Listing{}, false
	}
	if err != nil {
		c.log.Error().Err(err).Str("url", s.link).Msg("can't insert property")
		return listing.Listing{}, false
	}
	return lst, true
}

// resolveAgency builds the agency referenced by a listing and inserts it
// when it has not been seen before. An existing agency is reused as-is,
// never updated.
func (c *Crawler) resolveAgency(ctx context.Context, link string, root payload.Value) (*listing.Agency, bool) {
	agency, err := listing.BuildAgency(root)
	if err != nil {
		c.logBuildFailure(link, err)
		return nil, false
	}

	existing, err := c.store.AgencyByOtodomID(ctx, agency.OtodomID)
	if err != nil {
		c.log.Error().Err(err).Str("url", link).Msg("can't look up agency")
		return nil, false
	}
	if existing != nil {
		return existing, true
	}

	err = c.store.InsertAgency(ctx, agency)
	if stderrors.Is(err, store.ErrDuplicate) {
		return agency, true
	}
	if err != nil {
		c.log.Error().Err(err).Str("url", link).Msg("can't insert agency")
		return nil, false
	}
	return agency, true
}

func (c *Crawler) logBuildFailure(link string, err error) {
	evt := c.log.Error().Err(err).Str("url", link)
	if ce, ok := errors.As(err); ok && ce.Field != "" {
		evt = evt.Str("field", ce.Field)
	}
	evt.Msg("listing build failed")
}
