package crawler

import (
	"fmt"
	"net/url"
	"strconv"

	"otodomcrawler/config"
	"otodomcrawler/internal/listing"
)

// Search describes one otodom search: what to look for and where.
type Search struct {
	BaseURL      string
	AuctionType  listing.AuctionType
	PropertyType listing.PropertyType
	Province     string
	City         string
	District     string
	PriceMin     int
	PriceMax     int
}

// SearchFromConfig builds a Search from the application configuration.
func SearchFromConfig(cfg config.Config) (Search, error) {
	propertyType, ok := listing.ParsePropertyType(cfg.PropertyType)
	if !ok {
		return Search{}, fmt.Errorf("unknown property type %q", cfg.PropertyType)
	}
	auctionType, ok := listing.ParseAuctionType(cfg.AuctionType)
	if !ok {
		return Search{}, fmt.Errorf("unknown auction type %q", cfg.AuctionType)
	}
	return Search{
		BaseURL:      cfg.BaseURL,
		AuctionType:  auctionType,
		PropertyType: propertyType,
		Province:     cfg.Province,
		City:         cfg.City,
		District:     cfg.District,
		PriceMin:     cfg.PriceMin,
		PriceMax:     cfg.PriceMax,
	}, nil
}

// URL assembles the search results path. District searches repeat the
// city segment; that is the path shape the site routes.
func (s Search) URL() string {
	auctionSlug, _ := s.AuctionType.Slug()
	propertySlug, _ := s.PropertyType.Slug()

	u := s.BaseURL + "/pl/wyniki/"
	u += auctionSlug + "/"
	u += propertySlug + "/"
	u += s.Province + "/"
	u += s.City + "/"
	if s.District != "" {
		u += s.City + "/"
		u += s.City + "/"
		u += s.District + "/"
	}
	return u
}

// Params returns the query parameters for one results page. Page 0 omits
// the page parameter, which the site treats as the first page.
func (s Search) Params(page int) url.Values {
	params := url.Values{}
	params.Set("priceMin", strconv.Itoa(s.PriceMin))
	params.Set("priceMax", strconv.Itoa(s.PriceMax))
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	return params
}
