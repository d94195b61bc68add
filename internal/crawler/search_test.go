package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"otodomcrawler/config"
	"otodomcrawler/internal/listing"
)

func TestSearchURLCityWide(t *testing.T) {
	s := Search{
		BaseURL:      "https://www.otodom.pl",
		AuctionType:  listing.AuctionTypeSale,
		PropertyType: listing.PropertyTypeFlat,
		Province:     "mazowieckie",
		City:         "warszawa",
	}
	assert.Equal(t,
		"https://www.otodom.pl/pl/wyniki/sprzedaz/mieszkanie/mazowieckie/warszawa/",
		s.URL())
}

func TestSearchURLDistrictRepeatsCity(t *testing.T) {
	s := Search{
		BaseURL:      "https://www.otodom.pl",
		AuctionType:  listing.AuctionTypeRent,
		PropertyType: listing.PropertyTypeStudio,
		Province:     "mazowieckie",
		City:         "warszawa",
		District:     "mokotow",
	}
	assert.Equal(t,
		"https://www.otodom.pl/pl/wyniki/wynajem/kawalerka/mazowieckie/warszawa/warszawa/warszawa/mokotow/",
		s.URL())
}

func TestSearchParams(t *testing.T) {
	s := Search{PriceMin: 100000, PriceMax: 900000}

	first := s.Params(0)
	assert.Equal(t, "100000", first.Get("priceMin"))
	assert.Equal(t, "900000", first.Get("priceMax"))
	assert.Empty(t, first.Get("page"))

	third := s.Params(3)
	assert.Equal(t, "3", third.Get("page"))
}

func TestSearchFromConfig(t *testing.T) {
	cfg := config.Config{
		BaseURL:      "https://www.otodom.pl",
		Province:     "slaskie",
		City:         "katowice",
		PropertyType: "flat",
		AuctionType:  "rent",
		PriceMax:     500000,
	}

	s, err := SearchFromConfig(cfg)
	assert.NoError(t, err)
	assert.Equal(t, listing.PropertyTypeFlat, s.PropertyType)
	assert.Equal(t, listing.AuctionTypeRent, s.AuctionType)
	assert.Equal(t, "katowice", s.City)

	cfg.PropertyType = "castle"
	_, err = SearchFromConfig(cfg)
	assert.Error(t, err)
}
