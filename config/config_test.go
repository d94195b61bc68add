package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "https://www.otodom.pl", cfg.BaseURL)
	assert.Equal(t, "mazowieckie", cfg.Province)
	assert.Equal(t, "warszawa", cfg.City)
	assert.Equal(t, "flat", cfg.PropertyType)
	assert.Equal(t, "sale", cfg.AuctionType)
	assert.Equal(t, 0, cfg.PriceMin)
	assert.Equal(t, 10000000, cfg.PriceMax)
	assert.Equal(t, 25, cfg.PageWorkers)
	assert.Equal(t, 10, cfg.DetailWorkers)
	assert.Equal(t, 3, cfg.FetchRetries)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 60*time.Second, cfg.BlockTime)
	assert.Equal(t, "listings", cfg.RedisStream)

	assert.NoError(t, cfg.Validate())
}

func TestLoadNormalizesLocation(t *testing.T) {
	t.Setenv("SEARCH_PROVINCE", "Kujawsko-Pomorskie")
	t.Setenv("SEARCH_CITY", "Bydgoszcz")
	t.Setenv("SEARCH_DISTRICT", "Śródmieście")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "kujawsko--pomorskie", cfg.Province)
	assert.Equal(t, "Bydgoszcz", cfg.City)
	assert.Equal(t, "Srodmiescie", cfg.District)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := Config{
		Province:      "mazowieckie",
		PriceMax:      100,
		PageWorkers:   1,
		DetailWorkers: 1,
		FetchRetries:  1,
	}
	assert.NoError(t, valid.Validate())

	negative := valid
	negative.PriceMin = -1
	assert.Error(t, negative.Validate())

	inverted := valid
	inverted.PriceMin = 200
	assert.Error(t, inverted.Validate())

	noWorkers := valid
	noWorkers.PageWorkers = 0
	assert.Error(t, noWorkers.Validate())

	badProvince := valid
	badProvince.Province = "atlantis"
	assert.Error(t, badProvince.Validate())
}

func TestReplacePolishCharacters(t *testing.T) {
	assert.Equal(t, "zazolc gesla jazn", ReplacePolishCharacters("zażółć gęślą jaźń"))
	assert.Equal(t, "Lodz", ReplacePolishCharacters("Łódź"))
}

func TestNormalizeProvince(t *testing.T) {
	assert.Equal(t, "warminsko--mazurskie", NormalizeProvince("Warmińsko-Mazurskie"))
	assert.Equal(t, "slaskie", NormalizeProvince("śląskie"))
	assert.True(t, IsKnownProvince("warminsko--mazurskie"))
	assert.False(t, IsKnownProvince("warminsko-mazurskie"))
}
