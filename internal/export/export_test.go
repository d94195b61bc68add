package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"otodomcrawler/internal/listing"
)

func TestFlatten(t *testing.T) {
	flat := Flatten(map[string]interface{}{
		"a": map[string]interface{}{
			"b": 1,
			"c": map[string]interface{}{"d": 2},
		},
		"e": []interface{}{"x", "y"},
		"f": "plain",
	})

	assert.Equal(t, map[string]interface{}{
		"a_b":   1,
		"a_c_d": 2,
		"e_0":   "x",
		"e_1":   "y",
		"f":     "plain",
	}, flat)
}

func sampleListings() []listing.Listing {
	created := time.Date(2023, 4, 12, 9, 30, 0, 0, time.UTC)
	price := 700000
	floor := "0,<10"
	street := "Pulawska 12"
	agencyID := 4411
	city := "Warszawa"

	withAgency := listing.Listing{
		Property: &listing.Property{
			OtodomID:     64523421,
			Link:         "https://www.otodom.pl/pl/oferta/x",
			Title:        "Mieszkanie na Mokotowie",
			Area:         54.5,
			CreatedAt:    &created,
			Floor:        &floor,
			Price:        &price,
			PropertyType: listing.PropertyTypeFlat,
			MarketType:   listing.MarketTypeSecondary,
			AuctionType:  listing.AuctionTypeSale,
			OfferedBy:    listing.OfferedByEstateAgency,
			Localization: listing.Localization{
				Province: "mazowieckie",
				City:     "warszawa",
				Street:   &street,
			},
			EstateAgencyID: &agencyID,
		},
		Agency: &listing.Agency{
			OtodomID: 4411,
			Name:     "Biuro Testowe",
			Street:   "Polna 7",
			City:     &city,
		},
	}

	private := listing.Listing{
		Property: &listing.Property{
			OtodomID:     64523422,
			Link:         "https://www.otodom.pl/pl/oferta/y",
			Title:        "Kawalerka",
			Area:         28,
			PropertyType: listing.PropertyTypeStudio,
			MarketType:   listing.MarketTypePrimary,
			AuctionType:  listing.AuctionTypeRent,
			OfferedBy:    listing.OfferedByPrivate,
			Localization: listing.Localization{
				Province: "slaskie",
				City:     "katowice",
			},
		},
	}

	return []listing.Listing{withAgency, private}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteCSV(&buf, sampleListings()))

	rows, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 3)

	header := rows[0]
	assert.IsIncreasing(t, header)

	byKey := func(row []string) map[string]string {
		m := map[string]string{}
		for i, key := range header {
			m[key] = row[i]
		}
		return m
	}

	first := byKey(rows[1])
	assert.Equal(t, "64523421", first["otodom_id"])
	assert.Equal(t, "54.5", first["area"])
	assert.Equal(t, "0,<10", first["floor"])
	assert.Equal(t, "warszawa", first["localization_city"])
	assert.Equal(t, "Pulawska 12", first["localization_street"])
	assert.Equal(t, "Biuro Testowe", first["agency_name"])
	assert.Equal(t, "4411", first["estate_agency"])

	// columns the private offer has no value for stay empty
	second := byKey(rows[2])
	assert.Equal(t, "64523422", second["otodom_id"])
	assert.Empty(t, second["agency_name"])
	assert.Empty(t, second["price"])
	assert.Equal(t, "private", second["offered_by"])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteJSON(&buf, sampleListings()))

	var records []map[string]interface{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	assert.Len(t, records, 2)

	assert.Equal(t, float64(64523421), records[0]["otodom_id"])
	assert.Equal(t, "Biuro Testowe", records[0]["agency_name"])
	assert.Equal(t, "katowice", records[1]["localization_city"])
	_, hasAgency := records[1]["agency_name"]
	assert.False(t, hasAgency)
}
