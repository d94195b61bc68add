package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveAddressFull(t *testing.T) {
	addr := ResolveAddress("Street 5, 00-001, CityX, CountyY, ProvinceZ")

	assert.Equal(t, "Street 5", addr.Street)
	assert.Equal(t, "00-001", *addr.PostalCode)
	assert.Equal(t, "CityX", *addr.City)
	assert.Equal(t, "CountyY", *addr.County)
	assert.Equal(t, "ProvinceZ", *addr.Province)
}

func TestResolveAddressWithoutCounty(t *testing.T) {
	addr := ResolveAddress("Street 5, 00-001, CityX, ProvinceZ")

	assert.Equal(t, "Street 5", addr.Street)
	assert.Equal(t, "00-001", *addr.PostalCode)
	assert.Equal(t, "CityX", *addr.City)
	assert.Nil(t, addr.County)
	assert.Equal(t, "ProvinceZ", *addr.Province)
}

func TestResolveAddressReversed(t *testing.T) {
	// layout observed on malformed pages: fragment, street, city, postal code
	addr := ResolveAddress("Srodmiescie, Marszalkowska 1, Warszawa, 00-624")

	assert.Equal(t, "Marszalkowska 1", addr.Street)
	assert.Equal(t, "00-624", *addr.PostalCode)
	assert.Equal(t, "Warszawa", *addr.City)
	assert.Nil(t, addr.County)
	assert.Nil(t, addr.Province)
}

func TestResolveAddressUnparseable(t *testing.T) {
	addr := ResolveAddress("N/A")

	assert.Equal(t, "N/A", addr.Street)
	assert.Nil(t, addr.PostalCode)
	assert.Nil(t, addr.City)
	assert.Nil(t, addr.County)
	assert.Nil(t, addr.Province)
}

func TestResolveAddressPrecedence(t *testing.T) {
	// a 5-segment address must never fall through to the 4-segment or
	// reversed layouts
	addr := ResolveAddress("Polna 7, 60-535, Poznan, poznanski, wielkopolskie")
	assert.Equal(t, "Polna 7", addr.Street)
	assert.Equal(t, "poznanski", *addr.County)
	assert.Equal(t, "wielkopolskie", *addr.Province)
}
