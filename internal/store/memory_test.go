package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"otodomcrawler/internal/listing"
)

func TestMemoryStoreInsertProperty(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	p := &listing.Property{OtodomID: 1, Link: "https://www.otodom.pl/pl/oferta/a"}
	assert.NoError(t, s.InsertProperty(ctx, p))

	exists, err := s.PropertyExists(ctx, 1)
	assert.NoError(t, err)
	assert.True(t, exists)

	links, err := s.PropertyLinks(ctx)
	assert.NoError(t, err)
	assert.Contains(t, links, p.Link)

	// a second insert with the same otodom id never overwrites
	err = s.InsertProperty(ctx, &listing.Property{OtodomID: 1, Link: "https://other"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 1, s.PropertyCount())
}

func TestMemoryStoreInsertAgency(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a := &listing.Agency{OtodomID: 7, Name: "Agencja", Street: "Polna 1"}
	assert.NoError(t, s.InsertAgency(ctx, a))

	got, err := s.AgencyByOtodomID(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, "Agencja", got.Name)

	// same id with different fields stays a no-op duplicate
	err = s.InsertAgency(ctx, &listing.Agency{OtodomID: 7, Name: "Inna", Street: "Dluga 2"})
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err = s.AgencyByOtodomID(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, "Agencja", got.Name)
}

func TestMemoryStoreAgencyAbsent(t *testing.T) {
	s := NewMemoryStore()

	got, err := s.AgencyByOtodomID(context.Background(), 404)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
