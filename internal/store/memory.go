package store

import (
	"context"
	"sync"

	"otodomcrawler/internal/listing"
)

// MemoryStore is a map-backed Store with the same insert-if-absent
// contract as MongoStore. It backs tests and runs without a configured
// database.
type MemoryStore struct {
	mu         sync.Mutex
	properties map[int]*listing.Property
	agencies   map[int]*listing.Agency
	links      map[string]struct{}
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		properties: make(map[int]*listing.Property),
		agencies:   make(map[int]*listing.Agency),
		links:      make(map[string]struct{}),
	}
}

// PropertyLinks returns a copy of all stored property links.
func (s *MemoryStore) PropertyLinks(ctx context.Context) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	links := make(map[string]struct{}, len(s.links))
	for link := range s.links {
		links[link] = struct{}{}
	}
	return links, nil
}

// PropertyExists reports whether a property with the otodom id is stored.
func (s *MemoryStore) PropertyExists(ctx context.Context, otodomID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.properties[otodomID]
	return ok, nil
}

// AgencyByOtodomID returns the stored agency or nil when absent.
func (s *MemoryStore) AgencyByOtodomID(ctx context.Context, otodomID int) (*listing.Agency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agency, ok := s.agencies[otodomID]
	if !ok {
		return nil, nil
	}
	return agency, nil
}

// InsertProperty stores a new property or returns ErrDuplicate.
func (s *MemoryStore) InsertProperty(ctx context.Context, property *listing.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[property.OtodomID]; ok {
		return ErrDuplicate
	}
	s.properties[property.OtodomID] = property
	s.links[property.Link] = struct{}{}
	return nil
}

// InsertAgency stores a new agency or returns ErrDuplicate.
func (s *MemoryStore) InsertAgency(ctx context.Context, agency *listing.Agency) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.agencies[agency.OtodomID]; ok {
		return ErrDuplicate
	}
	s.agencies[agency.OtodomID] = agency
	return nil
}

// PropertyCount returns the number of stored properties.
func (s *MemoryStore) PropertyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.properties)
}

// AgencyCount returns the number of stored agencies.
func (s *MemoryStore) AgencyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.agencies)
}
