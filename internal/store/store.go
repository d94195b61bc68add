package store

import (
	"context"
	"errors"

	"otodomcrawler/internal/listing"
)

// ErrDuplicate is returned by inserts when a record with the same
// otodom id already exists. Callers treat it as a benign no-op; records
// are never overwritten.
var ErrDuplicate = errors.New("record with this otodom id already exists")

// Store is the gateway to the persistent document store. Every write is
// a single-record insert-if-absent; the store's unique-key constraint is
// the only concurrency-correctness mechanism the crawler relies on.
type Store interface {
	// PropertyLinks returns the links of every stored property in one pass.
	PropertyLinks(ctx context.Context) (map[string]struct{}, error)

	// PropertyExists reports whether a property with the otodom id is stored.
	PropertyExists(ctx context.Context, otodomID int) (bool, error)

	// AgencyByOtodomID returns the stored agency or nil when absent.
	AgencyByOtodomID(ctx context.Context, otodomID int) (*listing.Agency, error)

	// InsertProperty stores a new property. Returns ErrDuplicate when the
	// otodom id is already taken.
	InsertProperty(ctx context.Context, property *listing.Property) error

	// InsertAgency stores a new agency. Returns ErrDuplicate when the
	// otodom id is already taken.
	InsertAgency(ctx context.Context, agency *listing.Agency) error
}
