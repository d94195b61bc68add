package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"otodomcrawler/internal/listing"
	"otodomcrawler/logger"
)

const (
	propertiesCollection = "Properties"
	agenciesCollection   = "Agencies"
)

// MongoStore implements Store on a MongoDB database. Uniqueness of
// otodom ids is enforced by a unique index, so concurrent inserts of the
// same record resolve to ErrDuplicate without any extra locking.
type MongoStore struct {
	client     *mongo.Client
	properties *mongo.Collection
	agencies   *mongo.Collection

	log *logger.Logger
}

// NewMongoStore connects to MongoDB and ensures the unique indexes the
// insert-if-absent contract depends on.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("can't connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("can't reach mongo: %w", err)
	}

	db := client.Database(database)
	s := &MongoStore{
		client:     client,
		properties: db.Collection(propertiesCollection),
		agencies:   db.Collection(agenciesCollection),
		log:        logger.ForStore(),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	s.log.Debug().Str("database", database).Msg("unique indexes ensured")
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	uniqueID := mongo.IndexModel{
		Keys:    bson.D{{Key: "otodom_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := s.properties.Indexes().CreateOne(ctx, uniqueID); err != nil {
		return fmt.Errorf("can't create properties index: %w", err)
	}
	if _, err := s.agencies.Indexes().CreateOne(ctx, uniqueID); err != nil {
		return fmt.Errorf("can't create agencies index: %w", err)
	}
	return nil
}

// PropertyLinks returns all stored property links in one bulk query.
func (s *MongoStore) PropertyLinks(ctx context.Context) (map[string]struct{}, error) {
	opts := options.Find().SetProjection(bson.M{"link": 1})
	cursor, err := s.properties.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("can't list property links: %w", err)
	}
	defer cursor.Close(ctx)

	links := make(map[string]struct{})
	for cursor.Next(ctx) {
		var doc struct {
			Link string `bson:"link"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("can't decode property link: %w", err)
		}
		links[doc.Link] = struct{}{}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate property links: %w", err)
	}
	return links, nil
}

// PropertyExists reports whether a property with the otodom id is stored.
func (s *MongoStore) PropertyExists(ctx context.Context, otodomID int) (bool, error) {
	err := s.properties.FindOne(ctx, bson.M{"otodom_id": otodomID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("can't check property existence: %w", err)
	}
	return true, nil
}

// AgencyByOtodomID returns the stored agency or nil when absent.
func (s *MongoStore) AgencyByOtodomID(ctx context.Context, otodomID int) (*listing.Agency, error) {
	var agency listing.Agency
	err := s.agencies.FindOne(ctx, bson.M{"otodom_id": otodomID}).Decode(&agency)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't look up agency: %w", err)
	}
	return &agency, nil
}

// InsertProperty stores a new property, mapping a unique-key violation
// to ErrDuplicate.
func (s *MongoStore) InsertProperty(ctx context.Context, property *listing.Property) error {
	_, err := s.properties.InsertOne(ctx, property)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("can't insert property: %w", err)
	}
	return nil
}

// InsertAgency stores a new agency, mapping a unique-key violation to
// ErrDuplicate.
func (s *MongoStore) InsertAgency(ctx context.Context, agency *listing.Agency) error {
	_, err := s.agencies.InsertOne(ctx, agency)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("can't insert agency: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
