package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-food-lens/pkg/models"
)

// Collection names match the documents the API exposes.
const (
	scannedItemsCollection = "scanned_items"
	dietLogsCollection     = "DietLogs"
)

// Connect opens a Mongo client and verifies the connection.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// Store persists scanned items and diet logs in two independent append-only
// collections. No cross-collection link is enforced.
type Store struct {
	scans    *mongo.Collection
	dietLogs *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		scans:    db.Collection(scannedItemsCollection),
		dietLogs: db.Collection(dietLogsCollection),
	}
}

// InsertScannedItem appends one scanned item and fills in its assigned id.
func (s *Store) InsertScannedItem(ctx context.Context, item *models.ScannedItem) error {
	res, err := s.scans.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to insert scanned item: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}
	return nil
}

// ListScannedItems returns the full scan history, oldest first.
func (s *Store) ListScannedItems(ctx context.Context) ([]models.ScannedItem, error) {
	cur, err := s.scans.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query scanned items: %w", err)
	}
	items := []models.ScannedItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to read scanned items: %w", err)
	}
	return items, nil
}

// InsertDietLog appends one diet log entry and fills in its assigned id.
// Identical submissions create independent entries; no deduplication.
func (s *Store) InsertDietLog(ctx context.Context, entry *models.DietLogEntry) error {
	res, err := s.dietLogs.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to insert diet log: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid
	}
	return nil
}

// ListDietLogs returns the full diet log history, oldest first.
func (s *Store) ListDietLogs(ctx context.Context) ([]models.DietLogEntry, error) {
	cur, err := s.dietLogs.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query diet logs: %w", err)
	}
	entries := []models.DietLogEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to read diet logs: %w", err)
	}
	return entries, nil
}
