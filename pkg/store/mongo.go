package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig holds MongoDB connection parameters.
type MongoConfig struct {
	URI        string // defaults to mongodb://localhost:27017
	Database   string // defaults to "seatplan"
	Collection string // defaults to "kv"
}

// MongoStore persists values in a MongoDB collection, one document per key.
// Writes replace the whole document, preserving the store contract of
// whole-value operations.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// kvDocument is the stored shape: the key is the document id.
type kvDocument struct {
	ID    string `bson:"_id"`
	Value string `bson:"value"`
}

// NewMongoStore connects to MongoDB and verifies the connection before
// returning.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "seatplan"
	}
	if cfg.Collection == "" {
		cfg.Collection = "kv"
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo %s: %w", cfg.URI, err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo %s: %w", cfg.URI, err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get retrieves a value from MongoDB.
func (s *MongoStore) Get(ctx context.Context, key string) (string, error) {
	var doc kvDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrNotFound
		}
		return "", err
	}
	return doc.Value, nil
}

// Set upserts the document for key.
func (s *MongoStore) Set(ctx context.Context, key, value string) error {
	_, err := s.coll.ReplaceOne(
		ctx,
		bson.M{"_id": key},
		kvDocument{ID: key, Value: value},
		options.Replace().SetUpsert(true),
	)
	return err
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
