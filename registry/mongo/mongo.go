// Package mongo stores the endpoint in a single MongoDB document.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/kbukum/voxrelay/logger"
	"github.com/kbukum/voxrelay/registry"
)

func init() {
	registry.RegisterFactory(registry.ProviderMongo, func(ctx context.Context, cfg registry.Config, log *logger.Logger) (registry.Store, error) {
		return Connect(ctx, cfg.Mongo, log)
	})
}

// collection is the subset of *mongo.Collection the store uses.
type collection interface {
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	UpdateOne(ctx context.Context, filter, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error)
}

// Store keeps the endpoint in one field of the first document of a
// collection.
type Store struct {
	client *mongo.Client
	coll   collection
	field  string
}

var _ registry.Store = (*Store)(nil)

// Connect creates a client for cfg.URI. The driver connects lazily; use
// Ping to verify the server is reachable.
func Connect(_ context.Context, cfg registry.MongoConfig, log *logger.Logger) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if log != nil {
		log.WithComponent("registry.mongo").Debug("Mongo registry configured", logger.Fields(
			"database", cfg.Database, "collection", cfg.Collection,
		))
	}
	return &Store{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		field:  cfg.Field,
	}, nil
}

func newWithCollection(coll collection, field string) *Store {
	return &Store{coll: coll, field: field}
}

// Get reads the endpoint field.
func (s *Store) Get(ctx context.Context) (string, error) {
	opts := options.FindOne().SetProjection(bson.D{{Key: s.field, Value: 1}, {Key: "_id", Value: 0}})

	var doc bson.M
	err := s.coll.FindOne(ctx, bson.D{}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", registry.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("mongo find: %w", err)
	}

	v, ok := doc[s.field].(string)
	if !ok || v == "" {
		return "", registry.ErrNotFound
	}
	return v, nil
}

// Set upserts the endpoint field on the single document.
func (s *Store) Set(ctx context.Context, value string) error {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: s.field, Value: value}}}}
	if _, err := s.coll.UpdateOne(ctx, bson.D{}, update, options.UpdateOne().SetUpsert(true)); err != nil {
		return fmt.Errorf("mongo update: %w", err)
	}
	return nil
}

// Ping checks the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
