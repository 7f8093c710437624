package infra

import (
	"context"
	"errors"
	"fmt"

	notificationrepo "github.com/amirasaad/storefront/infra/repository/notification"
	"github.com/amirasaad/storefront/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrMissingMongoURI is returned when MONGO_URI is empty.
var ErrMissingMongoURI = errors.New("MONGO_URI is not set")

// NewMongoClient connects to MongoDB and waits for the primary to answer.
func NewMongoClient(ctx context.Context, cnf *config.Mongo) (*mongo.Client, error) {
	if cnf == nil || cnf.URI == "" {
		return nil, ErrMissingMongoURI
	}

	ctx, cancel := context.WithTimeout(ctx, cnf.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cnf.URI).
		SetServerSelectionTimeout(cnf.Timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// NotificationCollection returns the notifications collection with its
// indexes in place.
func NotificationCollection(
	ctx context.Context,
	client *mongo.Client,
	database string,
) (*mongo.Collection, error) {
	coll := client.Database(database).Collection(notificationrepo.CollectionName)
	if err := notificationrepo.EnsureIndexes(ctx, coll); err != nil {
		return nil, fmt.Errorf("failed to create notification indexes: %w", err)
	}
	return coll, nil
}
