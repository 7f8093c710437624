package notification

import (
	"context"
	"errors"

	"github.com/amirasaad/storefront/pkg/domain/notification"
	repo "github.com/amirasaad/storefront/pkg/repository/notification"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection holding notifications.
const CollectionName = "notifications"

type repositoryImpl struct {
	coll *mongo.Collection
}

// New returns a MongoDB-backed notification repository.
func New(coll *mongo.Collection) repo.Repository {
	return &repositoryImpl{coll: coll}
}

// EnsureIndexes creates the per-user listing index.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})
	return err
}

func (r *repositoryImpl) Create(ctx context.Context, n *notification.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	_, err := r.coll.InsertOne(ctx, n)
	return err
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (*notification.Notification, error) {
	var n notification.Notification
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		return nil, mapError(err)
	}
	return &n, nil
}

func (r *repositoryImpl) ListByUser(
	ctx context.Context,
	userID string,
	limit, offset int,
) ([]*notification.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	out := make([]*notification.Notification, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repositoryImpl) MarkAsRead(ctx context.Context, id string) (*notification.Notification, error) {
	var n notification.Notification
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_read": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err != nil {
		return nil, mapError(err)
	}
	return &n, nil
}

func mapError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notification.ErrNotificationNotFound
	}
	return err
}
