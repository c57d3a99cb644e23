package cart

import (
	"context"

	"paperpen/db"
	"paperpen/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMirror keeps an authenticated user's cart lines in the carts
// collection, one document per line, upserted on write. Two rapid writes to
// the same line may race here; last write wins, which is fine because the
// in-memory store is authoritative and replays the final state on the next
// mutation.
type MongoMirror struct{}

func (MongoMirror) SaveLine(ctx context.Context, ownerID string, line models.CartLine) error {
	filter := bson.M{"userId": ownerID, "productId": line.ProductID}
	update := bson.M{"$set": line}
	opts := options.Update().SetUpsert(true)

	_, err := db.CartCollection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (MongoMirror) DeleteLine(ctx context.Context, ownerID, productID string) error {
	_, err := db.CartCollection.DeleteOne(ctx, bson.M{"userId": ownerID, "productId": productID})
	return err
}

func (MongoMirror) Clear(ctx context.Context, ownerID string) error {
	_, err := db.CartCollection.DeleteMany(ctx, bson.M{"userId": ownerID})
	return err
}
