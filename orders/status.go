package orders

import (
	"context"
	"errors"

	"paperpen/db"
	"paperpen/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrUnknownStatus = errors.New("unknown order status")

// StatusWriter mutates the status on both copies of an order. Items,
// totals and address stay frozen; status is the only mutable field after
// placement.
type StatusWriter interface {
	UpdateStatus(ctx context.Context, orderID, userID, status string) error
}

// ApplyStatus validates and applies a status change. The admin panel offers
// free selection among all four statuses, so any valid status is accepted
// regardless of the current one; only unknown statuses are rejected.
func ApplyStatus(ctx context.Context, w StatusWriter, orderID, userID, status string) error {
	if !models.ValidOrderStatus(status) {
		return ErrUnknownStatus
	}
	return w.UpdateStatus(ctx, orderID, userID, status)
}

// MongoStatus updates the global copy and the customer's copy in one
// transaction, so a reader never sees the two copies disagree.
type MongoStatus struct{}

func (MongoStatus) UpdateStatus(ctx context.Context, orderID, userID, status string) error {
	return db.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		update := bson.M{"$set": bson.M{"status": status}}

		result, err := db.OrderCollection.UpdateOne(sc, bson.M{"_id": orderID}, update)
		if err != nil {
			return err
		}
		if result.MatchedCount == 0 {
			return mongo.ErrNoDocuments
		}

		userResult, err := db.UserOrderCollection.UpdateOne(sc, bson.M{"_id": orderID, "userId": userID}, update)
		if err != nil {
			return err
		}
		// A wrong userId must abort the transaction; committing here would
		// leave the customer's copy behind the global one.
		if userResult.MatchedCount == 0 {
			return mongo.ErrNoDocuments
		}
		return nil
	})
}
