package checkout

import (
	"context"

	"paperpen/db"
	"paperpen/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoOrders dual-writes orders: one copy into the global orders
// collection for the admin panel, one into the customer's own history.
// Both inserts run in one transaction so a partial write cannot leave the
// two copies disagreeing.
type MongoOrders struct{}

func (MongoOrders) CountOrders(ctx context.Context, userID string) (int64, error) {
	return db.UserOrderCollection.CountDocuments(ctx, bson.M{"userId": userID})
}

func (MongoOrders) PlaceOrder(ctx context.Context, order models.Order) error {
	err := db.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := db.OrderCollection.InsertOne(sc, order); err != nil {
			return err
		}
		_, err := db.UserOrderCollection.InsertOne(sc, order)
		return err
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateOrderID
	}
	return err
}

// MongoProfiles reads the checkout customer off their profile record. Only
// consulted after the cart preconditions pass.
type MongoProfiles struct{}

func (MongoProfiles) Customer(ctx context.Context, userID string) (Customer, error) {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		return Customer{}, err
	}
	return Customer{UserID: user.UserID, Name: user.Name, Phone: user.Phone}, nil
}
