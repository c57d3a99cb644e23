package db

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection      *mongo.Collection
	ProductCollection   *mongo.Collection
	OrderCollection     *mongo.Collection
	UserOrderCollection *mongo.Collection
	CartCollection      *mongo.Collection
	AddressCollection   *mongo.Collection
	Client              *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("paperpen")
	UserCollection = database.Collection("users")
	ProductCollection = database.Collection("products")
	// Orders are dual-written: one global copy for the admin panel, one copy
	// in the customer's own history. Both carry the same _id (the order id).
	OrderCollection = database.Collection("orders")
	UserOrderCollection = database.Collection("userorders")
	CartCollection = database.Collection("carts")
	AddressCollection = database.Collection("addresses")
}

// WithTransaction runs fn inside a MongoDB transaction when the deployment
// supports one (replica set), and falls back to running fn without a
// transaction against a standalone server. Callers that dual-write orders
// rely on this for status consistency between the two copies.
func WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if transactionsUnsupported(err) {
		log.Println("Mongo transactions unavailable, falling back to sequential writes")
		return session.Client().UseSession(ctx, func(sc mongo.SessionContext) error {
			return fn(sc)
		})
	}
	return err
}

// transactionsUnsupported reports whether err is the standalone-server
// rejection ("Transaction numbers are only allowed on a replica set
// member"). The driver may hand the command error back wrapped in a
// transaction error, so unwrap rather than type-assert.
func transactionsUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == 20
}
