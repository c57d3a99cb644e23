package orders

import (
	"context"
	"log"
	"net/http"
	"time"

	"paperpen/db"
	"paperpen/models"
	"paperpen/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findOwned fetches an order from the customer's own history; an order id
// belonging to someone else is indistinguishable from a missing one.
func findOwned(ctx context.Context, userID, orderID string) (models.Order, error) {
	var order models.Order
	err := db.UserOrderCollection.FindOne(ctx, bson.M{"_id": orderID, "userId": userID}).Decode(&order)
	return order, err
}

// MyOrders lists the signed-in customer's order history, newest first.
func MyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.UserOrderCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		log.Println("MyOrders find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load orders")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("MyOrders decode error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not read orders")
		return
	}
	if list == nil {
		list = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetOrder returns one of the customer's orders by id.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := findOwned(ctx, utils.GetUserIDFromRequest(r), ps.ByName("orderId"))
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Println("GetOrder error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load order")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}
