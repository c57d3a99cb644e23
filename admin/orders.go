package admin

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"paperpen/db"
	"paperpen/models"
	"paperpen/mq"
	"paperpen/orders"
	"paperpen/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetOrders lists every order across customers, newest first.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.OrderCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("GetOrders find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("GetOrders decode error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read orders")
		return
	}
	if list == nil {
		list = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// UpdateOrderStatus moves an order to any of the four lifecycle statuses.
// The change lands on the global copy and the customer's copy together.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("orderId")

	var payload struct {
		UserID string `json:"userId"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	err := orders.ApplyStatus(ctx, orders.MongoStatus{}, orderID, payload.UserID, payload.Status)
	switch {
	case err == nil:
	case errors.Is(err, orders.ErrUnknownStatus):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, mongo.ErrNoDocuments):
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	default:
		log.Println("UpdateOrderStatus error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	mq.Emit(ctx, mq.OrderEvent{
		Type:    "status-changed",
		OrderID: orderID,
		UserID:  payload.UserID,
		Status:  payload.Status,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  payload.Status,
		"message": "Status updated to " + payload.Status,
	})
}

// DeleteOrder removes both copies of an order.
func DeleteOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("orderId")

	var payload struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	err := db.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		result, err := db.OrderCollection.DeleteOne(sc, bson.M{"_id": orderID})
		if err != nil {
			return err
		}
		if result.DeletedCount == 0 {
			return mongo.ErrNoDocuments
		}
		userResult, err := db.UserOrderCollection.DeleteOne(sc, bson.M{"_id": orderID, "userId": payload.UserID})
		if err != nil {
			return err
		}
		// Abort rather than leave the customer's copy orphaned when the
		// payload names the wrong owner.
		if userResult.DeletedCount == 0 {
			return mongo.ErrNoDocuments
		}
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, mongo.ErrNoDocuments):
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	default:
		log.Println("DeleteOrder error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	mq.Emit(ctx, mq.OrderEvent{
		Type:    "order-deleted",
		OrderID: orderID,
		UserID:  payload.UserID,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
