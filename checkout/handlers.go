package checkout

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
	"paperpen/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Confirm places the order for the signed-in customer. Every precondition
// failure is reported on its own; none of them writes anything.
func Confirm(placer *Placer) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		userID := utils.GetUserIDFromRequest(r)
		if userID == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, ErrNotSignedIn.Error())
			return
		}

		var payload struct {
			Address string `json:"address"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		order, err := placer.Place(ctx, userID, payload.Address)
		switch {
		case err == nil:
		case errors.Is(err, ErrCartEmpty),
			errors.Is(err, ErrNoDeliveryType),
			errors.Is(err, ErrNoAddress):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		case errors.Is(err, ErrNotSignedIn):
			utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
			return
		default:
			log.Println("Confirm place error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to place order")
			return
		}

		mq.Emit(ctx, mq.OrderEvent{
			Type:    "order-created",
			OrderID: order.OrderID,
			UserID:  order.UserID,
			Status:  order.Status,
		})

		utils.RespondWithJSON(w, http.StatusCreated, utils.M{
			"orderId": order.OrderID,
			"message": "Order placed successfully!",
		})
	}
}

// ListAddresses returns the signed-in customer's address book.
func ListAddresses(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	cursor, err := db.AddressCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		log.Println("ListAddresses error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load addresses")
		return
	}
	defer cursor.Close(ctx)

	var addresses []models.Address
	if err := cursor.All(ctx, &addresses); err != nil {
		log.Println("ListAddresses decode error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not read addresses")
		return
	}
	if addresses == nil {
		addresses = []models.Address{}
	}

	utils.RespondWithJSON(w, http.StatusOK, addresses)
}

func AddAddress(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if payload.Address == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Enter an address")
		return
	}

	address := models.Address{
		AddressID: uuid.NewString(),
		UserID:    utils.GetUserIDFromRequest(r),
		Address:   payload.Address,
	}

	if _, err := db.AddressCollection.InsertOne(ctx, address); err != nil {
		log.Println("AddAddress insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add address")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, address)
}

func DeleteAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"addressid": ps.ByName("addressId"),
		"userId":    utils.GetUserIDFromRequest(r),
	}

	result, err := db.AddressCollection.DeleteOne(ctx, filter)
	if err != nil && err != mongo.ErrNoDocuments {
		log.Println("DeleteAddress error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete address")
		return
	}
	if result != nil && result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Address not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
