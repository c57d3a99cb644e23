package admin

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
)

// userWithAddresses is what the manage-users screen renders: the profile
// plus the customer's address book.
type userWithAddresses struct {
	models.User
	Addresses []models.Address `json:"addresses"`
}

// GetStats returns the dashboard counters.
func GetStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	users, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("GetStats users error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	products, err := db.ProductCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("GetStats products error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	orders, err := db.OrderCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("GetStats orders error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	pending, err := db.OrderCollection.CountDocuments(ctx, bson.M{"status": models.StatusPending})
	if err != nil {
		log.Println("GetStats pending error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"users":         users,
		"products":      products,
		"orders":        orders,
		"pendingOrders": pending,
	})
}

// GetUsers lists every user with their addresses, split into admins and
// customers the way the manage-users screen groups them. A user without a
// role attribute is a customer.
func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.UserCollection.Find(ctx, bson.M{})
	if err != nil {
		log.Println("GetUsers find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load users")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		log.Println("GetUsers decode error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read users")
		return
	}

	admins := []userWithAddresses{}
	customers := []userWithAddresses{}
	for _, u := range users {
		entry := userWithAddresses{User: u, Addresses: addressesOf(ctx, u.UserID)}
		if u.Role == models.RoleAdmin {
			admins = append(admins, entry)
		} else {
			customers = append(customers, entry)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"admins":    admins,
		"customers": customers,
	})
}

func addressesOf(ctx context.Context, userID string) []models.Address {
	cursor, err := db.AddressCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		log.Println("addressesOf find error:", err)
		return []models.Address{}
	}
	defer cursor.Close(ctx)

	var addresses []models.Address
	if err := cursor.All(ctx, &addresses); err != nil {
		log.Println("addressesOf decode error:", err)
		return []models.Address{}
	}
	if addresses == nil {
		addresses = []models.Address{}
	}
	return addresses
}
