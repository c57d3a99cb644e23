package cart

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"paperpen/catalog"
	"paperpen/utils"

	"github.com/julienschmidt/httprouter"
)

func ownerFromRequest(r *http.Request) (Owner, bool) {
	if userID := utils.GetUserIDFromRequest(r); userID != "" {
		return Owner{ID: userID, Authed: true}, true
	}
	if sessionID := r.Header.Get("X-Session-ID"); sessionID != "" {
		return Owner{ID: sessionID}, true
	}
	return Owner{}, false
}

// GetCart returns the cart's lines plus its totals.
func GetCart(store *Store) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		owner, ok := ownerFromRequest(r)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, "Missing session")
			return
		}

		lines := store.Lines(r.Context(), owner)
		totalQty := 0
		totalPrice := 0.0
		for _, line := range lines {
			totalQty += line.Quantity
			totalPrice += line.LineTotal()
		}

		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"items":        lines,
			"totalItems":   len(lines),
			"totalQty":     totalQty,
			"totalPrice":   totalPrice,
			"deliveryType": store.DeliveryType(r.Context(), owner),
		})
	}
}

// AddToCart adds a catalog product to the cart. The product snapshot comes
// from the server-side catalog, never from the client payload, so cart
// prices cannot be forged.
func AddToCart(store *Store) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		owner, ok := ownerFromRequest(r)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, "Missing session")
			return
		}

		var payload struct {
			ProductID string  `json:"productId"`
			Options   Options `json:"options"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}
		if payload.ProductID == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "productId is required")
			return
		}

		product, found, err := catalog.Find(r.Context(), payload.ProductID)
		if err != nil {
			log.Println("AddToCart catalog error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Could not load product")
			return
		}
		if !found {
			utils.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}

		// Products with declared options require a choice.
		if len(product.Colors) > 0 && payload.Options.Color == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Please select a color")
			return
		}
		if len(product.Sizes) > 0 && payload.Options.Size == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Please select a size")
			return
		}

		line, err := store.Add(r.Context(), owner, product, payload.Options)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		utils.RespondWithJSON(w, http.StatusCreated, utils.M{
			"message": fmt.Sprintf("%s added to cart!", product.Name),
			"item":    line,
		})
	}
}

func RemoveFromCart(store *Store) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		owner, ok := ownerFromRequest(r)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, "Missing session")
			return
		}

		store.Remove(r.Context(), owner, ps.ByName("productId"))
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
	}
}

func UpdateCartItem(store *Store) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		owner, ok := ownerFromRequest(r)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, "Missing session")
			return
		}

		var upd Update
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		line, found, err := store.UpdateLine(r.Context(), owner, ps.ByName("productId"), upd)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if !found {
			utils.RespondWithError(w, http.StatusNotFound, "Item not in cart")
			return
		}

		utils.RespondWithJSON(w, http.StatusOK, line)
	}
}

func ClearCart(store *Store) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		owner, ok := ownerFromRequest(r)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, "Missing session")
			return
		}

		store.Clear(r.Context(), owner)
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}

// SetDeliveryType applies a delivery type to the whole cart. Requires a
// signed-in customer; anonymous sessions get a 401 and no change.
func SetDeliveryType(store *Store) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		owner, ok := ownerFromRequest(r)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, "Missing session")
			return
		}

		var payload struct {
			DeliveryType string `json:"deliveryType"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}
		if payload.DeliveryType == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "deliveryType is required")
			return
		}

		if err := store.SetDeliveryType(r.Context(), owner, payload.DeliveryType); err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
			return
		}

		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}
