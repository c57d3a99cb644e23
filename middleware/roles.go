package middleware

import (
	"context"
	"net/http"
	"time"

	"paperpen/db"
	"paperpen/globals"
	"paperpen/models"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// ResolveRole maps a profile lookup result to an effective role. A missing
// profile or a profile without a role attribute is a customer: the gate
// fails open to the least privileged role, never to admin.
func ResolveRole(user models.User, found bool) string {
	if !found || user.Role == "" {
		return models.RoleCustomer
	}
	return user.Role
}

// RoleFromDB looks the user's role up on their profile record. Lookup
// errors count as "not found" and resolve to customer.
func RoleFromDB(ctx context.Context, userID string) string {
	lookupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(lookupCtx, bson.M{"userid": userID}).Decode(&user)
	return ResolveRole(user, err == nil)
}

// RequireAdmin authenticates the caller and then checks the role stored on
// their profile, not the one baked into the token, so a role revocation
// takes effect without waiting for token expiry.
func RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return Authenticate(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID, _ := r.Context().Value(globals.UserIDKey).(string)
		role := RoleFromDB(r.Context(), userID)
		if role != models.RoleAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		ctx := context.WithValue(r.Context(), globals.RoleKey, role)
		next(w, r.WithContext(ctx), ps)
	})
}
