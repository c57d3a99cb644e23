package catalog

import (
	"log"
	"net/http"
	"strconv"

	"paperpen/globals"
	"paperpen/rdx"
	"paperpen/search"
	"paperpen/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
)

const popularKey = "search:popular"

// SuggestProducts serves search-box autocomplete. An empty query yields an
// empty list, unlike the listing endpoint which falls back to the full
// catalog.
func SuggestProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query().Get("q")

	products, err := List(r.Context())
	if err != nil {
		log.Println("SuggestProducts catalog error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load products")
		return
	}

	suggestions := search.Suggest(products, query)

	// Track what people search for; losing a hit is harmless.
	if len(suggestions) > 0 {
		go func(name string) {
			if err := rdx.Conn.ZIncrBy(globals.Ctx, popularKey, 1, name).Err(); err != nil {
				log.Println("SuggestProducts popularity update:", err)
			}
		}(suggestions[0].Name)
	}

	utils.RespondWithJSON(w, http.StatusOK, suggestions)
}

// PopularSearches returns the most-suggested product names, best first.
func PopularSearches(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit := int64(10)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}

	names, err := rdx.Conn.ZRevRange(r.Context(), popularKey, 0, limit-1).Result()
	if err != nil && err != redis.Nil {
		log.Println("PopularSearches ZRevRange error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load popular searches")
		return
	}
	if names == nil {
		names = []string{}
	}

	utils.RespondWithJSON(w, http.StatusOK, names)
}
