package catalog

import (
	"log"
	"net/http"

	"paperpen/search"
	"paperpen/utils"

	"github.com/julienschmidt/httprouter"
)

// GetProducts lists the catalog, optionally filtered by ?search=. An empty
// search term returns the whole catalog.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	products, err := List(r.Context())
	if err != nil {
		log.Println("GetProducts error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load products")
		return
	}

	filtered := search.Filter(products, r.URL.Query().Get("search"))
	utils.RespondWithJSON(w, http.StatusOK, filtered)
}

func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	product, found, err := Find(r.Context(), ps.ByName("id"))
	if err != nil {
		log.Println("GetProduct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load product")
		return
	}
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}
