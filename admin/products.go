package admin

import (
	"context"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"paperpen/db"
	"paperpen/models"
	"paperpen/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const productPicDir = "static/productpic"

// CreateProduct adds a product from the admin form. Multipart fields:
// name, category, price, plus comma-separated colors and sizes and an
// optional image file that gets a 300px thumbnail.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	name := r.FormValue("name")
	category := r.FormValue("category")
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if name == "" || category == "" || err != nil || price <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, category and a positive price are required")
		return
	}

	product := models.Product{
		ProductID:   utils.GenerateID(12),
		Name:        name,
		Category:    category,
		Price:       price,
		Description: r.FormValue("description"),
		Colors:      utils.SplitTags(r.FormValue("colors")),
		Sizes:       utils.SplitTags(r.FormValue("sizes")),
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		if !utils.ValidateImageFileType(w, header) {
			return
		}
		imagePath, err := saveProductImage(file, product.ProductID)
		if err != nil {
			log.Println("CreateProduct image error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
			return
		}
		product.Image = imagePath
	}

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// saveProductImage stores the decoded upload and a 300px-wide thumbnail
// next to it.
func saveProductImage(file multipart.File, productID string) (string, error) {
	img, err := imaging.Decode(file)
	if err != nil {
		return "", err
	}

	fileName := productID + ".jpg"
	if err := utils.EnsureDir(productPicDir); err != nil {
		return "", err
	}
	thumbDir := filepath.Join(productPicDir, "thumb")
	if err := utils.EnsureDir(thumbDir); err != nil {
		return "", err
	}

	if err := imaging.Save(img, filepath.Join(productPicDir, fileName)); err != nil {
		return "", err
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, fileName)); err != nil {
		return "", err
	}

	return "/static/productpic/" + fileName, nil
}

func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productid": ps.ByName("id")})
	if err != nil {
		log.Println("DeleteProduct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
