package products

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"feira/db"
	"feira/models"
	"feira/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateProduct inserts a product for the caller's producer profile.
// Multipart form: name, category, price, unit, optional photo.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "Failed to parse form"})
		return
	}

	requestingUserID := utils.GetUserIDFromRequest(r)
	if requestingUserID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var producer models.Producer
	if err := db.ProducersCollection.FindOne(ctx, bson.M{"userid": requestingUserID}).Decode(&producer); err != nil {
		utils.RespondWithJSON(w, http.StatusForbidden, utils.M{"success": false, "message": "No producer profile"})
		return
	}

	product := models.Product{
		ProductID:  uuid.NewString(),
		ProducerID: producer.ProducerID,
		Name:       r.FormValue("name"),
		Category:   r.FormValue("category"),
		Price:      utils.ParseFloat(r.FormValue("price")),
		Unit:       r.FormValue("unit"),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if product.Name == "" || product.Price <= 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "Missing required fields"})
		return
	}

	if photo, thumb, err := handleProductPhotoUpload(r, product.ProductID); err == nil {
		product.Photo = photo
		product.Thumb = thumb
	}

	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Failed to insert product"})
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "id": product.ProductID})
}

// GetProducts lists products, optionally matched by ?search= against the
// product name.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	}

	cursor, err := db.ProductsCollection.Find(ctx, filter)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Could not retrieve products"})
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Error reading product data"})
		return
	}
	if len(products) == 0 {
		products = []models.Product{}
	}

	utils.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct returns one product by ID.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": ps.ByName("productid")}).Decode(&product); err != nil {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "Product not found"})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// EditProduct updates fields of the caller's own product.
func EditProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requestingUserID := utils.GetUserIDFromRequest(r)
	if requestingUserID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	product, ok := ownedProduct(ctx, w, requestingUserID, ps.ByName("productid"))
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "Malformed multipart data"})
		return
	}

	updateFields := bson.M{}
	if name := r.FormValue("name"); name != "" {
		updateFields["name"] = name
	}
	if category := r.FormValue("category"); category != "" {
		updateFields["category"] = category
	}
	if price := r.FormValue("price"); price != "" {
		updateFields["price"] = utils.ParseFloat(price)
	}
	if unit := r.FormValue("unit"); unit != "" {
		updateFields["unit"] = unit
	}
	if photo, thumb, err := handleProductPhotoUpload(r, product.ProductID); err == nil {
		updateFields["photo"] = photo
		updateFields["thumb"] = thumb
	}

	if len(updateFields) == 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "No fields to update"})
		return
	}
	updateFields["updatedAt"] = time.Now()

	if _, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"productid": product.ProductID}, bson.M{"$set": updateFields}); err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Database error"})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Product updated"})
}

// DeleteProduct removes the caller's own product.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requestingUserID := utils.GetUserIDFromRequest(r)
	if requestingUserID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	product, ok := ownedProduct(ctx, w, requestingUserID, ps.ByName("productid"))
	if !ok {
		return
	}

	if _, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"productid": product.ProductID}); err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false})
		return
	}

	removeProductPhotos(product)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// ownedProduct loads a product and checks it belongs to the requesting user,
// writing the error response itself when not.
func ownedProduct(ctx context.Context, w http.ResponseWriter, userID, productID string) (models.Product, bool) {
	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product); err != nil {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "Product not found"})
		return product, false
	}

	var producer models.Producer
	if err := db.ProducersCollection.FindOne(ctx, bson.M{"producerid": product.ProducerID}).Decode(&producer); err != nil {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "Producer not found"})
		return product, false
	}
	if producer.UserID != userID {
		utils.RespondWithJSON(w, http.StatusForbidden, utils.M{"success": false, "message": "Not your product"})
		return product, false
	}
	return product, true
}
