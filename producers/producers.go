package producers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"time"

	"feira/db"
	"feira/models"
	"feira/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetProducers returns all producer profiles.
func GetProducers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ProducersCollection.Find(ctx, bson.M{})
	if err != nil {
		log.Println("GetProducers Find error:", err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Could not retrieve producers"})
		return
	}
	defer cursor.Close(ctx)

	var producers []models.Producer
	if err := cursor.All(ctx, &producers); err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Error reading producer data"})
		return
	}

	if len(producers) == 0 {
		producers = []models.Producer{}
	}

	utils.RespondWithJSON(w, http.StatusOK, producers)
}

// GetProducer returns one producer with its products attached.
func GetProducer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("producerid")

	var producer models.Producer
	if err := db.ProducersCollection.FindOne(ctx, bson.M{"producerid": id}).Decode(&producer); err != nil {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "Producer not found"})
		return
	}

	cursor, err := db.ProductsCollection.Find(ctx, bson.M{"producerid": id})
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Failed to load products"})
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Failed to decode products"})
		return
	}
	if len(products) == 0 {
		products = []models.Product{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":  true,
		"producer": producer,
		"products": products,
	})
}

// EditProducer updates the caller's own producer profile.
func EditProducer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requestingUserID := utils.GetUserIDFromRequest(r)
	if requestingUserID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := ps.ByName("producerid")

	var producer models.Producer
	if err := db.ProducersCollection.FindOne(ctx, bson.M{"producerid": id}).Decode(&producer); err != nil {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "Producer not found"})
		return
	}
	if producer.UserID != requestingUserID {
		utils.RespondWithJSON(w, http.StatusForbidden, utils.M{"success": false, "message": "Not your profile"})
		return
	}

	var input models.Producer
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "Invalid JSON body"})
		return
	}

	updateFields := bson.M{}
	if input.Name != "" {
		updateFields["name"] = input.Name
	}
	if input.Category != "" {
		updateFields["category"] = input.Category
	}
	if input.Contact != "" {
		updateFields["contact"] = input.Contact
	}
	if input.Latitude != 0 || input.Longitude != 0 {
		updateFields["latitude"] = input.Latitude
		updateFields["longitude"] = input.Longitude
	}

	if len(updateFields) == 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "No fields to update"})
		return
	}
	updateFields["updatedAt"] = time.Now()

	_, err := db.ProducersCollection.UpdateOne(ctx, bson.M{"producerid": id}, bson.M{"$set": updateFields})
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Database error"})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Producer updated"})
}

// FilterByName matches producers by a case-insensitive name prefix.
func FilterByName(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	name := r.URL.Query().Get("name")
	if name == "" {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "Missing name parameter"})
		return
	}

	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}}
	cursor, err := db.ProducersCollection.Find(ctx, filter)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Search failed"})
		return
	}
	defer cursor.Close(ctx)

	var producers []models.Producer
	if err := cursor.All(ctx, &producers); err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Search failed"})
		return
	}
	if len(producers) == 0 {
		producers = []models.Producer{}
	}

	utils.RespondWithJSON(w, http.StatusOK, producers)
}
