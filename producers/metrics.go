package producers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"feira/db"
	"feira/models"
	"feira/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetMetrics returns dashboard counters for a producer. Missing metrics
// decode to zeroes rather than a 404 so a fresh producer sees an empty
// dashboard.
func GetMetrics(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("producerid")

	var metrics models.ProducerMetrics
	err := db.MetricsCollection.FindOne(ctx, bson.M{"producerid": id}).Decode(&metrics)
	if err == mongo.ErrNoDocuments {
		metrics = models.ProducerMetrics{ProducerID: id}
	} else if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Failed to load metrics"})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, metrics)
}

// UpdateMetrics upserts dashboard counters for the caller's producer profile.
func UpdateMetrics(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	var input models.ProducerMetrics
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "Invalid JSON body"})
		return
	}

	update := bson.M{"$set": bson.M{
		"totalsales":    input.TotalSales,
		"orderscount":   input.OrdersCount,
		"productscount": input.ProductsCount,
		"updatedAt":     time.Now(),
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := db.MetricsCollection.UpdateOne(ctx, bson.M{"producerid": id}, update, opts); err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Failed to update metrics"})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Metrics updated"})
}

// RecordSale bumps the counters when an order is accepted. Called from the
// orders package, not routed.
func RecordSale(ctx context.Context, producerID string, total float64) error {
	update := bson.M{
		"$inc": bson.M{"totalsales": total, "orderscount": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.Update().SetUpsert(true)
	_, err := db.MetricsCollection.UpdateOne(ctx, bson.M{"producerid": producerID}, update, opts)
	return err
}
