package producers

import (
	"context"
	"net/http"
	"time"

	"feira/db"
	"feira/geo"
	"feira/models"
	"feira/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetNearbyProducers lists producers ranked by distance from the caller's
// coordinates. Optional query filters: maxDistance (km), category, maxPrice.
// Without lat/lon no ranking is possible and the raw list is returned.
func GetNearbyProducers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ProducersCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Could not retrieve producers"})
		return
	}
	defer cursor.Close(ctx)

	var producers []models.Producer
	if err := cursor.All(ctx, &producers); err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Error reading producer data"})
		return
	}

	q := r.URL.Query()
	lat := utils.ParseOptionalFloat(q.Get("lat"))
	lon := utils.ParseOptionalFloat(q.Get("lon"))
	if lat == nil || lon == nil {
		// no device location, no ranking
		if len(producers) == 0 {
			producers = []models.Producer{}
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "producers": producers, "ranked": false})
		return
	}

	entities := make([]geo.Entity, 0, len(producers))
	byID := make(map[string]models.Producer, len(producers))
	for _, p := range producers {
		byID[p.ProducerID] = p
		entities = append(entities, geo.Entity{
			ID:       p.ProducerID,
			Name:     p.Name,
			Point:    geo.Point{Latitude: p.Latitude, Longitude: p.Longitude},
			Category: p.Category,
			Price:    lowestProductPrice(ctx, p.ProducerID),
		})
	}

	filter := geo.Filter{
		MaxDistanceKm: utils.ParseOptionalFloat(q.Get("maxDistance")),
		Category:      q.Get("category"),
		MaxPrice:      utils.ParseOptionalFloat(q.Get("maxPrice")),
	}

	ranked := geo.Rank(geo.Point{Latitude: *lat, Longitude: *lon}, entities, filter)

	// JSON has no NaN, unknown distances go out as null
	type rankedProducer struct {
		models.Producer
		DistanceKm *float64 `json:"distanceKm"`
	}
	out := make([]rankedProducer, 0, len(ranked))
	for _, res := range ranked {
		rp := rankedProducer{Producer: byID[res.ID]}
		if geo.Known(res.DistanceKm) {
			d := res.DistanceKm
			rp.DistanceKm = &d
		}
		out = append(out, rp)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "producers": out, "ranked": true})
}

// lowestProductPrice backs the price filter on the map screen: a producer
// qualifies when its cheapest product is within the bound. Zero when the
// producer has no products yet.
func lowestProductPrice(ctx context.Context, producerID string) float64 {
	cursor, err := db.ProductsCollection.Find(ctx, bson.M{"producerid": producerID})
	if err != nil {
		return 0
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil || len(products) == 0 {
		return 0
	}

	lowest := products[0].Price
	for _, p := range products[1:] {
		if p.Price < lowest {
			lowest = p.Price
		}
	}
	return lowest
}
