package db

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection      *mongo.Collection
	ProducersCollection *mongo.Collection
	ProductsCollection  *mongo.Collection
	OrdersCollection    *mongo.Collection
	MetricsCollection   *mongo.Collection
	Client              *mongo.Client
)

// Initialize MongoDB connection
func init() {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UserCollection = Client.Database("feiradb").Collection("users")
	ProducersCollection = Client.Database("feiradb").Collection("producers")
	ProductsCollection = Client.Database("feiradb").Collection("products")
	OrdersCollection = Client.Database("feiradb").Collection("orders")
	MetricsCollection = Client.Database("feiradb").Collection("metrics")
}
