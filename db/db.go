package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection        *mongo.Collection
	ProjectsCollection    *mongo.Collection
	OrdersCollection      *mongo.Collection
	ReviewsCollection     *mongo.Collection
	DepartmentsCollection *mongo.Collection
	Client                *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UserCollection = Client.Database("projbank").Collection("users")
	ProjectsCollection = Client.Database("projbank").Collection("projects")
	OrdersCollection = Client.Database("projbank").Collection("orders")
	ReviewsCollection = Client.Database("projbank").Collection("reviews")
	DepartmentsCollection = Client.Database("projbank").Collection("departments")
}
