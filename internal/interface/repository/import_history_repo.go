package repository

import (
	"context"
	"time"

	"logbook-service/internal/domain/entity"
	"logbook-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoImportHistoryRepository implements ImportHistoryRepository
type MongoImportHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoImportHistoryRepository creates a new import history repository
func NewMongoImportHistoryRepository(db *mongo.Database) repository.ImportHistoryRepository {
	collection := db.Collection("import_runs")

	// Create index on userId for per-owner history queries
	ctx := context.Background()
	userIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	}
	collection.Indexes().CreateOne(ctx, userIndex)

	return &MongoImportHistoryRepository{
		collection: collection,
	}
}

// Save stores one preview or import run
func (r *MongoImportHistoryRepository) Save(ctx context.Context, run *entity.ImportRun) error {
	if run.ID == "" {
		run.ID = primitive.NewObjectID().Hex()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, run)
	return err
}

// FindByUser returns the most recent runs for a user, newest first
func (r *MongoImportHistoryRepository) FindByUser(ctx context.Context, userID string, limit int64) ([]entity.ImportRun, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []entity.ImportRun
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, err
	}

	return runs, nil
}
