package mongoRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/database/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements repository.Store using MongoDB.
type MongoStore struct {
	doctorColl  *mongo.Collection
	patientColl *mongo.Collection
}

// NewMongoStore creates a Store backed by the medibook database.
func NewMongoStore() repository.Store {
	db := database.MongoClient.Database("medibook")
	store := &MongoStore{
		doctorColl:  db.Collection("doctors"),
		patientColl: db.Collection("patients"),
	}

	if err := store.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return store
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (s *MongoStore) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	doctorIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "specialty", Value: 1}, {Key: "city", Value: 1}}},
	}
	if _, err := s.doctorColl.Indexes().CreateMany(ctx, doctorIndexes); err != nil {
		return fmt.Errorf("failed to create doctor indexes: %w", err)
	}

	patientIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "name", Value: 1},
			{Key: "dateOfBirth", Value: 1},
			{Key: "insuranceProvider", Value: 1},
			{Key: "policyNumber", Value: 1},
		}},
	}
	if _, err := s.patientColl.Indexes().CreateMany(ctx, patientIndexes); err != nil {
		return fmt.Errorf("failed to create patient indexes: %w", err)
	}
	return nil
}
