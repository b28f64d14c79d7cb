package mongoRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"medibook/database/repository"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetDoctor retrieves a doctor by its unique ID, including its current revision.
func (s *MongoStore) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := s.doctorColl.FindOne(ctx, bson.M{"id": id}).Decode(&doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch doctor with id %s: %v: %w", id, err, repository.ErrUnavailable)
	}
	return &doctor, nil
}

// QueryDoctors retrieves all doctors matching specialty and city, both
// case-insensitive exact matches. Empty arguments act as wildcards.
func (s *MongoStore) QueryDoctors(ctx context.Context, specialty, city string) ([]models.Doctor, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if specialty != "" {
		filter["specialty"] = exactInsensitive(specialty)
	}
	if city != "" {
		filter["city"] = exactInsensitive(city)
	}
	cursor, err := s.doctorColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("doctor query failed: %v: %w", err, repository.ErrUnavailable)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %v: %w", err, repository.ErrUnavailable)
	}
	return doctors, nil
}

// exactInsensitive builds a whole-string case-insensitive match.
func exactInsensitive(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}
