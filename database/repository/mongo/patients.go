package mongoRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database/repository"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetPatient retrieves a patient by its unique ID, including its current revision.
func (s *MongoStore) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var patient models.Patient
	if err := s.patientColl.FindOne(ctx, bson.M{"id": id}).Decode(&patient); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch patient with id %s: %v: %w", id, err, repository.ErrUnavailable)
	}
	return &patient, nil
}

// QueryPatient retrieves the patient whose record matches all four identity
// fields. The match is exact: the caller must restate the details as stored.
func (s *MongoStore) QueryPatient(ctx context.Context, identity models.PatientIdentity) (*models.Patient, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"name":              identity.Name,
		"dateOfBirth":       identity.DateOfBirth,
		"insuranceProvider": identity.InsuranceProvider,
		"policyNumber":      identity.PolicyNumber,
	}
	var patient models.Patient
	if err := s.patientColl.FindOne(ctx, filter).Decode(&patient); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("patient lookup failed: %v: %w", err, repository.ErrUnavailable)
	}
	return &patient, nil
}
