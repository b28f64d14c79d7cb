package mongoRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CommitReservation removes the reserved time label from the doctor's day and
// appends the booking to the patient, inside one Mongo session transaction.
// Both updates carry the revision the engine read as a filter precondition,
// and the doctor filter additionally requires the label to still be present.
// MatchedCount == 0 on either update means the precondition no longer holds:
// the transaction is aborted and the caller gets ErrConflict so it can re-read
// and retry.
func (s *MongoStore) CommitReservation(ctx context.Context, w repository.ReservationWrite) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	client := s.doctorColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %v: %w", err, repository.ErrUnavailable)
	}
	defer sess.EndSession(ctx)

	availabilityField := "availability." + w.Date

	txnFn := func(sc mongo.SessionContext) error {
		doctorFilter := bson.M{
			"id":              w.DoctorID,
			"rev":             w.DoctorRev,
			availabilityField: w.Time,
		}
		doctorUpdate := bson.M{
			"$pull": bson.M{availabilityField: w.Time},
			"$inc":  bson.M{"rev": 1},
			"$set":  bson.M{"lastUpdated": time.Now().UTC()},
		}
		res, err := s.doctorColl.UpdateOne(sc, doctorFilter, doctorUpdate)
		if err != nil {
			return fmt.Errorf("remove slot failed: %v: %w", err, repository.ErrUnavailable)
		}
		if res.MatchedCount == 0 {
			return repository.ErrConflict
		}

		patientFilter := bson.M{
			"id":  w.PatientID,
			"rev": w.PatientRev,
		}
		patientUpdate := bson.M{
			"$push": bson.M{"bookings": w.Booking},
			"$inc":  bson.M{"rev": 1},
		}
		res, err = s.patientColl.UpdateOne(sc, patientFilter, patientUpdate)
		if err != nil {
			return fmt.Errorf("append booking failed: %v: %w", err, repository.ErrUnavailable)
		}
		if res.MatchedCount == 0 {
			return repository.ErrConflict
		}

		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return fmt.Errorf("start transaction failed: %v: %w", err, repository.ErrUnavailable)
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		// A rejected commit means the data moved under us; the engine
		// re-reads and retries, so report it as a conflict.
		if err := sc.CommitTransaction(sc); err != nil {
			return fmt.Errorf("commit rejected: %v: %w", err, repository.ErrConflict)
		}
		return nil
	}); err != nil {
		return err
	}

	return nil
}
