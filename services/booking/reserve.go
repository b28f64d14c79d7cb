package booking

import (
	"context"
	"errors"
	"time"

	"medibook/database/repository"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxAttempts bounds the optimistic retry loop.
const DefaultMaxAttempts = 3

// ReservationEngine grants a slot to at most one requester. Every attempt
// re-reads both records inside the loop — never trust availability read
// earlier in the conversation, because two callers may have searched the same
// stale snapshot. The store's conditional commit decides the race; a lost
// race is re-read and retried a bounded number of times.
type ReservationEngine struct {
	Store       repository.Store
	Rates       RateTable
	MaxAttempts int              // retry bound; DefaultMaxAttempts when zero
	Now         func() time.Time // injectable clock; defaults to time.Now
}

func (e *ReservationEngine) attempts() int {
	if e.MaxAttempts > 0 {
		return e.MaxAttempts
	}
	return DefaultMaxAttempts
}

func (e *ReservationEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Reserve atomically verifies the slot is still open, removes it from the
// doctor, and appends a confirmed booking to the patient. Failure modes:
// slotUnavailable when the label is gone from a fresh read, patientNotFound /
// doctorNotFound for missing records, reservationConflict when the commit
// keeps losing optimistic races.
func (e *ReservationEngine) Reserve(ctx context.Context, doctorID, patientID, date, timeLabel, insuranceProvider string) (*models.Booking, error) {
	logger := utils.GetLogger()

	for attempt := 1; attempt <= e.attempts(); attempt++ {
		doctor, err := e.Store.GetDoctor(ctx, doctorID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, NewBookingError(CodeDoctorNotFound, "doctor %s not found", doctorID)
			}
			return nil, NewBookingError(CodeStoreUnavailable, "doctor read failed: %v", err)
		}

		// The freshly-read list is authoritative; a label absent here means
		// someone else won, not that anything went wrong.
		if !doctor.HasSlot(date, timeLabel) {
			return nil, NewBookingError(CodeSlotUnavailable,
				"doctor %s is not available on %s at %s", doctor.Name, date, timeLabel)
		}

		patient, err := e.Store.GetPatient(ctx, patientID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, NewBookingError(CodePatientNotFound, "patient %s not found", patientID)
			}
			return nil, NewBookingError(CodeStoreUnavailable, "patient read failed: %v", err)
		}

		booking := models.Booking{
			ID:            uuid.New().String(),
			DoctorID:      doctor.ID,
			DoctorName:    doctor.Name,
			Specialty:     doctor.Specialty,
			Date:          date,
			Time:          timeLabel,
			BookingType:   models.BookingTypeAppointment,
			Status:        models.BookingStatusConfirmed,
			CostBreakdown: e.Rates.Calculate(insuranceProvider),
			CreatedAt:     e.now().UTC(),
		}

		err = e.Store.CommitReservation(ctx, repository.ReservationWrite{
			DoctorID:   doctor.ID,
			DoctorRev:  doctor.Rev,
			Date:       date,
			Time:       timeLabel,
			PatientID:  patient.ID,
			PatientRev: patient.Rev,
			Booking:    booking,
		})
		if err == nil {
			logger.Info("slot reserved",
				zap.String("bookingID", booking.ID),
				zap.String("doctorID", doctor.ID),
				zap.String("date", date),
				zap.String("time", timeLabel),
				zap.Int("attempt", attempt))
			return &booking, nil
		}

		// Timeouts count as conflicts: the outcome is unknown, the revisions
		// guard the next attempt either way.
		if errors.Is(err, repository.ErrConflict) || errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("reservation commit lost a race, retrying",
				zap.String("doctorID", doctor.ID),
				zap.String("date", date),
				zap.String("time", timeLabel),
				zap.Int("attempt", attempt))
			continue
		}

		return nil, NewBookingError(CodeStoreUnavailable, "reservation commit failed: %v", err)
	}

	return nil, NewBookingError(CodeReservationConflict,
		"could not reserve %s %s after %d attempts, please retry", date, timeLabel, e.attempts())
}
