package repository

import (
	"context"
	"errors"

	"medibook/models"
)

// Store is the single boundary to the booking data. It has two
// implementations (Mongo-backed and in-memory) selected by configuration,
// so nothing above it ever branches on the storage technology.
//
// GetDoctor and GetPatient populate Rev; CommitReservation applies both
// reservation writes atomically only if the supplied revisions still match,
// so a caller holding stale reads loses with ErrConflict and must re-read.
type Store interface {
	// GetDoctor retrieves a doctor by its unique ID.
	GetDoctor(ctx context.Context, id string) (*models.Doctor, error)
	// QueryDoctors retrieves doctors matching specialty and city, both
	// case-insensitive. An empty specialty or city matches any value.
	QueryDoctors(ctx context.Context, specialty, city string) ([]models.Doctor, error)
	// GetPatient retrieves a patient by its unique ID.
	GetPatient(ctx context.Context, id string) (*models.Patient, error)
	// QueryPatient retrieves the patient matching all four identity fields.
	QueryPatient(ctx context.Context, identity models.PatientIdentity) (*models.Patient, error)
	// CommitReservation removes the slot from the doctor and appends the booking
	// to the patient as one atomic unit, guarded by both revisions.
	CommitReservation(ctx context.Context, w ReservationWrite) error
}

// ReservationWrite carries one reservation commit: which slot to remove from
// which doctor, which booking to append to which patient, and the revisions
// both records had when the engine read them.
type ReservationWrite struct {
	DoctorID   string
	DoctorRev  int64
	Date       string
	Time       string
	PatientID  string
	PatientRev int64
	Booking    models.Booking
}

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a reservation commit lost an optimistic-concurrency
	// race: a revision moved or the slot vanished between read and write.
	ErrConflict = errors.New("reservation conflict")
	// ErrUnavailable indicates the store itself could not be reached.
	ErrUnavailable = errors.New("store unavailable")
)
