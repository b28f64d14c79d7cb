// Package memoryRepo provides an in-memory repository.Store. It is selected
// by STORE_DRIVER=memory for environments without a database, and doubles as
// the store fake in tests. Semantics mirror the Mongo implementation:
// revisions bump on every write and a reservation commit only lands if both
// revisions still match and the slot label is still present.
package memoryRepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"medibook/database/repository"
	"medibook/models"
)

// MemoryStore implements repository.Store with plain maps behind a mutex.
type MemoryStore struct {
	mu       sync.RWMutex
	doctors  map[string]*models.Doctor
	patients map[string]*models.Patient
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		doctors:  make(map[string]*models.Doctor),
		patients: make(map[string]*models.Patient),
	}
}

// SeedDoctor inserts or replaces a doctor record.
func (s *MemoryStore) SeedDoctor(doctor models.Doctor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doctors[doctor.ID] = cloneDoctor(&doctor)
}

// SeedPatient inserts or replaces a patient record.
func (s *MemoryStore) SeedPatient(patient models.Patient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patients[patient.ID] = clonePatient(&patient)
}

// GetDoctor retrieves a doctor by its unique ID.
func (s *MemoryStore) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doctor, ok := s.doctors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneDoctor(doctor), nil
}

// QueryDoctors retrieves doctors matching specialty and city, case-insensitive,
// ordered by doctor ID for deterministic results. Empty arguments act as
// wildcards.
func (s *MemoryStore) QueryDoctors(ctx context.Context, specialty, city string) ([]models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []models.Doctor
	for _, doctor := range s.doctors {
		if specialty != "" && !strings.EqualFold(doctor.Specialty, specialty) {
			continue
		}
		if city != "" && !strings.EqualFold(doctor.City, city) {
			continue
		}
		matches = append(matches, *cloneDoctor(doctor))
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

// GetPatient retrieves a patient by its unique ID.
func (s *MemoryStore) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	patient, ok := s.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePatient(patient), nil
}

// QueryPatient retrieves the patient matching all four identity fields.
func (s *MemoryStore) QueryPatient(ctx context.Context, identity models.PatientIdentity) (*models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, patient := range s.patients {
		if patient.Name == identity.Name &&
			patient.DateOfBirth == identity.DateOfBirth &&
			patient.InsuranceProvider == identity.InsuranceProvider &&
			patient.PolicyNumber == identity.PolicyNumber {
			return clonePatient(patient), nil
		}
	}
	return nil, repository.ErrNotFound
}

// CommitReservation applies both reservation writes under the lock, only if
// the supplied revisions still match and the slot label is still offered.
func (s *MemoryStore) CommitReservation(ctx context.Context, w repository.ReservationWrite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doctor, ok := s.doctors[w.DoctorID]
	if !ok || doctor.Rev != w.DoctorRev {
		return repository.ErrConflict
	}
	patient, ok := s.patients[w.PatientID]
	if !ok || patient.Rev != w.PatientRev {
		return repository.ErrConflict
	}

	times := doctor.Availability[w.Date]
	idx := -1
	for i, t := range times {
		if t == w.Time {
			idx = i
			break
		}
	}
	if idx < 0 {
		return repository.ErrConflict
	}

	doctor.Availability[w.Date] = append(times[:idx:idx], times[idx+1:]...)
	doctor.Rev++
	patient.Bookings = append(patient.Bookings, w.Booking)
	patient.Rev++
	return nil
}

func cloneDoctor(d *models.Doctor) *models.Doctor {
	out := *d
	out.Availability = make(map[string][]string, len(d.Availability))
	for date, times := range d.Availability {
		copied := make([]string, len(times))
		copy(copied, times)
		out.Availability[date] = copied
	}
	return &out
}

func clonePatient(p *models.Patient) *models.Patient {
	out := *p
	out.Bookings = make([]models.Booking, len(p.Bookings))
	copy(out.Bookings, p.Bookings)
	return &out
}
