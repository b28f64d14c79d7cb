package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"medibook/database/repository"
	"medibook/models"
)

const dateLayout = "2006-01-02"

// SearchService finds doctors with open slots. Both modes are read-only and
// tolerate stale data; the reservation engine re-validates before committing.
type SearchService interface {
	// SearchByDate returns doctors of the given specialty and city with at
	// least one open time on exactly the given date.
	SearchByDate(ctx context.Context, specialty, city, date string) ([]models.DoctorAvailability, error)
	// SearchEarliest returns matching doctors across all their open dates,
	// each tagged with the chronologically earliest date still open, sorted
	// by that date with doctor ID as the tie-break.
	SearchEarliest(ctx context.Context, specialty, city string) ([]models.DoctorAvailability, error)
}

// DefaultSearchService implements SearchService against the store boundary.
type DefaultSearchService struct {
	Store repository.Store
	Now   func() time.Time // injectable clock; defaults to time.Now
}

func (s *DefaultSearchService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// today returns the current date truncated to day granularity.
func (s *DefaultSearchService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// ParseDate validates a "YYYY-MM-DD" date string.
func ParseDate(date string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return parsed, nil
}

// SearchByDate rejects dates in the past before touching the store, then
// returns every matching doctor with open times on that date. No match is an
// empty list, not an error.
func (s *DefaultSearchService) SearchByDate(ctx context.Context, specialty, city, date string) ([]models.DoctorAvailability, error) {
	requested, err := ParseDate(date)
	if err != nil {
		return nil, NewBookingError(CodeIncompleteRequest, "appointmentDate must be YYYY-MM-DD, got %q", date)
	}
	if requested.Before(s.today()) {
		return nil, NewBookingError(CodePastDateRequested, "requested date %s is in the past", date)
	}

	doctors, err := s.queryDoctors(ctx, specialty, city)
	if err != nil {
		return nil, err
	}

	results := []models.DoctorAvailability{}
	for i := range doctors {
		doctor := &doctors[i]
		times := doctor.OpenTimes(date)
		if len(times) == 0 {
			continue
		}
		results = append(results, models.DoctorAvailability{
			Doctor: doctor.Summary(),
			Date:   date,
			Times:  times,
		})
	}
	return results, nil
}

// SearchEarliest tags every matching doctor with its earliest open date from
// today onward, so a caller asking for "any time soon" gets alternatives
// instead of a bare miss. Doctors with no open dates left are dropped.
func (s *DefaultSearchService) SearchEarliest(ctx context.Context, specialty, city string) ([]models.DoctorAvailability, error) {
	doctors, err := s.queryDoctors(ctx, specialty, city)
	if err != nil {
		return nil, err
	}

	today := s.today()
	results := []models.DoctorAvailability{}
	for i := range doctors {
		doctor := &doctors[i]
		date, ok := earliestOpenDate(doctor, today)
		if !ok {
			continue
		}
		results = append(results, models.DoctorAvailability{
			Doctor: doctor.Summary(),
			Date:   date,
			Times:  doctor.OpenTimes(date),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Date != results[j].Date {
			return results[i].Date < results[j].Date
		}
		return results[i].Doctor.ID < results[j].Doctor.ID
	})
	return results, nil
}

func (s *DefaultSearchService) queryDoctors(ctx context.Context, specialty, city string) ([]models.Doctor, error) {
	doctors, err := s.Store.QueryDoctors(ctx, specialty, city)
	if err != nil {
		return nil, NewBookingError(CodeStoreUnavailable, "doctor search failed: %v", err)
	}
	return doctors, nil
}

// earliestOpenDate scans a doctor's availability for the chronologically first
// date, at or after floor, that still has an open time. The "YYYY-MM-DD"
// layout sorts lexically, so string comparison is date comparison.
func earliestOpenDate(doctor *models.Doctor, floor time.Time) (string, bool) {
	floorStr := floor.Format(dateLayout)
	best := ""
	for date, times := range doctor.Availability {
		if len(times) == 0 || date < floorStr {
			continue
		}
		if _, err := time.Parse(dateLayout, date); err != nil {
			continue
		}
		if best == "" || date < best {
			best = date
		}
	}
	return best, best != ""
}
