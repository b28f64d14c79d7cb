package booking

import (
	"context"
	"errors"
	"testing"

	"medibook/database/repository"
	memoryRepo "medibook/database/repository/memory"
	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier captures sends and optionally fails them.
type recordingNotifier struct {
	sent []string
	err  error
}

func (n *recordingNotifier) SendBookingConfirmation(ctx context.Context, email string, booking models.Booking) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, email)
	return nil
}

// countingStore counts reads so tests can assert a request never reached the store.
type countingStore struct {
	repository.Store
	calls int
}

func (s *countingStore) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	s.calls++
	return s.Store.GetDoctor(ctx, id)
}

func (s *countingStore) QueryDoctors(ctx context.Context, specialty, city string) ([]models.Doctor, error) {
	s.calls++
	return s.Store.QueryDoctors(ctx, specialty, city)
}

func (s *countingStore) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	s.calls++
	return s.Store.GetPatient(ctx, id)
}

func (s *countingStore) QueryPatient(ctx context.Context, identity models.PatientIdentity) (*models.Patient, error) {
	s.calls++
	return s.Store.QueryPatient(ctx, identity)
}

func newBookingService(store repository.Store, notifier *recordingNotifier) *DefaultBookingService {
	rates := LoadRateTable()
	return &DefaultBookingService{
		Store:     store,
		SearchSvc: &DefaultSearchService{Store: store, Now: fixedClock},
		Engine: &ReservationEngine{
			Store: store,
			Rates: rates,
			Now:   fixedClock,
		},
		Rates:           rates,
		NotificationSvc: notifier,
	}
}

func validBookingRequest() models.BookingRequest {
	return models.BookingRequest{
		DoctorName:        "Dr. A",
		Specialty:         "General Practitioner",
		Date:              "2025-09-10",
		Time:              "09:00",
		InsuranceProvider: "MedStar Health",
		Patient: models.PatientIdentity{
			Name:              "Tahmina",
			DateOfBirth:       "1992-03-12",
			InsuranceProvider: "MedStar Health",
			PolicyNumber:      "D123456",
		},
	}
}

func TestBookAppointmentSuccess(t *testing.T) {
	store := seededReserveStore()
	notifier := &recordingNotifier{}
	svc := newBookingService(store, notifier)

	result, err := svc.BookAppointment(context.Background(), validBookingRequest())
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusConfirmed, result.Booking.Status)
	assert.Equal(t, "Dr. A", result.Booking.DoctorName)
	assert.True(t, result.NotificationSent)
	assert.Empty(t, result.Warning)
	assert.Equal(t, []string{"tahmina@example.com"}, notifier.sent)
}

func TestBookAppointmentByDoctorID(t *testing.T) {
	svc := newBookingService(seededReserveStore(), &recordingNotifier{})

	req := validBookingRequest()
	req.DoctorName = ""
	req.DoctorID = "dr-a"

	result, err := svc.BookAppointment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "dr-a", result.Booking.DoctorID)
}

func TestBookAppointmentIncompleteRequestSkipsStore(t *testing.T) {
	store := &countingStore{Store: seededReserveStore()}
	svc := newBookingService(store, &recordingNotifier{})

	req := validBookingRequest()
	req.Date = ""
	req.Patient.PolicyNumber = ""

	_, err := svc.BookAppointment(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, CodeIncompleteRequest, ErrorCode(err))
	assert.Contains(t, err.Error(), "appointmentDate")
	assert.Contains(t, err.Error(), "patient.policyNumber")
	assert.Zero(t, store.calls, "an incomplete request must not touch the store")
}

func TestBookAppointmentPastDate(t *testing.T) {
	store := &countingStore{Store: seededReserveStore()}
	svc := newBookingService(store, &recordingNotifier{})

	req := validBookingRequest()
	req.Date = "2025-08-20"

	_, err := svc.BookAppointment(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, CodePastDateRequested, ErrorCode(err))
	assert.Zero(t, store.calls)
}

func TestBookAppointmentUnknownDoctorName(t *testing.T) {
	svc := newBookingService(seededReserveStore(), &recordingNotifier{})

	req := validBookingRequest()
	req.DoctorName = "Dr. Nobody"

	_, err := svc.BookAppointment(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, CodeDoctorNotFound, ErrorCode(err))
}

func TestBookAppointmentTopLevelProviderOnly(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newBookingService(seededReserveStore(), notifier)

	// The provider arrives only at the top level; the identity lookup must
	// still match the stored patient record.
	req := validBookingRequest()
	req.Patient.InsuranceProvider = ""

	result, err := svc.BookAppointment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 150.00, result.Booking.CostBreakdown.TotalCost)
	assert.Equal(t, []string{"tahmina@example.com"}, notifier.sent)
}

func TestBookAppointmentMismatchedPatientDetails(t *testing.T) {
	svc := newBookingService(seededReserveStore(), &recordingNotifier{})

	req := validBookingRequest()
	req.Patient.PolicyNumber = "WRONG"

	_, err := svc.BookAppointment(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, CodePatientNotFound, ErrorCode(err))
}

func TestBookAppointmentNotificationFailureIsSoft(t *testing.T) {
	store := seededReserveStore()
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := newBookingService(store, notifier)

	result, err := svc.BookAppointment(context.Background(), validBookingRequest())
	require.NoError(t, err, "a notification failure must not fail the booking")

	assert.False(t, result.NotificationSent)
	assert.NotEmpty(t, result.Warning)

	// The reservation itself stayed committed.
	doctor, err := store.GetDoctor(context.Background(), "dr-a")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, doctor.Availability["2025-09-10"])
}

func TestBookAppointmentNoEmailOnRecord(t *testing.T) {
	store := memoryRepo.NewMemoryStore()
	store.SeedDoctor(models.Doctor{
		ID:        "dr-a",
		Name:      "Dr. A",
		Specialty: "General Practitioner",
		City:      "London",
		Availability: map[string][]string{
			"2025-09-10": {"09:00"},
		},
	})
	store.SeedPatient(models.Patient{
		ID:                "pat-1",
		Name:              "Tahmina",
		DateOfBirth:       "1992-03-12",
		InsuranceProvider: "MedStar Health",
		PolicyNumber:      "D123456",
	})
	notifier := &recordingNotifier{}
	svc := newBookingService(store, notifier)

	result, err := svc.BookAppointment(context.Background(), validBookingRequest())
	require.NoError(t, err)
	assert.False(t, result.NotificationSent)
	assert.NotEmpty(t, result.Warning)
	assert.Empty(t, notifier.sent)
}

func TestSearchDoctorsFallsBackToEarliest(t *testing.T) {
	svc := newBookingService(seededReserveStore(), &recordingNotifier{})

	// Nothing on the 11th, so the search offers the earliest alternative.
	result, err := svc.SearchDoctors(context.Background(), "General Practitioner", "London", "2025-09-11")
	require.NoError(t, err)
	assert.Equal(t, models.SearchModeEarliestFirst, result.Mode)
	require.Len(t, result.Doctors, 1)
	assert.Equal(t, "2025-09-10", result.Doctors[0].Date)
}

func TestSearchDoctorsDateExactWhenAvailable(t *testing.T) {
	svc := newBookingService(seededReserveStore(), &recordingNotifier{})

	result, err := svc.SearchDoctors(context.Background(), "General Practitioner", "London", "2025-09-10")
	require.NoError(t, err)
	assert.Equal(t, models.SearchModeDateExact, result.Mode)
	require.Len(t, result.Doctors, 1)
	assert.Equal(t, []string{"09:00", "10:00"}, result.Doctors[0].Times)
}

func TestEstimateCostMatchesRateTable(t *testing.T) {
	svc := newBookingService(seededReserveStore(), &recordingNotifier{})

	breakdown := svc.EstimateCost("Blue Cross Blue Shield")
	assert.Equal(t, 180.00, breakdown.TotalCost)
	assert.Equal(t, 30.00, breakdown.PatientCopay)
	assert.Equal(t, 150.00, breakdown.InsuranceClaim)
}
