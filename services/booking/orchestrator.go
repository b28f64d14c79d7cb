package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"medibook/database/repository"
	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// SearchDoctors runs the availability search. With a date it tries date-exact
// first; if that date yields nothing (or no date was given) it switches to
// earliest-first, so doctors merely unavailable on the literal requested date
// are still offered with their soonest alternative.
func (svc *DefaultBookingService) SearchDoctors(ctx context.Context, specialty, location, date string) (*models.SearchResult, error) {
	if date != "" {
		doctors, err := svc.SearchSvc.SearchByDate(ctx, specialty, location, date)
		if err != nil {
			return nil, err
		}
		if len(doctors) > 0 {
			return &models.SearchResult{Mode: models.SearchModeDateExact, Doctors: doctors}, nil
		}
	}

	doctors, err := svc.SearchSvc.SearchEarliest(ctx, specialty, location)
	if err != nil {
		return nil, err
	}
	return &models.SearchResult{Mode: models.SearchModeEarliestFirst, Doctors: doctors}, nil
}

// EstimateCost never fails: unknown providers use the default rate.
func (svc *DefaultBookingService) EstimateCost(provider string) models.CostBreakdown {
	return svc.Rates.Calculate(provider)
}

// BookAppointment sequences validation, doctor and patient resolution, the
// reservation itself, and the best-effort confirmation email. A notification
// failure never rolls the committed reservation back; it is attached to the
// result as a warning.
func (svc *DefaultBookingService) BookAppointment(ctx context.Context, req models.BookingRequest) (*models.BookingResult, error) {
	logger := utils.GetLogger()

	if missing := missingFields(req); len(missing) > 0 {
		return nil, NewBookingError(CodeIncompleteRequest,
			"incomplete booking details: missing %s", strings.Join(missing, ", "))
	}

	requested, err := ParseDate(req.Date)
	if err != nil {
		return nil, NewBookingError(CodeIncompleteRequest,
			"appointmentDate must be YYYY-MM-DD, got %q", req.Date)
	}
	now := svc.Engine.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if requested.Before(today) {
		return nil, NewBookingError(CodePastDateRequested,
			"requested date %s is in the past", req.Date)
	}

	doctor, err := svc.resolveDoctor(ctx, req)
	if err != nil {
		return nil, err
	}

	// The provider may arrive at the top level, on the patient identity, or
	// both; either spelling serves both the identity lookup and the pricing.
	provider := req.InsuranceProvider
	if provider == "" {
		provider = req.Patient.InsuranceProvider
	}
	identity := req.Patient
	if identity.InsuranceProvider == "" {
		identity.InsuranceProvider = provider
	}

	patient, err := svc.resolvePatient(ctx, identity)
	if err != nil {
		return nil, err
	}

	bookingRec, err := svc.Engine.Reserve(ctx, doctor.ID, patient.ID, req.Date, req.Time, provider)
	if err != nil {
		return nil, err
	}

	result := &models.BookingResult{Booking: *bookingRec}
	if patient.Email == "" {
		result.Warning = "patient has no email address on record; no confirmation sent"
		return result, nil
	}

	if err := svc.NotificationSvc.SendBookingConfirmation(ctx, patient.Email, *bookingRec); err != nil {
		logger.Warn("confirmation email failed after successful reservation",
			zap.String("bookingID", bookingRec.ID),
			zap.String("to", patient.Email),
			zap.Error(err))
		result.Warning = "booking confirmed, but the confirmation email could not be sent"
		return result, nil
	}

	result.NotificationSent = true
	return result, nil
}

// missingFields lists the required request fields that are absent, so the
// caller can re-prompt for exactly those.
func missingFields(req models.BookingRequest) []string {
	var missing []string
	if req.DoctorID == "" && req.DoctorName == "" {
		missing = append(missing, "doctorId or doctorName")
	}
	if req.DoctorID == "" && req.DoctorName != "" && req.Specialty == "" {
		missing = append(missing, "specialty")
	}
	if req.Date == "" {
		missing = append(missing, "appointmentDate")
	}
	if req.Time == "" {
		missing = append(missing, "appointmentTime")
	}
	if req.Patient.Name == "" {
		missing = append(missing, "patient.name")
	}
	if req.Patient.DateOfBirth == "" {
		missing = append(missing, "patient.dateOfBirth")
	}
	if req.Patient.PolicyNumber == "" {
		missing = append(missing, "patient.policyNumber")
	}
	if req.InsuranceProvider == "" && req.Patient.InsuranceProvider == "" {
		missing = append(missing, "insuranceProvider")
	}
	return missing
}

// resolveDoctor accepts either a doctor ID or a display name scoped by
// specialty, the way the conversational caller refers to doctors.
func (svc *DefaultBookingService) resolveDoctor(ctx context.Context, req models.BookingRequest) (*models.Doctor, error) {
	if req.DoctorID != "" {
		doctor, err := svc.Store.GetDoctor(ctx, req.DoctorID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, NewBookingError(CodeDoctorNotFound, "doctor %s not found", req.DoctorID)
			}
			return nil, NewBookingError(CodeStoreUnavailable, "doctor lookup failed: %v", err)
		}
		return doctor, nil
	}

	doctors, err := svc.Store.QueryDoctors(ctx, req.Specialty, "")
	if err != nil {
		return nil, NewBookingError(CodeStoreUnavailable, "doctor lookup failed: %v", err)
	}
	for i := range doctors {
		if strings.EqualFold(doctors[i].Name, req.DoctorName) {
			return &doctors[i], nil
		}
	}
	return nil, NewBookingError(CodeDoctorNotFound,
		"no %s named %q found", req.Specialty, req.DoctorName)
}

// resolvePatient matches the caller-supplied identity against the store;
// details that do not match the stored record exactly are a not-found, never
// a partial match.
func (svc *DefaultBookingService) resolvePatient(ctx context.Context, identity models.PatientIdentity) (*models.Patient, error) {
	patient, err := svc.Store.QueryPatient(ctx, identity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewBookingError(CodePatientNotFound, "patient not found or details do not match")
		}
		return nil, NewBookingError(CodeStoreUnavailable, "patient lookup failed: %v", err)
	}
	return patient, nil
}
