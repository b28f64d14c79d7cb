package booking

import (
	"errors"
	"fmt"
)

// Error codes returned to the caller. The conversational front end renders
// them; this core only classifies.
const (
	CodeIncompleteRequest   = "incompleteRequest"
	CodePastDateRequested   = "pastDateRequested"
	CodeDoctorNotFound      = "doctorNotFound"
	CodePatientNotFound     = "patientNotFound"
	CodeSlotUnavailable     = "slotUnavailable"
	CodeReservationConflict = "reservationConflict"
	CodeStoreUnavailable    = "storeUnavailable"
)

// BookingError is a typed error carrying a stable code for the caller.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewBookingError builds a typed error with the given code.
func NewBookingError(code, format string, args ...any) error {
	return &BookingError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode extracts the booking error code, or storeUnavailable for anything
// untyped that escaped the engine.
func ErrorCode(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return CodeStoreUnavailable
}
