package models

import "time"

// BookingStatusConfirmed is the only status the reservation engine produces.
// Corrections are modeled as new bookings, never as mutations of an old one.
const BookingStatusConfirmed = "confirmed"

// BookingTypeAppointment is the booking type for a standard appointment.
const BookingTypeAppointment = "appointment"

// Booking is a confirmed appointment record. Immutable once created.
type Booking struct {
	ID            string        `bson:"id" json:"id"`                 // UUID assigned at reservation
	DoctorID      string        `bson:"doctorId" json:"doctorId"`     // Doctor who was booked
	DoctorName    string        `bson:"doctorName" json:"doctorName"` // Display name at time of booking
	Specialty     string        `bson:"specialty" json:"specialty"`
	Date          string        `bson:"appointmentDate" json:"appointmentDate"` // "YYYY-MM-DD"
	Time          string        `bson:"appointmentTime" json:"appointmentTime"` // time label, e.g. "09:00"
	BookingType   string        `bson:"bookingType" json:"bookingType"`
	Status        string        `bson:"status" json:"status"`
	CostBreakdown CostBreakdown `bson:"costBreakdown" json:"costBreakdown"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"` // server-assigned, UTC
}

// BookingResult is what the orchestrator returns to the caller: the committed
// booking plus the outcome of the best-effort confirmation email.
type BookingResult struct {
	Booking          Booking `json:"booking"`
	NotificationSent bool    `json:"notificationSent"`
	Warning          string  `json:"warning,omitempty"`
}

// BookingRequest carries the structured parameters the conversational caller
// collected. DoctorID and DoctorName are alternatives; resolving by DoctorName
// also requires Specialty.
type BookingRequest struct {
	DoctorID          string          `json:"doctorId,omitempty"`
	DoctorName        string          `json:"doctorName,omitempty"`
	Specialty         string          `json:"specialty"`
	Date              string          `json:"appointmentDate"`
	Time              string          `json:"appointmentTime"`
	Patient           PatientIdentity `json:"patient"`
	InsuranceProvider string          `json:"insuranceProvider"`
}
