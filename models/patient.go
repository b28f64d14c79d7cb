package models

// Patient represents a registered patient. Records pre-exist; the booking engine
// only ever appends to Bookings.
type Patient struct {
	ID                string    `bson:"id" json:"id"`
	Name              string    `bson:"name" json:"name"`
	DateOfBirth       string    `bson:"dateOfBirth" json:"dateOfBirth"` // "YYYY-MM-DD"
	InsuranceProvider string    `bson:"insuranceProvider" json:"insuranceProvider"`
	PolicyNumber      string    `bson:"policyNumber" json:"policyNumber"`
	Email             string    `bson:"email" json:"email"`
	Bookings          []Booking `bson:"bookings" json:"bookings"`
	Rev               int64     `bson:"rev" json:"-"`
}

// PatientIdentity is the four-field match key a caller supplies in place of a
// patient ID. All fields must match the stored record exactly.
type PatientIdentity struct {
	Name              string `json:"name"`
	DateOfBirth       string `json:"dateOfBirth"`
	InsuranceProvider string `json:"insuranceProvider"`
	PolicyNumber      string `json:"policyNumber"`
}
