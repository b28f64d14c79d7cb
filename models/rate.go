package models

// Rate holds the negotiated appointment cost and patient co-pay for one
// insurance provider.
type Rate struct {
	AppointmentCost float64 `bson:"appointmentCost" json:"appointmentCost" mapstructure:"appointment_cost"`
	CoPay           float64 `bson:"coPay" json:"coPay" mapstructure:"co_pay"`
}

// CostBreakdown is the derived cost split for a booking. InsuranceClaim is
// always TotalCost - PatientCopay.
type CostBreakdown struct {
	TotalCost      float64 `bson:"totalCost" json:"totalCost"`
	PatientCopay   float64 `bson:"patientCopay" json:"patientCopay"`
	InsuranceClaim float64 `bson:"insuranceClaim" json:"insuranceClaim"`
}
