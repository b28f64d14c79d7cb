package notification

import (
	"context"

	"medibook/models"
)

// NotificationService sends booking confirmations to patients. It sits on the
// far side of the reservation commit: a send failure is logged and reported
// as a warning, never propagated as a booking failure.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, email string, booking models.Booking) error
}
