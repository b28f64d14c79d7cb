package notification

import (
	"context"

	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// StubNotificationService logs instead of sending. Used when no SendGrid key
// is configured and in tests.
type StubNotificationService struct{}

func (s *StubNotificationService) SendBookingConfirmation(ctx context.Context, email string, booking models.Booking) error {
	utils.GetLogger().Info("confirmation email suppressed (stub sender)",
		zap.String("to", email),
		zap.String("bookingID", booking.ID))
	return nil
}
