package booking

import (
	"context"

	"medibook/database/repository"
	"medibook/models"
	"medibook/services/notification"
)

// BookingService is the boundary exposed to the conversational caller. Every
// operation takes and returns structured data; rendering dialogue is the
// caller's job.
type BookingService interface {
	// SearchDoctors finds open doctors. With a date it runs date-exact first
	// and falls back to earliest-first when that date has nothing, so the
	// caller can offer alternatives instead of a bare miss.
	SearchDoctors(ctx context.Context, specialty, location, date string) (*models.SearchResult, error)
	// EstimateCost computes a cost breakdown for an insurance provider.
	EstimateCost(provider string) models.CostBreakdown
	// BookAppointment validates the request, reserves the slot, and sends a
	// best-effort confirmation email.
	BookAppointment(ctx context.Context, req models.BookingRequest) (*models.BookingResult, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Store           repository.Store
	SearchSvc       SearchService
	Engine          *ReservationEngine
	Rates           RateTable
	NotificationSvc notification.NotificationService
}
