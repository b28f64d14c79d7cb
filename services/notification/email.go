package notification

import (
	"context"
	"fmt"

	"medibook/models"
	"medibook/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// EmailNotificationService sends confirmation emails through SendGrid.
type EmailNotificationService struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

// NewEmailNotificationService creates the SendGrid-backed sender.
func NewEmailNotificationService(apiKey, from, fromName string) (*EmailNotificationService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("notification service initialization error: sendgrid api key is empty")
	}
	if fromName == "" {
		fromName = "The Clinic Team"
	}
	return &EmailNotificationService{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
	}, nil
}

// SendBookingConfirmation emails the patient their appointment details and
// cost breakdown.
func (s *EmailNotificationService) SendBookingConfirmation(ctx context.Context, email string, booking models.Booking) error {
	logger := utils.GetLogger()

	from := mail.NewEmail(s.fromName, s.from)
	to := mail.NewEmail("", email)
	message := mail.NewSingleEmail(from, "Your Appointment Confirmation", to,
		confirmationText(booking), confirmationHTML(booking))

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("confirmation email rejected with status %d", response.StatusCode)
	}

	logger.Info("confirmation email sent",
		zap.String("to", email),
		zap.String("bookingID", booking.ID))
	return nil
}

func confirmationText(b models.Booking) string {
	return fmt.Sprintf(`Appointment Confirmation

Hello,

Your appointment has been successfully booked with %s on %s at %s.

Booking Details:
- Appointment Type: %s
- Doctor: %s
- Date: %s
- Time: %s

Cost Breakdown:
- Total Appointment Cost: $%.2f
- Your Co-pay (After Insurance Claim): $%.2f

We look forward to seeing you!

Best regards,
The Clinic Team
`,
		b.DoctorName, b.Date, b.Time,
		b.BookingType, b.DoctorName, b.Date, b.Time,
		b.CostBreakdown.TotalCost, b.CostBreakdown.PatientCopay)
}

func confirmationHTML(b models.Booking) string {
	return fmt.Sprintf(`<html>
<body style="font-family: sans-serif; line-height: 1.6;">
	<h2>Appointment Confirmation</h2>
	<p>Hello,</p>
	<p>Your appointment has been successfully booked with <b>%s</b> on <b>%s</b> at <b>%s</b>.</p>
	<h3>Booking Details:</h3>
	<ul>
		<li><b>Appointment Type:</b> %s</li>
		<li><b>Doctor:</b> %s</li>
		<li><b>Date:</b> %s</li>
		<li><b>Time:</b> %s</li>
	</ul>
	<h3>Cost Breakdown:</h3>
	<ul>
		<li><b>Total Appointment Cost:</b> $%.2f</li>
		<li><b>Your Co-pay (After Insurance Claim):</b> $%.2f</li>
	</ul>
	<p>We look forward to seeing you!</p>
	<p>Best regards,<br>The Clinic Team</p>
</body>
</html>`,
		b.DoctorName, b.Date, b.Time,
		b.BookingType, b.DoctorName, b.Date, b.Time,
		b.CostBreakdown.TotalCost, b.CostBreakdown.PatientCopay)
}
