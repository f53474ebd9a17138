package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"islandrides-backend/internal/domain"
	"islandrides-backend/internal/logger"
	"islandrides-backend/internal/money"
)

// sendGridEmailService delivers reservation lifecycle emails through
// the SendGrid v3 API.
type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) SendReservationConfirmation(ctx context.Context, email, name string, rv *domain.Reservation, vehicleName string) error {
	subject := "Your IslandRides reservation is confirmed"
	plainText := fmt.Sprintf(
		"Hi %s,\n\nYour reservation for the %s is confirmed.\n\nPickup: %s\nDropoff: %s\nTotal: %s\n\nReservation ID: %s",
		name, vehicleName, rv.PickupDate, rv.DropoffDate, rv.TotalCents.Format(), rv.ID)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Reservation Confirmed</h2>
				<p>Hi %s,</p>
				<p>Your reservation for the <strong>%s</strong> is confirmed.</p>
				<ul>
					<li>Pickup: %s</li>
					<li>Dropoff: %s</li>
					<li>Total: %s</li>
				</ul>
				<p>Reservation ID: %s</p>
			</body>
		</html>
	`, name, vehicleName, rv.PickupDate, rv.DropoffDate, rv.TotalCents.Format(), rv.ID)

	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendCancellationNotification(ctx context.Context, email, name string, rv *domain.Reservation, fee money.Cents) error {
	subject := "Your IslandRides reservation has been cancelled"
	feeLine := "No cancellation fee was charged."
	if fee > 0 {
		feeLine = fmt.Sprintf("A cancellation fee of %s was charged.", fee.Format())
	}
	plainText := fmt.Sprintf(
		"Hi %s,\n\nYour reservation %s (pickup %s) has been cancelled.\n%s",
		name, rv.ID, rv.PickupDate, feeLine)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Reservation Cancelled</h2>
				<p>Hi %s,</p>
				<p>Your reservation <strong>%s</strong> (pickup %s) has been cancelled.</p>
				<p>%s</p>
			</body>
		</html>
	`, name, rv.ID, rv.PickupDate, feeLine)

	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendPickupReminder(ctx context.Context, email, name string, rv *domain.Reservation, vehicleName string) error {
	subject := "Reminder: your IslandRides pickup is tomorrow"
	plainText := fmt.Sprintf(
		"Hi %s,\n\nYour %s is ready to be picked up on %s.\n\nReservation ID: %s",
		name, vehicleName, rv.PickupDate, rv.ID)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Pickup Reminder</h2>
				<p>Hi %s,</p>
				<p>Your <strong>%s</strong> is ready to be picked up on %s.</p>
				<p>Reservation ID: %s</p>
			</body>
		</html>
	`, name, vehicleName, rv.PickupDate, rv.ID)

	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendCompletionNotification(ctx context.Context, email, name, vehicleName string) error {
	subject := "Thanks for riding with IslandRides"
	plainText := fmt.Sprintf(
		"Hi %s,\n\nYour rental of the %s is complete. We hope to see you again soon.",
		name, vehicleName)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Rental Complete</h2>
				<p>Hi %s,</p>
				<p>Your rental of the <strong>%s</strong> is complete. We hope to see you again soon.</p>
			</body>
		</html>
	`, name, vehicleName)

	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) send(ctx context.Context, to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "Send", "to", to, "subject", subject)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "Send", nil, "to", to)
	return nil
}
