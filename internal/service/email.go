package service

import (
	"context"
	"fmt"
	"strings"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendSettlementCompletedNotification(ctx context.Context, email, vendorName string, amountCents int64, paymentReference, date string) error {
	logger.ExternalServiceCall("sendgrid", "SendSettlementCompletedNotification", "email", email)

	subject := fmt.Sprintf("Settlement Processed - %s", date)
	plainText := fmt.Sprintf(
		"Hello %s,\n\nYour settlement of $%.2f for %s has been processed.\nPayment reference: %s\n\nBest regards,\nThe VoltPark Team",
		vendorName, float64(amountCents)/100, date, paymentReference)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Settlement Processed</h2>
				<p>Hello <strong>%s</strong>,</p>
				<p>Your settlement of <strong>$%.2f</strong> for %s has been processed.</p>
				<p>Payment reference: <code>%s</code></p>
			</body>
		</html>
	`, vendorName, float64(amountCents)/100, date, paymentReference)

	err := s.send(email, vendorName, subject, plainText, htmlContent)
	logger.ExternalServiceResult("sendgrid", "SendSettlementCompletedNotification", err, "email", email)
	return err
}

func (s *emailService) SendPendingSettlementDigest(ctx context.Context, adminEmail, date string, summaries []domain.VendorSettlementSummary) error {
	logger.ExternalServiceCall("sendgrid", "SendPendingSettlementDigest", "email", adminEmail, "vendors", len(summaries))

	subject := fmt.Sprintf("Pending Settlements Digest - %s", date)

	var plain strings.Builder
	var rows strings.Builder
	fmt.Fprintf(&plain, "Vendors with pending settlements for %s:\n\n", date)
	for _, sm := range summaries {
		fmt.Fprintf(&plain, "- %s (%s): pending $%.2f across %d items\n",
			sm.VendorName, sm.VendorID, float64(sm.PendingCents)/100, sm.PendingItemCount)
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>$%.2f</td><td>%d</td></tr>", sm.VendorName, float64(sm.PendingCents)/100, sm.PendingItemCount)
	}
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Pending Settlements - %s</h2>
				<table border="1" cellpadding="4">
					<tr><th>Vendor</th><th>Pending</th><th>Items</th></tr>
					%s
				</table>
			</body>
		</html>
	`, date, rows.String())

	err := s.send(adminEmail, "VoltPark Admin", subject, plain.String(), htmlContent)
	logger.ExternalServiceResult("sendgrid", "SendPendingSettlementDigest", err, "email", adminEmail)
	return err
}
