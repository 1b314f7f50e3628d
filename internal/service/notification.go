package service

import (
	"context"
	"strconv"
	"time"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/logger"
	"voltpark-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) ListNotifications(ctx context.Context, recipientID string, limit, offset int32) ([]domain.Notification, int32, error) {
	if recipientID == "" {
		return nil, 0, domain.NewValidationError("recipient_id", "recipient id is required")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.noteRepo.List(ctx, recipientID, limit, offset)
}

func (s *notificationService) MarkNotificationRead(ctx context.Context, recipientID string, id int64) error {
	if recipientID == "" {
		return domain.NewValidationError("recipient_id", "recipient id is required")
	}
	if id <= 0 {
		return domain.NewValidationError("notification_id", "notification id must be positive")
	}
	return s.noteRepo.MarkAsRead(ctx, id, recipientID)
}

type notifierService struct {
	noteRepo   repository.NotificationRepository
	vendorRepo repository.VendorRepository
	email      EmailService
}

func NewNotifierService(noteRepo repository.NotificationRepository, vendorRepo repository.VendorRepository, email EmailService) NotifierService {
	return &notifierService{
		noteRepo:   noteRepo,
		vendorRepo: vendorRepo,
		email:      email,
	}
}

// Notify persists an in-app notification and, when the attributes carry a
// settlement completion, mails the vendor. Both deliveries are best effort.
func (s *notifierService) Notify(ctx context.Context, recipientID, title, message string, severity domain.NotificationSeverity, attributes map[string]string) {
	note := &domain.Notification{
		RecipientID: recipientID,
		Title:       title,
		Message:     message,
		Severity:    severity,
		Attributes:  attributes,
		CreatedOn:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("failed to persist notification", "recipientID", recipientID, "title", title, "error", err)
	}

	if attributes["topic"] != "settlement_completed" {
		return
	}

	vendor, err := s.vendorRepo.GetByID(ctx, recipientID)
	if err != nil {
		logger.Warn("failed to resolve vendor for notification email", "vendorID", recipientID, "error", err)
		return
	}
	if vendor.Email == "" {
		return
	}

	amountCents, _ := strconv.ParseInt(attributes["amount_cents"], 10, 64)
	if err := s.email.SendSettlementCompletedNotification(ctx, vendor.Email, vendor.Name,
		amountCents, attributes["payment_reference"], attributes["settlement_date"]); err != nil {
		logger.Warn("failed to send settlement email", "vendorID", recipientID, "error", err)
	}
}
