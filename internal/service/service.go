package service

import (
	"context"

	"voltpark-backend/internal/domain"
)

// InitiateResult is the caller-facing outcome of a successful initiate.
type InitiateResult struct {
	SettlementID     string                  `json:"settlement_id"`
	Status           domain.SettlementStatus `json:"status"`
	TransactionCount int                     `json:"transaction_count"`
	AmountCents      int64                   `json:"amount_cents"`
}

// CompleteRequest identifies the settlement to complete either by exact id
// or by vendor+date, plus the payment evidence.
type CompleteRequest struct {
	SettlementID     string `json:"settlement_id"`
	VendorID         string `json:"vendor_id"`
	Date             string `json:"date"`
	PaymentReference string `json:"payment_reference"`
	Notes            string `json:"notes"`
}

// CompleteResult is the caller-facing outcome of a successful complete.
type CompleteResult struct {
	SettlementID string                  `json:"settlement_id"`
	Status       domain.SettlementStatus `json:"status"`
	AmountCents  int64                   `json:"amount_cents"`
	ItemCount    int                     `json:"item_count"`
	Recovered    bool                    `json:"recovered,omitempty"` // true when resolved through orphan recovery
}

// SettlementWithItems is a settlement record together with the revenue
// items it claims.
type SettlementWithItems struct {
	Record       *domain.SettlementRecord     `json:"record"`
	Transactions []domain.ChargingTransaction `json:"transactions"`
	Orders       []domain.RestaurantOrder     `json:"orders"`
}

type SettlementService interface {
	ListVendorsWithPendingSettlements(ctx context.Context, date string) ([]domain.VendorSettlementSummary, error)
	GetVendorSettlementDetail(ctx context.Context, vendorID, date string) (*domain.VendorSettlementDetail, error)
	GetSettlement(ctx context.Context, settlementID string) (*SettlementWithItems, error)
	ListVendorSettlements(ctx context.Context, vendorID string, limit int32) ([]domain.SettlementRecord, error)
	InitiateSettlement(ctx context.Context, vendorID, date string, amountCents int64) (*InitiateResult, error)
	CompleteSettlement(ctx context.Context, req CompleteRequest) (*CompleteResult, error)
}

// StationCreateRequest is one element of a batch station upload.
type StationCreateRequest struct {
	Station domain.Station        `json:"station"`
	Images  []domain.StationImage `json:"images"`
}

// BatchResult reports the outcome of one independently atomic batch element.
type BatchResult struct {
	StationID string `json:"station_id,omitempty"`
	Succeeded bool   `json:"succeeded"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

type StationService interface {
	GetStation(ctx context.Context, id string) (*domain.Station, []domain.StationImage, error)
	ListVendorStations(ctx context.Context, vendorID string) ([]domain.Station, error)
	CreateStation(ctx context.Context, req StationCreateRequest) (*domain.Station, error)
	UpdateStationImages(ctx context.Context, stationID string, add []domain.StationImage, removeImageIDs []string) error
	BatchCreateStations(ctx context.Context, requests []StationCreateRequest) []BatchResult
}

// VendorService is the vendor directory surface of the admin console.
// Bank-detail edits only affect settlements initiated afterwards; records
// already created keep their snapshot.
type VendorService interface {
	ListVendors(ctx context.Context) ([]domain.Vendor, error)
	UpdateBankDetails(ctx context.Context, vendorID string, details domain.BankDetails) (*domain.Vendor, error)
}

// NotifierService delivers vendor notifications. Delivery is fire-and-forget:
// failures are logged and never propagated to the caller.
type NotifierService interface {
	Notify(ctx context.Context, recipientID, title, message string, severity domain.NotificationSeverity, attributes map[string]string)
}

// NotificationService is the read side of the vendor notification feed.
type NotificationService interface {
	ListNotifications(ctx context.Context, recipientID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkNotificationRead(ctx context.Context, recipientID string, id int64) error
}

type EmailService interface {
	SendSettlementCompletedNotification(ctx context.Context, email, vendorName string, amountCents int64, paymentReference, date string) error
	SendPendingSettlementDigest(ctx context.Context, adminEmail, date string, summaries []domain.VendorSettlementSummary) error
}
