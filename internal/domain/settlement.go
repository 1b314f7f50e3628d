package domain

import "time"

type SettlementStatus string

const (
	SettlementStatusPending    SettlementStatus = "PENDING"
	SettlementStatusProcessing SettlementStatus = "PROCESSING"
	SettlementStatusCompleted  SettlementStatus = "COMPLETED"
	SettlementStatusFailed     SettlementStatus = "FAILED" // manual intervention only, never set automatically
)

// IsTerminal reports whether the settlement can no longer claim or release
// revenue items.
func (s SettlementStatus) IsTerminal() bool {
	return s == SettlementStatusCompleted || s == SettlementStatusFailed
}

type SettlementRequestType string

const (
	SettlementRequestTypeManual SettlementRequestType = "MANUAL_PAYOUT"
)

// SettlementRecord is one batch payout covering a vendor's completed, unpaid
// revenue for a time window. BankDetails is a copy taken at creation, not a
// reference to the vendor row.
type SettlementRecord struct {
	ID               string                `json:"id"`
	VendorID         string                `json:"vendor_id"`
	AmountCents      int64                 `json:"amount_cents"`
	SettlementDate   string                `json:"settlement_date"` // YYYY-MM-DD
	TransactionIDs   []string              `json:"transaction_ids"`
	OrderIDs         []string              `json:"order_ids"`
	Status           SettlementStatus      `json:"status"`
	RequestType      SettlementRequestType `json:"request_type"`
	BankDetails      BankDetails           `json:"bank_details"`
	PeriodStart      time.Time             `json:"period_start"`
	PeriodEnd        time.Time             `json:"period_end"` // exclusive
	RequestedAt      time.Time             `json:"requested_at"`
	ProcessedAt      *time.Time            `json:"processed_at,omitempty"`
	PaymentReference string                `json:"payment_reference,omitempty"`
	Notes            string                `json:"notes,omitempty"`
	Metadata         map[string]string     `json:"metadata,omitempty"`
}

// ItemCount is the number of revenue items claimed by this settlement.
func (r *SettlementRecord) ItemCount() int {
	return len(r.TransactionIDs) + len(r.OrderIDs)
}

// VendorSettlementSummary is one row of the pending-settlements ranking.
type VendorSettlementSummary struct {
	VendorID           string `json:"vendor_id"`
	VendorName         string `json:"vendor_name"`
	PendingCents       int64  `json:"pending_cents"`
	EarmarkedCents     int64  `json:"earmarked_cents"`
	SettledCents       int64  `json:"settled_cents"`
	PendingItemCount   int32  `json:"pending_item_count"`
	EarmarkedItemCount int32  `json:"earmarked_item_count"`
	SettledItemCount   int32  `json:"settled_item_count"`
}

// SettlementLineItem is one revenue item in a vendor's settlement detail.
type SettlementLineItem struct {
	ItemID           string               `json:"item_id"`
	ItemType         string               `json:"item_type"` // "charging_transaction" or "restaurant_order"
	TotalAmountCents int64                `json:"total_amount_cents"`
	ReceivableCents  int64                `json:"receivable_cents"`
	SettlementStatus ItemSettlementStatus `json:"settlement_status"`
	SettlementID     *string              `json:"settlement_id,omitempty"`
	CompletedAt      time.Time            `json:"completed_at"`
}

// VendorSettlementDetail is the itemized view for one vendor and day.
type VendorSettlementDetail struct {
	VendorID                  string               `json:"vendor_id"`
	VendorName                string               `json:"vendor_name"`
	Date                      string               `json:"date"`
	Items                     []SettlementLineItem `json:"items"`
	PendingCents              int64                `json:"pending_cents"`
	EarmarkedCents            int64                `json:"earmarked_cents"`
	SettledCents              int64                `json:"settled_cents"`
	EstimatedPlatformFeeCents int64                `json:"estimated_platform_fee_cents"`
	ActiveSettlement          *SettlementRecord    `json:"active_settlement,omitempty"`
}
