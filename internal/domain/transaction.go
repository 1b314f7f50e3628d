package domain

import "time"

type TransactionStatus string

const (
	TransactionStatusStarted   TransactionStatus = "STARTED"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFaulted   TransactionStatus = "FAULTED"
)

// ItemSettlementStatus is the denormalized settlement flag carried by every
// revenue item (charging transaction or restaurant order). Empty means the
// item has never been claimed by a settlement.
type ItemSettlementStatus string

const (
	ItemSettlementStatusUnset    ItemSettlementStatus = ""
	ItemSettlementStatusIncluded ItemSettlementStatus = "INCLUDED_IN_SETTLEMENT"
	ItemSettlementStatusSettled  ItemSettlementStatus = "SETTLED"
)

type AdjustmentStatus string

const (
	AdjustmentStatusProcessed AdjustmentStatus = "PROCESSED"
	AdjustmentStatusPending   AdjustmentStatus = "PENDING"
	AdjustmentStatusRejected  AdjustmentStatus = "REJECTED"
)

// Adjustment is a post-session amendment to a charging transaction: an
// additional charge (idle fee, parking) or a refund. Only PROCESSED
// adjustments count toward the merchant receivable.
type Adjustment struct {
	AmountCents int64            `json:"amount_cents"`
	Reason      string           `json:"reason"`
	Status      AdjustmentStatus `json:"status"`
	CreatedOn   time.Time        `json:"created_on"`
}

// ChargingTransaction is a completed charging session billing entry.
type ChargingTransaction struct {
	ID                string               `json:"id"`
	StationID         string               `json:"station_id"`
	VendorID          string               `json:"vendor_id"`
	CustomerID        string               `json:"customer_id"`
	EnergyKWh         float64              `json:"energy_kwh"`
	TotalAmountCents  int64                `json:"total_amount_cents"`
	MerchantShare     *int64               `json:"merchant_share_cents,omitempty"` // explicit split written by the pricing engine, nil on legacy rows
	AdditionalCharges []Adjustment         `json:"additional_charges,omitempty"`
	Refunds           []Adjustment         `json:"refunds,omitempty"`
	Status            TransactionStatus    `json:"status"`
	SettlementStatus  ItemSettlementStatus `json:"settlement_status"`
	SettlementID      *string              `json:"settlement_id,omitempty"`
	CompletedAt       *time.Time           `json:"completed_at,omitempty"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// CompletionTime is the timestamp used for settlement windowing: the session
// completion time, falling back to the last-modified time on rows where the
// charger never reported a stop event.
func (t *ChargingTransaction) CompletionTime() time.Time {
	if t.CompletedAt != nil {
		return *t.CompletedAt
	}
	return t.UpdatedAt
}
