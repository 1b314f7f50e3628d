package utils

import (
	"math"

	"voltpark-backend/internal/domain"
)

// MerchantReceivable computes the vendor's owed share of one completed
// charging transaction, in cents. The explicit merchant share written by the
// pricing engine wins when present; legacy rows fall back to the total minus
// the fixed platform fee, floored at zero. Processed additional charges are
// added and processed refunds subtracted; pending and rejected adjustments
// are ignored. Pure function, safe to re-evaluate.
func MerchantReceivable(txn *domain.ChargingTransaction, fixedFeeCents int64) int64 {
	var receivable int64
	if txn.MerchantShare != nil {
		receivable = *txn.MerchantShare
	} else {
		receivable = txn.TotalAmountCents - fixedFeeCents
		if receivable < 0 {
			receivable = 0
		}
	}

	for _, charge := range txn.AdditionalCharges {
		if charge.Status == domain.AdjustmentStatusProcessed {
			receivable += charge.AmountCents
		}
	}
	for _, refund := range txn.Refunds {
		if refund.Status == domain.AdjustmentStatusProcessed {
			receivable -= refund.AmountCents
		}
	}

	return receivable
}

// OrderReceivable computes the vendor's owed share of a restaurant order.
// The platform takes no commission on food, so the vendor keeps the full
// order amount. The asymmetry with charging revenue is intentional.
func OrderReceivable(order *domain.RestaurantOrder) int64 {
	return order.TotalAmountCents
}

// PlatformFeeCents is the percentage-based platform fee used in reporting.
// It coexists with the fixed-fee fallback in MerchantReceivable and the two
// are not reconciled with each other.
func PlatformFeeCents(totalCents int64, percent float64) int64 {
	return int64(math.Round(float64(totalCents) * percent / 100))
}
