package domain

import "time"

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// RestaurantOrder is a food order placed at a charging site. The vendor
// keeps the full order amount; the platform charges no commission on food.
type RestaurantOrder struct {
	ID               string               `json:"id"`
	StationID        string               `json:"station_id"`
	VendorID         string               `json:"vendor_id"`
	CustomerID       string               `json:"customer_id"`
	ItemCount        int32                `json:"item_count"`
	TotalAmountCents int64                `json:"total_amount_cents"`
	Status           OrderStatus          `json:"status"`
	SettlementStatus ItemSettlementStatus `json:"settlement_status"`
	SettlementID     *string              `json:"settlement_id,omitempty"`
	DeliveredAt      *time.Time           `json:"delivered_at,omitempty"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// CompletionTime mirrors ChargingTransaction.CompletionTime for windowing.
func (o *RestaurantOrder) CompletionTime() time.Time {
	if o.DeliveredAt != nil {
		return *o.DeliveredAt
	}
	return o.UpdatedAt
}
