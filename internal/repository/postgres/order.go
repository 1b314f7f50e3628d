package postgres

import (
	"context"
	"database/sql"
	"time"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, station_id, vendor_id, customer_id, item_count, total_amount_cents,
          status, settlement_status, settlement_id, delivered_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*domain.RestaurantOrder, error) {
	var o domain.RestaurantOrder
	var settlementID sql.NullString
	var deliveredAt sql.NullTime

	err := row.Scan(
		&o.ID, &o.StationID, &o.VendorID, &o.CustomerID, &o.ItemCount, &o.TotalAmountCents,
		&o.Status, &o.SettlementStatus, &settlementID, &deliveredAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if settlementID.Valid {
		o.SettlementID = &settlementID.String
	}
	if deliveredAt.Valid {
		o.DeliveredAt = &deliveredAt.Time
	}
	return &o, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.RestaurantOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM restaurant_orders WHERE id = $1`
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("restaurant order", id)
	}
	return o, err
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]domain.RestaurantOrder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.RestaurantOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) ListCompletedInWindow(ctx context.Context, vendorID string, start, end time.Time) ([]domain.RestaurantOrder, error) {
	if vendorID == "" {
		query := `SELECT ` + orderColumns + ` FROM restaurant_orders
		          WHERE status = 'DELIVERED'
		            AND COALESCE(delivered_at, updated_at) >= $1
		            AND COALESCE(delivered_at, updated_at) < $2
		          ORDER BY COALESCE(delivered_at, updated_at)`
		return r.list(ctx, query, start, end)
	}
	query := `SELECT ` + orderColumns + ` FROM restaurant_orders
	          WHERE vendor_id = $1 AND status = 'DELIVERED'
	            AND COALESCE(delivered_at, updated_at) >= $2
	            AND COALESCE(delivered_at, updated_at) < $3
	          ORDER BY COALESCE(delivered_at, updated_at)`
	return r.list(ctx, query, vendorID, start, end)
}

func (r *orderRepository) ListUnsettledInWindow(ctx context.Context, vendorID string, start, end time.Time) ([]domain.RestaurantOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM restaurant_orders
	          WHERE vendor_id = $1 AND status = 'DELIVERED' AND settlement_status = ''
	            AND COALESCE(delivered_at, updated_at) >= $2
	            AND COALESCE(delivered_at, updated_at) < $3
	          ORDER BY COALESCE(delivered_at, updated_at)`
	return r.list(ctx, query, vendorID, start, end)
}

func (r *orderRepository) ListBySettlement(ctx context.Context, settlementID string) ([]domain.RestaurantOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM restaurant_orders
	          WHERE settlement_id = $1 ORDER BY COALESCE(delivered_at, updated_at)`
	return r.list(ctx, query, settlementID)
}

func (r *orderRepository) ListEarmarked(ctx context.Context, vendorID string) ([]domain.RestaurantOrder, error) {
	if vendorID == "" {
		query := `SELECT ` + orderColumns + ` FROM restaurant_orders
		          WHERE settlement_status = 'INCLUDED_IN_SETTLEMENT'
		          ORDER BY COALESCE(delivered_at, updated_at)`
		return r.list(ctx, query)
	}
	query := `SELECT ` + orderColumns + ` FROM restaurant_orders
	          WHERE vendor_id = $1 AND settlement_status = 'INCLUDED_IN_SETTLEMENT'
	          ORDER BY COALESCE(delivered_at, updated_at)`
	return r.list(ctx, query, vendorID)
}
