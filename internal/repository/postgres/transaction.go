package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/repository"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, station_id, vendor_id, customer_id, energy_kwh, total_amount_cents,
          merchant_share_cents, additional_charges, refunds, status, settlement_status, settlement_id,
          completed_at, updated_at`

func scanTransaction(row interface{ Scan(...any) error }) (*domain.ChargingTransaction, error) {
	var t domain.ChargingTransaction
	var merchantShare sql.NullInt64
	var settlementID sql.NullString
	var completedAt sql.NullTime
	var charges, refunds []byte

	err := row.Scan(
		&t.ID, &t.StationID, &t.VendorID, &t.CustomerID, &t.EnergyKWh, &t.TotalAmountCents,
		&merchantShare, &charges, &refunds, &t.Status, &t.SettlementStatus, &settlementID,
		&completedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if merchantShare.Valid {
		t.MerchantShare = &merchantShare.Int64
	}
	if settlementID.Valid {
		t.SettlementID = &settlementID.String
	}
	if completedAt.Valid {
		t.CompletedAt = &completedAt.Time
	}
	if len(charges) > 0 {
		if err := json.Unmarshal(charges, &t.AdditionalCharges); err != nil {
			return nil, err
		}
	}
	if len(refunds) > 0 {
		if err := json.Unmarshal(refunds, &t.Refunds); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.ChargingTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM charging_transactions WHERE id = $1`
	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("charging transaction", id)
	}
	return t, err
}

func (r *transactionRepository) list(ctx context.Context, query string, args ...any) ([]domain.ChargingTransaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []domain.ChargingTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *t)
	}
	return txns, rows.Err()
}

func (r *transactionRepository) ListCompletedInWindow(ctx context.Context, vendorID string, start, end time.Time) ([]domain.ChargingTransaction, error) {
	if vendorID == "" {
		query := `SELECT ` + transactionColumns + ` FROM charging_transactions
		          WHERE status = 'COMPLETED'
		            AND COALESCE(completed_at, updated_at) >= $1
		            AND COALESCE(completed_at, updated_at) < $2
		          ORDER BY COALESCE(completed_at, updated_at)`
		return r.list(ctx, query, start, end)
	}
	query := `SELECT ` + transactionColumns + ` FROM charging_transactions
	          WHERE vendor_id = $1 AND status = 'COMPLETED'
	            AND COALESCE(completed_at, updated_at) >= $2
	            AND COALESCE(completed_at, updated_at) < $3
	          ORDER BY COALESCE(completed_at, updated_at)`
	return r.list(ctx, query, vendorID, start, end)
}

func (r *transactionRepository) ListUnsettledInWindow(ctx context.Context, vendorID string, start, end time.Time) ([]domain.ChargingTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM charging_transactions
	          WHERE vendor_id = $1 AND status = 'COMPLETED' AND settlement_status = ''
	            AND COALESCE(completed_at, updated_at) >= $2
	            AND COALESCE(completed_at, updated_at) < $3
	          ORDER BY COALESCE(completed_at, updated_at)`
	return r.list(ctx, query, vendorID, start, end)
}

func (r *transactionRepository) ListBySettlement(ctx context.Context, settlementID string) ([]domain.ChargingTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM charging_transactions
	          WHERE settlement_id = $1 ORDER BY COALESCE(completed_at, updated_at)`
	return r.list(ctx, query, settlementID)
}

func (r *transactionRepository) ListEarmarked(ctx context.Context, vendorID string) ([]domain.ChargingTransaction, error) {
	if vendorID == "" {
		query := `SELECT ` + transactionColumns + ` FROM charging_transactions
		          WHERE settlement_status = 'INCLUDED_IN_SETTLEMENT'
		          ORDER BY COALESCE(completed_at, updated_at)`
		return r.list(ctx, query)
	}
	query := `SELECT ` + transactionColumns + ` FROM charging_transactions
	          WHERE vendor_id = $1 AND settlement_status = 'INCLUDED_IN_SETTLEMENT'
	          ORDER BY COALESCE(completed_at, updated_at)`
	return r.list(ctx, query, vendorID)
}
