package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/repository"

	"github.com/lib/pq"
)

type settlementRepository struct {
	db *sql.DB
}

func NewSettlementRepository(db *sql.DB) repository.SettlementRepository {
	return &settlementRepository{db: db}
}

const settlementColumns = `id, vendor_id, amount_cents, settlement_date, transaction_ids, order_ids,
          status, request_type,
          bank_account_holder, bank_account_number, bank_name, bank_ifsc_code, COALESCE(bank_upi_handle, ''),
          period_start, period_end, requested_at, processed_at,
          COALESCE(payment_reference, ''), COALESCE(notes, ''), metadata`

func scanSettlement(row interface{ Scan(...any) error }) (*domain.SettlementRecord, error) {
	var rec domain.SettlementRecord
	var processedAt sql.NullTime
	var metadata []byte

	err := row.Scan(
		&rec.ID, &rec.VendorID, &rec.AmountCents, &rec.SettlementDate,
		pq.Array(&rec.TransactionIDs), pq.Array(&rec.OrderIDs),
		&rec.Status, &rec.RequestType,
		&rec.BankDetails.AccountHolder, &rec.BankDetails.AccountNumber, &rec.BankDetails.BankName,
		&rec.BankDetails.IFSCCode, &rec.BankDetails.UPIHandle,
		&rec.PeriodStart, &rec.PeriodEnd, &rec.RequestedAt, &processedAt,
		&rec.PaymentReference, &rec.Notes, &metadata,
	)
	if err != nil {
		return nil, err
	}
	if processedAt.Valid {
		rec.ProcessedAt = &processedAt.Time
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &rec.Metadata); err != nil {
			return nil, err
		}
	}
	return &rec, nil
}

func (r *settlementRepository) GetByID(ctx context.Context, id string) (*domain.SettlementRecord, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE id = $1`
	rec, err := scanSettlement(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("settlement", id)
	}
	return rec, err
}

func (r *settlementRepository) ListByVendor(ctx context.Context, vendorID string, limit int32) ([]domain.SettlementRecord, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements
	          WHERE vendor_id = $1 ORDER BY requested_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, vendorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.SettlementRecord
	for rows.Next() {
		rec, err := scanSettlement(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *settlementRepository) FindActiveOverlapping(ctx context.Context, vendorID string, start, end time.Time) (*domain.SettlementRecord, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements
	          WHERE vendor_id = $1 AND status IN ('PENDING', 'PROCESSING')
	            AND period_start < $3 AND period_end > $2
	          ORDER BY requested_at DESC LIMIT 1`
	rec, err := scanSettlement(r.db.QueryRowContext(ctx, query, vendorID, start, end))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

func (r *settlementRepository) FindLatestActiveByVendor(ctx context.Context, vendorID string) (*domain.SettlementRecord, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements
	          WHERE vendor_id = $1 AND status IN ('PENDING', 'PROCESSING')
	          ORDER BY requested_at DESC LIMIT 1`
	rec, err := scanSettlement(r.db.QueryRowContext(ctx, query, vendorID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// CreateWithEarmarks inserts the settlement row, then flips every referenced
// item to INCLUDED_IN_SETTLEMENT with a back-reference. The insert precedes
// the flag writes: an orphan settlement row (no flags) is recoverable, orphan
// flags pointing at a nonexistent settlement are not. If any referenced item
// was claimed since the caller queried it, the whole transaction rolls back.
func (r *settlementRepository) CreateWithEarmarks(ctx context.Context, rec *domain.SettlementRecord, txnIDs, orderIDs []string) error {
	metadata, err := json.Marshal(rec.Metadata)
	if err != nil {
		return err
	}

	err = execTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO settlements (id, vendor_id, amount_cents, settlement_date, transaction_ids, order_ids,
			                          status, request_type,
			                          bank_account_holder, bank_account_number, bank_name, bank_ifsc_code, bank_upi_handle,
			                          period_start, period_end, requested_at, notes, metadata)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
			rec.ID, rec.VendorID, rec.AmountCents, rec.SettlementDate,
			pq.Array(txnIDs), pq.Array(orderIDs),
			rec.Status, rec.RequestType,
			rec.BankDetails.AccountHolder, rec.BankDetails.AccountNumber, rec.BankDetails.BankName,
			rec.BankDetails.IFSCCode, rec.BankDetails.UPIHandle,
			rec.PeriodStart, rec.PeriodEnd, rec.RequestedAt, rec.Notes, metadata,
		)
		if err != nil {
			return err
		}

		if len(txnIDs) > 0 {
			result, err := tx.ExecContext(ctx,
				`UPDATE charging_transactions
				 SET settlement_status = 'INCLUDED_IN_SETTLEMENT', settlement_id = $1, updated_at = $2
				 WHERE id = ANY($3) AND settlement_status = ''`,
				rec.ID, rec.RequestedAt, pq.Array(txnIDs),
			)
			if err != nil {
				return err
			}
			flipped, err := result.RowsAffected()
			if err != nil {
				return err
			}
			if flipped != int64(len(txnIDs)) {
				return fmt.Errorf("earmarked %d of %d charging transactions, aborting", flipped, len(txnIDs))
			}
		}

		if len(orderIDs) > 0 {
			result, err := tx.ExecContext(ctx,
				`UPDATE restaurant_orders
				 SET settlement_status = 'INCLUDED_IN_SETTLEMENT', settlement_id = $1, updated_at = $2
				 WHERE id = ANY($3) AND settlement_status = ''`,
				rec.ID, rec.RequestedAt, pq.Array(orderIDs),
			)
			if err != nil {
				return err
			}
			flipped, err := result.RowsAffected()
			if err != nil {
				return err
			}
			if flipped != int64(len(orderIDs)) {
				return fmt.Errorf("earmarked %d of %d restaurant orders, aborting", flipped, len(orderIDs))
			}
		}

		return nil
	})

	// The partial unique index on (vendor_id, period_start) for non-terminal
	// rows closes the window between the overlap check and this commit.
	if isUniqueViolation(err) {
		return domain.NewWindowConflictError("", rec.PeriodStart, rec.PeriodEnd)
	}
	return err
}

// CompleteAndRelease marks the settlement COMPLETED and flips its earmarked
// items to SETTLED, atomically. A settlement that already reached a terminal
// state is rejected, never silently re-completed.
func (r *settlementRepository) CompleteAndRelease(ctx context.Context, settlementID, paymentReference, notes string, processedAt time.Time) error {
	return execTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE settlements
			 SET status = 'COMPLETED', payment_reference = $2, processed_at = $3,
			     notes = CASE WHEN $4 = '' THEN notes ELSE $4 END
			 WHERE id = $1 AND status IN ('PENDING', 'PROCESSING')`,
			settlementID, paymentReference, processedAt, notes,
		)
		if err != nil {
			return err
		}
		updated, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if updated == 0 {
			existing, err := scanSettlement(tx.QueryRowContext(ctx,
				`SELECT `+settlementColumns+` FROM settlements WHERE id = $1`, settlementID))
			if err == sql.ErrNoRows {
				return domain.NewNotFoundError("settlement", settlementID)
			}
			if err != nil {
				return err
			}
			return domain.NewAlreadyCompletedError(existing.ID, existing.PaymentReference, existing.ProcessedAt)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE charging_transactions
			 SET settlement_status = 'SETTLED', updated_at = $2
			 WHERE settlement_id = $1 AND settlement_status = 'INCLUDED_IN_SETTLEMENT'`,
			settlementID, processedAt,
		)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE restaurant_orders
			 SET settlement_status = 'SETTLED', updated_at = $2
			 WHERE settlement_id = $1 AND settlement_status = 'INCLUDED_IN_SETTLEMENT'`,
			settlementID, processedAt,
		)
		return err
	})
}

// SettleOrphanEarmarks flips earmarked items whose settlement row is gone
// directly to SETTLED. The dangling settlement_id back-reference is kept as
// provenance.
func (r *settlementRepository) SettleOrphanEarmarks(ctx context.Context, txnIDs, orderIDs []string, processedAt time.Time) error {
	return execTx(ctx, r.db, func(tx *sql.Tx) error {
		if len(txnIDs) > 0 {
			_, err := tx.ExecContext(ctx,
				`UPDATE charging_transactions
				 SET settlement_status = 'SETTLED', updated_at = $1
				 WHERE id = ANY($2) AND settlement_status = 'INCLUDED_IN_SETTLEMENT'`,
				processedAt, pq.Array(txnIDs),
			)
			if err != nil {
				return err
			}
		}
		if len(orderIDs) > 0 {
			_, err := tx.ExecContext(ctx,
				`UPDATE restaurant_orders
				 SET settlement_status = 'SETTLED', updated_at = $1
				 WHERE id = ANY($2) AND settlement_status = 'INCLUDED_IN_SETTLEMENT'`,
				processedAt, pq.Array(orderIDs),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
