package postgres

import (
	"database/sql"
	"fmt"
)

// InitSchema ensures all required tables and indexes exist. Statements are
// idempotent so repeated startups are safe.
func InitSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS vendors (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'ACTIVE',
			bank_account_holder TEXT NOT NULL DEFAULT '',
			bank_account_number TEXT NOT NULL DEFAULT '',
			bank_name TEXT NOT NULL DEFAULT '',
			bank_ifsc_code TEXT NOT NULL DEFAULT '',
			bank_upi_handle TEXT NOT NULL DEFAULT '',
			station_count INTEGER NOT NULL DEFAULT 0,
			total_image_uploads INTEGER NOT NULL DEFAULT 0,
			created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS stations (
			id TEXT PRIMARY KEY,
			vendor_id TEXT NOT NULL REFERENCES vendors(id),
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			connector_types TEXT[] NOT NULL DEFAULT '{}',
			power_kw INTEGER NOT NULL DEFAULT 0,
			price_per_kwh_cents BIGINT NOT NULL DEFAULT 0,
			has_restaurant BOOLEAN NOT NULL DEFAULT FALSE,
			status TEXT NOT NULL DEFAULT 'ACTIVE',
			created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stations_vendor ON stations(vendor_id)`,

		`CREATE TABLE IF NOT EXISTS station_images (
			id TEXT PRIMARY KEY,
			station_id TEXT NOT NULL REFERENCES stations(id),
			file_name TEXT NOT NULL,
			file_path TEXT NOT NULL DEFAULT '',
			is_primary BOOLEAN NOT NULL DEFAULT FALSE,
			created_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_station_images_station ON station_images(station_id)`,

		`CREATE TABLE IF NOT EXISTS charging_transactions (
			id TEXT PRIMARY KEY,
			station_id TEXT NOT NULL,
			vendor_id TEXT NOT NULL,
			customer_id TEXT NOT NULL DEFAULT '',
			energy_kwh DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_amount_cents BIGINT NOT NULL DEFAULT 0,
			merchant_share_cents BIGINT,
			additional_charges JSONB NOT NULL DEFAULT '[]',
			refunds JSONB NOT NULL DEFAULT '[]',
			status TEXT NOT NULL DEFAULT 'STARTED',
			settlement_status TEXT NOT NULL DEFAULT '',
			settlement_id TEXT,
			completed_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_charging_transactions_vendor ON charging_transactions(vendor_id)`,
		`CREATE INDEX IF NOT EXISTS idx_charging_transactions_settlement ON charging_transactions(settlement_id)`,

		`CREATE TABLE IF NOT EXISTS restaurant_orders (
			id TEXT PRIMARY KEY,
			station_id TEXT NOT NULL,
			vendor_id TEXT NOT NULL,
			customer_id TEXT NOT NULL DEFAULT '',
			item_count INTEGER NOT NULL DEFAULT 0,
			total_amount_cents BIGINT NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'PLACED',
			settlement_status TEXT NOT NULL DEFAULT '',
			settlement_id TEXT,
			delivered_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_restaurant_orders_vendor ON restaurant_orders(vendor_id)`,
		`CREATE INDEX IF NOT EXISTS idx_restaurant_orders_settlement ON restaurant_orders(settlement_id)`,

		`CREATE TABLE IF NOT EXISTS settlements (
			id TEXT PRIMARY KEY,
			vendor_id TEXT NOT NULL REFERENCES vendors(id),
			amount_cents BIGINT NOT NULL,
			settlement_date TEXT NOT NULL,
			transaction_ids TEXT[] NOT NULL DEFAULT '{}',
			order_ids TEXT[] NOT NULL DEFAULT '{}',
			status TEXT NOT NULL,
			request_type TEXT NOT NULL,
			bank_account_holder TEXT NOT NULL DEFAULT '',
			bank_account_number TEXT NOT NULL DEFAULT '',
			bank_name TEXT NOT NULL DEFAULT '',
			bank_ifsc_code TEXT NOT NULL DEFAULT '',
			bank_upi_handle TEXT NOT NULL DEFAULT '',
			period_start TIMESTAMPTZ NOT NULL,
			period_end TIMESTAMPTZ NOT NULL,
			requested_at TIMESTAMPTZ NOT NULL,
			processed_at TIMESTAMPTZ,
			payment_reference TEXT,
			notes TEXT,
			metadata JSONB NOT NULL DEFAULT '{}'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_settlements_vendor ON settlements(vendor_id)`,
		// At most one live settlement per vendor and window. This backs up
		// the application-level overlap check against concurrent initiates.
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_settlements_vendor_window_active
			ON settlements(vendor_id, period_start)
			WHERE status IN ('PENDING', 'PROCESSING')`,

		`CREATE TABLE IF NOT EXISTS notifications (
			id BIGSERIAL PRIMARY KEY,
			recipient_id TEXT NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			severity TEXT NOT NULL DEFAULT 'INFO',
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			attributes JSONB NOT NULL DEFAULT '{}',
			created_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications(recipient_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
