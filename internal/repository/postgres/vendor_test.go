package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestVendorRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("ScansTimestampColumns", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := postgres.NewVendorRepository(db)

		// created_on/updated_on are TIMESTAMPTZ columns and arrive as
		// time.Time values.
		createdOn := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
		rows := sqlmock.NewRows([]string{
			"id", "name", "email", "phone", "status",
			"bank_account_holder", "bank_account_number", "bank_name", "bank_ifsc_code", "bank_upi_handle",
			"station_count", "total_image_uploads", "created_on", "updated_on",
		}).AddRow(
			"vendor-1", "Volt Charging Co", "ops@voltcharging.test", "", "ACTIVE",
			"Volt Charging Co", "000111222333", "First National", "FNB0001234", "",
			int32(3), int32(9), createdOn, createdOn.AddDate(0, 0, 1),
		)
		mock.ExpectQuery("FROM vendors WHERE id =").
			WithArgs("vendor-1").
			WillReturnRows(rows)

		vendor, err := repo.GetByID(ctx, "vendor-1")
		assert.NoError(t, err)
		assert.Equal(t, "Volt Charging Co", vendor.Name)
		assert.Equal(t, "000111222333", vendor.BankDetails.AccountNumber)
		assert.Equal(t, "2026-03-15", vendor.CreatedOn)
		assert.Equal(t, "2026-03-16", vendor.UpdatedOn)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownVendor", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := postgres.NewVendorRepository(db)

		mock.ExpectQuery("FROM vendors WHERE id =").
			WithArgs("vendor-ghost").
			WillReturnError(sql.ErrNoRows)

		_, err = repo.GetByID(ctx, "vendor-ghost")
		assert.True(t, domain.IsNotFound(err))
	})
}
