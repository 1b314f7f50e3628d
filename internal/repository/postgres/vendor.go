package postgres

import (
	"context"
	"database/sql"
	"time"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/repository"
)

type vendorRepository struct {
	db *sql.DB
}

func NewVendorRepository(db *sql.DB) repository.VendorRepository {
	return &vendorRepository{db: db}
}

const vendorColumns = `id, name, email, phone, status,
          bank_account_holder, bank_account_number, bank_name, bank_ifsc_code, COALESCE(bank_upi_handle, ''),
          station_count, total_image_uploads, created_on, updated_on`

func scanVendor(row interface{ Scan(...any) error }) (*domain.Vendor, error) {
	var v domain.Vendor
	var createdOn, updatedOn time.Time
	err := row.Scan(
		&v.ID, &v.Name, &v.Email, &v.Phone, &v.Status,
		&v.BankDetails.AccountHolder, &v.BankDetails.AccountNumber, &v.BankDetails.BankName,
		&v.BankDetails.IFSCCode, &v.BankDetails.UPIHandle,
		&v.StationCount, &v.TotalImageUploads, &createdOn, &updatedOn,
	)
	if err != nil {
		return nil, err
	}
	v.CreatedOn = createdOn.Format("2006-01-02")
	v.UpdatedOn = updatedOn.Format("2006-01-02")
	return &v, nil
}

func (r *vendorRepository) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`
	v, err := scanVendor(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("vendor", id)
	}
	return v, err
}

func (r *vendorRepository) List(ctx context.Context) ([]domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []domain.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, *v)
	}
	return vendors, rows.Err()
}

func (r *vendorRepository) Update(ctx context.Context, vendor *domain.Vendor) error {
	query := `UPDATE vendors
	          SET name = $2, email = $3, phone = $4, status = $5,
	              bank_account_holder = $6, bank_account_number = $7, bank_name = $8,
	              bank_ifsc_code = $9, bank_upi_handle = $10, updated_on = $11
	          WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		vendor.ID, vendor.Name, vendor.Email, vendor.Phone, vendor.Status,
		vendor.BankDetails.AccountHolder, vendor.BankDetails.AccountNumber, vendor.BankDetails.BankName,
		vendor.BankDetails.IFSCCode, vendor.BankDetails.UPIHandle, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError("vendor", vendor.ID)
	}
	return nil
}
