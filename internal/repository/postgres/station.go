package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/repository"

	"github.com/lib/pq"
)

type stationRepository struct {
	db *sql.DB
}

func NewStationRepository(db *sql.DB) repository.StationRepository {
	return &stationRepository{db: db}
}

func (r *stationRepository) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	query := `SELECT id, vendor_id, name, address, city, connector_types, power_kw,
	                 price_per_kwh_cents, has_restaurant, status, created_on, updated_on
	          FROM stations WHERE id = $1`
	var s domain.Station
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.VendorID, &s.Name, &s.Address, &s.City, pq.Array(&s.ConnectorTypes),
		&s.PowerKW, &s.PricePerKWh, &s.HasRestaurant, &s.Status, &s.CreatedOn, &s.UpdatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("station", id)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stationRepository) ListByVendor(ctx context.Context, vendorID string) ([]domain.Station, error) {
	query := `SELECT id, vendor_id, name, address, city, connector_types, power_kw,
	                 price_per_kwh_cents, has_restaurant, status, created_on, updated_on
	          FROM stations WHERE vendor_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []domain.Station
	for rows.Next() {
		var s domain.Station
		if err := rows.Scan(
			&s.ID, &s.VendorID, &s.Name, &s.Address, &s.City, pq.Array(&s.ConnectorTypes),
			&s.PowerKW, &s.PricePerKWh, &s.HasRestaurant, &s.Status, &s.CreatedOn, &s.UpdatedOn,
		); err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

func (r *stationRepository) GetImages(ctx context.Context, stationID string) ([]domain.StationImage, error) {
	query := `SELECT id, station_id, file_name, file_path, is_primary, created_on
	          FROM station_images WHERE station_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.StationImage
	for rows.Next() {
		var img domain.StationImage
		if err := rows.Scan(&img.ID, &img.StationID, &img.FileName, &img.FilePath, &img.IsPrimary, &img.CreatedOn); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// CreateWithImages commits the station, its images and the owning vendor's
// counter increments in one transaction.
func (r *stationRepository) CreateWithImages(ctx context.Context, station *domain.Station, images []domain.StationImage) error {
	now := time.Now().UTC()
	return execTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO stations (id, vendor_id, name, address, city, connector_types, power_kw,
			                       price_per_kwh_cents, has_restaurant, status, created_on, updated_on)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
			station.ID, station.VendorID, station.Name, station.Address, station.City,
			pq.Array(station.ConnectorTypes), station.PowerKW, station.PricePerKWh,
			station.HasRestaurant, station.Status, now,
		)
		if err != nil {
			return err
		}

		for i := range images {
			img := &images[i]
			_, err := tx.ExecContext(ctx,
				`INSERT INTO station_images (id, station_id, file_name, file_path, is_primary, created_on)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				img.ID, station.ID, img.FileName, img.FilePath, img.IsPrimary, now,
			)
			if err != nil {
				return err
			}
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE vendors
			 SET station_count = station_count + 1,
			     total_image_uploads = total_image_uploads + $2,
			     updated_on = $3
			 WHERE id = $1`,
			station.VendorID, len(images), now,
		)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return domain.NewNotFoundError("vendor", station.VendorID)
		}
		return nil
	})
}

// UpdateImages commits image additions/removals and the vendor's upload
// counter increment in one transaction.
func (r *stationRepository) UpdateImages(ctx context.Context, stationID string, add []domain.StationImage, removeImageIDs []string) error {
	now := time.Now().UTC()
	return execTx(ctx, r.db, func(tx *sql.Tx) error {
		var vendorID string
		err := tx.QueryRowContext(ctx, `SELECT vendor_id FROM stations WHERE id = $1`, stationID).Scan(&vendorID)
		if err == sql.ErrNoRows {
			return domain.NewNotFoundError("station", stationID)
		}
		if err != nil {
			return err
		}

		for i := range add {
			img := &add[i]
			_, err := tx.ExecContext(ctx,
				`INSERT INTO station_images (id, station_id, file_name, file_path, is_primary, created_on)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				img.ID, stationID, img.FileName, img.FilePath, img.IsPrimary, now,
			)
			if err != nil {
				return err
			}
		}

		if len(removeImageIDs) > 0 {
			result, err := tx.ExecContext(ctx,
				`DELETE FROM station_images WHERE station_id = $1 AND id = ANY($2)`,
				stationID, pq.Array(removeImageIDs),
			)
			if err != nil {
				return err
			}
			removed, err := result.RowsAffected()
			if err != nil {
				return err
			}
			if removed != int64(len(removeImageIDs)) {
				return fmt.Errorf("expected to remove %d images, removed %d", len(removeImageIDs), removed)
			}
		}

		if len(add) > 0 {
			_, err := tx.ExecContext(ctx,
				`UPDATE vendors SET total_image_uploads = total_image_uploads + $2, updated_on = $3 WHERE id = $1`,
				vendorID, len(add), now,
			)
			if err != nil {
				return err
			}
		}

		_, err = tx.ExecContext(ctx, `UPDATE stations SET updated_on = $2 WHERE id = $1`, stationID, now)
		return err
	})
}
