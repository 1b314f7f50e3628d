package postgres_test

import (
	"context"
	"errors"
	"testing"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func stationFixture() (*domain.Station, []domain.StationImage) {
	station := &domain.Station{
		ID:             "stn-1",
		VendorID:       "vendor-1",
		Name:           "Downtown Hub",
		City:           "Austin",
		ConnectorTypes: []string{"CCS2", "CHAdeMO"},
		PowerKW:        120,
		PricePerKWh:    45,
		Status:         "ACTIVE",
	}
	images := []domain.StationImage{
		{ID: "img-1", StationID: "stn-1", FileName: "front.jpg"},
		{ID: "img-2", StationID: "stn-1", FileName: "bays.jpg"},
		{ID: "img-3", StationID: "stn-1", FileName: "canopy.jpg", IsPrimary: true},
	}
	return station, images
}

func TestStationRepository_CreateWithImages(t *testing.T) {
	ctx := context.Background()

	t.Run("IncrementsVendorCounters", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := postgres.NewStationRepository(db)
		station, images := stationFixture()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO stations").
			WillReturnResult(sqlmock.NewResult(0, 1))
		for range images {
			mock.ExpectExec("INSERT INTO station_images").
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
		// station_count goes up by one, total_image_uploads by the image count.
		mock.ExpectExec("UPDATE vendors").
			WithArgs("vendor-1", 3, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.CreateWithImages(ctx, station, images)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackWhenAnImageInsertFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := postgres.NewStationRepository(db)
		station, images := stationFixture()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO stations").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO station_images").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO station_images").
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err = repo.CreateWithImages(ctx, station, images)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownVendorRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := postgres.NewStationRepository(db)
		station, _ := stationFixture()
		station.VendorID = "ghost"

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO stations").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE vendors").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.CreateWithImages(ctx, station, nil)
		assert.True(t, domain.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStationRepository_UpdateImages(t *testing.T) {
	ctx := context.Background()

	t.Run("AddAndRemoveInOneTransaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := postgres.NewStationRepository(db)

		add := []domain.StationImage{{ID: "img-new", StationID: "stn-1", FileName: "night.jpg"}}

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT vendor_id FROM stations").
			WithArgs("stn-1").
			WillReturnRows(sqlmock.NewRows([]string{"vendor_id"}).AddRow("vendor-1"))
		mock.ExpectExec("INSERT INTO station_images").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM station_images").
			WithArgs("stn-1", pq.Array([]string{"img-old"})).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE vendors").
			WithArgs("vendor-1", 1, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.UpdateImages(ctx, "stn-1", add, []string{"img-old"})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RemovalCountMismatchRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := postgres.NewStationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT vendor_id FROM stations").
			WithArgs("stn-1").
			WillReturnRows(sqlmock.NewRows([]string{"vendor_id"}).AddRow("vendor-1"))
		mock.ExpectExec("DELETE FROM station_images").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		err = repo.UpdateImages(ctx, "stn-1", nil, []string{"img-a", "img-b"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "expected to remove 2 images, removed 1")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownStation", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := postgres.NewStationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT vendor_id FROM stations").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"vendor_id"}))
		mock.ExpectRollback()

		err = repo.UpdateImages(ctx, "ghost", nil, []string{"img-a"})
		assert.True(t, domain.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
