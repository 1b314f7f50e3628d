package service

import (
	"context"
	"strings"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/logger"
	"voltpark-backend/internal/repository"

	"github.com/google/uuid"
)

type stationService struct {
	stationRepo repository.StationRepository
	vendorRepo  repository.VendorRepository
}

func NewStationService(stationRepo repository.StationRepository, vendorRepo repository.VendorRepository) StationService {
	return &stationService{
		stationRepo: stationRepo,
		vendorRepo:  vendorRepo,
	}
}

func (s *stationService) GetStation(ctx context.Context, stationID string) (*domain.Station, []domain.StationImage, error) {
	if stationID == "" {
		return nil, nil, domain.NewValidationError("station_id", "station id is required")
	}
	station, err := s.stationRepo.GetByID(ctx, stationID)
	if err != nil {
		return nil, nil, err
	}
	images, err := s.stationRepo.GetImages(ctx, stationID)
	if err != nil {
		return nil, nil, err
	}
	return station, images, nil
}

func (s *stationService) ListVendorStations(ctx context.Context, vendorID string) ([]domain.Station, error) {
	if vendorID == "" {
		return nil, domain.NewValidationError("vendor_id", "vendor id is required")
	}
	return s.stationRepo.ListByVendor(ctx, vendorID)
}

// CreateStation writes the station, its images, and the vendor counter
// bumps as one unit. Either all of it lands or none of it does.
func (s *stationService) CreateStation(ctx context.Context, req StationCreateRequest) (*domain.Station, error) {
	logger.EnterMethod("stationService.CreateStation", "vendorID", req.Station.VendorID, "name", req.Station.Name)

	if err := validateStation(&req.Station); err != nil {
		return nil, err
	}
	if _, err := s.vendorRepo.GetByID(ctx, req.Station.VendorID); err != nil {
		logger.ExitMethodWithError("stationService.CreateStation", err, "vendorID", req.Station.VendorID)
		return nil, err
	}

	station := req.Station
	if station.ID == "" {
		station.ID = "stn-" + uuid.NewString()
	}
	images := make([]domain.StationImage, len(req.Images))
	copy(images, req.Images)
	for i := range images {
		if images[i].ID == "" {
			images[i].ID = "img-" + uuid.NewString()
		}
		images[i].StationID = station.ID
	}

	if err := s.stationRepo.CreateWithImages(ctx, &station, images); err != nil {
		logger.ExitMethodWithError("stationService.CreateStation", err, "vendorID", req.Station.VendorID)
		return nil, err
	}

	logger.ExitMethod("stationService.CreateStation", "stationID", station.ID, "images", len(images))
	return &station, nil
}

func (s *stationService) UpdateStationImages(ctx context.Context, stationID string, add []domain.StationImage, removeImageIDs []string) error {
	logger.EnterMethod("stationService.UpdateStationImages",
		"stationID", stationID, "add", len(add), "remove", len(removeImageIDs))

	if stationID == "" {
		return domain.NewValidationError("station_id", "station id is required")
	}
	if len(add) == 0 && len(removeImageIDs) == 0 {
		return domain.NewValidationError("images", "nothing to add or remove")
	}
	toAdd := make([]domain.StationImage, len(add))
	copy(toAdd, add)
	for i := range toAdd {
		if toAdd[i].FileName == "" {
			return domain.NewValidationError("images", "image file name is required")
		}
		if toAdd[i].ID == "" {
			toAdd[i].ID = "img-" + uuid.NewString()
		}
		toAdd[i].StationID = stationID
	}

	if err := s.stationRepo.UpdateImages(ctx, stationID, toAdd, removeImageIDs); err != nil {
		logger.ExitMethodWithError("stationService.UpdateStationImages", err, "stationID", stationID)
		return err
	}

	logger.ExitMethod("stationService.UpdateStationImages", "stationID", stationID)
	return nil
}

// BatchCreateStations runs each element through CreateStation independently.
// One failing element does not roll back its siblings; the caller gets a
// per-element outcome instead.
func (s *stationService) BatchCreateStations(ctx context.Context, reqs []StationCreateRequest) []BatchResult {
	logger.EnterMethod("stationService.BatchCreateStations", "count", len(reqs))

	results := make([]BatchResult, 0, len(reqs))
	for i := range reqs {
		station, err := s.CreateStation(ctx, reqs[i])
		if err != nil {
			results = append(results, BatchResult{
				Succeeded: false,
				Error:     err.Error(),
				ErrorCode: domain.ErrorCode(err),
			})
			continue
		}
		results = append(results, BatchResult{
			StationID: station.ID,
			Succeeded: true,
		})
	}

	logger.ExitMethod("stationService.BatchCreateStations", "count", len(results))
	return results
}

func validateStation(station *domain.Station) error {
	if station.VendorID == "" {
		return domain.NewValidationError("vendor_id", "vendor id is required")
	}
	if strings.TrimSpace(station.Name) == "" {
		return domain.NewValidationError("name", "station name is required")
	}
	if len(station.ConnectorTypes) == 0 {
		return domain.NewValidationError("connector_types", "at least one connector type is required")
	}
	if station.PowerKW <= 0 {
		return domain.NewValidationError("power_kw", "power rating must be positive")
	}
	if station.PricePerKWh < 0 {
		return domain.NewValidationError("price_per_kwh", "price must not be negative")
	}
	return nil
}
