package http

import (
	"encoding/json"
	"net/http"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/service"

	"github.com/gorilla/mux"
)

// StationHandler exposes station management endpoints for vendor onboarding.
type StationHandler struct {
	stations service.StationService
}

func NewStationHandler(stations service.StationService) *StationHandler {
	return &StationHandler{stations: stations}
}

// Get handles GET /api/v1/stations/{stationId}.
func (h *StationHandler) Get(w http.ResponseWriter, r *http.Request) {
	station, images, err := h.stations.GetStation(r.Context(), mux.Vars(r)["stationId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"station": station, "images": images})
}

// ListByVendor handles GET /api/v1/vendors/{vendorId}/stations.
func (h *StationHandler) ListByVendor(w http.ResponseWriter, r *http.Request) {
	stations, err := h.stations.ListVendorStations(r.Context(), mux.Vars(r)["vendorId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stations": stations})
}

// Create handles POST /api/v1/stations.
func (h *StationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.StationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "VALIDATION_ERROR", Message: "invalid request body"})
		return
	}

	station, err := h.stations.CreateStation(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, station)
}

type updateImagesRequest struct {
	Add            []domain.StationImage `json:"add"`
	RemoveImageIDs []string              `json:"remove_image_ids"`
}

// UpdateImages handles PUT /api/v1/stations/{stationId}/images.
func (h *StationHandler) UpdateImages(w http.ResponseWriter, r *http.Request) {
	var req updateImagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "VALIDATION_ERROR", Message: "invalid request body"})
		return
	}

	if err := h.stations.UpdateStationImages(r.Context(), mux.Vars(r)["stationId"], req.Add, req.RemoveImageIDs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type batchCreateRequest struct {
	Stations []service.StationCreateRequest `json:"stations"`
}

// BatchCreate handles POST /api/v1/stations/batch. Elements succeed or
// fail independently; the response carries one result per element.
func (h *StationHandler) BatchCreate(w http.ResponseWriter, r *http.Request) {
	var req batchCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "VALIDATION_ERROR", Message: "invalid request body"})
		return
	}
	if len(req.Stations) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "VALIDATION_ERROR", Message: "stations list is empty"})
		return
	}

	results := h.stations.BatchCreateStations(r.Context(), req.Stations)
	writeJSON(w, http.StatusMultiStatus, map[string]any{"results": results})
}
