package http

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"voltpark-backend/internal/service"

	"github.com/gorilla/mux"
)

// SettlementHandler exposes the admin settlement console endpoints.
type SettlementHandler struct {
	settlements service.SettlementService
}

func NewSettlementHandler(settlements service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlements: settlements}
}

// ListPending handles GET /api/v1/settlements/pending?date=YYYY-MM-DD.
func (h *SettlementHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.settlements.ListVendorsWithPendingSettlements(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"vendors": summaries})
}

// VendorDetail handles GET /api/v1/vendors/{vendorId}/settlements?date=YYYY-MM-DD.
func (h *SettlementHandler) VendorDetail(w http.ResponseWriter, r *http.Request) {
	vendorID := mux.Vars(r)["vendorId"]
	detail, err := h.settlements.GetVendorSettlementDetail(r.Context(), vendorID, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Get handles GET /api/v1/settlements/{settlementId}.
func (h *SettlementHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.settlements.GetSettlement(r.Context(), mux.Vars(r)["settlementId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// VendorHistory handles GET /api/v1/vendors/{vendorId}/settlements/history?limit=.
func (h *SettlementHandler) VendorHistory(w http.ResponseWriter, r *http.Request) {
	var limit int32
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil {
			limit = int32(v)
		}
	}
	records, err := h.settlements.ListVendorSettlements(r.Context(), mux.Vars(r)["vendorId"], limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settlements": records})
}

type initiateRequest struct {
	VendorID    string `json:"vendor_id"`
	Date        string `json:"date"`
	AmountCents int64  `json:"amount_cents"`
	// Amount as a decimal string is accepted for older console builds.
	Amount string `json:"amount,omitempty"`
}

// Initiate handles POST /api/v1/settlements.
func (h *SettlementHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	var req initiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "VALIDATION_ERROR", Message: "invalid request body"})
		return
	}
	if req.AmountCents == 0 && req.Amount != "" {
		if v, err := strconv.ParseFloat(req.Amount, 64); err == nil {
			// Round, don't truncate: 19.99 parses as 19.9899..., and
			// truncation would drop a cent.
			req.AmountCents = int64(math.Round(v * 100))
		}
	}

	result, err := h.settlements.InitiateSettlement(r.Context(), req.VendorID, req.Date, req.AmountCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// Complete handles POST /api/v1/settlements/complete.
func (h *SettlementHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req service.CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "VALIDATION_ERROR", Message: "invalid request body"})
		return
	}

	result, err := h.settlements.CompleteSettlement(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
