package http

import (
	"encoding/json"
	"net/http"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/service"

	"github.com/gorilla/mux"
)

// VendorHandler exposes the vendor directory endpoints.
type VendorHandler struct {
	vendors service.VendorService
}

func NewVendorHandler(vendors service.VendorService) *VendorHandler {
	return &VendorHandler{vendors: vendors}
}

// List handles GET /api/v1/vendors.
func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.vendors.ListVendors(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"vendors": vendors})
}

// UpdateBankDetails handles PUT /api/v1/vendors/{vendorId}/bank-details.
// Settlements already initiated keep their bank snapshot.
func (h *VendorHandler) UpdateBankDetails(w http.ResponseWriter, r *http.Request) {
	var details domain.BankDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "VALIDATION_ERROR", Message: "invalid request body"})
		return
	}

	vendor, err := h.vendors.UpdateBankDetails(r.Context(), mux.Vars(r)["vendorId"], details)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vendor)
}
