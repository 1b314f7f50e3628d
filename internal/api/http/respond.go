package http

import (
	"encoding/json"
	"net/http"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/logger"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps domain error codes onto HTTP statuses. Unrecognized
// errors are reported as 500 without leaking internals.
func writeError(w http.ResponseWriter, err error) {
	code := domain.ErrorCode(err)

	var status int
	switch code {
	case domain.CodeValidation:
		status = http.StatusBadRequest
	case domain.CodeNotFound:
		status = http.StatusNotFound
	case domain.CodeWindowConflict, domain.CodeAlreadyCompleted:
		status = http.StatusConflict
	case domain.CodeNoPendingWork:
		status = http.StatusUnprocessableEntity
	default:
		logger.Error("request failed", "code", code, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Code: code, Message: "internal server error"})
		return
	}

	writeJSON(w, status, errorBody{Code: code, Message: err.Error()})
}
