package http

import (
	"net/http"
	"strconv"

	"voltpark-backend/internal/service"

	"github.com/gorilla/mux"
)

// NotificationHandler exposes the vendor notification feed.
type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /api/v1/vendors/{vendorId}/notifications?limit=&offset=.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	var limit, offset int32
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 32); err == nil {
		limit = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 32); err == nil {
		offset = int32(v)
	}

	notes, total, err := h.notifications.ListNotifications(r.Context(), mux.Vars(r)["vendorId"], limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": notes, "total": total})
}

// MarkRead handles POST /api/v1/vendors/{vendorId}/notifications/{notificationId}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["notificationId"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "VALIDATION_ERROR", Message: "invalid notification id"})
		return
	}

	if err := h.notifications.MarkNotificationRead(r.Context(), mux.Vars(r)["vendorId"], id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
