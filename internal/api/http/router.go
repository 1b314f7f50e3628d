package http

import (
	"net/http"

	"voltpark-backend/internal/security"
	"voltpark-backend/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter assembles the admin API routes behind auth and request logging.
func NewRouter(
	settlements service.SettlementService,
	stations service.StationService,
	vendors service.VendorService,
	notifications service.NotificationService,
	tokens security.TokenManager,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	settlementHandler := NewSettlementHandler(settlements)
	api.HandleFunc("/settlements/pending", settlementHandler.ListPending).Methods("GET")
	api.HandleFunc("/settlements/complete", settlementHandler.Complete).Methods("POST")
	api.HandleFunc("/settlements/{settlementId}", settlementHandler.Get).Methods("GET")
	api.HandleFunc("/settlements", settlementHandler.Initiate).Methods("POST")
	api.HandleFunc("/vendors/{vendorId}/settlements/history", settlementHandler.VendorHistory).Methods("GET")
	api.HandleFunc("/vendors/{vendorId}/settlements", settlementHandler.VendorDetail).Methods("GET")

	vendorHandler := NewVendorHandler(vendors)
	api.HandleFunc("/vendors", vendorHandler.List).Methods("GET")
	api.HandleFunc("/vendors/{vendorId}/bank-details", vendorHandler.UpdateBankDetails).Methods("PUT")

	notificationHandler := NewNotificationHandler(notifications)
	api.HandleFunc("/vendors/{vendorId}/notifications", notificationHandler.List).Methods("GET")
	api.HandleFunc("/vendors/{vendorId}/notifications/{notificationId}/read", notificationHandler.MarkRead).Methods("POST")

	stationHandler := NewStationHandler(stations)
	api.HandleFunc("/stations/batch", stationHandler.BatchCreate).Methods("POST")
	api.HandleFunc("/stations", stationHandler.Create).Methods("POST")
	api.HandleFunc("/stations/{stationId}", stationHandler.Get).Methods("GET")
	api.HandleFunc("/stations/{stationId}/images", stationHandler.UpdateImages).Methods("PUT")
	api.HandleFunc("/vendors/{vendorId}/stations", stationHandler.ListByVendor).Methods("GET")

	return router
}
