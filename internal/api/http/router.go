// Package http provides the REST API surface: routing, request
// handlers and middleware.
package http

import (
	"database/sql"

	"github.com/gorilla/mux"

	"islandrides-backend/internal/service"
)

// NewRouter wires all API routes with logging and panic recovery.
func NewRouter(
	db *sql.DB,
	reservations service.ReservationService,
	vehicles service.VehicleService,
	notifications service.NotificationService,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(Logging)
	r.Use(Recovery)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", HealthCheck(db)).Methods("GET")
	api.HandleFunc("/amenities", ListAmenities).Methods("GET")

	reservationHandler := NewReservationHandler(reservations)
	api.HandleFunc("/quotes", reservationHandler.Quote).Methods("POST")
	api.HandleFunc("/reservations", reservationHandler.Create).Methods("POST")
	api.HandleFunc("/reservations", reservationHandler.List).Methods("GET")
	api.HandleFunc("/reservations/{id}", reservationHandler.Get).Methods("GET")
	api.HandleFunc("/reservations/{id}/cancellation-quote", reservationHandler.CancellationQuote).Methods("GET")
	api.HandleFunc("/reservations/{id}/cancel", reservationHandler.Cancel).Methods("POST")
	api.HandleFunc("/reservations/{id}/ready", reservationHandler.MarkReady).Methods("POST")
	api.HandleFunc("/reservations/{id}/complete", reservationHandler.Complete).Methods("POST")

	vehicleHandler := NewVehicleHandler(vehicles)
	api.HandleFunc("/vehicles", vehicleHandler.List).Methods("GET")
	api.HandleFunc("/vehicles/{id}", vehicleHandler.Get).Methods("GET")

	notificationHandler := NewNotificationHandler(notifications)
	api.HandleFunc("/notifications", notificationHandler.List).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods("POST")

	return r
}
