package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"islandrides-backend/internal/cancellation"
	"islandrides-backend/internal/domain"
	"islandrides-backend/internal/pricing"
	"islandrides-backend/internal/service"
	"islandrides-backend/internal/validation"
)

// ReservationHandler exposes quoting, booking and lifecycle endpoints.
type ReservationHandler struct {
	reservations service.ReservationService
}

func NewReservationHandler(reservations service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

// BookingRequest carries the booking form plus the vehicle being
// booked. Field names mirror the frontend form.
type BookingRequest struct {
	VehicleID     int32    `json:"vehicleId"`
	UserID        int32    `json:"userId"`
	Title         string   `json:"title"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	DateOfBirth   string   `json:"dateOfBirth"`
	LicenseNumber string   `json:"licenseNumber"`
	PickupDate    string   `json:"pickupDate"`
	DropoffDate   string   `json:"dropoffDate"`
	PickupTime    string   `json:"pickupTime"`
	Amenities     []string `json:"amenities"`
	AcceptTerms   bool     `json:"acceptTerms"`
}

func (req *BookingRequest) form() validation.BookingForm {
	return validation.BookingForm{
		Title:         req.Title,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		DateOfBirth:   req.DateOfBirth,
		LicenseNumber: req.LicenseNumber,
		PickupDate:    req.PickupDate,
		DropoffDate:   req.DropoffDate,
		Amenities:     req.Amenities,
		AcceptTerms:   req.AcceptTerms,
	}
}

// QuoteResponse is the priced breakdown for a prospective booking.
type QuoteResponse struct {
	DurationDays int32   `json:"durationDays"`
	Base         float64 `json:"base"`
	AmenityCost  float64 `json:"amenityCost"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
	Currency     string  `json:"currency"`
}

func quoteResponse(b *pricing.Breakdown) QuoteResponse {
	return QuoteResponse{
		DurationDays: b.DurationDays,
		Base:         b.BaseCents.Float64(),
		AmenityCost:  b.AmenityCents.Float64(),
		Tax:          b.TaxCents.Float64(),
		Total:        b.TotalCents.Float64(),
		Currency:     "FJD",
	}
}

// ReservationResponse is the API shape of a reservation.
type ReservationResponse struct {
	ID           string   `json:"id"`
	VehicleID    int32    `json:"vehicleId"`
	UserID       int32    `json:"userId"`
	PickupDate   string   `json:"pickupDate"`
	DropoffDate  string   `json:"dropoffDate"`
	PickupTime   string   `json:"pickupTime,omitempty"`
	Amenities    []string `json:"amenities"`
	DurationDays int32    `json:"durationDays"`
	Base         float64  `json:"base"`
	AmenityCost  float64  `json:"amenityCost"`
	Tax          float64  `json:"tax"`
	Total        float64  `json:"total"`
	Currency     string   `json:"currency"`
	Status       string   `json:"status"`
	CreatedOn    string   `json:"createdOn,omitempty"`
}

func reservationResponse(rv *domain.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:           rv.ID,
		VehicleID:    rv.VehicleID,
		UserID:       rv.UserID,
		PickupDate:   rv.PickupDate,
		DropoffDate:  rv.DropoffDate,
		PickupTime:   rv.PickupTime,
		Amenities:    rv.Amenities,
		DurationDays: rv.DurationDays,
		Base:         rv.BaseCents.Float64(),
		AmenityCost:  rv.AmenityCents.Float64(),
		Tax:          rv.TaxCents.Float64(),
		Total:        rv.TotalCents.Float64(),
		Currency:     "FJD",
		Status:       string(rv.Status),
	}
	if !rv.CreatedOn.IsZero() {
		resp.CreatedOn = rv.CreatedOn.Format("2006-01-02T15:04:05Z07:00")
	}
	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}
	return resp
}

// CancellationQuoteResponse is the fee preview shown before a
// cancellation is confirmed.
type CancellationQuoteResponse struct {
	HoursToPickup   float64 `json:"hoursToPickup"`
	FeePercent      int64   `json:"feePercent"`
	Fee             float64 `json:"fee"`
	Currency        string  `json:"currency"`
	RequiresPayment bool    `json:"requiresPayment"`
}

func cancellationQuoteResponse(q *cancellation.Quote) CancellationQuoteResponse {
	return CancellationQuoteResponse{
		HoursToPickup:   q.HoursToPickup,
		FeePercent:      q.FeePercent,
		Fee:             q.FeeCents.Float64(),
		Currency:        "FJD",
		RequiresPayment: q.RequiresPayment(),
	}
}

// Quote handles POST /api/quotes.
func (h *ReservationHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body")
		return
	}

	breakdown, err := h.reservations.Quote(r.Context(), req.VehicleID, req.form())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse(breakdown))
}

// Create handles POST /api/reservations.
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body")
		return
	}

	rv, err := h.reservations.CreateReservation(r.Context(), req.UserID, req.VehicleID, req.form(), req.PickupTime)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservationResponse(rv))
}

// Get handles GET /api/reservations/{id}.
func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}

	rv, err := h.reservations.GetReservation(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservationResponse(rv))
}

// List handles GET /api/reservations?user_id=.
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}
	status := r.URL.Query().Get("status")
	page, pageSize := pagination(r)

	reservations, total, err := h.reservations.ListReservations(r.Context(), userID, status, page, pageSize)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	items := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		items = append(items, reservationResponse(&reservations[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reservations": items,
		"total":        total,
		"page":         page,
		"pageSize":     pageSize,
	})
}

// CancellationQuote handles GET /api/reservations/{id}/cancellation-quote.
func (h *ReservationHandler) CancellationQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.reservations.CancellationQuote(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cancellationQuoteResponse(quote))
}

// CancelRequest optionally carries the card used to settle a
// cancellation fee.
type CancelRequest struct {
	Card *validation.Card `json:"card,omitempty"`
}

// Cancel handles POST /api/reservations/{id}/cancel.
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body")
			return
		}
	}

	rv, quote, err := h.reservations.CancelReservation(r.Context(), mux.Vars(r)["id"], req.Card)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reservation": reservationResponse(rv),
		"fee":         quote.FeeCents.Float64(),
		"feePercent":  quote.FeePercent,
		"currency":    "FJD",
	})
}

// MarkReady handles POST /api/reservations/{id}/ready.
func (h *ReservationHandler) MarkReady(w http.ResponseWriter, r *http.Request) {
	rv, err := h.reservations.MarkReadyForPickup(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservationResponse(rv))
}

// Complete handles POST /api/reservations/{id}/complete.
func (h *ReservationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	rv, err := h.reservations.CompleteReservation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservationResponse(rv))
}

func queryUserID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	raw := r.URL.Query().Get("user_id")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "A valid user_id query parameter is required")
		return 0, false
	}
	return int32(id), true
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
