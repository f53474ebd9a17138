package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"islandrides-backend/internal/domain"
	"islandrides-backend/internal/service"
)

type VehicleHandler struct {
	vehicles service.VehicleService
}

func NewVehicleHandler(vehicles service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

type VehicleResponse struct {
	ID          int32   `json:"id"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Year        int32   `json:"year"`
	PricePerDay float64 `json:"pricePerDay"`
	Currency    string  `json:"currency"`
	Location    string  `json:"location"`
	Status      string  `json:"status"`
}

func vehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:          v.ID,
		Make:        v.Make,
		Model:       v.Model,
		Year:        v.Year,
		PricePerDay: v.PricePerDayCents.Float64(),
		Currency:    "FJD",
		Location:    string(v.Location),
		Status:      string(v.Status),
	}
}

// Get handles GET /api/vehicles/{id}.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid vehicle id")
		return
	}

	vehicle, err := h.vehicles.GetVehicle(r.Context(), int32(id))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleResponse(vehicle))
}

// List handles GET /api/vehicles?location=.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	location := domain.Location(r.URL.Query().Get("location"))
	page, pageSize := pagination(r)

	vehicles, total, err := h.vehicles.ListVehicles(r.Context(), location, page, pageSize)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	items := make([]VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		items = append(items, vehicleResponse(&vehicles[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vehicles": items,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}
