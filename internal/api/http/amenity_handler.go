package http

import (
	"net/http"

	"islandrides-backend/internal/domain"
)

type AmenityResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PricePerDay float64 `json:"pricePerDay"`
	Currency    string  `json:"currency"`
}

// ListAmenities handles GET /api/amenities, serving the catalog every
// booking screen prices from.
func ListAmenities(w http.ResponseWriter, r *http.Request) {
	catalog := domain.AmenityCatalog()
	items := make([]AmenityResponse, 0, len(catalog))
	for _, a := range catalog {
		items = append(items, AmenityResponse{
			ID:          a.ID,
			Name:        a.Name,
			PricePerDay: a.PriceCents.Float64(),
			Currency:    "FJD",
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"amenities": items})
}
