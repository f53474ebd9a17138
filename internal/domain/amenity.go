package domain

import "islandrides-backend/internal/money"

// Amenity IDs form a closed catalog. "none" is mutually exclusive with
// every priced amenity.
const (
	AmenityNone       = "none"
	AmenityBabySitter = "baby-sitter"
	AmenityGPS        = "gps"
	AmenityPowerBank  = "power-bank"
)

type Amenity struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	PriceCents money.Cents `json:"price_cents"`
}

// amenityCatalog is the single source of truth for amenity pricing.
// Every flow prices amenities from this table; no screen carries its
// own copy.
var amenityCatalog = []Amenity{
	{ID: AmenityNone, Name: "None", PriceCents: 0},
	{ID: AmenityBabySitter, Name: "Baby Sitter", PriceCents: 2000},
	{ID: AmenityGPS, Name: "GPS", PriceCents: 1000},
	{ID: AmenityPowerBank, Name: "Power Bank", PriceCents: 500},
}

// AmenityCatalog returns a copy of the catalog in display order.
func AmenityCatalog() []Amenity {
	out := make([]Amenity, len(amenityCatalog))
	copy(out, amenityCatalog)
	return out
}

// AmenityByID looks up a catalog entry.
func AmenityByID(id string) (Amenity, bool) {
	for _, a := range amenityCatalog {
		if a.ID == id {
			return a, true
		}
	}
	return Amenity{}, false
}

// IsNoneSelection reports whether the selection resolves to "no
// amenities": empty, or containing the none entry.
func IsNoneSelection(ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	for _, id := range ids {
		if id == AmenityNone {
			return true
		}
	}
	return false
}
