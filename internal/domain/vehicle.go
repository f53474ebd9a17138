package domain

import "islandrides-backend/internal/money"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "Available"
	VehicleStatusRented      VehicleStatus = "Rented"
	VehicleStatusMaintenance VehicleStatus = "Maintenance"
	VehicleStatusRetired     VehicleStatus = "Retired"
)

// Location is one of the depots the fleet operates from.
type Location string

const (
	LocationSuva    Location = "Suva"
	LocationNadi    Location = "Nadi"
	LocationLautoka Location = "Lautoka"
)

type Vehicle struct {
	ID               int32         `json:"id"`
	Make             string        `json:"make"`
	Model            string        `json:"model"`
	Year             int32         `json:"year"`
	PricePerDayCents money.Cents   `json:"price_per_day_cents"`
	Location         Location      `json:"location"`
	Status           VehicleStatus `json:"status"`
}
