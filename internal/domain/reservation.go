package domain

import (
	"time"

	"islandrides-backend/internal/money"
)

type ReservationStatus string

const (
	ReservationStatusConfirmed      ReservationStatus = "Confirmed"
	ReservationStatusReadyForPickup ReservationStatus = "Ready for Pickup"
	ReservationStatusCompleted      ReservationStatus = "Completed"
	ReservationStatusCancelled      ReservationStatus = "Cancelled"
)

// statusTransitions is the full set of legal lifecycle moves. Anything
// not listed here is rejected; completed and cancelled are terminal.
var statusTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusConfirmed: {
		ReservationStatusReadyForPickup,
		ReservationStatusCompleted,
		ReservationStatusCancelled,
	},
	ReservationStatusReadyForPickup: {
		ReservationStatusCompleted,
	},
}

// CanTransitionTo reports whether the move from s to target is legal.
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	for _, next := range statusTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is legal out of s.
func (s ReservationStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

type Reservation struct {
	ID        string `json:"id"`
	VehicleID int32  `json:"vehicle_id"`
	UserID    int32  `json:"user_id"`

	// Calendar dates, yyyy-mm-dd. PickupTime is the optional
	// pickup-window time of day (HH:MM, 24h); it never feeds pricing.
	PickupDate  string `json:"pickup_date"`
	DropoffDate string `json:"dropoff_date"`
	PickupTime  string `json:"pickup_time,omitempty"`

	Amenities []string `json:"amenities"`

	// Price snapshot captured at creation. Later rate or catalog
	// changes never touch an existing reservation.
	DurationDays int32       `json:"duration_days"`
	BaseCents    money.Cents `json:"base_cents"`
	AmenityCents money.Cents `json:"amenity_cents"`
	TaxCents     money.Cents `json:"tax_cents"`
	TotalCents   money.Cents `json:"total_cents"`

	Status    ReservationStatus `json:"status"`
	CreatedOn time.Time         `json:"created_on"`
	UpdatedOn time.Time         `json:"updated_on"`
}

// PickupAt resolves the pickup moment used for cancellation-fee
// tiering: the pickup date at the pickup-window time, or midnight UTC
// when no time was recorded.
func (r *Reservation) PickupAt() (time.Time, error) {
	if r.PickupTime != "" {
		return time.Parse("2006-01-02 15:04", r.PickupDate+" "+r.PickupTime)
	}
	return time.Parse("2006-01-02", r.PickupDate)
}
