package repository

import (
	"context"

	"islandrides-backend/internal/domain"
)

type VehicleRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	// IsAvailable reports whether the vehicle is in Available status
	// and free of overlapping active reservations for the date range.
	IsAvailable(ctx context.Context, vehicleID int32, pickupDate, dropoffDate string) (bool, error)
	ListByLocation(ctx context.Context, location domain.Location, page, pageSize int32) ([]domain.Vehicle, int32, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error)
	// UpdateStatus applies from → to only if the row is still in the
	// from status; a lost race or replay returns ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id string, from, to domain.ReservationStatus) error
	// ListActivePastDropoff returns Confirmed / Ready for Pickup
	// reservations whose dropoff date is before asOf (yyyy-mm-dd).
	ListActivePastDropoff(ctx context.Context, asOf string) ([]domain.Reservation, error)
	// ListConfirmedByPickupDate returns Confirmed reservations picking
	// up on the given date (yyyy-mm-dd).
	ListConfirmedByPickupDate(ctx context.Context, date string) ([]domain.Reservation, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
