package service

import (
	"context"

	"islandrides-backend/internal/cancellation"
	"islandrides-backend/internal/domain"
	"islandrides-backend/internal/money"
	"islandrides-backend/internal/pricing"
	"islandrides-backend/internal/validation"
)

type ReservationService interface {
	// Quote prices a prospective booking without persisting anything.
	// Terms acceptance is not required at this stage.
	Quote(ctx context.Context, vehicleID int32, form validation.BookingForm) (*pricing.Breakdown, error)
	CreateReservation(ctx context.Context, userID, vehicleID int32, form validation.BookingForm, pickupTime string) (*domain.Reservation, error)
	GetReservation(ctx context.Context, userID int32, id string) (*domain.Reservation, error)
	ListReservations(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error)
	// CancellationQuote computes and returns the fee so it can be
	// shown to the user before any payment is attempted.
	CancellationQuote(ctx context.Context, id string) (*cancellation.Quote, error)
	CancelReservation(ctx context.Context, id string, card *validation.Card) (*domain.Reservation, *cancellation.Quote, error)
	MarkReadyForPickup(ctx context.Context, id string) (*domain.Reservation, error)
	CompleteReservation(ctx context.Context, id string) (*domain.Reservation, error)
}

// PaymentGateway captures a charge. A decline is reported as
// errs.ErrPaymentDeclined and must leave no state behind.
type PaymentGateway interface {
	Charge(ctx context.Context, amount money.Cents, card validation.Card) error
}

type EmailService interface {
	SendReservationConfirmation(ctx context.Context, email, name string, rv *domain.Reservation, vehicleName string) error
	SendCancellationNotification(ctx context.Context, email, name string, rv *domain.Reservation, fee money.Cents) error
	SendPickupReminder(ctx context.Context, email, name string, rv *domain.Reservation, vehicleName string) error
	SendCompletionNotification(ctx context.Context, email, name, vehicleName string) error
}

type VehicleService interface {
	GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, location domain.Location, page, pageSize int32) ([]domain.Vehicle, int32, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}
