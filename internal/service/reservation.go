package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"islandrides-backend/internal/cancellation"
	"islandrides-backend/internal/domain"
	"islandrides-backend/internal/errs"
	"islandrides-backend/internal/pricing"
	"islandrides-backend/internal/repository"
	"islandrides-backend/internal/validation"
)

type reservationService struct {
	reservationRepo repository.ReservationRepository
	vehicleRepo     repository.VehicleRepository
	userRepo        repository.UserRepository
	noteRepo        repository.NotificationRepository
	emailSvc        EmailService
	payments        PaymentGateway

	// checkoutTax selects the checkout pricing variant (15% of base).
	checkoutTax bool
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	payments PaymentGateway,
	checkoutTax bool,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		vehicleRepo:     vehicleRepo,
		userRepo:        userRepo,
		noteRepo:        noteRepo,
		emailSvc:        emailSvc,
		payments:        payments,
		checkoutTax:     checkoutTax,
	}
}

func (s *reservationService) Quote(ctx context.Context, vehicleID int32, form validation.BookingForm) (*pricing.Breakdown, error) {
	if fieldErrs := validation.ValidateBooking(form, time.Now(), false); len(fieldErrs) > 0 {
		return nil, &errs.ValidationError{Fields: fieldErrs}
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	breakdown, err := pricing.ComputeQuote(vehicle.PricePerDayCents, form.PickupDate, form.DropoffDate, form.Amenities, s.checkoutTax)
	if err != nil {
		return nil, err
	}
	return &breakdown, nil
}

func (s *reservationService) CreateReservation(ctx context.Context, userID, vehicleID int32, form validation.BookingForm, pickupTime string) (*domain.Reservation, error) {
	if fieldErrs := validation.ValidateBooking(form, time.Now(), true); len(fieldErrs) > 0 {
		return nil, &errs.ValidationError{Fields: fieldErrs}
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	// Availability is confirmed before anything is written; an
	// unavailable vehicle is a hard failure, never a silent proceed.
	available, err := s.vehicleRepo.IsAvailable(ctx, vehicleID, form.PickupDate, form.DropoffDate)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, errs.ErrAvailabilityConflict
	}

	breakdown, err := pricing.ComputeQuote(vehicle.PricePerDayCents, form.PickupDate, form.DropoffDate, form.Amenities, s.checkoutTax)
	if err != nil {
		return nil, err
	}

	rv := &domain.Reservation{
		ID:           uuid.NewString(),
		VehicleID:    vehicleID,
		UserID:       userID,
		PickupDate:   form.PickupDate,
		DropoffDate:  form.DropoffDate,
		PickupTime:   pickupTime,
		Amenities:    form.Amenities,
		DurationDays: breakdown.DurationDays,
		BaseCents:    breakdown.BaseCents,
		AmenityCents: breakdown.AmenityCents,
		TaxCents:     breakdown.TaxCents,
		TotalCents:   breakdown.TotalCents,
		Status:       domain.ReservationStatusConfirmed,
	}

	if err := s.reservationRepo.Create(ctx, rv); err != nil {
		return nil, err
	}

	s.notify(ctx, rv, "Reservation Confirmed",
		fmt.Sprintf("Your %s %s is booked from %s to %s", vehicle.Make, vehicle.Model, rv.PickupDate, rv.DropoffDate),
		func(user *domain.User) error {
			return s.emailSvc.SendReservationConfirmation(ctx, user.Email, user.FullName(), rv, vehicle.Make+" "+vehicle.Model)
		})

	return rv, nil
}

func (s *reservationService) GetReservation(ctx context.Context, userID int32, id string) (*domain.Reservation, error) {
	rv, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv.UserID != userID {
		return nil, errs.ErrNotFound
	}
	return rv, nil
}

func (s *reservationService) ListReservations(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	return s.reservationRepo.ListByUser(ctx, userID, status, page, pageSize)
}

func (s *reservationService) CancellationQuote(ctx context.Context, id string) (*cancellation.Quote, error) {
	rv, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv.Status != domain.ReservationStatusConfirmed {
		return nil, errs.ErrInvalidTransition
	}

	pickupAt, err := rv.PickupAt()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidRange, err)
	}

	quote := cancellation.Evaluate(rv.TotalCents, pickupAt, time.Now().UTC())
	return &quote, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, id string, card *validation.Card) (*domain.Reservation, *cancellation.Quote, error) {
	rv, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	// Cancelling an already cancelled or completed reservation is an
	// explicit failure on every attempt, never a silent success.
	if rv.Status != domain.ReservationStatusConfirmed {
		return nil, nil, errs.ErrInvalidTransition
	}

	pickupAt, err := rv.PickupAt()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errs.ErrInvalidRange, err)
	}
	quote := cancellation.Evaluate(rv.TotalCents, pickupAt, time.Now().UTC())

	// The fee is settled before the status change is committed; a free
	// cancellation skips payment entirely.
	if quote.RequiresPayment() {
		if card == nil {
			return nil, nil, &errs.ValidationError{Fields: map[string]string{
				"card": "Payment details are required to settle the cancellation fee",
			}}
		}
		if cardErrs := validation.ValidateCard(*card, time.Now().UTC()); len(cardErrs) > 0 {
			return nil, nil, &errs.ValidationError{Fields: cardErrs}
		}
		if err := s.payments.Charge(ctx, quote.FeeCents, *card); err != nil {
			// Reservation stays Confirmed; the caller may retry.
			return nil, nil, err
		}
	}

	if err := s.reservationRepo.UpdateStatus(ctx, rv.ID, domain.ReservationStatusConfirmed, domain.ReservationStatusCancelled); err != nil {
		return nil, nil, err
	}
	rv.Status = domain.ReservationStatusCancelled

	s.notify(ctx, rv, "Reservation Cancelled",
		fmt.Sprintf("Reservation %s was cancelled; fee charged: %s", rv.ID, quote.FeeCents.Format()),
		func(user *domain.User) error {
			return s.emailSvc.SendCancellationNotification(ctx, user.Email, user.FullName(), rv, quote.FeeCents)
		})

	return rv, &quote, nil
}

func (s *reservationService) MarkReadyForPickup(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.ReservationStatusReadyForPickup, nil)
}

func (s *reservationService) CompleteReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.ReservationStatusCompleted, func(rv *domain.Reservation) {
		vehicleName := ""
		if vehicle, err := s.vehicleRepo.GetByID(ctx, rv.VehicleID); err == nil {
			vehicleName = vehicle.Make + " " + vehicle.Model
		}
		s.notify(ctx, rv, "Rental Completed",
			fmt.Sprintf("Reservation %s is complete. Thanks for riding with us.", rv.ID),
			func(user *domain.User) error {
				return s.emailSvc.SendCompletionNotification(ctx, user.Email, user.FullName(), vehicleName)
			})
	})
}

// transition applies a status change guarded by the lifecycle table
// and the store-side optimistic check.
func (s *reservationService) transition(ctx context.Context, id string, target domain.ReservationStatus, after func(*domain.Reservation)) (*domain.Reservation, error) {
	rv, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rv.Status.CanTransitionTo(target) {
		return nil, errs.ErrInvalidTransition
	}
	if err := s.reservationRepo.UpdateStatus(ctx, rv.ID, rv.Status, target); err != nil {
		return nil, err
	}
	rv.Status = target
	if after != nil {
		after(rv)
	}
	return rv, nil
}

// notify sends the email and records the in-app notification on a
// best-effort basis; a failed dispatch never blocks or reverses the
// transition that triggered it.
func (s *reservationService) notify(ctx context.Context, rv *domain.Reservation, title, message string, sendEmail func(*domain.User) error) {
	user, err := s.userRepo.GetByID(ctx, rv.UserID)
	if err == nil && user != nil {
		_ = sendEmail(user)
	}

	note := &domain.Notification{
		UserID:  rv.UserID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"reservation_id": rv.ID,
			"status":         string(rv.Status),
		},
	}
	_ = s.noteRepo.Create(ctx, note)
}
