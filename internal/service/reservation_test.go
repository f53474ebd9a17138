package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"islandrides-backend/internal/domain"
	"islandrides-backend/internal/errs"
	"islandrides-backend/internal/money"
	"islandrides-backend/internal/service"
	"islandrides-backend/internal/validation"
)

const dateLayout = "2006-01-02"

func newTestService() (service.ReservationService, *MockReservationRepo, *MockVehicleRepo, *MockUserRepo, *MockNotificationRepo, *MockEmailService, *MockPaymentGateway) {
	reservationRepo := new(MockReservationRepo)
	vehicleRepo := new(MockVehicleRepo)
	userRepo := new(MockUserRepo)
	noteRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)
	payments := new(MockPaymentGateway)
	svc := service.NewReservationService(reservationRepo, vehicleRepo, userRepo, noteRepo, emailSvc, payments, true)
	return svc, reservationRepo, vehicleRepo, userRepo, noteRepo, emailSvc, payments
}

func validForm(pickup, dropoff string) validation.BookingForm {
	return validation.BookingForm{
		Title:         "Mr",
		FirstName:     "Sione",
		LastName:      "Vuki",
		Email:         "sione@test.com",
		Phone:         "679 123 4567",
		DateOfBirth:   "1990-05-15",
		LicenseNumber: "FJ-88421",
		PickupDate:    pickup,
		DropoffDate:   dropoff,
		Amenities:     []string{"gps"},
		AcceptTerms:   true,
	}
}

func TestReservationService_CreateReservation(t *testing.T) {
	ctx := context.Background()
	pickup := time.Now().Add(5 * 24 * time.Hour).Format(dateLayout)
	dropoff := time.Now().Add(8 * 24 * time.Hour).Format(dateLayout)

	vehicle := &domain.Vehicle{
		ID:               7,
		Make:             "Toyota",
		Model:            "RAV4",
		PricePerDayCents: money.Cents(8000),
		Status:           domain.VehicleStatusAvailable,
	}

	t.Run("Success", func(t *testing.T) {
		svc, reservationRepo, vehicleRepo, userRepo, noteRepo, emailSvc, _ := newTestService()

		vehicleRepo.On("GetByID", ctx, int32(7)).Return(vehicle, nil)
		vehicleRepo.On("IsAvailable", ctx, int32(7), pickup, dropoff).Return(true, nil)
		reservationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil)
		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "sione@test.com", FirstName: "Sione"}, nil)
		emailSvc.On("SendReservationConfirmation", ctx, "sione@test.com", mock.Anything, mock.Anything, "Toyota RAV4").Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		rv, err := svc.CreateReservation(ctx, 1, 7, validForm(pickup, dropoff), "10:00")
		assert.NoError(t, err)
		assert.NotNil(t, rv)
		assert.Equal(t, domain.ReservationStatusConfirmed, rv.Status)
		assert.Equal(t, int32(4), rv.DurationDays) // inclusive of both endpoints
		assert.Equal(t, money.Cents(32000), rv.BaseCents)
		assert.Equal(t, money.Cents(1000), rv.AmenityCents)
		assert.Equal(t, money.Cents(4800), rv.TaxCents) // 15% of base only
		assert.Equal(t, money.Cents(37800), rv.TotalCents)
		assert.NotEmpty(t, rv.ID)
	})

	t.Run("Vehicle Unavailable", func(t *testing.T) {
		svc, reservationRepo, vehicleRepo, _, _, _, _ := newTestService()

		vehicleRepo.On("GetByID", ctx, int32(7)).Return(vehicle, nil)
		vehicleRepo.On("IsAvailable", ctx, int32(7), pickup, dropoff).Return(false, nil)

		rv, err := svc.CreateReservation(ctx, 1, 7, validForm(pickup, dropoff), "")
		assert.ErrorIs(t, err, errs.ErrAvailabilityConflict)
		assert.Nil(t, rv)
		reservationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Validation Failure", func(t *testing.T) {
		svc, _, vehicleRepo, _, _, _, _ := newTestService()

		form := validForm(pickup, dropoff)
		form.Email = "not-an-email"
		form.AcceptTerms = false

		rv, err := svc.CreateReservation(ctx, 1, 7, form, "")
		assert.Nil(t, rv)
		var verr *errs.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "email")
		assert.Contains(t, verr.Fields, "acceptTerms")
		vehicleRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Notification Failure Does Not Block", func(t *testing.T) {
		svc, reservationRepo, vehicleRepo, userRepo, noteRepo, _, _ := newTestService()

		vehicleRepo.On("GetByID", ctx, int32(7)).Return(vehicle, nil)
		vehicleRepo.On("IsAvailable", ctx, int32(7), pickup, dropoff).Return(true, nil)
		reservationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil)
		userRepo.On("GetByID", ctx, int32(1)).Return(nil, errs.ErrNotFound)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(assert.AnError)

		rv, err := svc.CreateReservation(ctx, 1, 7, validForm(pickup, dropoff), "")
		assert.NoError(t, err)
		assert.NotNil(t, rv)
	})
}

func TestReservationService_CancellationQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("Mid Tier", func(t *testing.T) {
		svc, reservationRepo, _, _, _, _, _ := newTestService()

		pickupAt := time.Now().UTC().Add(48 * time.Hour)
		rv := &domain.Reservation{
			ID:         "res-1",
			UserID:     1,
			PickupDate: pickupAt.Format(dateLayout),
			PickupTime: pickupAt.Format("15:04"),
			TotalCents: money.Cents(30000),
			Status:     domain.ReservationStatusConfirmed,
		}
		reservationRepo.On("GetByID", ctx, "res-1").Return(rv, nil)

		quote, err := svc.CancellationQuote(ctx, "res-1")
		assert.NoError(t, err)
		assert.Equal(t, int64(10), quote.FeePercent)
		assert.Equal(t, money.Cents(3000), quote.FeeCents)
		assert.True(t, quote.RequiresPayment())
	})

	t.Run("Not Confirmed", func(t *testing.T) {
		svc, reservationRepo, _, _, _, _, _ := newTestService()

		rv := &domain.Reservation{ID: "res-2", Status: domain.ReservationStatusCompleted}
		reservationRepo.On("GetByID", ctx, "res-2").Return(rv, nil)

		quote, err := svc.CancellationQuote(ctx, "res-2")
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, quote)
	})
}

func TestReservationService_CancelReservation(t *testing.T) {
	ctx := context.Background()
	card := &validation.Card{
		Number: "4111 1111 1111 1111",
		Expiry: time.Now().UTC().AddDate(2, 0, 0).Format("01/06"),
		CVV:    "123",
	}

	confirmedReservation := func(pickupAt time.Time) *domain.Reservation {
		return &domain.Reservation{
			ID:         "res-9",
			UserID:     1,
			PickupDate: pickupAt.Format(dateLayout),
			PickupTime: pickupAt.Format("15:04"),
			TotalCents: money.Cents(30000),
			Status:     domain.ReservationStatusConfirmed,
		}
	}

	t.Run("Free Cancellation Skips Payment", func(t *testing.T) {
		svc, reservationRepo, _, userRepo, noteRepo, emailSvc, payments := newTestService()

		rv := confirmedReservation(time.Now().UTC().Add(100 * time.Hour))
		reservationRepo.On("GetByID", ctx, "res-9").Return(rv, nil)
		reservationRepo.On("UpdateStatus", ctx, "res-9", domain.ReservationStatusConfirmed, domain.ReservationStatusCancelled).Return(nil)
		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "sione@test.com"}, nil)
		emailSvc.On("SendCancellationNotification", ctx, "sione@test.com", mock.Anything, mock.Anything, money.Cents(0)).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		cancelled, quote, err := svc.CancelReservation(ctx, "res-9", nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusCancelled, cancelled.Status)
		assert.Equal(t, money.Cents(0), quote.FeeCents)
		payments.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Paid Cancellation Charges Fee First", func(t *testing.T) {
		svc, reservationRepo, _, userRepo, noteRepo, emailSvc, payments := newTestService()

		rv := confirmedReservation(time.Now().UTC().Add(2 * time.Hour))
		reservationRepo.On("GetByID", ctx, "res-9").Return(rv, nil)
		payments.On("Charge", ctx, money.Cents(9000), *card).Return(nil) // 30% of 300.00
		reservationRepo.On("UpdateStatus", ctx, "res-9", domain.ReservationStatusConfirmed, domain.ReservationStatusCancelled).Return(nil)
		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "sione@test.com"}, nil)
		emailSvc.On("SendCancellationNotification", ctx, "sione@test.com", mock.Anything, mock.Anything, money.Cents(9000)).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		cancelled, quote, err := svc.CancelReservation(ctx, "res-9", card)
		assert.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusCancelled, cancelled.Status)
		assert.Equal(t, int64(30), quote.FeePercent)
		assert.Equal(t, money.Cents(9000), quote.FeeCents)
	})

	t.Run("Missing Card For Paid Cancellation", func(t *testing.T) {
		svc, reservationRepo, _, _, _, _, payments := newTestService()

		rv := confirmedReservation(time.Now().UTC().Add(2 * time.Hour))
		reservationRepo.On("GetByID", ctx, "res-9").Return(rv, nil)

		cancelled, _, err := svc.CancelReservation(ctx, "res-9", nil)
		assert.Nil(t, cancelled)
		var verr *errs.ValidationError
		assert.ErrorAs(t, err, &verr)
		payments.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything, mock.Anything)
		reservationRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Declined Charge Leaves Reservation Confirmed", func(t *testing.T) {
		svc, reservationRepo, _, _, _, _, payments := newTestService()

		rv := confirmedReservation(time.Now().UTC().Add(2 * time.Hour))
		reservationRepo.On("GetByID", ctx, "res-9").Return(rv, nil)
		payments.On("Charge", ctx, money.Cents(9000), *card).Return(errs.ErrPaymentDeclined)

		cancelled, _, err := svc.CancelReservation(ctx, "res-9", card)
		assert.ErrorIs(t, err, errs.ErrPaymentDeclined)
		assert.Nil(t, cancelled)
		reservationRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already Cancelled Fails Every Time", func(t *testing.T) {
		svc, reservationRepo, _, _, _, _, _ := newTestService()

		rv := &domain.Reservation{ID: "res-9", Status: domain.ReservationStatusCancelled}
		reservationRepo.On("GetByID", ctx, "res-9").Return(rv, nil)

		for i := 0; i < 2; i++ {
			cancelled, _, err := svc.CancelReservation(ctx, "res-9", nil)
			assert.ErrorIs(t, err, errs.ErrInvalidTransition)
			assert.Nil(t, cancelled)
		}
	})
}

func TestReservationService_Transitions(t *testing.T) {
	ctx := context.Background()

	t.Run("Mark Ready For Pickup", func(t *testing.T) {
		svc, reservationRepo, _, _, _, _, _ := newTestService()

		rv := &domain.Reservation{ID: "res-3", UserID: 1, Status: domain.ReservationStatusConfirmed}
		reservationRepo.On("GetByID", ctx, "res-3").Return(rv, nil)
		reservationRepo.On("UpdateStatus", ctx, "res-3", domain.ReservationStatusConfirmed, domain.ReservationStatusReadyForPickup).Return(nil)

		got, err := svc.MarkReadyForPickup(ctx, "res-3")
		assert.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusReadyForPickup, got.Status)
	})

	t.Run("Complete From Ready", func(t *testing.T) {
		svc, reservationRepo, vehicleRepo, userRepo, noteRepo, emailSvc, _ := newTestService()

		rv := &domain.Reservation{ID: "res-4", UserID: 1, VehicleID: 7, Status: domain.ReservationStatusReadyForPickup}
		reservationRepo.On("GetByID", ctx, "res-4").Return(rv, nil)
		reservationRepo.On("UpdateStatus", ctx, "res-4", domain.ReservationStatusReadyForPickup, domain.ReservationStatusCompleted).Return(nil)
		vehicleRepo.On("GetByID", ctx, int32(7)).Return(&domain.Vehicle{ID: 7, Make: "Toyota", Model: "RAV4"}, nil)
		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "sione@test.com"}, nil)
		emailSvc.On("SendCompletionNotification", ctx, "sione@test.com", mock.Anything, "Toyota RAV4").Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		got, err := svc.CompleteReservation(ctx, "res-4")
		assert.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusCompleted, got.Status)
	})

	t.Run("Ready From Cancelled Is Rejected", func(t *testing.T) {
		svc, reservationRepo, _, _, _, _, _ := newTestService()

		rv := &domain.Reservation{ID: "res-5", Status: domain.ReservationStatusCancelled}
		reservationRepo.On("GetByID", ctx, "res-5").Return(rv, nil)

		got, err := svc.MarkReadyForPickup(ctx, "res-5")
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, got)
		reservationRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReservationService_GetReservation_OwnershipCheck(t *testing.T) {
	ctx := context.Background()
	svc, reservationRepo, _, _, _, _, _ := newTestService()

	rv := &domain.Reservation{ID: "res-6", UserID: 42, Status: domain.ReservationStatusConfirmed}
	reservationRepo.On("GetByID", ctx, "res-6").Return(rv, nil)

	got, err := svc.GetReservation(ctx, 42, "res-6")
	assert.NoError(t, err)
	assert.Equal(t, "res-6", got.ID)

	got, err = svc.GetReservation(ctx, 7, "res-6")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Nil(t, got)
}
