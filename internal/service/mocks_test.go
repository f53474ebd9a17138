package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"islandrides-backend/internal/domain"
	"islandrides-backend/internal/money"
	"islandrides-backend/internal/validation"
)

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}
func (m *MockReservationRepo) UpdateStatus(ctx context.Context, id string, from, to domain.ReservationStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockReservationRepo) ListActivePastDropoff(ctx context.Context, asOf string) ([]domain.Reservation, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListConfirmedByPickupDate(ctx context.Context, date string) ([]domain.Reservation, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) IsAvailable(ctx context.Context, vehicleID int32, pickupDate, dropoffDate string) (bool, error) {
	args := m.Called(ctx, vehicleID, pickupDate, dropoffDate)
	return args.Bool(0), args.Error(1)
}
func (m *MockVehicleRepo) ListByLocation(ctx context.Context, location domain.Location, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	args := m.Called(ctx, location, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int32), args.Error(2)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReservationConfirmation(ctx context.Context, email, name string, rv *domain.Reservation, vehicleName string) error {
	args := m.Called(ctx, email, name, rv, vehicleName)
	return args.Error(0)
}
func (m *MockEmailService) SendCancellationNotification(ctx context.Context, email, name string, rv *domain.Reservation, fee money.Cents) error {
	args := m.Called(ctx, email, name, rv, fee)
	return args.Error(0)
}
func (m *MockEmailService) SendPickupReminder(ctx context.Context, email, name string, rv *domain.Reservation, vehicleName string) error {
	args := m.Called(ctx, email, name, rv, vehicleName)
	return args.Error(0)
}
func (m *MockEmailService) SendCompletionNotification(ctx context.Context, email, name, vehicleName string) error {
	args := m.Called(ctx, email, name, vehicleName)
	return args.Error(0)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Charge(ctx context.Context, amount money.Cents, card validation.Card) error {
	args := m.Called(ctx, amount, card)
	return args.Error(0)
}
