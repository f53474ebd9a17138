package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"islandrides-backend/internal/domain"
	"islandrides-backend/internal/errs"
	"islandrides-backend/internal/repository/postgres"
)

func TestReservationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReservationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rv := &domain.Reservation{
			ID:           "9f6c1f2e-5d1a-4a8e-9b34-0b6f1f2f7c11",
			VehicleID:    2,
			UserID:       3,
			PickupDate:   "2026-03-15",
			DropoffDate:  "2026-03-18",
			Amenities:    []string{"gps"},
			DurationDays: 4,
			BaseCents:    32000,
			AmenityCents: 1000,
			TotalCents:   33000,
			Status:       domain.ReservationStatusConfirmed,
		}

		mock.ExpectExec("INSERT INTO reservations").
			WithArgs(rv.ID, rv.VehicleID, rv.UserID, rv.PickupDate, rv.DropoffDate, rv.PickupTime, sqlmock.AnyArg(),
				rv.DurationDays, rv.BaseCents, rv.AmenityCents, rv.TaxCents, rv.TotalCents, rv.Status,
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, rv)
		assert.NoError(t, err)
		assert.False(t, rv.CreatedOn.IsZero())
	})
}

func TestReservationRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReservationRepository(db)
	ctx := context.Background()

	columns := []string{"id", "vehicle_id", "user_id", "pickup_date", "dropoff_date", "pickup_time", "amenities",
		"duration_days", "base_cents", "amenity_cents", "tax_cents", "total_cents", "status", "created_on", "updated_on"}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(columns).
			AddRow("abc-123", 2, 3, "2026-03-15", "2026-03-18", "", "{gps}", 4, 32000, 1000, 0, 33000, "Confirmed", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id = \\$1").
			WithArgs("abc-123").
			WillReturnRows(rows)

		rv, err := repo.GetByID(ctx, "abc-123")
		assert.NoError(t, err)
		assert.NotNil(t, rv)
		assert.Equal(t, domain.ReservationStatusConfirmed, rv.Status)
		assert.Equal(t, []string{"gps"}, rv.Amenities)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id = \\$1").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestReservationRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReservationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE reservations SET status").
			WithArgs(domain.ReservationStatusCancelled, sqlmock.AnyArg(), "abc-123", domain.ReservationStatusConfirmed).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, "abc-123", domain.ReservationStatusConfirmed, domain.ReservationStatusCancelled)
		assert.NoError(t, err)
	})

	t.Run("Lost race reports invalid transition", func(t *testing.T) {
		mock.ExpectExec("UPDATE reservations SET status").
			WithArgs(domain.ReservationStatusCancelled, sqlmock.AnyArg(), "abc-123", domain.ReservationStatusConfirmed).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, "abc-123", domain.ReservationStatusConfirmed, domain.ReservationStatusCancelled)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}
