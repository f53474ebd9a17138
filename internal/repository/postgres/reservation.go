package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"islandrides-backend/internal/domain"
	"islandrides-backend/internal/errs"
	"islandrides-backend/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, vehicle_id, user_id, pickup_date, dropoff_date, pickup_time, amenities,
	duration_days, base_cents, amenity_cents, tax_cents, total_cents, status, created_on, updated_on`

func (r *reservationRepository) Create(ctx context.Context, rv *domain.Reservation) error {
	query := `INSERT INTO reservations (id, vehicle_id, user_id, pickup_date, dropoff_date, pickup_time, amenities,
	            duration_days, base_cents, amenity_cents, tax_cents, total_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	now := time.Now().UTC()
	rv.CreatedOn = now
	rv.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query,
		rv.ID, rv.VehicleID, rv.UserID, rv.PickupDate, rv.DropoffDate, rv.PickupTime, pq.Array(rv.Amenities),
		rv.DurationDays, rv.BaseCents, rv.AmenityCents, rv.TaxCents, rv.TotalCents, rv.Status, now, now)
	return err
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	rv, err := scanReservation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = $1`
	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reservations, err := collectReservations(rows)
	if err != nil {
		return nil, 0, err
	}
	return reservations, count, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ReservationStatus) error {
	query := `UPDATE reservations SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now().UTC(), id, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Row missing or no longer in the expected status; either way
		// the optimistic precondition failed.
		return errs.ErrInvalidTransition
	}
	return nil
}

func (r *reservationRepository) ListActivePastDropoff(ctx context.Context, asOf string) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE status IN ($1, $2) AND dropoff_date < $3`
	rows, err := r.db.QueryContext(ctx, query,
		domain.ReservationStatusConfirmed, domain.ReservationStatusReadyForPickup, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *reservationRepository) ListConfirmedByPickupDate(ctx context.Context, date string) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE status = $1 AND pickup_date = $2`
	rows, err := r.db.QueryContext(ctx, query, domain.ReservationStatusConfirmed, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	rv := &domain.Reservation{}
	err := row.Scan(&rv.ID, &rv.VehicleID, &rv.UserID, &rv.PickupDate, &rv.DropoffDate, &rv.PickupTime,
		pq.Array(&rv.Amenities), &rv.DurationDays, &rv.BaseCents, &rv.AmenityCents, &rv.TaxCents,
		&rv.TotalCents, &rv.Status, &rv.CreatedOn, &rv.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func collectReservations(rows *sql.Rows) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for rows.Next() {
		rv, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rv)
	}
	return out, rows.Err()
}
