package postgres

import (
	"context"
	"database/sql"
	"errors"

	"islandrides-backend/internal/domain"
	"islandrides-backend/internal/errs"
	"islandrides-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, make, model, year, price_per_day_cents, location, status FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.PricePerDayCents, &v.Location, &v.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) IsAvailable(ctx context.Context, vehicleID int32, pickupDate, dropoffDate string) (bool, error) {
	// A vehicle is bookable when it is in Available status and no
	// Confirmed or Ready for Pickup reservation overlaps the range.
	query := `SELECT EXISTS (
	            SELECT 1 FROM vehicles v
	            WHERE v.id = $1 AND v.status = $2
	              AND NOT EXISTS (
	                SELECT 1 FROM reservations r
	                WHERE r.vehicle_id = v.id
	                  AND r.status IN ($3, $4)
	                  AND r.pickup_date <= $6
	                  AND r.dropoff_date >= $5
	              )
	          )`
	var available bool
	err := r.db.QueryRowContext(ctx, query,
		vehicleID,
		domain.VehicleStatusAvailable,
		domain.ReservationStatusConfirmed,
		domain.ReservationStatusReadyForPickup,
		pickupDate,
		dropoffDate,
	).Scan(&available)
	if err != nil {
		return false, err
	}
	return available, nil
}

func (r *vehicleRepository) ListByLocation(ctx context.Context, location domain.Location, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT count(*) FROM vehicles WHERE location = $1 AND status = $2`
	if err := r.db.QueryRowContext(ctx, countQuery, location, domain.VehicleStatusAvailable).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, make, model, year, price_per_day_cents, location, status
	          FROM vehicles WHERE location = $1 AND status = $2
	          ORDER BY price_per_day_cents ASC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, location, domain.VehicleStatusAvailable, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.PricePerDayCents, &v.Location, &v.Status); err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, count, rows.Err()
}
