package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"

	"islandrides-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.VehicleRepository
	repository.ReservationRepository
	repository.UserRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		VehicleRepository:      NewVehicleRepository(db),
		ReservationRepository:  NewReservationRepository(db),
		UserRepository:         NewUserRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
