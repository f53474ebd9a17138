package service

import (
	"context"

	"islandrides-backend/internal/domain"
	"islandrides-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

func (s *vehicleService) GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) ListVehicles(ctx context.Context, location domain.Location, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	return s.vehicleRepo.ListByLocation(ctx, location, page, pageSize)
}
