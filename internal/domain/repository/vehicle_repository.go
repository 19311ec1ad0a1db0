package repository

import (
	"context"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

// VehicleRepository puerto de persistencia de vehículos.
type VehicleRepository interface {
	Create(ctx context.Context, v *entity.Vehicle) error
	FindActiveByID(ctx context.Context, id int64) (*entity.Vehicle, error)
	ExistsActivePatente(ctx context.Context, patente string, excludeID int64) (bool, error)
	Update(ctx context.Context, v *entity.Vehicle) error
	UpdateMileage(ctx context.Context, id int64, mileage int) error
	List(ctx context.Context, p ListParams) ([]*entity.Vehicle, int, error)
	ListByClient(ctx context.Context, clientID int64) ([]*entity.Vehicle, error)
	SoftDelete(ctx context.Context, id int64) error
}
