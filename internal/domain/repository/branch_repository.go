package repository

import (
	"context"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

// BranchRepository puerto de persistencia de sucursales.
type BranchRepository interface {
	Create(ctx context.Context, b *entity.Branch) error
	FindActiveByID(ctx context.Context, id int64) (*entity.Branch, error)
	ExistsActiveName(ctx context.Context, name string, excludeID int64) (bool, error)
	Update(ctx context.Context, b *entity.Branch) error
	List(ctx context.Context, p ListParams) ([]*entity.Branch, int, error)
	ListActive(ctx context.Context) ([]*entity.Branch, error)
	// CountDependents cuenta servicios y empleados activos de la sucursal.
	CountDependents(ctx context.Context, id int64) (services, employees int, err error)
	SoftDelete(ctx context.Context, id int64) error
}
