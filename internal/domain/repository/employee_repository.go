package repository

import (
	"context"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

// EmployeeRepository puerto de persistencia de empleados.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	FindActiveByID(ctx context.Context, id int64) (*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	List(ctx context.Context, p ListParams) ([]*entity.Employee, int, error)
	ListActive(ctx context.Context) ([]*entity.Employee, error)
	ListByBranch(ctx context.Context, branchID int64) ([]*entity.Employee, error)
	// MissingActive devuelve los ids de la lista que no corresponden a empleados activos.
	MissingActive(ctx context.Context, ids []int64) ([]int64, error)
	SoftDelete(ctx context.Context, id int64) error
}
