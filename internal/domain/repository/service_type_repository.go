package repository

import (
	"context"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

// ServiceTypeRepository puerto de persistencia del catálogo de tipos de servicio.
type ServiceTypeRepository interface {
	Create(ctx context.Context, t *entity.ServiceType) error
	FindActiveByID(ctx context.Context, id int64) (*entity.ServiceType, error)
	ExistsActiveName(ctx context.Context, name string, excludeID int64) (bool, error)
	Update(ctx context.Context, t *entity.ServiceType) error
	List(ctx context.Context, p ListParams) ([]*entity.ServiceType, int, error)
	Search(ctx context.Context, term string, limit int) ([]*entity.ServiceType, error)
	CountItemUsage(ctx context.Context, id int64) (int, error)
	SoftDelete(ctx context.Context, id int64) error
}
