package repository

import (
	"context"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

// ClientRepository puerto de persistencia de clientes.
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	FindActiveByID(ctx context.Context, id int64) (*entity.Client, error)
	ExistsActiveDNI(ctx context.Context, dni string, excludeID int64) (bool, error)
	Update(ctx context.Context, c *entity.Client) error
	List(ctx context.Context, p ListParams) ([]*entity.Client, int, error)
	CountActiveVehicles(ctx context.Context, clientID int64) (int, error)
	SoftDelete(ctx context.Context, id int64) error
}
