package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Find* devuelven (nil, nil) si no hay un usuario activo.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindActiveByID(ctx context.Context, id int64) (*entity.User, error)
	FindActiveByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsActiveEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	List(ctx context.Context, p ListParams) ([]*entity.User, int, error)
	SoftDelete(ctx context.Context, id int64) error
}
