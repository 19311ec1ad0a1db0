package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

// SessionRepository persistencia de sesiones (tabla sesiones).
type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session) error
	// FindValidByHash devuelve la sesión con esa huella y expires_at > now, o (nil, nil).
	FindValidByHash(ctx context.Context, tokenHash string, now time.Time) (*entity.Session, error)
	// DeleteByHash es idempotente.
	DeleteByHash(ctx context.Context, tokenHash string) error
	// DeleteByUser borra las sesiones del usuario salvo la de keepHash (vacío = todas).
	DeleteByUser(ctx context.Context, userID int64, keepHash string) (int64, error)
}
