package repository

import (
	"context"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

// SettingRepository puerto de persistencia de configuración (clave/valor por categoría).
type SettingRepository interface {
	List(ctx context.Context) ([]*entity.Setting, error)
	ListByCategory(ctx context.Context, category string) ([]*entity.Setting, error)
	FindByKey(ctx context.Context, category, key string) (*entity.Setting, error)
	Create(ctx context.Context, s *entity.Setting) error
	// Upsert inserta o actualiza por (categoría, clave).
	Upsert(ctx context.Context, s *entity.Setting) error
	// Delete devuelve false si no existía.
	Delete(ctx context.Context, id int64) (bool, error)
}
