package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

// SettingTxRunner ejecuta fn en una transacción con el repositorio de configuración.
type SettingTxRunner interface {
	RunSettings(ctx context.Context, fn func(repo repository.SettingRepository) error) error
}

// SettingUseCase configuración del sistema (solo administradores).
type SettingUseCase struct {
	repo repository.SettingRepository
	tx   SettingTxRunner
}

// NewSettingUseCase construye el caso de uso.
func NewSettingUseCase(repo repository.SettingRepository, tx SettingTxRunner) *SettingUseCase {
	return &SettingUseCase{repo: repo, tx: tx}
}

// List toda la configuración ordenada por categoría y clave.
func (uc *SettingUseCase) List(ctx context.Context) ([]dto.SettingResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(list, dto.NewSettingResponse), nil
}

// ByCategory configuración de una categoría.
func (uc *SettingUseCase) ByCategory(ctx context.Context, category string) ([]dto.SettingResponse, error) {
	list, err := uc.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return mapAll(list, dto.NewSettingResponse), nil
}

// Create agrega una entrada. (categoría, clave) repetida -> Conflict.
func (uc *SettingUseCase) Create(ctx context.Context, in dto.SettingRequest) (*dto.SettingResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	existing, err := uc.repo.FindByKey(ctx, in.Category, in.Key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("Ya existe una configuración con esa categoría y clave")
	}
	s := in.ToEntity()
	s.UpdatedAt = time.Now()
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	out := dto.NewSettingResponse(s)
	return &out, nil
}

// BulkUpsert inserta o actualiza varias entradas en una sola transacción: todas o ninguna.
func (uc *SettingUseCase) BulkUpsert(ctx context.Context, in dto.BulkSettingsRequest) ([]dto.SettingResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.SettingResponse, 0, len(in.Settings))
	err := uc.tx.RunSettings(ctx, func(repo repository.SettingRepository) error {
		for i := range in.Settings {
			s := in.Settings[i].ToEntity()
			s.UpdatedAt = now
			if err := repo.Upsert(ctx, s); err != nil {
				return err
			}
			out = append(out, dto.NewSettingResponse(s))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete borra una entrada.
func (uc *SettingUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("SETTING_NOT_FOUND", "Configuración no encontrada")
	}
	return nil
}
