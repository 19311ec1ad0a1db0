package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
	"github.com/jhoicas/lubricentro-api/pkg/textnorm"
)

// ServiceTypeUseCase casos de uso del catálogo de tipos de servicio.
type ServiceTypeUseCase struct {
	repo repository.ServiceTypeRepository
}

// NewServiceTypeUseCase construye el caso de uso.
func NewServiceTypeUseCase(repo repository.ServiceTypeRepository) *ServiceTypeUseCase {
	return &ServiceTypeUseCase{repo: repo}
}

// Create agrega un tipo de servicio. Nombre duplicado entre activos -> Conflict.
func (uc *ServiceTypeUseCase) Create(ctx context.Context, in dto.ServiceTypeRequest) (*dto.ServiceTypeResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkName(ctx, in.Name, 0); err != nil {
		return nil, err
	}
	now := time.Now()
	t := &entity.ServiceType{Name: in.Name, Description: in.Description, Active: true, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	out := dto.NewServiceTypeResponse(t)
	return &out, nil
}

// GetByID devuelve un tipo activo.
func (uc *ServiceTypeUseCase) GetByID(ctx context.Context, id int64) (*dto.ServiceTypeResponse, error) {
	t, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewServiceTypeResponse(t)
	return &out, nil
}

// Update modifica un tipo activo.
func (uc *ServiceTypeUseCase) Update(ctx context.Context, id int64, in dto.ServiceTypeRequest) (*dto.ServiceTypeResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkName(ctx, in.Name, id); err != nil {
		return nil, err
	}
	t.Name, t.Description, t.UpdatedAt = in.Name, in.Description, time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	out := dto.NewServiceTypeResponse(t)
	return &out, nil
}

// List lista tipos activos paginados.
func (uc *ServiceTypeUseCase) List(ctx context.Context, p dto.PageRequest) (*dto.Page[dto.ServiceTypeResponse], error) {
	list, total, err := uc.repo.List(ctx, listParams(&p))
	if err != nil {
		return nil, err
	}
	return &dto.Page[dto.ServiceTypeResponse]{Items: mapAll(list, dto.NewServiceTypeResponse), Pagination: dto.NewPagination(p, total)}, nil
}

// Search búsqueda rápida por nombre o descripción (autocompletado), hasta 20 resultados.
func (uc *ServiceTypeUseCase) Search(ctx context.Context, term string) ([]dto.ServiceTypeResponse, error) {
	term = textnorm.CollapseSpaces(term)
	if term == "" {
		return []dto.ServiceTypeResponse{}, nil
	}
	list, err := uc.repo.Search(ctx, term, 20)
	if err != nil {
		return nil, err
	}
	return mapAll(list, dto.NewServiceTypeResponse), nil
}

// Delete da de baja el tipo si ningún ítem de servicio lo usa.
func (uc *ServiceTypeUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	n, err := uc.repo.CountItemUsage(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Referenced("SERVICE_TYPE_IN_USE", "No se puede eliminar el tipo de servicio porque está siendo usado en servicios")
	}
	return uc.repo.SoftDelete(ctx, id)
}

func (uc *ServiceTypeUseCase) find(ctx context.Context, id int64) (*entity.ServiceType, error) {
	t, err := uc.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NotFound("SERVICE_TYPE_NOT_FOUND", "Tipo de servicio no encontrado")
	}
	return t, nil
}

func (uc *ServiceTypeUseCase) checkName(ctx context.Context, name string, excludeID int64) error {
	exists, err := uc.repo.ExistsActiveName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.Conflict("Ya existe un tipo de servicio con ese nombre")
	}
	return nil
}
