package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

// BranchUseCase casos de uso CRUD para sucursales.
type BranchUseCase struct {
	repo repository.BranchRepository
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository) *BranchUseCase {
	return &BranchUseCase{repo: repo}
}

// Create crea una sucursal. Nombre duplicado entre activas -> Conflict.
func (uc *BranchUseCase) Create(ctx context.Context, in dto.BranchRequest) (*dto.BranchResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkName(ctx, in.Name, 0); err != nil {
		return nil, err
	}
	now := time.Now()
	b := &entity.Branch{Name: in.Name, Location: in.Location, Active: true, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	out := dto.NewBranchResponse(b)
	return &out, nil
}

// GetByID devuelve una sucursal activa.
func (uc *BranchUseCase) GetByID(ctx context.Context, id int64) (*dto.BranchResponse, error) {
	b, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewBranchResponse(b)
	return &out, nil
}

// Update modifica una sucursal activa.
func (uc *BranchUseCase) Update(ctx context.Context, id int64, in dto.BranchRequest) (*dto.BranchResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	b, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkName(ctx, in.Name, id); err != nil {
		return nil, err
	}
	b.Name, b.Location, b.UpdatedAt = in.Name, in.Location, time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	out := dto.NewBranchResponse(b)
	return &out, nil
}

// List lista sucursales activas paginadas.
func (uc *BranchUseCase) List(ctx context.Context, p dto.PageRequest) (*dto.Page[dto.BranchResponse], error) {
	list, total, err := uc.repo.List(ctx, listParams(&p))
	if err != nil {
		return nil, err
	}
	return &dto.Page[dto.BranchResponse]{Items: mapAll(list, dto.NewBranchResponse), Pagination: dto.NewPagination(p, total)}, nil
}

// ListActive todas las sucursales activas.
func (uc *BranchUseCase) ListActive(ctx context.Context) ([]dto.BranchResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(list, dto.NewBranchResponse), nil
}

// Delete da de baja la sucursal si no tiene servicios ni empleados activos.
func (uc *BranchUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	services, employees, err := uc.repo.CountDependents(ctx, id)
	if err != nil {
		return err
	}
	if services > 0 || employees > 0 {
		return domain.Referenced("BRANCH_IN_USE",
			fmt.Sprintf("No se puede eliminar la sucursal: tiene %d servicios y %d empleados activos", services, employees))
	}
	return uc.repo.SoftDelete(ctx, id)
}

func (uc *BranchUseCase) find(ctx context.Context, id int64) (*entity.Branch, error) {
	b, err := uc.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.NotFound("BRANCH_NOT_FOUND", "Sucursal no encontrada")
	}
	return b, nil
}

func (uc *BranchUseCase) checkName(ctx context.Context, name string, excludeID int64) error {
	exists, err := uc.repo.ExistsActiveName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.Conflict("Ya existe una sucursal con ese nombre")
	}
	return nil
}
