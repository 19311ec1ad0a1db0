package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

// EmployeeUseCase casos de uso CRUD para empleados.
type EmployeeUseCase struct {
	repo     repository.EmployeeRepository
	branches repository.BranchRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository, branches repository.BranchRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, branches: branches}
}

// Create da de alta un empleado en una sucursal activa.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	branch, err := uc.branch(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	e := &entity.Employee{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Phone:      in.Phone,
		Position:   in.Position,
		BranchID:   in.BranchID,
		BranchName: branch.Name,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	out := dto.NewEmployeeResponse(e)
	return &out, nil
}

// GetByID devuelve un empleado activo.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, id int64) (*dto.EmployeeResponse, error) {
	e, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewEmployeeResponse(e)
	return &out, nil
}

// Update modifica un empleado activo.
func (uc *EmployeeUseCase) Update(ctx context.Context, id int64, in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	e, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	branch, err := uc.branch(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	e.FirstName, e.LastName, e.Phone, e.Position = in.FirstName, in.LastName, in.Phone, in.Position
	e.BranchID, e.BranchName = in.BranchID, branch.Name
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	out := dto.NewEmployeeResponse(e)
	return &out, nil
}

// List lista empleados activos paginados.
func (uc *EmployeeUseCase) List(ctx context.Context, p dto.PageRequest) (*dto.Page[dto.EmployeeResponse], error) {
	list, total, err := uc.repo.List(ctx, listParams(&p))
	if err != nil {
		return nil, err
	}
	return &dto.Page[dto.EmployeeResponse]{Items: mapAll(list, dto.NewEmployeeResponse), Pagination: dto.NewPagination(p, total)}, nil
}

// ListActive todos los empleados activos (para selects).
func (uc *EmployeeUseCase) ListActive(ctx context.Context) ([]dto.EmployeeResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(list, dto.NewEmployeeResponse), nil
}

// ByBranch empleados activos de una sucursal.
func (uc *EmployeeUseCase) ByBranch(ctx context.Context, branchID int64) ([]dto.EmployeeResponse, error) {
	if _, err := uc.branch(ctx, branchID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return mapAll(list, dto.NewEmployeeResponse), nil
}

// Delete da de baja al empleado. Los servicios donde participó conservan la asignación.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.SoftDelete(ctx, id)
}

func (uc *EmployeeUseCase) find(ctx context.Context, id int64) (*entity.Employee, error) {
	e, err := uc.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.NotFound("EMPLOYEE_NOT_FOUND", "Empleado no encontrado")
	}
	return e, nil
}

func (uc *EmployeeUseCase) branch(ctx context.Context, id int64) (*entity.Branch, error) {
	b, err := uc.branches.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.NotFound("BRANCH_NOT_FOUND", "Sucursal no encontrada")
	}
	return b, nil
}
