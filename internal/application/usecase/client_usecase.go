package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo     repository.ClientRepository
	vehicles repository.VehicleRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, vehicles repository.VehicleRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo, vehicles: vehicles}
}

// Create crea un cliente. DNI duplicado entre activos -> Conflict.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkDNI(ctx, in.DNI, 0); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Client{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		DNI:       in.DNI,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.NewClientResponse(c)
	return &out, nil
}

// GetByID devuelve el cliente activo con sus vehículos activos.
func (uc *ClientUseCase) GetByID(ctx context.Context, id int64) (*dto.ClientResponse, error) {
	c, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	vehicles, err := uc.vehicles.ListByClient(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewClientResponse(c)
	out.Vehicles = mapAll(vehicles, dto.NewVehicleResponse)
	return &out, nil
}

// Update modifica los datos de un cliente activo.
func (uc *ClientUseCase) Update(ctx context.Context, id int64, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkDNI(ctx, in.DNI, id); err != nil {
		return nil, err
	}
	c.FirstName, c.LastName, c.DNI = in.FirstName, in.LastName, in.DNI
	c.Phone, c.Email, c.Address = in.Phone, in.Email, in.Address
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.NewClientResponse(c)
	return &out, nil
}

// List lista clientes activos; search filtra por nombre, apellido, DNI o teléfono.
func (uc *ClientUseCase) List(ctx context.Context, p dto.PageRequest) (*dto.Page[dto.ClientResponse], error) {
	list, total, err := uc.repo.List(ctx, listParams(&p))
	if err != nil {
		return nil, err
	}
	return &dto.Page[dto.ClientResponse]{Items: mapAll(list, dto.NewClientResponse), Pagination: dto.NewPagination(p, total)}, nil
}

// Delete da de baja el cliente. Falla sin modificar nada si tiene vehículos activos.
func (uc *ClientUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	n, err := uc.repo.CountActiveVehicles(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Referenced("VEHICLES_ASSOCIATED", "No se puede eliminar el cliente porque tiene vehículos asociados")
	}
	return uc.repo.SoftDelete(ctx, id)
}

func (uc *ClientUseCase) find(ctx context.Context, id int64) (*entity.Client, error) {
	c, err := uc.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("CLIENT_NOT_FOUND", "Cliente no encontrado")
	}
	return c, nil
}

func (uc *ClientUseCase) checkDNI(ctx context.Context, dni string, excludeID int64) error {
	if dni == "" {
		return nil
	}
	exists, err := uc.repo.ExistsActiveDNI(ctx, dni, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.Conflict("Ya existe un cliente con ese DNI")
	}
	return nil
}
