package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

// VehicleUseCase casos de uso CRUD para vehículos.
type VehicleUseCase struct {
	repo    repository.VehicleRepository
	clients repository.ClientRepository
	now     func() time.Time
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(repo repository.VehicleRepository, clients repository.ClientRepository) *VehicleUseCase {
	return &VehicleUseCase{repo: repo, clients: clients, now: time.Now}
}

// Create registra un vehículo de un cliente activo. Patente duplicada entre activos -> Conflict.
func (uc *VehicleUseCase) Create(ctx context.Context, in dto.VehicleRequest) (*dto.VehicleResponse, error) {
	now := uc.now()
	if err := in.Validate(now); err != nil {
		return nil, err
	}
	if err := uc.checkClient(ctx, in.ClientID); err != nil {
		return nil, err
	}
	if err := uc.checkPatente(ctx, in.Patente, 0); err != nil {
		return nil, err
	}
	v := &entity.Vehicle{
		ClientID:  in.ClientID,
		Patente:   in.Patente,
		Brand:     in.Brand,
		Model:     in.Model,
		Year:      in.Year,
		Mileage:   in.Mileage,
		Notes:     in.Notes,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	out := dto.NewVehicleResponse(v)
	return &out, nil
}

// GetByID devuelve un vehículo activo.
func (uc *VehicleUseCase) GetByID(ctx context.Context, id int64) (*dto.VehicleResponse, error) {
	v, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewVehicleResponse(v)
	return &out, nil
}

// Update modifica un vehículo activo.
func (uc *VehicleUseCase) Update(ctx context.Context, id int64, in dto.VehicleRequest) (*dto.VehicleResponse, error) {
	now := uc.now()
	if err := in.Validate(now); err != nil {
		return nil, err
	}
	v, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.ClientID != v.ClientID {
		if err := uc.checkClient(ctx, in.ClientID); err != nil {
			return nil, err
		}
	}
	if err := uc.checkPatente(ctx, in.Patente, id); err != nil {
		return nil, err
	}
	v.ClientID, v.Patente, v.Brand, v.Model = in.ClientID, in.Patente, in.Brand, in.Model
	v.Year, v.Mileage, v.Notes = in.Year, in.Mileage, in.Notes
	v.UpdatedAt = now
	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	out := dto.NewVehicleResponse(v)
	return &out, nil
}

// UpdateMileage registra un nuevo kilometraje. No puede ser menor al actual.
func (uc *VehicleUseCase) UpdateMileage(ctx context.Context, id int64, in dto.MileageRequest) (*dto.VehicleResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	v, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Mileage < v.Mileage {
		return nil, domain.Invalid("MILEAGE_DECREASE", "El nuevo kilometraje no puede ser menor al actual")
	}
	if err := uc.repo.UpdateMileage(ctx, id, in.Mileage); err != nil {
		return nil, err
	}
	v.Mileage = in.Mileage
	v.UpdatedAt = uc.now()
	out := dto.NewVehicleResponse(v)
	return &out, nil
}

// List lista vehículos activos; search filtra por patente, marca, modelo o cliente.
func (uc *VehicleUseCase) List(ctx context.Context, p dto.PageRequest) (*dto.Page[dto.VehicleResponse], error) {
	list, total, err := uc.repo.List(ctx, listParams(&p))
	if err != nil {
		return nil, err
	}
	return &dto.Page[dto.VehicleResponse]{Items: mapAll(list, dto.NewVehicleResponse), Pagination: dto.NewPagination(p, total)}, nil
}

// ByClient vehículos activos de un cliente activo.
func (uc *VehicleUseCase) ByClient(ctx context.Context, clientID int64) ([]dto.VehicleResponse, error) {
	if err := uc.checkClient(ctx, clientID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return mapAll(list, dto.NewVehicleResponse), nil
}

// Delete da de baja el vehículo.
func (uc *VehicleUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.SoftDelete(ctx, id)
}

func (uc *VehicleUseCase) find(ctx context.Context, id int64) (*entity.Vehicle, error) {
	v, err := uc.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.NotFound("VEHICLE_NOT_FOUND", "Vehículo no encontrado")
	}
	return v, nil
}

func (uc *VehicleUseCase) checkClient(ctx context.Context, clientID int64) error {
	c, err := uc.clients.FindActiveByID(ctx, clientID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NotFound("CLIENT_NOT_FOUND", "Cliente no encontrado")
	}
	return nil
}

func (uc *VehicleUseCase) checkPatente(ctx context.Context, patente string, excludeID int64) error {
	exists, err := uc.repo.ExistsActivePatente(ctx, patente, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.Conflict("Ya existe un vehículo con esa patente")
	}
	return nil
}
