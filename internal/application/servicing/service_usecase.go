package servicing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
	"github.com/jhoicas/lubricentro-api/pkg/textnorm"
)

// References repositorios usados para validar las referencias de un servicio.
type References struct {
	Clients      repository.ClientRepository
	Vehicles     repository.VehicleRepository
	Branches     repository.BranchRepository
	ServiceTypes repository.ServiceTypeRepository
	Employees    repository.EmployeeRepository
}

// ServiceUseCase alta, reemplazo y baja del agregado Service en una sola transacción, y sus lecturas.
type ServiceUseCase struct {
	tx    TxRunner
	query repository.ServiceQueryRepository
	refs  References
	now   func() time.Time
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(tx TxRunner, query repository.ServiceQueryRepository, refs References) *ServiceUseCase {
	return &ServiceUseCase{tx: tx, query: query, refs: refs, now: time.Now}
}

// Create valida la entrada y persiste servicio, empleados, ítems y productos de forma atómica.
func (uc *ServiceUseCase) Create(ctx context.Context, in dto.ServiceRequest) (*dto.ServiceResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, &in); err != nil {
		return nil, err
	}
	s := in.ToEntity()
	now := uc.now()
	s.CreatedAt, s.UpdatedAt = now, now

	err := uc.tx.RunServices(ctx, func(repo repository.ServiceRepository) error {
		n, err := repo.NextNumber(ctx)
		if err != nil {
			return fmt.Errorf("numerar servicio: %w", err)
		}
		s.Number = entity.FormatServiceNumber(n)
		if err := repo.Create(ctx, s); err != nil {
			return err
		}
		return writeChildren(ctx, repo, s)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, s.ID)
}

// Update reemplaza por completo ítems, productos y empleados del servicio (borrar y reinsertar).
// Los IDs de ítems y productos cambian en cada actualización.
func (uc *ServiceUseCase) Update(ctx context.Context, id int64, in dto.ServiceRequest) (*dto.ServiceResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, &in); err != nil {
		return nil, err
	}
	s := in.ToEntity()
	s.ID = id
	s.UpdatedAt = uc.now()

	err := uc.tx.RunServices(ctx, func(repo repository.ServiceRepository) error {
		ok, err := repo.ExistsActive(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return errServiceNotFound()
		}
		if err := repo.ClearChildren(ctx, id); err != nil {
			return err
		}
		if err := repo.UpdateHeader(ctx, s); err != nil {
			return err
		}
		return writeChildren(ctx, repo, s)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Delete borra físicamente el servicio y todos sus hijos. Empleados y tipos referenciados no se tocan.
func (uc *ServiceUseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.RunServices(ctx, func(repo repository.ServiceRepository) error {
		ok, err := repo.ExistsActive(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return errServiceNotFound()
		}
		return repo.DeleteAggregate(ctx, id)
	})
}

func writeChildren(ctx context.Context, repo repository.ServiceRepository, s *entity.Service) error {
	if len(s.EmployeeIDs) > 0 {
		if err := repo.AssignEmployees(ctx, s.ID, s.EmployeeIDs); err != nil {
			return err
		}
	}
	for i := range s.Items {
		if err := repo.AddItem(ctx, s.ID, &s.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

// checkReferences verifica que cliente, vehículo, sucursal, tipos y empleados existan y estén activos.
// Reporta todas las referencias inválidas juntas.
func (uc *ServiceUseCase) checkReferences(ctx context.Context, in *dto.ServiceRequest) error {
	var v domain.Validator

	client, err := uc.refs.Clients.FindActiveByID(ctx, in.ClientID)
	if err != nil {
		return err
	}
	v.Check(client != nil, "cliente_id", "Cliente no encontrado")

	vehicle, err := uc.refs.Vehicles.FindActiveByID(ctx, in.VehicleID)
	if err != nil {
		return err
	}
	v.Check(vehicle != nil, "vehiculo_id", "Vehículo no encontrado")
	if vehicle != nil && client != nil {
		v.Check(vehicle.ClientID == client.ID, "vehiculo_id", "El vehículo no pertenece al cliente")
	}

	branch, err := uc.refs.Branches.FindActiveByID(ctx, in.BranchID)
	if err != nil {
		return err
	}
	v.Check(branch != nil, "sucursal_id", "Sucursal no encontrada")

	checked := map[int64]bool{}
	for i, it := range in.Items {
		if checked[it.ServiceTypeID] {
			continue
		}
		st, err := uc.refs.ServiceTypes.FindActiveByID(ctx, it.ServiceTypeID)
		if err != nil {
			return err
		}
		if st == nil {
			v.Check(false, fmt.Sprintf("items[%d].tipo_servicio_id", i), "Tipo de servicio no encontrado")
			continue
		}
		checked[it.ServiceTypeID] = true
	}

	if len(in.Employees) > 0 {
		missing, err := uc.refs.Employees.MissingActive(ctx, in.Employees)
		if err != nil {
			return err
		}
		v.Check(len(missing) == 0, "empleados", fmt.Sprintf("Empleados no encontrados: %v", missing))
	}
	return v.Err()
}

// Get devuelve el servicio activo con cliente, vehículo, empleados, ítems y productos.
func (uc *ServiceUseCase) Get(ctx context.Context, id int64) (*dto.ServiceResponse, error) {
	s, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewServiceResponse(s)
	return &out, nil
}

func (uc *ServiceUseCase) find(ctx context.Context, id int64) (*entity.Service, error) {
	s, err := uc.query.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errServiceNotFound()
	}
	return s, nil
}

// List lista servicios activos, más recientes primero. Busca por número, nombre de cliente o patente.
func (uc *ServiceUseCase) List(ctx context.Context, q dto.ServiceListQuery) (*dto.Page[dto.ServiceResponse], error) {
	q.Normalize()
	list, total, err := uc.query.List(ctx, repository.ServiceFilter{
		ListParams: repository.ListParams{Search: q.Search, Limit: q.Limit, Offset: q.Offset()},
		ClientID:   q.ClientID,
		VehicleID:  q.VehicleID,
	})
	if err != nil {
		return nil, err
	}
	return &dto.Page[dto.ServiceResponse]{Items: toResponses(list), Pagination: dto.NewPagination(q.PageRequest, total)}, nil
}

// ByClient servicios activos de un cliente.
func (uc *ServiceUseCase) ByClient(ctx context.Context, clientID int64) ([]dto.ServiceResponse, error) {
	list, err := uc.query.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

// ByPatente servicios activos del vehículo con esa patente.
func (uc *ServiceUseCase) ByPatente(ctx context.Context, patente string) ([]dto.ServiceResponse, error) {
	patente = textnorm.Patente(patente)
	if patente == "" {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{{Field: "patente", Message: "La patente es requerida"}}}
	}
	list, err := uc.query.ListByPatente(ctx, patente)
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

// Stats contadores de servicios activos: total, hoy, últimos 7 días y mes en curso.
func (uc *ServiceUseCase) Stats(ctx context.Context) (*dto.ServiceStatsResponse, error) {
	st, err := uc.query.Stats(ctx, uc.now())
	if err != nil {
		return nil, err
	}
	return &dto.ServiceStatsResponse{Total: st.Total, Today: st.Today, Week: st.Week, Month: st.Month}, nil
}

func toResponses(list []*entity.Service) []dto.ServiceResponse {
	out := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.NewServiceResponse(s))
	}
	return out
}

func errServiceNotFound() error {
	return domain.NotFound("SERVICIO_NOT_FOUND", "Servicio no encontrado")
}
