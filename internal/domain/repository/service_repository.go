package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

// ServiceRepository escritura del agregado Service. Pensado para usarse dentro de una transacción:
// cada método es un paso y el caller decide commit o rollback.
type ServiceRepository interface {
	// NextNumber reserva el siguiente número de servicio bajo lock de fila hasta el fin de la tx.
	NextNumber(ctx context.Context) (int64, error)
	ExistsActive(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, s *entity.Service) error
	UpdateHeader(ctx context.Context, s *entity.Service) error
	AssignEmployees(ctx context.Context, serviceID int64, employeeIDs []int64) error
	// AddItem inserta el ítem y sus productos; completa los IDs generados.
	AddItem(ctx context.Context, serviceID int64, item *entity.ServiceItem) error
	// ClearChildren borra asignaciones de empleados, productos e ítems del servicio.
	ClearChildren(ctx context.Context, serviceID int64) error
	// DeleteAggregate borra productos, ítems, asignaciones y el servicio, en ese orden.
	DeleteAggregate(ctx context.Context, serviceID int64) error
}

// ServiceFilter filtros del listado de servicios.
type ServiceFilter struct {
	ListParams
	ClientID  int64
	VehicleID int64
}

// ServiceQueryRepository lecturas del agregado Service (solo activos).
type ServiceQueryRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Service, error)
	List(ctx context.Context, f ServiceFilter) ([]*entity.Service, int, error)
	ListByClient(ctx context.Context, clientID int64) ([]*entity.Service, error)
	ListByPatente(ctx context.Context, patente string) ([]*entity.Service, error)
	Stats(ctx context.Context, now time.Time) (entity.ServiceStats, error)
}
