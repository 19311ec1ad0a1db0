package servicing

import (
	"context"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repositorio de servicios atado a ella.
// Si fn devuelve error se hace rollback y el error se propaga sin cambios.
type TxRunner interface {
	RunServices(ctx context.Context, fn func(repo repository.ServiceRepository) error) error
}

// WorkOrderRenderer genera la orden de trabajo imprimible de un servicio.
type WorkOrderRenderer interface {
	RenderWorkOrder(ctx context.Context, s *entity.Service) ([]byte, error)
}
