package servicing

import (
	"context"
	"fmt"

	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

// WorkOrderUseCase genera el PDF de la orden de trabajo de un servicio.
type WorkOrderUseCase struct {
	query    repository.ServiceQueryRepository
	renderer WorkOrderRenderer
}

// NewWorkOrderUseCase construye el caso de uso.
func NewWorkOrderUseCase(query repository.ServiceQueryRepository, renderer WorkOrderRenderer) *WorkOrderUseCase {
	return &WorkOrderUseCase{query: query, renderer: renderer}
}

// Download devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *WorkOrderUseCase) Download(ctx context.Context, id int64) ([]byte, string, error) {
	s, err := uc.query.FindByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("orden de trabajo: obtener servicio: %w", err)
	}
	if s == nil {
		return nil, "", errServiceNotFound()
	}
	pdf, err := uc.renderer.RenderWorkOrder(ctx, s)
	if err != nil {
		return nil, "", fmt.Errorf("orden de trabajo: %w", err)
	}
	return pdf, fmt.Sprintf("orden_%s.pdf", s.Number), nil
}
