package dto

import (
	"time"

	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/pkg/textnorm"
)

// ServiceTypeRequest alta y modificación de tipos de servicio.
type ServiceTypeRequest struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// Validate normaliza y reporta cada violación.
func (r *ServiceTypeRequest) Validate() error {
	r.Name = textnorm.CollapseSpaces(r.Name)
	r.Description = textnorm.CollapseSpaces(r.Description)
	var v domain.Validator
	v.Check(lenBetween(r.Name, 2, 100), "nombre", "El nombre debe tener entre 2 y 100 caracteres")
	v.Check(reLabel.MatchString(r.Name), "nombre", "El nombre contiene caracteres inválidos")
	v.Check(maxLen(r.Description, 500), "descripcion", "La descripción no puede tener más de 500 caracteres")
	return v.Err()
}

// ServiceTypeResponse salida de un tipo de servicio.
type ServiceTypeResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	Active      bool      `json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewServiceTypeResponse mapea la entidad.
func NewServiceTypeResponse(t *entity.ServiceType) ServiceTypeResponse {
	return ServiceTypeResponse{ID: t.ID, Name: t.Name, Description: t.Description, Active: t.Active, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}
