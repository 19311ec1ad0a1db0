package dto

import (
	"time"

	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/pkg/textnorm"
)

// EmployeeRequest alta y modificación de empleados.
type EmployeeRequest struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Phone     string `json:"telefono"`
	Position  string `json:"cargo"`
	BranchID  int64  `json:"sucursal_id"`
}

// Validate normaliza y reporta cada violación.
func (r *EmployeeRequest) Validate() error {
	r.FirstName = textnorm.PersonName(r.FirstName)
	r.LastName = textnorm.PersonName(r.LastName)
	r.Phone = textnorm.CollapseSpaces(r.Phone)
	r.Position = textnorm.CollapseSpaces(r.Position)

	var v domain.Validator
	v.Check(lenBetween(r.FirstName, 2, 100), "nombre", "El nombre debe tener entre 2 y 100 caracteres")
	v.Check(reName.MatchString(r.FirstName), "nombre", "El nombre solo puede contener letras y espacios")
	v.Check(lenBetween(r.LastName, 2, 100), "apellido", "El apellido debe tener entre 2 y 100 caracteres")
	v.Check(reName.MatchString(r.LastName), "apellido", "El apellido solo puede contener letras y espacios")
	if r.Phone != "" {
		v.Check(validPhone(r.Phone), "telefono", "Formato de teléfono argentino inválido (ej: +54 11 1234-5678)")
	}
	v.Check(maxLen(r.Position, 100), "cargo", "El cargo no puede tener más de 100 caracteres")
	v.Check(r.BranchID > 0, "sucursal_id", "ID de sucursal inválido")
	return v.Err()
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"nombre"`
	LastName   string    `json:"apellido"`
	Phone      string    `json:"telefono"`
	Position   string    `json:"cargo"`
	BranchID   int64     `json:"sucursal_id"`
	BranchName string    `json:"sucursal_nombre,omitempty"`
	Active     bool      `json:"activo"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewEmployeeResponse mapea la entidad.
func NewEmployeeResponse(e *entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Phone:      e.Phone,
		Position:   e.Position,
		BranchID:   e.BranchID,
		BranchName: e.BranchName,
		Active:     e.Active,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
