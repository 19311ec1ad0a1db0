package dto

import (
	"time"

	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/pkg/textnorm"
)

// BranchRequest alta y modificación de sucursales.
type BranchRequest struct {
	Name     string `json:"nombre"`
	Location string `json:"ubicacion"`
}

// Validate normaliza y reporta cada violación.
func (r *BranchRequest) Validate() error {
	r.Name = textnorm.CollapseSpaces(r.Name)
	r.Location = textnorm.CollapseSpaces(r.Location)
	var v domain.Validator
	v.Check(lenBetween(r.Name, 2, 100), "nombre", "El nombre debe tener entre 2 y 100 caracteres")
	v.Check(reLabel.MatchString(r.Name), "nombre", "El nombre contiene caracteres inválidos")
	v.Check(maxLen(r.Location, 255), "ubicacion", "La ubicación no puede tener más de 255 caracteres")
	return v.Err()
}

// BranchResponse salida de una sucursal.
type BranchResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nombre"`
	Location  string    `json:"ubicacion"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBranchResponse mapea la entidad.
func NewBranchResponse(b *entity.Branch) BranchResponse {
	return BranchResponse{ID: b.ID, Name: b.Name, Location: b.Location, Active: b.Active, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
}
