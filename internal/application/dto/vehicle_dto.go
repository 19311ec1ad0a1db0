package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/pkg/textnorm"
)

// MaxMileage tope de kilometraje aceptado.
const MaxMileage = 9_999_999

// VehicleRequest alta y modificación de vehículos.
type VehicleRequest struct {
	ClientID int64  `json:"cliente_id"`
	Patente  string `json:"patente"`
	Brand    string `json:"marca"`
	Model    string `json:"modelo"`
	Year     int    `json:"año"`
	Mileage  int    `json:"kilometraje"`
	Notes    string `json:"observaciones"`
}

// Validate normaliza y reporta cada violación. now fija el año máximo admitido (año actual + 1).
func (r *VehicleRequest) Validate(now time.Time) error {
	r.Patente = textnorm.Patente(r.Patente)
	r.Brand = textnorm.CollapseSpaces(r.Brand)
	r.Model = textnorm.CollapseSpaces(r.Model)
	r.Notes = textnorm.CollapseSpaces(r.Notes)
	maxYear := now.Year() + 1

	var v domain.Validator
	v.Check(r.ClientID > 0, "cliente_id", "ID de cliente inválido")
	v.Check(lenBetween(r.Patente, 3, 10), "patente", "La patente debe tener entre 3 y 10 caracteres")
	v.Check(rePatente.MatchString(r.Patente), "patente", "La patente solo puede contener letras y números")
	v.Check(lenBetween(r.Brand, 2, 50), "marca", "La marca debe tener entre 2 y 50 caracteres")
	v.Check(lenBetween(r.Model, 2, 50), "modelo", "El modelo debe tener entre 2 y 50 caracteres")
	v.Check(reLabel.MatchString(r.Model), "modelo", "El modelo contiene caracteres inválidos")
	v.Check(r.Year >= 1900 && r.Year <= maxYear, "año", fmt.Sprintf("El año debe estar entre 1900 y %d", maxYear))
	v.Check(r.Mileage >= 0 && r.Mileage <= MaxMileage, "kilometraje", "El kilometraje debe ser un número entero entre 0 y 9,999,999")
	v.Check(maxLen(r.Notes, 1000), "observaciones", "Las observaciones no pueden tener más de 1000 caracteres")
	return v.Err()
}

// MileageRequest actualización de kilometraje.
type MileageRequest struct {
	Mileage int `json:"kilometraje"`
}

// Validate rango válido.
func (r *MileageRequest) Validate() error {
	var v domain.Validator
	v.Check(r.Mileage >= 0 && r.Mileage <= MaxMileage, "kilometraje", "El kilometraje debe ser un número entero entre 0 y 9,999,999")
	return v.Err()
}

// VehicleResponse salida de un vehículo.
type VehicleResponse struct {
	ID         int64     `json:"id"`
	ClientID   int64     `json:"cliente_id"`
	ClientName string    `json:"cliente_nombre,omitempty"`
	Patente    string    `json:"patente"`
	Brand      string    `json:"marca"`
	Model      string    `json:"modelo"`
	Year       int       `json:"año"`
	Mileage    int       `json:"kilometraje"`
	Notes      string    `json:"observaciones"`
	Active     bool      `json:"activo"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewVehicleResponse mapea la entidad.
func NewVehicleResponse(v *entity.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:         v.ID,
		ClientID:   v.ClientID,
		ClientName: v.ClientName,
		Patente:    v.Patente,
		Brand:      v.Brand,
		Model:      v.Model,
		Year:       v.Year,
		Mileage:    v.Mileage,
		Notes:      v.Notes,
		Active:     v.Active,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}
