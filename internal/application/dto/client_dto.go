package dto

import (
	"time"

	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/pkg/textnorm"
)

// ClientRequest alta y modificación de clientes.
type ClientRequest struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	DNI       string `json:"dni"`
	Phone     string `json:"telefono"`
	Email     string `json:"email"`
	Address   string `json:"direccion"`
}

// Validate normaliza y reporta cada violación.
func (r *ClientRequest) Validate() error {
	r.FirstName = textnorm.PersonName(r.FirstName)
	r.LastName = textnorm.PersonName(r.LastName)
	r.DNI = textnorm.CollapseSpaces(r.DNI)
	r.Phone = textnorm.CollapseSpaces(r.Phone)
	r.Email = NormalizeEmail(r.Email)
	r.Address = textnorm.CollapseSpaces(r.Address)

	var v domain.Validator
	v.Check(lenBetween(r.FirstName, 2, 100), "nombre", "El nombre debe tener entre 2 y 100 caracteres")
	v.Check(reName.MatchString(r.FirstName), "nombre", "El nombre solo puede contener letras y espacios")
	v.Check(lenBetween(r.LastName, 2, 100), "apellido", "El apellido debe tener entre 2 y 100 caracteres")
	v.Check(reName.MatchString(r.LastName), "apellido", "El apellido solo puede contener letras y espacios")
	if r.DNI != "" {
		v.Check(reDNI.MatchString(r.DNI), "dni", "DNI debe tener 7 u 8 dígitos")
	}
	if r.Phone != "" {
		v.Check(validPhone(r.Phone), "telefono", "Formato de teléfono inválido")
	}
	if r.Email != "" {
		v.Check(validEmail(r.Email), "email", "Email inválido")
	}
	if r.Address != "" {
		v.Check(lenBetween(r.Address, 5, 255), "direccion", "La dirección debe tener entre 5 y 255 caracteres")
	}
	return v.Err()
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        int64             `json:"id"`
	FirstName string            `json:"nombre"`
	LastName  string            `json:"apellido"`
	DNI       string            `json:"dni"`
	Phone     string            `json:"telefono"`
	Email     string            `json:"email"`
	Address   string            `json:"direccion"`
	Active    bool              `json:"activo"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Vehicles  []VehicleResponse `json:"vehiculos,omitempty"`
}

// NewClientResponse mapea la entidad.
func NewClientResponse(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		DNI:       c.DNI,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
