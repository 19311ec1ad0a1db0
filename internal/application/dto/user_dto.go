package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

// CreateUserRequest alta de usuario (admin). Password en texto, se hashea en el use case.
type CreateUserRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"rol"`
}

// Validate reporta cada violación.
func (r *CreateUserRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	var v domain.Validator
	validateUserName(&v, r.Name)
	v.Check(validEmail(r.Email), "email", "Email inválido")
	v.Check(validPassword(r.Password), "password", "La contraseña debe tener entre 6 y 50 caracteres")
	_, ok := entity.ParseRole(r.Role)
	v.Check(ok, "rol", "El rol debe ser ADMIN o EMPLEADO")
	return v.Err()
}

// UpdateUserRequest modificación de usuario (admin). Password opcional.
type UpdateUserRequest struct {
	Name     string  `json:"nombre"`
	Email    string  `json:"email"`
	Password *string `json:"password"`
	Role     string  `json:"rol"`
}

// Validate reporta cada violación.
func (r *UpdateUserRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	var v domain.Validator
	validateUserName(&v, r.Name)
	v.Check(validEmail(r.Email), "email", "Email inválido")
	if r.Password != nil && *r.Password != "" {
		v.Check(validPassword(*r.Password), "password", "La contraseña debe tener entre 6 y 50 caracteres")
	}
	_, ok := entity.ParseRole(r.Role)
	v.Check(ok, "rol", "El rol debe ser ADMIN o EMPLEADO")
	return v.Err()
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"nombre"`
	Email     string     `json:"email"`
	Role      string     `json:"rol"`
	Active    bool       `json:"activo"`
	CreatedAt time.Time  `json:"creado_en"`
	LastLogin *time.Time `json:"ultimo_login"`
}

// NewUserResponse mapea la entidad descartando el hash.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}
