package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate normaliza el email y valida presencia de credenciales.
func (r *LoginRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	var v domain.Validator
	v.Check(validEmail(r.Email), "email", "Email inválido")
	v.Check(r.Password != "", "password", "La contraseña es requerida")
	return v.Err()
}

// LoginResponse usuario (sin password) y token.
type LoginResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// ChangePasswordRequest entrada para cambio de contraseña.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Validate reporta cada violación.
func (r *ChangePasswordRequest) Validate() error {
	var v domain.Validator
	v.Check(r.CurrentPassword != "", "currentPassword", "Contraseña actual es requerida")
	v.Check(validPassword(r.NewPassword), "newPassword", "La nueva contraseña debe tener entre 6 y 50 caracteres")
	return v.Err()
}

// RegisterRequest alta de usuario desde /auth/register.
type RegisterRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"rol"`
}

// Validate reporta cada violación.
func (r *RegisterRequest) Validate() error {
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

// ClaimsResponse datos del token verificado.
type ClaimsResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func validateUserName(v *domain.Validator, name string) {
	v.Check(lenBetween(name, 2, 100), "nombre", "El nombre debe tener entre 2 y 100 caracteres")
	v.Check(reName.MatchString(name), "nombre", "El nombre solo puede contener letras y espacios")
}
