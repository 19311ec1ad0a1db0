package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
	"github.com/jhoicas/lubricentro-api/pkg/jwt"
)

// Config parámetros de emisión de tokens.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// RequestMeta datos del cliente HTTP que se guardan con la sesión.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// Identity usuario autenticado por un token con sesión vigente.
type Identity struct {
	UserID    int64
	Email     string
	Role      entity.Role
	TokenHash string
}

// AuthUseCase casos de uso de autenticación: login, verificación, logout y cambio de contraseña.
type AuthUseCase struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	hasher    *Hasher
	cfg       Config
	now       func() time.Time
	dummyHash string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, sessions repository.SessionRepository, hasher *Hasher, cfg Config) (*AuthUseCase, error) {
	// Hash de relleno para comparar cuando el email no existe.
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}
	return &AuthUseCase{users: users, sessions: sessions, hasher: hasher, cfg: cfg, now: time.Now, dummyHash: dummy}, nil
}

// Login verifica credenciales, emite el token y persiste la sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, meta RequestMeta) (*dto.LoginResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.users.FindActiveByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.hasher.Compare(uc.dummyHash, in.Password)
		return nil, domain.ErrInvalidCredentials
	}
	if !uc.hasher.Compare(user.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, exp, err := jwt.Generate(uc.cfg.Secret, uc.cfg.Issuer, user.ID, user.Email, string(user.Role), uc.cfg.TTL)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: jwt.Fingerprint(token),
		IPAddress: meta.IP,
		UserAgent: truncate(meta.UserAgent, 500),
		ExpiresAt: exp,
		CreatedAt: now,
	}
	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("crear sesión: %w", err)
	}
	if err := uc.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	return &dto.LoginResponse{User: dto.NewUserResponse(user), Token: token, ExpiresAt: exp}, nil
}

// Verify valida firma y expiración del token y exige una sesión vigente con su huella.
func (uc *AuthUseCase) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	claims, err := jwt.Parse(uc.cfg.Secret, token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}
	role, ok := entity.ParseRole(claims.Role)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	hash := jwt.Fingerprint(token)
	session, err := uc.sessions.FindValidByHash(ctx, hash, uc.now())
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != claims.UserID {
		return nil, domain.ErrSessionRevoked
	}
	return &Identity{UserID: claims.UserID, Email: claims.Email, Role: role, TokenHash: hash}, nil
}

// Logout borra la sesión del token. Idempotente.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return uc.sessions.DeleteByHash(ctx, jwt.Fingerprint(token))
}

// ChangePassword exige la contraseña actual, guarda la nueva y revoca las demás sesiones del usuario.
// La sesión que hizo el cambio sigue vigente.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, id Identity, in dto.ChangePasswordRequest) error {
	if err := in.Validate(); err != nil {
		return err
	}
	user, err := uc.users.FindActiveByID(ctx, id.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NotFound("USER_NOT_FOUND", "Usuario no encontrado")
	}
	if !uc.hasher.Compare(user.PasswordHash, in.CurrentPassword) {
		return domain.ErrInvalidCredentials
	}
	hash, err := uc.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	if err := uc.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	if _, err := uc.sessions.DeleteByUser(ctx, user.ID, id.TokenHash); err != nil {
		return fmt.Errorf("revocar sesiones: %w", err)
	}
	return nil
}

// Me devuelve el usuario autenticado sin password.
func (uc *AuthUseCase) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := uc.users.FindActiveByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("USER_NOT_FOUND", "Usuario no encontrado")
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}

// Register crea un usuario. Devuelve Conflict si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	exists, err := uc.users.ExistsActiveEmail(ctx, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("El email ya está registrado")
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	role, _ := entity.ParseRole(in.Role)
	user := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    uc.now(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
