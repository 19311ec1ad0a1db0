package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/application/auth"
	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (solo administradores).
type UserUseCase struct {
	repo     repository.UserRepository
	sessions repository.SessionRepository
	hasher   *auth.Hasher
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, sessions repository.SessionRepository, hasher *auth.Hasher) *UserUseCase {
	return &UserUseCase{repo: repo, sessions: sessions, hasher: hasher}
}

// Create crea un usuario. Email duplicado entre activos -> Conflict.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkEmail(ctx, in.Email, 0); err != nil {
		return nil, err
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	role, _ := entity.ParseRole(in.Role)
	u := &entity.User{Name: in.Name, Email: in.Email, PasswordHash: hash, Role: role, Active: true, CreatedAt: time.Now()}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}

// GetByID devuelve un usuario activo.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}

// Update modifica nombre, email y rol; si viene password la re-hashea y revoca sus sesiones.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	u, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkEmail(ctx, in.Email, id); err != nil {
		return nil, err
	}
	role, _ := entity.ParseRole(in.Role)
	roleChanged := role != u.Role
	u.Name, u.Email, u.Role = in.Name, in.Email, role
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	passwordChanged := in.Password != nil && *in.Password != ""
	if passwordChanged {
		hash, err := uc.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		if err := uc.repo.UpdatePassword(ctx, id, hash); err != nil {
			return nil, err
		}
	}
	// El rol viaja en el token: un cambio de rol o de password invalida las sesiones abiertas.
	if passwordChanged || roleChanged {
		if _, err := uc.sessions.DeleteByUser(ctx, id, ""); err != nil {
			return nil, fmt.Errorf("revocar sesiones: %w", err)
		}
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}

// List lista usuarios activos; search filtra por nombre o email.
func (uc *UserUseCase) List(ctx context.Context, p dto.PageRequest) (*dto.Page[dto.UserResponse], error) {
	list, total, err := uc.repo.List(ctx, listParams(&p))
	if err != nil {
		return nil, err
	}
	return &dto.Page[dto.UserResponse]{Items: mapAll(list, dto.NewUserResponse), Pagination: dto.NewPagination(p, total)}, nil
}

// Delete da de baja al usuario y cierra sus sesiones. Un usuario no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return domain.Invalid("CANNOT_DELETE_SELF", "No puedes eliminar tu propio usuario")
	}
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	if _, err := uc.sessions.DeleteByUser(ctx, id, ""); err != nil {
		return fmt.Errorf("revocar sesiones: %w", err)
	}
	return nil
}

func (uc *UserUseCase) find(ctx context.Context, id int64) (*entity.User, error) {
	u, err := uc.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("USER_NOT_FOUND", "Usuario no encontrado")
	}
	return u, nil
}

func (uc *UserUseCase) checkEmail(ctx context.Context, email string, excludeID int64) error {
	exists, err := uc.repo.ExistsActiveEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.Conflict("El email ya está registrado")
	}
	return nil
}
