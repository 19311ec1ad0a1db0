package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
	"github.com/jhoicas/lubricentro-api/pkg/textnorm"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, nombre, email, password, rol, activo, creado_en, ultimo_login`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario y completa su ID.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO usuarios (nombre, email, password, rol, activo, creado_en)
		VALUES ($1, $2, $3, $4, TRUE, $5)
		RETURNING id`,
		u.Name, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt,
	).Scan(&u.ID)
	return dbErr("insert user", err)
}

// FindActiveByID obtiene un usuario activo por ID.
func (r *UserRepo) FindActiveByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, "get user", `SELECT `+userColumns+` FROM usuarios WHERE id = $1 AND activo`, id)
}

// FindActiveByEmail obtiene un usuario activo por email (sin distinguir mayúsculas).
func (r *UserRepo) FindActiveByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", `SELECT `+userColumns+` FROM usuarios WHERE lower(email) = lower($1) AND activo`, email)
}

// ExistsActiveEmail indica si otro usuario activo usa el email.
func (r *UserRepo) ExistsActiveEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM usuarios WHERE lower(email) = lower($1) AND activo AND id <> $2)`,
		email, excludeID,
	).Scan(&exists)
	return exists, dbErr("check user email", err)
}

// Update actualiza nombre, email y rol.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	_, err := r.q.Exec(ctx,
		`UPDATE usuarios SET nombre = $1, email = $2, rol = $3 WHERE id = $4 AND activo`,
		u.Name, u.Email, string(u.Role), u.ID,
	)
	return dbErr("update user", err)
}

// UpdatePassword reemplaza el hash de contraseña.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.q.Exec(ctx, `UPDATE usuarios SET password = $1 WHERE id = $2`, passwordHash, id)
	return dbErr("update user password", err)
}

// TouchLastLogin registra el instante del último login.
func (r *UserRepo) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE usuarios SET ultimo_login = $1 WHERE id = $2`, at, id)
	return dbErr("update last login", err)
}

// List devuelve usuarios activos paginados y el total.
func (r *UserRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.User, int, error) {
	where := `WHERE activo`
	args := []any{}
	if pattern := textnorm.SearchPattern(p.Search); pattern != "" {
		where += ` AND (nombre ILIKE $1 OR email ILIKE $1)`
		args = append(args, pattern)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios `+where, args...).Scan(&total); err != nil {
		return nil, 0, dbErr("count users", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+userColumns+` FROM usuarios `+where+` ORDER BY creado_en DESC, id DESC`+pageClause(len(args)),
		append(args, p.Limit, p.Offset)...,
	)
	if err != nil {
		return nil, 0, dbErr("list users", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, dbErr("scan user", err)
		}
		list = append(list, u)
	}
	return list, total, dbErr("list users", rows.Err())
}

// SoftDelete marca el usuario como inactivo.
func (r *UserRepo) SoftDelete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `UPDATE usuarios SET activo = FALSE WHERE id = $1`, id)
	return dbErr("delete user", err)
}

func (r *UserRepo) findOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr(op, err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.Active, &u.CreatedAt, &u.LastLogin); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}
