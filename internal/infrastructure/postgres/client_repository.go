package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
	"github.com/jhoicas/lubricentro-api/pkg/textnorm"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, nombre, apellido, dni, telefono, email, direccion, activo, created_at, updated_at`

// ClientRepo persistencia de clientes.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create inserta el cliente y completa su ID.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO clientes (nombre, apellido, dni, telefono, email, direccion, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $8)
		RETURNING id`,
		c.FirstName, c.LastName, c.DNI, c.Phone, c.Email, c.Address, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	return dbErr("insert client", err)
}

// FindActiveByID devuelve (nil, nil) si no existe o está dado de baja.
func (r *ClientRepo) FindActiveByID(ctx context.Context, id int64) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clientes WHERE id = $1 AND activo`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get client", err)
	}
	return c, nil
}

func (r *ClientRepo) ExistsActiveDNI(ctx context.Context, dni string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM clientes WHERE dni = $1 AND activo AND id <> $2)`, dni, excludeID,
	).Scan(&exists)
	return exists, dbErr("check client dni", err)
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	_, err := r.q.Exec(ctx, `
		UPDATE clientes
		SET nombre = $1, apellido = $2, dni = $3, telefono = $4, email = $5, direccion = $6, updated_at = $7
		WHERE id = $8 AND activo`,
		c.FirstName, c.LastName, c.DNI, c.Phone, c.Email, c.Address, c.UpdatedAt, c.ID,
	)
	return dbErr("update client", err)
}

// List busca por nombre, apellido, "nombre apellido", DNI o teléfono.
func (r *ClientRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.Client, int, error) {
	where := `WHERE activo`
	args := []any{}
	if pattern := textnorm.SearchPattern(p.Search); pattern != "" {
		where += ` AND (nombre ILIKE $1 OR apellido ILIKE $1 OR (nombre || ' ' || apellido) ILIKE $1
			OR dni ILIKE $1 OR telefono ILIKE $1)`
		args = append(args, pattern)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM clientes `+where, args...).Scan(&total); err != nil {
		return nil, 0, dbErr("count clients", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+clientColumns+` FROM clientes `+where+` ORDER BY apellido, nombre, id`+pageClause(len(args)),
		append(args, p.Limit, p.Offset)...,
	)
	if err != nil {
		return nil, 0, dbErr("list clients", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, dbErr("scan client", err)
		}
		list = append(list, c)
	}
	return list, total, dbErr("list clients", rows.Err())
}

func (r *ClientRepo) CountActiveVehicles(ctx context.Context, clientID int64) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM vehiculos WHERE cliente_id = $1 AND activo`, clientID).Scan(&n)
	return n, dbErr("count client vehicles", err)
}

func (r *ClientRepo) SoftDelete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `UPDATE clientes SET activo = FALSE, updated_at = NOW() WHERE id = $1`, id)
	return dbErr("delete client", err)
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.DNI, &c.Phone, &c.Email, &c.Address, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
