package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
	"github.com/jhoicas/lubricentro-api/pkg/textnorm"
)

var _ repository.ServiceTypeRepository = (*ServiceTypeRepo)(nil)

const serviceTypeColumns = `id, nombre, descripcion, activo, created_at, updated_at`

// ServiceTypeRepo persistencia del catálogo de tipos de servicio.
type ServiceTypeRepo struct {
	q Querier
}

// NewServiceTypeRepository construye el adaptador.
func NewServiceTypeRepository(q Querier) *ServiceTypeRepo {
	return &ServiceTypeRepo{q: q}
}

func (r *ServiceTypeRepo) Create(ctx context.Context, t *entity.ServiceType) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO tipos_servicios (nombre, descripcion, activo, created_at, updated_at)
		VALUES ($1, $2, TRUE, $3, $4)
		RETURNING id`,
		t.Name, t.Description, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	return dbErr("insert service type", err)
}

func (r *ServiceTypeRepo) FindActiveByID(ctx context.Context, id int64) (*entity.ServiceType, error) {
	t, err := scanServiceType(r.q.QueryRow(ctx, `SELECT `+serviceTypeColumns+` FROM tipos_servicios WHERE id = $1 AND activo`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get service type", err)
	}
	return t, nil
}

func (r *ServiceTypeRepo) ExistsActiveName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM tipos_servicios WHERE lower(nombre) = lower($1) AND activo AND id <> $2)`, name, excludeID,
	).Scan(&exists)
	return exists, dbErr("check service type name", err)
}

func (r *ServiceTypeRepo) Update(ctx context.Context, t *entity.ServiceType) error {
	_, err := r.q.Exec(ctx,
		`UPDATE tipos_servicios SET nombre = $1, descripcion = $2, updated_at = $3 WHERE id = $4 AND activo`,
		t.Name, t.Description, t.UpdatedAt, t.ID,
	)
	return dbErr("update service type", err)
}

func (r *ServiceTypeRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.ServiceType, int, error) {
	where := ` WHERE activo`
	args := []any{}
	if pattern := textnorm.SearchPattern(p.Search); pattern != "" {
		where += ` AND (nombre ILIKE $1 OR descripcion ILIKE $1)`
		args = append(args, pattern)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM tipos_servicios`+where, args...).Scan(&total); err != nil {
		return nil, 0, dbErr("count service types", err)
	}
	list, err := r.query(ctx, `SELECT `+serviceTypeColumns+` FROM tipos_servicios`+where+` ORDER BY nombre, id`+pageClause(len(args)),
		append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Search autocompletado: primero los que empiezan con el término.
func (r *ServiceTypeRepo) Search(ctx context.Context, term string, limit int) ([]*entity.ServiceType, error) {
	pattern := textnorm.SearchPattern(term)
	if pattern == "" {
		return nil, nil
	}
	return r.query(ctx, `
		SELECT `+serviceTypeColumns+` FROM tipos_servicios
		WHERE activo AND (nombre ILIKE $1 OR descripcion ILIKE $1)
		ORDER BY (nombre ILIKE $2) DESC, nombre
		LIMIT $3`, pattern, pattern[1:], limit)
}

func (r *ServiceTypeRepo) CountItemUsage(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM servicio_items WHERE tipo_servicio_id = $1`, id).Scan(&n)
	return n, dbErr("count service type usage", err)
}

func (r *ServiceTypeRepo) SoftDelete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `UPDATE tipos_servicios SET activo = FALSE, updated_at = NOW() WHERE id = $1`, id)
	return dbErr("delete service type", err)
}

func (r *ServiceTypeRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.ServiceType, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbErr("list service types", err)
	}
	defer rows.Close()
	var list []*entity.ServiceType
	for rows.Next() {
		t, err := scanServiceType(rows)
		if err != nil {
			return nil, dbErr("scan service type", err)
		}
		list = append(list, t)
	}
	return list, dbErr("list service types", rows.Err())
}

func scanServiceType(row pgx.Row) (*entity.ServiceType, error) {
	var t entity.ServiceType
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
