package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
	"github.com/jhoicas/lubricentro-api/pkg/textnorm"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

const branchColumns = `id, nombre, ubicacion, activo, created_at, updated_at`

// BranchRepo persistencia de sucursales.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO sucursales (nombre, ubicacion, activo, created_at, updated_at)
		VALUES ($1, $2, TRUE, $3, $4)
		RETURNING id`,
		b.Name, b.Location, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	return dbErr("insert branch", err)
}

func (r *BranchRepo) FindActiveByID(ctx context.Context, id int64) (*entity.Branch, error) {
	b, err := scanBranch(r.q.QueryRow(ctx, `SELECT `+branchColumns+` FROM sucursales WHERE id = $1 AND activo`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get branch", err)
	}
	return b, nil
}

// ExistsActiveName compara sin distinguir mayúsculas.
func (r *BranchRepo) ExistsActiveName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM sucursales WHERE lower(nombre) = lower($1) AND activo AND id <> $2)`, name, excludeID,
	).Scan(&exists)
	return exists, dbErr("check branch name", err)
}

func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	_, err := r.q.Exec(ctx,
		`UPDATE sucursales SET nombre = $1, ubicacion = $2, updated_at = $3 WHERE id = $4 AND activo`,
		b.Name, b.Location, b.UpdatedAt, b.ID,
	)
	return dbErr("update branch", err)
}

func (r *BranchRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.Branch, int, error) {
	where := ` WHERE activo`
	args := []any{}
	if pattern := textnorm.SearchPattern(p.Search); pattern != "" {
		where += ` AND (nombre ILIKE $1 OR ubicacion ILIKE $1)`
		args = append(args, pattern)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sucursales`+where, args...).Scan(&total); err != nil {
		return nil, 0, dbErr("count branches", err)
	}
	list, err := r.query(ctx, `SELECT `+branchColumns+` FROM sucursales`+where+` ORDER BY nombre, id`+pageClause(len(args)),
		append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *BranchRepo) ListActive(ctx context.Context) ([]*entity.Branch, error) {
	return r.query(ctx, `SELECT `+branchColumns+` FROM sucursales WHERE activo ORDER BY nombre`)
}

func (r *BranchRepo) CountDependents(ctx context.Context, id int64) (services, employees int, err error) {
	err = r.q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM servicios WHERE sucursal_id = $1 AND activo),
			(SELECT COUNT(*) FROM empleados WHERE sucursal_id = $1 AND activo)`, id,
	).Scan(&services, &employees)
	return services, employees, dbErr("count branch dependents", err)
}

func (r *BranchRepo) SoftDelete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `UPDATE sucursales SET activo = FALSE, updated_at = NOW() WHERE id = $1`, id)
	return dbErr("delete branch", err)
}

func (r *BranchRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Branch, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbErr("list branches", err)
	}
	defer rows.Close()
	var list []*entity.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, dbErr("scan branch", err)
		}
		list = append(list, b)
	}
	return list, dbErr("list branches", rows.Err())
}

func scanBranch(row pgx.Row) (*entity.Branch, error) {
	var b entity.Branch
	if err := row.Scan(&b.ID, &b.Name, &b.Location, &b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
