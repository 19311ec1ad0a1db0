package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
	"github.com/jhoicas/lubricentro-api/pkg/textnorm"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeSelect = `
	SELECT e.id, e.nombre, e.apellido, e.telefono, e.cargo, e.sucursal_id, e.activo,
	       e.created_at, e.updated_at, COALESCE(s.nombre, '')
	FROM empleados e
	LEFT JOIN sucursales s ON s.id = e.sucursal_id`

// EmployeeRepo persistencia de empleados.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO empleados (nombre, apellido, telefono, cargo, sucursal_id, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7)
		RETURNING id`,
		e.FirstName, e.LastName, e.Phone, e.Position, e.BranchID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	return dbErr("insert employee", err)
}

func (r *EmployeeRepo) FindActiveByID(ctx context.Context, id int64) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1 AND e.activo`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get employee", err)
	}
	return e, nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	_, err := r.q.Exec(ctx, `
		UPDATE empleados
		SET nombre = $1, apellido = $2, telefono = $3, cargo = $4, sucursal_id = $5, updated_at = $6
		WHERE id = $7 AND activo`,
		e.FirstName, e.LastName, e.Phone, e.Position, e.BranchID, e.UpdatedAt, e.ID,
	)
	return dbErr("update employee", err)
}

// List busca por nombre, apellido, cargo o sucursal.
func (r *EmployeeRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.Employee, int, error) {
	where := ` WHERE e.activo`
	args := []any{}
	if pattern := textnorm.SearchPattern(p.Search); pattern != "" {
		where += ` AND (e.nombre ILIKE $1 OR e.apellido ILIKE $1 OR e.cargo ILIKE $1 OR s.nombre ILIKE $1)`
		args = append(args, pattern)
	}
	var total int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM empleados e LEFT JOIN sucursales s ON s.id = e.sucursal_id`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, dbErr("count employees", err)
	}
	list, err := r.query(ctx, employeeSelect+where+` ORDER BY e.apellido, e.nombre, e.id`+pageClause(len(args)),
		append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *EmployeeRepo) ListActive(ctx context.Context) ([]*entity.Employee, error) {
	return r.query(ctx, employeeSelect+` WHERE e.activo ORDER BY e.apellido, e.nombre`)
}

func (r *EmployeeRepo) ListByBranch(ctx context.Context, branchID int64) ([]*entity.Employee, error) {
	return r.query(ctx, employeeSelect+` WHERE e.sucursal_id = $1 AND e.activo ORDER BY e.apellido, e.nombre`, branchID)
}

// MissingActive ids pedidos sin empleado activo, en el orden recibido.
func (r *EmployeeRepo) MissingActive(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id FROM unnest($1::bigint[]) WITH ORDINALITY AS req(id, pos)
		WHERE NOT EXISTS (SELECT 1 FROM empleados e WHERE e.id = req.id AND e.activo)
		ORDER BY pos`, ids)
	if err != nil {
		return nil, dbErr("check employees", err)
	}
	missing, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	return missing, dbErr("check employees", err)
}

func (r *EmployeeRepo) SoftDelete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `UPDATE empleados SET activo = FALSE, updated_at = NOW() WHERE id = $1`, id)
	return dbErr("delete employee", err)
}

func (r *EmployeeRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbErr("list employees", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, dbErr("scan employee", err)
		}
		list = append(list, e)
	}
	return list, dbErr("list employees", rows.Err())
}

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Phone, &e.Position, &e.BranchID, &e.Active,
		&e.CreatedAt, &e.UpdatedAt, &e.BranchName)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
