package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
	"github.com/jhoicas/lubricentro-api/pkg/textnorm"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

const vehicleSelect = `
	SELECT v.id, v.cliente_id, v.patente, v.marca, v.modelo, v.anio, v.kilometraje, v.observaciones,
	       v.activo, v.created_at, v.updated_at, c.nombre || ' ' || c.apellido
	FROM vehiculos v
	JOIN clientes c ON c.id = v.cliente_id`

// VehicleRepo persistencia de vehículos.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador.
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create inserta el vehículo y completa su ID.
func (r *VehicleRepo) Create(ctx context.Context, v *entity.Vehicle) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO vehiculos (cliente_id, patente, marca, modelo, anio, kilometraje, observaciones, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8, $9)
		RETURNING id`,
		v.ClientID, v.Patente, v.Brand, v.Model, v.Year, v.Mileage, v.Notes, v.CreatedAt, v.UpdatedAt,
	).Scan(&v.ID)
	return dbErr("insert vehicle", err)
}

// FindActiveByID incluye el nombre del cliente.
func (r *VehicleRepo) FindActiveByID(ctx context.Context, id int64) (*entity.Vehicle, error) {
	v, err := scanVehicle(r.q.QueryRow(ctx, vehicleSelect+` WHERE v.id = $1 AND v.activo`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get vehicle", err)
	}
	return v, nil
}

func (r *VehicleRepo) ExistsActivePatente(ctx context.Context, patente string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM vehiculos WHERE patente = $1 AND activo AND id <> $2)`, patente, excludeID,
	).Scan(&exists)
	return exists, dbErr("check vehicle patente", err)
}

func (r *VehicleRepo) Update(ctx context.Context, v *entity.Vehicle) error {
	_, err := r.q.Exec(ctx, `
		UPDATE vehiculos
		SET cliente_id = $1, patente = $2, marca = $3, modelo = $4, anio = $5, kilometraje = $6,
		    observaciones = $7, updated_at = $8
		WHERE id = $9 AND activo`,
		v.ClientID, v.Patente, v.Brand, v.Model, v.Year, v.Mileage, v.Notes, v.UpdatedAt, v.ID,
	)
	return dbErr("update vehicle", err)
}

func (r *VehicleRepo) UpdateMileage(ctx context.Context, id int64, mileage int) error {
	_, err := r.q.Exec(ctx, `UPDATE vehiculos SET kilometraje = $1, updated_at = NOW() WHERE id = $2 AND activo`, mileage, id)
	return dbErr("update vehicle mileage", err)
}

// List busca por patente, marca, modelo o nombre del cliente.
func (r *VehicleRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.Vehicle, int, error) {
	where := ` WHERE v.activo`
	args := []any{}
	if pattern := textnorm.SearchPattern(p.Search); pattern != "" {
		where += ` AND (v.patente ILIKE $1 OR v.marca ILIKE $1 OR v.modelo ILIKE $1
			OR (c.nombre || ' ' || c.apellido) ILIKE $1)`
		args = append(args, pattern)
	}
	var total int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM vehiculos v JOIN clientes c ON c.id = v.cliente_id`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, dbErr("count vehicles", err)
	}
	list, err := r.query(ctx, vehicleSelect+where+` ORDER BY v.patente, v.id`+pageClause(len(args)),
		append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *VehicleRepo) ListByClient(ctx context.Context, clientID int64) ([]*entity.Vehicle, error) {
	return r.query(ctx, vehicleSelect+` WHERE v.cliente_id = $1 AND v.activo ORDER BY v.patente`, clientID)
}

func (r *VehicleRepo) SoftDelete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `UPDATE vehiculos SET activo = FALSE, updated_at = NOW() WHERE id = $1`, id)
	return dbErr("delete vehicle", err)
}

func (r *VehicleRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Vehicle, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbErr("list vehicles", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, dbErr("scan vehicle", err)
		}
		list = append(list, v)
	}
	return list, dbErr("list vehicles", rows.Err())
}

func scanVehicle(row pgx.Row) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := row.Scan(&v.ID, &v.ClientID, &v.Patente, &v.Brand, &v.Model, &v.Year, &v.Mileage, &v.Notes,
		&v.Active, &v.CreatedAt, &v.UpdatedAt, &v.ClientName)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
