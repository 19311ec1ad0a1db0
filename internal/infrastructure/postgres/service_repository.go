package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

// ServiceRepo escritura del agregado Service. Se construye sobre la pgx.Tx que abre TxRunner.
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador.
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

// nextServiceNumberSQL único parámetro: el prefijo ($1, texto). El sufijo numérico empieza en
// la posición 6, después de "SERV-".
const nextServiceNumberSQL = `
		INSERT INTO servicio_numeracion (prefijo, ultimo)
		VALUES ($1, (
			SELECT COALESCE(MAX(CAST(substr(numero, 6) AS BIGINT)), 0) + 1
			FROM servicios
			WHERE numero ~ '^SERV-[0-9]+$'
		))
		ON CONFLICT (prefijo) DO UPDATE
		SET ultimo = GREATEST(servicio_numeracion.ultimo, EXCLUDED.ultimo - 1) + 1
		RETURNING ultimo`

// NextNumber incrementa el contador bajo lock de fila. La primera vez lo siembra con el mayor
// sufijo SERV- existente; si alguien insertó números a mano, el contador salta por encima.
func (r *ServiceRepo) NextNumber(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, nextServiceNumberSQL, entity.ServiceNumberPrefix).Scan(&n)
	return n, dbErr("next service number", err)
}

// ExistsActive bloquea la fila del servicio hasta el fin de la transacción.
func (r *ServiceRepo) ExistsActive(ctx context.Context, id int64) (bool, error) {
	var found int64
	err := r.q.QueryRow(ctx, `SELECT id FROM servicios WHERE id = $1 AND activo FOR UPDATE`, id).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, dbErr("check service", err)
	}
	return true, nil
}

func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO servicios (numero, cliente_id, vehiculo_id, sucursal_id, descripcion, observaciones,
		                       precio_referencia, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8, $9)
		RETURNING id`,
		s.Number, s.ClientID, s.VehicleID, s.BranchID, s.Description, s.Notes,
		s.ReferencePrice, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return dbErr("insert service", err)
	}
	s.Active = true
	return nil
}

func (r *ServiceRepo) UpdateHeader(ctx context.Context, s *entity.Service) error {
	_, err := r.q.Exec(ctx, `
		UPDATE servicios
		SET cliente_id = $1, vehiculo_id = $2, sucursal_id = $3, descripcion = $4, observaciones = $5,
		    precio_referencia = $6, updated_at = $7
		WHERE id = $8`,
		s.ClientID, s.VehicleID, s.BranchID, s.Description, s.Notes, s.ReferencePrice, s.UpdatedAt, s.ID,
	)
	return dbErr("update service", err)
}

func (r *ServiceRepo) AssignEmployees(ctx context.Context, serviceID int64, employeeIDs []int64) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO servicio_empleados (servicio_id, empleado_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`,
		serviceID, employeeIDs,
	)
	return dbErr("assign service employees", err)
}

func (r *ServiceRepo) AddItem(ctx context.Context, serviceID int64, item *entity.ServiceItem) error {
	item.ServiceID = serviceID
	err := r.q.QueryRow(ctx, `
		INSERT INTO servicio_items (servicio_id, tipo_servicio_id, descripcion, observaciones, notas)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		serviceID, item.ServiceTypeID, item.Description, item.Notes, item.Remarks,
	).Scan(&item.ID)
	if err != nil {
		return dbErr("insert service item", err)
	}
	for i := range item.Products {
		p := &item.Products[i]
		p.ItemID = item.ID
		if err := r.q.QueryRow(ctx, `
			INSERT INTO productos (servicio_item_id, nombre, es_nuestro)
			VALUES ($1, $2, $3)
			RETURNING id`,
			item.ID, p.Name, p.OwnStock,
		).Scan(&p.ID); err != nil {
			return dbErr("insert service product", err)
		}
	}
	return nil
}

func (r *ServiceRepo) ClearChildren(ctx context.Context, serviceID int64) error {
	for _, step := range []struct{ op, sql string }{
		{"delete service employees", `DELETE FROM servicio_empleados WHERE servicio_id = $1`},
		{"delete service products", `DELETE FROM productos WHERE servicio_item_id IN (SELECT id FROM servicio_items WHERE servicio_id = $1)`},
		{"delete service items", `DELETE FROM servicio_items WHERE servicio_id = $1`},
	} {
		if _, err := r.q.Exec(ctx, step.sql, serviceID); err != nil {
			return dbErr(step.op, err)
		}
	}
	return nil
}

func (r *ServiceRepo) DeleteAggregate(ctx context.Context, serviceID int64) error {
	if err := r.ClearChildren(ctx, serviceID); err != nil {
		return err
	}
	_, err := r.q.Exec(ctx, `DELETE FROM servicios WHERE id = $1`, serviceID)
	return dbErr("delete service", err)
}
