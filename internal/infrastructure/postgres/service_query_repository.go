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

var _ repository.ServiceQueryRepository = (*ServiceQueryRepo)(nil)

const serviceSelect = `
	SELECT s.id, s.numero, s.cliente_id, s.vehiculo_id, s.sucursal_id, s.descripcion, s.observaciones,
	       s.precio_referencia, s.activo, s.created_at, s.updated_at,
	       c.nombre, c.apellido, c.dni, c.telefono,
	       v.patente, v.marca, v.modelo, v.anio, v.kilometraje,
	       COALESCE(b.nombre, ''),
	       (SELECT COUNT(*) FROM servicio_items i WHERE i.servicio_id = s.id)
	FROM servicios s
	JOIN clientes c ON c.id = s.cliente_id
	JOIN vehiculos v ON v.id = s.vehiculo_id
	LEFT JOIN sucursales b ON b.id = s.sucursal_id`

const serviceFrom = `
	FROM servicios s
	JOIN clientes c ON c.id = s.cliente_id
	JOIN vehiculos v ON v.id = s.vehiculo_id`

// ServiceQueryRepo lecturas del agregado Service.
type ServiceQueryRepo struct {
	q Querier
}

// NewServiceQueryRepository construye el adaptador.
func NewServiceQueryRepository(q Querier) *ServiceQueryRepo {
	return &ServiceQueryRepo{q: q}
}

// FindByID carga el agregado completo: cabecera, empleados, ítems y productos.
func (r *ServiceQueryRepo) FindByID(ctx context.Context, id int64) (*entity.Service, error) {
	s, err := scanService(r.q.QueryRow(ctx, serviceSelect+` WHERE s.id = $1 AND s.activo`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get service", err)
	}
	if err := r.loadEmployees(ctx, s); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// List busca por número, "nombre apellido" del cliente o patente; más recientes primero.
func (r *ServiceQueryRepo) List(ctx context.Context, f repository.ServiceFilter) ([]*entity.Service, int, error) {
	where := ` WHERE s.activo`
	args := []any{}
	if pattern := textnorm.SearchPattern(f.Search); pattern != "" {
		args = append(args, pattern)
		where += ` AND (s.numero ILIKE $1 OR (c.nombre || ' ' || c.apellido) ILIKE $1 OR v.patente ILIKE $1)`
	}
	if f.ClientID > 0 {
		args = append(args, f.ClientID)
		where += ` AND s.cliente_id = ` + placeholder(len(args))
	}
	if f.VehicleID > 0 {
		args = append(args, f.VehicleID)
		where += ` AND s.vehiculo_id = ` + placeholder(len(args))
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+serviceFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, dbErr("count services", err)
	}
	list, err := r.query(ctx, serviceSelect+where+` ORDER BY s.created_at DESC, s.id DESC`+pageClause(len(args)),
		append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ServiceQueryRepo) ListByClient(ctx context.Context, clientID int64) ([]*entity.Service, error) {
	return r.query(ctx, serviceSelect+` WHERE s.cliente_id = $1 AND s.activo ORDER BY s.created_at DESC, s.id DESC`, clientID)
}

func (r *ServiceQueryRepo) ListByPatente(ctx context.Context, patente string) ([]*entity.Service, error) {
	return r.query(ctx, serviceSelect+` WHERE v.patente = $1 AND s.activo ORDER BY s.created_at DESC, s.id DESC`, patente)
}

// Stats cuenta servicios activos: total, desde el inicio del día, últimos 7 días y mes calendario.
// Los límites se calculan en la zona horaria de now.
func (r *ServiceQueryRepo) Stats(ctx context.Context, now time.Time) (entity.ServiceStats, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	week := now.AddDate(0, 0, -7)
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var st entity.ServiceStats
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE created_at >= $1),
		       COUNT(*) FILTER (WHERE created_at >= $2),
		       COUNT(*) FILTER (WHERE created_at >= $3)
		FROM servicios
		WHERE activo`,
		day, week, month,
	).Scan(&st.Total, &st.Today, &st.Week, &st.Month)
	return st, dbErr("service stats", err)
}

func (r *ServiceQueryRepo) loadEmployees(ctx context.Context, s *entity.Service) error {
	rows, err := r.q.Query(ctx, `
		SELECT e.id, e.nombre, e.apellido, e.cargo
		FROM servicio_empleados se
		JOIN empleados e ON e.id = se.empleado_id
		WHERE se.servicio_id = $1
		ORDER BY e.apellido, e.nombre`, s.ID)
	if err != nil {
		return dbErr("list service employees", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Position); err != nil {
			return dbErr("scan service employee", err)
		}
		s.Employees = append(s.Employees, e)
		s.EmployeeIDs = append(s.EmployeeIDs, e.ID)
	}
	return dbErr("list service employees", rows.Err())
}

func (r *ServiceQueryRepo) loadItems(ctx context.Context, s *entity.Service) error {
	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.tipo_servicio_id, COALESCE(t.nombre, ''), i.descripcion, i.observaciones, i.notas
		FROM servicio_items i
		LEFT JOIN tipos_servicios t ON t.id = i.tipo_servicio_id
		WHERE i.servicio_id = $1
		ORDER BY i.id`, s.ID)
	if err != nil {
		return dbErr("list service items", err)
	}
	index := map[int64]int{}
	for rows.Next() {
		it := entity.ServiceItem{ServiceID: s.ID, Products: []entity.ServiceProduct{}}
		if err := rows.Scan(&it.ID, &it.ServiceTypeID, &it.ServiceTypeName, &it.Description, &it.Notes, &it.Remarks); err != nil {
			rows.Close()
			return dbErr("scan service item", err)
		}
		index[it.ID] = len(s.Items)
		s.Items = append(s.Items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return dbErr("list service items", err)
	}
	if len(s.Items) == 0 {
		return nil
	}

	prows, err := r.q.Query(ctx, `
		SELECT p.id, p.servicio_item_id, p.nombre, p.es_nuestro
		FROM productos p
		JOIN servicio_items i ON i.id = p.servicio_item_id
		WHERE i.servicio_id = $1
		ORDER BY p.id`, s.ID)
	if err != nil {
		return dbErr("list service products", err)
	}
	defer prows.Close()
	for prows.Next() {
		var p entity.ServiceProduct
		if err := prows.Scan(&p.ID, &p.ItemID, &p.Name, &p.OwnStock); err != nil {
			return dbErr("scan service product", err)
		}
		if i, ok := index[p.ItemID]; ok {
			s.Items[i].Products = append(s.Items[i].Products, p)
		}
	}
	return dbErr("list service products", prows.Err())
}

func (r *ServiceQueryRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Service, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbErr("list services", err)
	}
	defer rows.Close()
	var list []*entity.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, dbErr("scan service", err)
		}
		list = append(list, s)
	}
	return list, dbErr("list services", rows.Err())
}

func scanService(row pgx.Row) (*entity.Service, error) {
	var s entity.Service
	c := &entity.Client{}
	v := &entity.Vehicle{}
	err := row.Scan(
		&s.ID, &s.Number, &s.ClientID, &s.VehicleID, &s.BranchID, &s.Description, &s.Notes,
		&s.ReferencePrice, &s.Active, &s.CreatedAt, &s.UpdatedAt,
		&c.FirstName, &c.LastName, &c.DNI, &c.Phone,
		&v.Patente, &v.Brand, &v.Model, &v.Year, &v.Mileage,
		&s.BranchName, &s.ItemsCount,
	)
	if err != nil {
		return nil, err
	}
	c.ID = s.ClientID
	v.ID, v.ClientID = s.VehicleID, s.ClientID
	s.Client, s.Vehicle = c, v
	return &s, nil
}
