package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

var (
	_ repository.ClientRepository      = (*ClientRepo)(nil)
	_ repository.VehicleRepository     = (*VehicleRepo)(nil)
	_ repository.EmployeeRepository    = (*EmployeeRepo)(nil)
	_ repository.BranchRepository      = (*BranchRepo)(nil)
	_ repository.ServiceTypeRepository = (*ServiceTypeRepo)(nil)
)

// ClientRepo clientes en memoria.
type ClientRepo struct{ s *Store }

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	if err := r.s.lock("clients.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if r.dniTaken(c.DNI, 0) {
		return domain.Conflict("Ya existe un cliente con ese DNI")
	}
	c.ID = r.s.st.nextID("clientes")
	c.Active = true
	r.s.st.clients[c.ID] = *c
	return nil
}

func (r *ClientRepo) FindActiveByID(_ context.Context, id int64) (*entity.Client, error) {
	if err := r.s.lock("clients.FindActiveByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	c, ok := r.s.st.clients[id]
	if !ok || !c.Active {
		return nil, nil
	}
	return &c, nil
}

func (r *ClientRepo) ExistsActiveDNI(_ context.Context, dni string, excludeID int64) (bool, error) {
	if err := r.s.lock("clients.ExistsActiveDNI"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	return r.dniTaken(dni, excludeID), nil
}

func (r *ClientRepo) dniTaken(dni string, excludeID int64) bool {
	if dni == "" {
		return false
	}
	for _, c := range r.s.st.clients {
		if c.Active && c.ID != excludeID && c.DNI == dni {
			return true
		}
	}
	return false
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	if err := r.s.lock("clients.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.clients[c.ID]
	if !ok || !cur.Active {
		return nil
	}
	if r.dniTaken(c.DNI, c.ID) {
		return domain.Conflict("Ya existe un cliente con ese DNI")
	}
	c.Active, c.CreatedAt = true, cur.CreatedAt
	r.s.st.clients[c.ID] = *c
	return nil
}

func (r *ClientRepo) List(_ context.Context, p repository.ListParams) ([]*entity.Client, int, error) {
	if err := r.s.lock("clients.List"); err != nil {
		return nil, 0, err
	}
	defer r.s.mu.Unlock()
	var list []*entity.Client
	for _, c := range r.s.st.clients {
		if c.Active && matches(p.Search, c.FirstName, c.LastName, c.FullName(), c.DNI, c.Phone) {
			list = append(list, &c)
		}
	}
	slices.SortFunc(list, func(a, b *entity.Client) int {
		return cmp.Or(cmp.Compare(a.LastName, b.LastName), cmp.Compare(a.FirstName, b.FirstName), cmp.Compare(a.ID, b.ID))
	})
	return page(list, p), len(list), nil
}

func (r *ClientRepo) CountActiveVehicles(_ context.Context, clientID int64) (int, error) {
	if err := r.s.lock("clients.CountActiveVehicles"); err != nil {
		return 0, err
	}
	defer r.s.mu.Unlock()
	n := 0
	for _, v := range r.s.st.vehicles {
		if v.Active && v.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

func (r *ClientRepo) SoftDelete(_ context.Context, id int64) error {
	if err := r.s.lock("clients.SoftDelete"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if c, ok := r.s.st.clients[id]; ok {
		c.Active = false
		r.s.st.clients[id] = c
	}
	return nil
}

// VehicleRepo vehículos en memoria.
type VehicleRepo struct{ s *Store }

func (r *VehicleRepo) Create(_ context.Context, v *entity.Vehicle) error {
	if err := r.s.lock("vehicles.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if r.patenteTaken(v.Patente, 0) {
		return domain.Conflict("Ya existe un vehículo con esa patente")
	}
	if _, ok := r.s.st.clients[v.ClientID]; !ok {
		return domain.Referenced("REFERENCED_RECORD", "El registro está referenciado por otros datos")
	}
	v.ID = r.s.st.nextID("vehiculos")
	v.Active = true
	r.s.st.vehicles[v.ID] = *v
	return nil
}

func (r *VehicleRepo) FindActiveByID(_ context.Context, id int64) (*entity.Vehicle, error) {
	if err := r.s.lock("vehicles.FindActiveByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	v, ok := r.s.st.vehicles[id]
	if !ok || !v.Active {
		return nil, nil
	}
	r.withClient(&v)
	return &v, nil
}

func (r *VehicleRepo) withClient(v *entity.Vehicle) {
	if c, ok := r.s.st.clients[v.ClientID]; ok {
		v.ClientName = c.FullName()
	}
}

func (r *VehicleRepo) ExistsActivePatente(_ context.Context, patente string, excludeID int64) (bool, error) {
	if err := r.s.lock("vehicles.ExistsActivePatente"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	return r.patenteTaken(patente, excludeID), nil
}

func (r *VehicleRepo) patenteTaken(patente string, excludeID int64) bool {
	for _, v := range r.s.st.vehicles {
		if v.Active && v.ID != excludeID && v.Patente == patente {
			return true
		}
	}
	return false
}

func (r *VehicleRepo) Update(_ context.Context, v *entity.Vehicle) error {
	if err := r.s.lock("vehicles.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.vehicles[v.ID]
	if !ok || !cur.Active {
		return nil
	}
	if r.patenteTaken(v.Patente, v.ID) {
		return domain.Conflict("Ya existe un vehículo con esa patente")
	}
	v.Active, v.CreatedAt = true, cur.CreatedAt
	r.s.st.vehicles[v.ID] = *v
	return nil
}

func (r *VehicleRepo) UpdateMileage(_ context.Context, id int64, mileage int) error {
	if err := r.s.lock("vehicles.UpdateMileage"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if v, ok := r.s.st.vehicles[id]; ok && v.Active {
		v.Mileage = mileage
		r.s.st.vehicles[id] = v
	}
	return nil
}

func (r *VehicleRepo) List(_ context.Context, p repository.ListParams) ([]*entity.Vehicle, int, error) {
	if err := r.s.lock("vehicles.List"); err != nil {
		return nil, 0, err
	}
	defer r.s.mu.Unlock()
	var list []*entity.Vehicle
	for _, v := range r.s.st.vehicles {
		if !v.Active {
			continue
		}
		r.withClient(&v)
		if matches(p.Search, v.Patente, v.Brand, v.Model, v.ClientName) {
			list = append(list, &v)
		}
	}
	sortVehicles(list)
	return page(list, p), len(list), nil
}

func (r *VehicleRepo) ListByClient(_ context.Context, clientID int64) ([]*entity.Vehicle, error) {
	if err := r.s.lock("vehicles.ListByClient"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var list []*entity.Vehicle
	for _, v := range r.s.st.vehicles {
		if v.Active && v.ClientID == clientID {
			r.withClient(&v)
			list = append(list, &v)
		}
	}
	sortVehicles(list)
	return list, nil
}

func sortVehicles(list []*entity.Vehicle) {
	slices.SortFunc(list, func(a, b *entity.Vehicle) int {
		return cmp.Or(cmp.Compare(a.Patente, b.Patente), cmp.Compare(a.ID, b.ID))
	})
}

func (r *VehicleRepo) SoftDelete(_ context.Context, id int64) error {
	if err := r.s.lock("vehicles.SoftDelete"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if v, ok := r.s.st.vehicles[id]; ok {
		v.Active = false
		r.s.st.vehicles[id] = v
	}
	return nil
}

// EmployeeRepo empleados en memoria.
type EmployeeRepo struct{ s *Store }

func (r *EmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	if err := r.s.lock("employees.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	e.ID = r.s.st.nextID("empleados")
	e.Active = true
	r.s.st.employees[e.ID] = *e
	return nil
}

func (r *EmployeeRepo) FindActiveByID(_ context.Context, id int64) (*entity.Employee, error) {
	if err := r.s.lock("employees.FindActiveByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	e, ok := r.s.st.employees[id]
	if !ok || !e.Active {
		return nil, nil
	}
	r.withBranch(&e)
	return &e, nil
}

func (r *EmployeeRepo) withBranch(e *entity.Employee) {
	if b, ok := r.s.st.branches[e.BranchID]; ok {
		e.BranchName = b.Name
	}
}

func (r *EmployeeRepo) Update(_ context.Context, e *entity.Employee) error {
	if err := r.s.lock("employees.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.employees[e.ID]
	if !ok || !cur.Active {
		return nil
	}
	e.Active, e.CreatedAt = true, cur.CreatedAt
	r.s.st.employees[e.ID] = *e
	return nil
}

func (r *EmployeeRepo) List(_ context.Context, p repository.ListParams) ([]*entity.Employee, int, error) {
	if err := r.s.lock("employees.List"); err != nil {
		return nil, 0, err
	}
	defer r.s.mu.Unlock()
	list := r.filter(func(e *entity.Employee) bool {
		return matches(p.Search, e.FirstName, e.LastName, e.Position, e.BranchName)
	})
	return page(list, p), len(list), nil
}

func (r *EmployeeRepo) ListActive(_ context.Context) ([]*entity.Employee, error) {
	if err := r.s.lock("employees.ListActive"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return r.filter(func(*entity.Employee) bool { return true }), nil
}

func (r *EmployeeRepo) ListByBranch(_ context.Context, branchID int64) ([]*entity.Employee, error) {
	if err := r.s.lock("employees.ListByBranch"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return r.filter(func(e *entity.Employee) bool { return e.BranchID == branchID }), nil
}

func (r *EmployeeRepo) filter(keep func(e *entity.Employee) bool) []*entity.Employee {
	var list []*entity.Employee
	for _, e := range r.s.st.employees {
		if !e.Active {
			continue
		}
		r.withBranch(&e)
		if keep(&e) {
			list = append(list, &e)
		}
	}
	slices.SortFunc(list, func(a, b *entity.Employee) int {
		return cmp.Or(cmp.Compare(a.LastName, b.LastName), cmp.Compare(a.FirstName, b.FirstName), cmp.Compare(a.ID, b.ID))
	})
	return list
}

func (r *EmployeeRepo) MissingActive(_ context.Context, ids []int64) ([]int64, error) {
	if err := r.s.lock("employees.MissingActive"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var missing []int64
	for _, id := range ids {
		if e, ok := r.s.st.employees[id]; !ok || !e.Active {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *EmployeeRepo) SoftDelete(_ context.Context, id int64) error {
	if err := r.s.lock("employees.SoftDelete"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if e, ok := r.s.st.employees[id]; ok {
		e.Active = false
		r.s.st.employees[id] = e
	}
	return nil
}

// BranchRepo sucursales en memoria.
type BranchRepo struct{ s *Store }

func (r *BranchRepo) Create(_ context.Context, b *entity.Branch) error {
	if err := r.s.lock("branches.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if r.nameTaken(b.Name, 0) {
		return domain.Conflict("Ya existe una sucursal con ese nombre")
	}
	b.ID = r.s.st.nextID("sucursales")
	b.Active = true
	r.s.st.branches[b.ID] = *b
	return nil
}

func (r *BranchRepo) FindActiveByID(_ context.Context, id int64) (*entity.Branch, error) {
	if err := r.s.lock("branches.FindActiveByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	b, ok := r.s.st.branches[id]
	if !ok || !b.Active {
		return nil, nil
	}
	return &b, nil
}

func (r *BranchRepo) ExistsActiveName(_ context.Context, name string, excludeID int64) (bool, error) {
	if err := r.s.lock("branches.ExistsActiveName"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	return r.nameTaken(name, excludeID), nil
}

func (r *BranchRepo) nameTaken(name string, excludeID int64) bool {
	for _, b := range r.s.st.branches {
		if b.Active && b.ID != excludeID && strings.EqualFold(b.Name, name) {
			return true
		}
	}
	return false
}

func (r *BranchRepo) Update(_ context.Context, b *entity.Branch) error {
	if err := r.s.lock("branches.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.branches[b.ID]
	if !ok || !cur.Active {
		return nil
	}
	if r.nameTaken(b.Name, b.ID) {
		return domain.Conflict("Ya existe una sucursal con ese nombre")
	}
	b.Active, b.CreatedAt = true, cur.CreatedAt
	r.s.st.branches[b.ID] = *b
	return nil
}

func (r *BranchRepo) List(_ context.Context, p repository.ListParams) ([]*entity.Branch, int, error) {
	if err := r.s.lock("branches.List"); err != nil {
		return nil, 0, err
	}
	defer r.s.mu.Unlock()
	list := r.active(func(b *entity.Branch) bool { return matches(p.Search, b.Name, b.Location) })
	return page(list, p), len(list), nil
}

func (r *BranchRepo) ListActive(_ context.Context) ([]*entity.Branch, error) {
	if err := r.s.lock("branches.ListActive"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return r.active(func(*entity.Branch) bool { return true }), nil
}

func (r *BranchRepo) active(keep func(b *entity.Branch) bool) []*entity.Branch {
	var list []*entity.Branch
	for _, b := range r.s.st.branches {
		if b.Active && keep(&b) {
			list = append(list, &b)
		}
	}
	slices.SortFunc(list, func(a, b *entity.Branch) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return list
}

func (r *BranchRepo) CountDependents(_ context.Context, id int64) (services, employees int, err error) {
	if err := r.s.lock("branches.CountDependents"); err != nil {
		return 0, 0, err
	}
	defer r.s.mu.Unlock()
	for _, row := range r.s.st.services {
		if row.header.Active && row.header.BranchID == id {
			services++
		}
	}
	for _, e := range r.s.st.employees {
		if e.Active && e.BranchID == id {
			employees++
		}
	}
	return services, employees, nil
}

func (r *BranchRepo) SoftDelete(_ context.Context, id int64) error {
	if err := r.s.lock("branches.SoftDelete"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if b, ok := r.s.st.branches[id]; ok {
		b.Active = false
		r.s.st.branches[id] = b
	}
	return nil
}

// ServiceTypeRepo catálogo de tipos en memoria.
type ServiceTypeRepo struct{ s *Store }

func (r *ServiceTypeRepo) Create(_ context.Context, t *entity.ServiceType) error {
	if err := r.s.lock("serviceTypes.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if r.nameTaken(t.Name, 0) {
		return domain.Conflict("Ya existe un tipo de servicio con ese nombre")
	}
	t.ID = r.s.st.nextID("tipos_servicios")
	t.Active = true
	r.s.st.serviceTypes[t.ID] = *t
	return nil
}

func (r *ServiceTypeRepo) FindActiveByID(_ context.Context, id int64) (*entity.ServiceType, error) {
	if err := r.s.lock("serviceTypes.FindActiveByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	t, ok := r.s.st.serviceTypes[id]
	if !ok || !t.Active {
		return nil, nil
	}
	return &t, nil
}

func (r *ServiceTypeRepo) ExistsActiveName(_ context.Context, name string, excludeID int64) (bool, error) {
	if err := r.s.lock("serviceTypes.ExistsActiveName"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	return r.nameTaken(name, excludeID), nil
}

func (r *ServiceTypeRepo) nameTaken(name string, excludeID int64) bool {
	for _, t := range r.s.st.serviceTypes {
		if t.Active && t.ID != excludeID && strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

func (r *ServiceTypeRepo) Update(_ context.Context, t *entity.ServiceType) error {
	if err := r.s.lock("serviceTypes.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.serviceTypes[t.ID]
	if !ok || !cur.Active {
		return nil
	}
	if r.nameTaken(t.Name, t.ID) {
		return domain.Conflict("Ya existe un tipo de servicio con ese nombre")
	}
	t.Active, t.CreatedAt = true, cur.CreatedAt
	r.s.st.serviceTypes[t.ID] = *t
	return nil
}

func (r *ServiceTypeRepo) List(_ context.Context, p repository.ListParams) ([]*entity.ServiceType, int, error) {
	if err := r.s.lock("serviceTypes.List"); err != nil {
		return nil, 0, err
	}
	defer r.s.mu.Unlock()
	list := r.active(p.Search)
	return page(list, p), len(list), nil
}

func (r *ServiceTypeRepo) Search(_ context.Context, term string, limit int) ([]*entity.ServiceType, error) {
	if err := r.s.lock("serviceTypes.Search"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}
	list := r.active(term)
	prefix := strings.ToLower(strings.TrimSpace(term))
	slices.SortStableFunc(list, func(a, b *entity.ServiceType) int {
		pa := strings.HasPrefix(strings.ToLower(a.Name), prefix)
		pb := strings.HasPrefix(strings.ToLower(b.Name), prefix)
		switch {
		case pa && !pb:
			return -1
		case pb && !pa:
			return 1
		}
		return 0
	})
	return page(list, repository.ListParams{Limit: limit}), nil
}

func (r *ServiceTypeRepo) active(search string) []*entity.ServiceType {
	var list []*entity.ServiceType
	for _, t := range r.s.st.serviceTypes {
		if t.Active && matches(search, t.Name, t.Description) {
			list = append(list, &t)
		}
	}
	slices.SortFunc(list, func(a, b *entity.ServiceType) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return list
}

func (r *ServiceTypeRepo) CountItemUsage(_ context.Context, id int64) (int, error) {
	if err := r.s.lock("serviceTypes.CountItemUsage"); err != nil {
		return 0, err
	}
	defer r.s.mu.Unlock()
	n := 0
	for _, it := range r.s.st.items {
		if it.ServiceTypeID == id {
			n++
		}
	}
	return n, nil
}

func (r *ServiceTypeRepo) SoftDelete(_ context.Context, id int64) error {
	if err := r.s.lock("serviceTypes.SoftDelete"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if t, ok := r.s.st.serviceTypes[id]; ok {
		t.Active = false
		r.s.st.serviceTypes[id] = t
	}
	return nil
}
