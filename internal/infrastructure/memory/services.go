package memory

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

var (
	_ repository.ServiceRepository      = (*ServiceRepo)(nil)
	_ repository.ServiceQueryRepository = (*ServiceQueryRepo)(nil)
)

// ServiceRepo escritura del agregado. Solo se obtiene a través de Store.RunServices.
type ServiceRepo struct{ s *Store }

func (r *ServiceRepo) NextNumber(_ context.Context) (int64, error) {
	if err := r.s.lock("services.NextNumber"); err != nil {
		return 0, err
	}
	defer r.s.mu.Unlock()
	st := r.s.st
	var maxSuffix int64
	for _, row := range st.services {
		if n, ok := numberSuffix(row.header.Number); ok && n > maxSuffix {
			maxSuffix = n
		}
	}
	st.counter = max(st.counter, maxSuffix) + 1
	return st.counter, nil
}

func numberSuffix(number string) (int64, bool) {
	rest, ok := strings.CutPrefix(number, entity.ServiceNumberPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	return n, err == nil
}

func (r *ServiceRepo) ExistsActive(_ context.Context, id int64) (bool, error) {
	if err := r.s.lock("services.ExistsActive"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	row, ok := r.s.st.services[id]
	return ok && row.header.Active, nil
}

func (r *ServiceRepo) Create(_ context.Context, s *entity.Service) error {
	if err := r.s.lock("services.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for _, row := range r.s.st.services {
		if row.header.Number == s.Number {
			return domain.Conflict("El número de servicio ya existe")
		}
	}
	s.ID = r.s.st.nextID("servicios")
	s.Active = true
	r.s.st.services[s.ID] = serviceRow{header: header(s)}
	return nil
}

// header copia solo las columnas de la tabla servicios.
func header(s *entity.Service) entity.Service {
	return entity.Service{
		ID: s.ID, Number: s.Number, ClientID: s.ClientID, VehicleID: s.VehicleID, BranchID: s.BranchID,
		Description: s.Description, Notes: s.Notes, ReferencePrice: s.ReferencePrice,
		Active: s.Active, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}

func (r *ServiceRepo) UpdateHeader(_ context.Context, s *entity.Service) error {
	if err := r.s.lock("services.UpdateHeader"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	row, ok := r.s.st.services[s.ID]
	if !ok {
		return nil
	}
	h := header(s)
	h.Number, h.Active, h.CreatedAt = row.header.Number, row.header.Active, row.header.CreatedAt
	row.header = h
	r.s.st.services[s.ID] = row
	return nil
}

func (r *ServiceRepo) AssignEmployees(_ context.Context, serviceID int64, employeeIDs []int64) error {
	if err := r.s.lock("services.AssignEmployees"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	row := r.s.st.services[serviceID]
	for _, id := range employeeIDs {
		if _, ok := r.s.st.employees[id]; !ok {
			return domain.Referenced("REFERENCED_RECORD", "El registro está referenciado por otros datos")
		}
		if !slices.Contains(row.employees, id) {
			row.employees = append(row.employees, id)
		}
	}
	r.s.st.services[serviceID] = row
	return nil
}

func (r *ServiceRepo) AddItem(_ context.Context, serviceID int64, item *entity.ServiceItem) error {
	if err := r.s.lock("services.AddItem"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.serviceTypes[item.ServiceTypeID]; !ok {
		return domain.Referenced("REFERENCED_RECORD", "El registro está referenciado por otros datos")
	}
	item.ID = r.s.st.nextID("servicio_items")
	item.ServiceID = serviceID
	stored := *item
	stored.Products, stored.ServiceTypeName = nil, ""
	r.s.st.items[item.ID] = stored
	for i := range item.Products {
		p := &item.Products[i]
		p.ID = r.s.st.nextID("productos")
		p.ItemID = item.ID
		r.s.st.products[p.ID] = *p
	}
	return nil
}

func (r *ServiceRepo) ClearChildren(_ context.Context, serviceID int64) error {
	if err := r.s.lock("services.ClearChildren"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	r.clear(serviceID)
	return nil
}

func (r *ServiceRepo) clear(serviceID int64) {
	st := r.s.st
	if row, ok := st.services[serviceID]; ok {
		row.employees = nil
		st.services[serviceID] = row
	}
	for id, it := range st.items {
		if it.ServiceID != serviceID {
			continue
		}
		for pid, p := range st.products {
			if p.ItemID == id {
				delete(st.products, pid)
			}
		}
		delete(st.items, id)
	}
}

func (r *ServiceRepo) DeleteAggregate(_ context.Context, serviceID int64) error {
	if err := r.s.lock("services.DeleteAggregate"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	r.clear(serviceID)
	delete(r.s.st.services, serviceID)
	return nil
}

// ServiceQueryRepo lecturas del agregado en memoria.
type ServiceQueryRepo struct{ s *Store }

func (r *ServiceQueryRepo) FindByID(_ context.Context, id int64) (*entity.Service, error) {
	if err := r.s.lock("services.FindByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	row, ok := r.s.st.services[id]
	if !ok || !row.header.Active {
		return nil, nil
	}
	return r.assemble(row, true), nil
}

// assemble arma el agregado con sus joins; full agrega empleados e ítems.
func (r *ServiceQueryRepo) assemble(row serviceRow, full bool) *entity.Service {
	st := r.s.st
	s := row.header
	if c, ok := st.clients[s.ClientID]; ok {
		s.Client = &c
	}
	if v, ok := st.vehicles[s.VehicleID]; ok {
		s.Vehicle = &v
	}
	if b, ok := st.branches[s.BranchID]; ok {
		s.BranchName = b.Name
	}
	var items []entity.ServiceItem
	for _, it := range st.items {
		if it.ServiceID == s.ID {
			items = append(items, it)
		}
	}
	s.ItemsCount = len(items)
	if !full {
		return &s
	}
	for _, id := range row.employees {
		if e, ok := st.employees[id]; ok {
			s.Employees = append(s.Employees, e)
			s.EmployeeIDs = append(s.EmployeeIDs, id)
		}
	}
	slices.SortFunc(items, func(a, b entity.ServiceItem) int { return cmp.Compare(a.ID, b.ID) })
	for i := range items {
		items[i].Products = []entity.ServiceProduct{}
		if t, ok := st.serviceTypes[items[i].ServiceTypeID]; ok {
			items[i].ServiceTypeName = t.Name
		}
		for _, p := range st.products {
			if p.ItemID == items[i].ID {
				items[i].Products = append(items[i].Products, p)
			}
		}
		slices.SortFunc(items[i].Products, func(a, b entity.ServiceProduct) int { return cmp.Compare(a.ID, b.ID) })
	}
	s.Items = items
	return &s
}

func (r *ServiceQueryRepo) List(_ context.Context, f repository.ServiceFilter) ([]*entity.Service, int, error) {
	if err := r.s.lock("services.List"); err != nil {
		return nil, 0, err
	}
	defer r.s.mu.Unlock()
	list := r.filter(func(s *entity.Service) bool {
		if f.ClientID > 0 && s.ClientID != f.ClientID {
			return false
		}
		if f.VehicleID > 0 && s.VehicleID != f.VehicleID {
			return false
		}
		var name, patente string
		if s.Client != nil {
			name = s.Client.FullName()
		}
		if s.Vehicle != nil {
			patente = s.Vehicle.Patente
		}
		return matches(f.Search, s.Number, name, patente)
	})
	return page(list, f.ListParams), len(list), nil
}

func (r *ServiceQueryRepo) ListByClient(_ context.Context, clientID int64) ([]*entity.Service, error) {
	if err := r.s.lock("services.ListByClient"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return r.filter(func(s *entity.Service) bool { return s.ClientID == clientID }), nil
}

func (r *ServiceQueryRepo) ListByPatente(_ context.Context, patente string) ([]*entity.Service, error) {
	if err := r.s.lock("services.ListByPatente"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return r.filter(func(s *entity.Service) bool { return s.Vehicle != nil && s.Vehicle.Patente == patente }), nil
}

func (r *ServiceQueryRepo) filter(keep func(s *entity.Service) bool) []*entity.Service {
	var list []*entity.Service
	for _, row := range r.s.st.services {
		if !row.header.Active {
			continue
		}
		if s := r.assemble(row, false); keep(s) {
			list = append(list, s)
		}
	}
	slices.SortFunc(list, func(a, b *entity.Service) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})
	return list
}

func (r *ServiceQueryRepo) Stats(_ context.Context, now time.Time) (entity.ServiceStats, error) {
	if err := r.s.lock("services.Stats"); err != nil {
		return entity.ServiceStats{}, err
	}
	defer r.s.mu.Unlock()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	week := now.AddDate(0, 0, -7)
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var st entity.ServiceStats
	for _, row := range r.s.st.services {
		if !row.header.Active {
			continue
		}
		at := row.header.CreatedAt
		st.Total++
		if !at.Before(day) {
			st.Today++
		}
		if !at.Before(week) {
			st.Week++
		}
		if !at.Before(month) {
			st.Month++
		}
	}
	return st, nil
}
