// Package memory implementa los puertos de persistencia en memoria. Sirve para tests y para
// levantar la API sin PostgreSQL (DB_DRIVER=memory). Las transacciones se serializan y un
// error dentro de fn restaura solo las tablas que esa transacción escribe.
package memory

import (
	"context"
	"maps"
	"strings"
	"sync"

	"github.com/jhoicas/lubricentro-api/internal/application/servicing"
	"github.com/jhoicas/lubricentro-api/internal/application/usecase"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

var (
	_ servicing.TxRunner      = (*Store)(nil)
	_ usecase.SettingTxRunner = (*Store)(nil)
)

type serviceRow struct {
	header    entity.Service
	employees []int64
}

type state struct {
	seq          map[string]int64
	counter      int64
	users        map[int64]entity.User
	sessions     map[string]entity.Session
	clients      map[int64]entity.Client
	vehicles     map[int64]entity.Vehicle
	employees    map[int64]entity.Employee
	branches     map[int64]entity.Branch
	serviceTypes map[int64]entity.ServiceType
	settings     map[int64]entity.Setting
	services     map[int64]serviceRow
	items        map[int64]entity.ServiceItem
	products     map[int64]entity.ServiceProduct
}

func newState() *state {
	return &state{
		seq:          map[string]int64{},
		users:        map[int64]entity.User{},
		sessions:     map[string]entity.Session{},
		clients:      map[int64]entity.Client{},
		vehicles:     map[int64]entity.Vehicle{},
		employees:    map[int64]entity.Employee{},
		branches:     map[int64]entity.Branch{},
		serviceTypes: map[int64]entity.ServiceType{},
		settings:     map[int64]entity.Setting{},
		services:     map[int64]serviceRow{},
		items:        map[int64]entity.ServiceItem{},
		products:     map[int64]entity.ServiceProduct{},
	}
}

func (s *state) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// txScope tablas que escribe un tipo de transacción.
type txScope int

const (
	scopeServices txScope = iota
	scopeSettings
)

// seqTables secuencias de id que avanza cada tipo de transacción.
var seqTables = map[txScope][]string{
	scopeServices: {"servicios", "servicio_items", "productos"},
	scopeSettings: {"configuracion"},
}

// snapshot copia de las tablas de un scope. Las entidades se guardan por valor y los slices se duplican.
type snapshot struct {
	scope    txScope
	seq      map[string]int64
	counter  int64
	services map[int64]serviceRow
	items    map[int64]entity.ServiceItem
	products map[int64]entity.ServiceProduct
	settings map[int64]entity.Setting
}

func (s *state) snapshot(scope txScope) *snapshot {
	snap := &snapshot{scope: scope, seq: map[string]int64{}}
	for _, t := range seqTables[scope] {
		snap.seq[t] = s.seq[t]
	}
	switch scope {
	case scopeServices:
		snap.counter = s.counter
		snap.services = make(map[int64]serviceRow, len(s.services))
		for id, row := range s.services {
			row.employees = append([]int64(nil), row.employees...)
			snap.services[id] = row
		}
		snap.items = maps.Clone(s.items)
		snap.products = maps.Clone(s.products)
	case scopeSettings:
		snap.settings = maps.Clone(s.settings)
	}
	return snap
}

// restore devuelve las tablas del scope al estado de snap. El resto no se toca.
func (s *state) restore(snap *snapshot) {
	copyMap(s.seq, snap.seq)
	switch snap.scope {
	case scopeServices:
		s.counter = snap.counter
		s.services = snap.services
		s.items = snap.items
		s.products = snap.products
	case scopeSettings:
		s.settings = snap.settings
	}
}

func copyMap[K comparable, V any](dst, src map[K]V) {
	for k, v := range src {
		dst[k] = v
	}
}

// Store base de datos en memoria, segura para uso concurrente.
type Store struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	st       *state
	failures map[string]error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState(), failures: map[string]error{}}
}

// FailOn hace que la operación op (p. ej. "services.AddItem") devuelva err hasta que se llame ClearFailures.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// ClearFailures elimina los fallos inyectados.
func (s *Store) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = map[string]error{}
}

// Ping siempre responde: no hay conexión que pueda caerse.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// lock toma el mutex y devuelve el fallo inyectado para op, si hay.
func (s *Store) lock(op string) error {
	s.mu.Lock()
	if err := s.failures[op]; err != nil {
		s.mu.Unlock()
		return err
	}
	return nil
}

// RunServices ejecuta fn en una transacción sobre el agregado Service.
func (s *Store) RunServices(ctx context.Context, fn func(repo repository.ServiceRepository) error) error {
	return s.run(ctx, scopeServices, func() error { return fn(&ServiceRepo{s: s}) })
}

// RunSettings ejecuta fn en una transacción sobre la configuración.
func (s *Store) RunSettings(ctx context.Context, fn func(repo repository.SettingRepository) error) error {
	return s.run(ctx, scopeSettings, func() error { return fn(&SettingRepo{s: s, inTx: true}) })
}

// run serializa las transacciones con txMu. Las tablas de servicios solo las escribe ServiceRepo
// dentro de una transacción; la configuración también se escribe fuera, y esas escrituras
// toman txMu (ver SettingRepo.begin) para no quedar pisadas por un rollback.
func (s *Store) run(ctx context.Context, scope txScope, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := s.st.snapshot(scope)
	s.mu.Unlock()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.st.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

// Repositorios atados al almacén.

func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }
func (s *Store) Sessions() *SessionRepo { return &SessionRepo{s: s} }
func (s *Store) Clients() *ClientRepo { return &ClientRepo{s: s} }
func (s *Store) Vehicles() *VehicleRepo { return &VehicleRepo{s: s} }
func (s *Store) Employees() *EmployeeRepo { return &EmployeeRepo{s: s} }
func (s *Store) Branches() *BranchRepo { return &BranchRepo{s: s} }
func (s *Store) ServiceTypes() *ServiceTypeRepo { return &ServiceTypeRepo{s: s} }
func (s *Store) Settings() *SettingRepo { return &SettingRepo{s: s} }
func (s *Store) Services() *ServiceQueryRepo { return &ServiceQueryRepo{s: s} }

// matches imita ILIKE '%term%' sobre alguno de los campos.
func matches(term string, fields ...string) bool {
	term = strings.ToLower(strings.Join(strings.Fields(term), " "))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// page aplica LIMIT/OFFSET sobre una lista ya ordenada.
func page[T any](list []*T, p repository.ListParams) []*T {
	if p.Offset >= len(list) {
		return nil
	}
	end := len(list)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return list[p.Offset:end]
}
