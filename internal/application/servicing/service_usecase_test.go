package servicing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/application/servicing"
	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/infrastructure/memory"
)

type seeded struct {
	store                         *memory.Store
	uc                            *servicing.ServiceUseCase
	client, otherClient, vehicle  int64
	branch, employee, oil, filter int64
}

func seed(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	store := memory.NewStore()
	s := seeded{store: store}

	c1 := &entity.Client{FirstName: "Marta", LastName: "Sosa", Active: true, CreatedAt: now, UpdatedAt: now}
	c2 := &entity.Client{FirstName: "Raúl", LastName: "Vera", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Clients().Create(ctx, c1))
	require.NoError(t, store.Clients().Create(ctx, c2))
	v := &entity.Vehicle{ClientID: c1.ID, Patente: "AC456ZX", Brand: "Fiat", Model: "Cronos", Year: 2021, Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Vehicles().Create(ctx, v))
	b := &entity.Branch{Name: "Sucursal Norte", Location: "Ruta 8 km 40", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Branches().Create(ctx, b))
	e := &entity.Employee{FirstName: "Iván", LastName: "Mora", BranchID: b.ID, Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Employees().Create(ctx, e))
	oil := &entity.ServiceType{Name: "Cambio de aceite", Active: true, CreatedAt: now, UpdatedAt: now}
	filter := &entity.ServiceType{Name: "Filtro de habitáculo", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.ServiceTypes().Create(ctx, oil))
	require.NoError(t, store.ServiceTypes().Create(ctx, filter))

	s.client, s.otherClient, s.vehicle = c1.ID, c2.ID, v.ID
	s.branch, s.employee, s.oil, s.filter = b.ID, e.ID, oil.ID, filter.ID
	s.uc = servicing.NewServiceUseCase(store, store.Services(), servicing.References{
		Clients:      store.Clients(),
		Vehicles:     store.Vehicles(),
		Branches:     store.Branches(),
		ServiceTypes: store.ServiceTypes(),
		Employees:    store.Employees(),
	})
	return s
}

func (s seeded) request() dto.ServiceRequest {
	return dto.ServiceRequest{
		ClientID:  s.client,
		VehicleID: s.vehicle,
		BranchID:  s.branch,
		Employees: []int64{s.employee, s.employee},
		Items: []dto.ServiceItemRequest{
			{ServiceTypeID: s.oil, Products: []dto.ServiceProductRequest{{Name: "  Aceite   10W40 ", OwnStock: true}}},
			{ServiceTypeID: s.filter},
		},
	}
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	out := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, f.Field)
	}
	return out
}

func TestCreate_NormalizaHijos(t *testing.T) {
	s := seed(t)
	out, err := s.uc.Create(context.Background(), s.request())
	require.NoError(t, err)

	assert.Equal(t, "SERV-00001", out.Number)
	require.Len(t, out.Employees, 1, "empleados repetidos se asignan una sola vez")
	require.Len(t, out.Items, 2)
	assert.Equal(t, entity.DefaultItemDescription, out.Items[1].Description)
	require.Len(t, out.Items[0].Products, 1)
	assert.Equal(t, "Aceite 10W40", out.Items[0].Products[0].Name)
	assert.Equal(t, 2, out.ItemsCount)
}

func TestCreate_VehiculoDeOtroCliente(t *testing.T) {
	s := seed(t)
	req := s.request()
	req.ClientID = s.otherClient

	_, err := s.uc.Create(context.Background(), req)
	assert.Equal(t, []string{"vehiculo_id"}, fieldsOf(t, err))
}

func TestCreate_TipoDeServicioInexistenteIndicaElItem(t *testing.T) {
	s := seed(t)
	req := s.request()
	req.Items = append(req.Items, dto.ServiceItemRequest{ServiceTypeID: 777})

	_, err := s.uc.Create(context.Background(), req)
	assert.Equal(t, []string{"items[2].tipo_servicio_id"}, fieldsOf(t, err))
}

func TestCreate_FalloAlNumerarNoEscribeNada(t *testing.T) {
	s := seed(t)
	s.store.FailOn("services.NextNumber", errors.New("timeout"))

	_, err := s.uc.Create(context.Background(), s.request())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "numerar servicio")

	s.store.ClearFailures()
	stats, err := s.uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}

func TestNumeracion_NoReutilizaNumerosDeServiciosBorrados(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	first, err := s.uc.Create(ctx, s.request())
	require.NoError(t, err)
	require.NoError(t, s.uc.Delete(ctx, first.ID))

	second, err := s.uc.Create(ctx, s.request())
	require.NoError(t, err)
	assert.Equal(t, "SERV-00002", second.Number)

	err = s.uc.Delete(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestByPatente_Normaliza(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	_, err := s.uc.Create(ctx, s.request())
	require.NoError(t, err)

	list, err := s.uc.ByPatente(ctx, "ac 456 zx")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = s.uc.ByPatente(ctx, " - ")
	assert.Equal(t, []string{"patente"}, fieldsOf(t, err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden de trabajo
// ──────────────────────────────────────────────────────────────────────────────

type renderFunc func(ctx context.Context, s *entity.Service) ([]byte, error)

func (f renderFunc) RenderWorkOrder(ctx context.Context, s *entity.Service) ([]byte, error) {
	return f(ctx, s)
}

func TestWorkOrder_Download(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	created, err := s.uc.Create(ctx, s.request())
	require.NoError(t, err)

	var rendered *entity.Service
	wo := servicing.NewWorkOrderUseCase(s.store.Services(), renderFunc(func(_ context.Context, svc *entity.Service) ([]byte, error) {
		rendered = svc
		return []byte("%PDF-1.4"), nil
	}))

	pdf, name, err := wo.Download(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "orden_SERV-00001.pdf", name)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	require.NotNil(t, rendered)
	assert.Len(t, rendered.Items, 2)

	_, _, err = wo.Download(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	broken := servicing.NewWorkOrderUseCase(s.store.Services(), renderFunc(func(context.Context, *entity.Service) ([]byte, error) {
		return nil, errors.New("fuente faltante")
	}))
	_, _, err = broken.Download(ctx, created.ID)
	assert.ErrorContains(t, err, "fuente faltante")
}
