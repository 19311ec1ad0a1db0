package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/lubricentro-api/internal/application/auth"
	"github.com/jhoicas/lubricentro-api/internal/application/servicing"
	"github.com/jhoicas/lubricentro-api/internal/application/usecase"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/infrastructure/memory"
	"github.com/jhoicas/lubricentro-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/lubricentro-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "clave-de-pruebas-con-mas-de-32-caracteres"
	adminEmail    = "admin@lubricentro.com"
	employeeEmail = "empleado@lubricentro.com"
	testPassword  = "secreto123"
)

// testServer app Fiber completa sobre el store en memoria.
type testServer struct {
	app   *fiber.App
	store *memory.Store
}

type rateLimitOption func(*apphttp.RateLimits)

func withLoginLimit(n int) rateLimitOption {
	return func(r *apphttp.RateLimits) { r.LoginMax = n }
}

// newTestServer arma la aplicación con un ADMIN y un EMPLEADO ya registrados.
func newTestServer(t *testing.T, opts ...rateLimitOption) *testServer {
	t.Helper()
	store := memory.NewStore()
	hasher := auth.NewHasher(bcrypt.MinCost)
	seedUser(t, store, hasher, "Admin Principal", adminEmail, entity.RoleAdmin)
	seedUser(t, store, hasher, "Juan Empleado", employeeEmail, entity.RoleEmployee)

	authUC, err := auth.NewAuthUseCase(store.Users(), store.Sessions(), hasher, auth.Config{
		Secret: testJWTSecret,
		Issuer: "lubricentro-test",
		TTL:    time.Hour,
	})
	require.NoError(t, err)

	refs := servicing.References{
		Clients:      store.Clients(),
		Vehicles:     store.Vehicles(),
		Branches:     store.Branches(),
		ServiceTypes: store.ServiceTypes(),
		Employees:    store.Employees(),
	}
	limits := apphttp.RateLimits{Window: time.Minute}
	for _, o := range opts {
		o(&limits)
	}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(true)})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(store.Users(), store.Sessions(), hasher),
		ClientUC:      usecase.NewClientUseCase(store.Clients(), store.Vehicles()),
		VehicleUC:     usecase.NewVehicleUseCase(store.Vehicles(), store.Clients()),
		EmployeeUC:    usecase.NewEmployeeUseCase(store.Employees(), store.Branches()),
		BranchUC:      usecase.NewBranchUseCase(store.Branches()),
		ServiceTypeUC: usecase.NewServiceTypeUseCase(store.ServiceTypes()),
		SettingUC:     usecase.NewSettingUseCase(store.Settings(), store),
		ServiceUC:     servicing.NewServiceUseCase(store, store.Services(), refs),
		WorkOrderUC:   servicing.NewWorkOrderUseCase(store.Services(), pdf.NewWorkOrderRenderer("Lubricentro Test")),
		DB:            store,
		Env:           "test",
		StartedAt:     time.Now(),
		RateLimit:     limits,
		Metrics:       apphttp.NewMetrics(prometheus.NewRegistry()),
	})
	return &testServer{app: app, store: store}
}

func seedUser(t *testing.T, store *memory.Store, hasher *auth.Hasher, name, email string, role entity.Role) {
	t.Helper()
	hash, err := hasher.Hash(testPassword)
	require.NoError(t, err)
	err = store.Users().Create(context.Background(), &entity.User{
		Name: name, Email: email, PasswordHash: hash, Role: role, Active: true, CreatedAt: time.Now(),
	})
	require.NoError(t, err)
}

// envelope cuerpo común de éxito y error.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Pagination *struct {
		Total       int `json:"total"`
		TotalPages  int `json:"totalPages"`
		CurrentPage int `json:"currentPage"`
		Limit       int `json:"limit"`
	} `json:"pagination"`
	Error *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

type result struct {
	status int
	body   envelope
	raw    []byte
	header http.Header
}

// into decodifica data en out.
func (r result) into(t *testing.T, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body.Data, out), "data: %s", string(r.body.Data))
}

func (r result) code() string {
	if r.body.Error == nil {
		return ""
	}
	return r.body.Error.Code
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) result {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := result{status: resp.StatusCode, raw: raw, header: resp.Header}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out.body), "body: %s", string(raw))
	}
	return out
}

// login devuelve el token emitido para email.
func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	res := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": testPassword})
	require.Equal(t, http.StatusOK, res.status, string(res.raw))
	var out struct {
		Token string `json:"token"`
	}
	res.into(t, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

type idOnly struct {
	ID int64 `json:"id"`
}

// create hace POST y devuelve el id creado.
func (s *testServer) create(t *testing.T, path, token string, body any) int64 {
	t.Helper()
	res := s.do(t, http.MethodPost, path, token, body)
	require.Equal(t, http.StatusCreated, res.status, string(res.raw))
	var out idOnly
	res.into(t, &out)
	require.NotZero(t, out.ID)
	return out.ID
}

// catalog datos mínimos para registrar servicios.
type catalog struct {
	branchID, clientID, vehicleID, employeeID, oilID, filterID int64
}

func (s *testServer) seedCatalog(t *testing.T, token string) catalog {
	t.Helper()
	var c catalog
	c.branchID = s.create(t, "/api/sucursales", token, map[string]any{"nombre": "Casa Central", "ubicacion": "Av. Siempre Viva 742"})
	c.clientID = s.create(t, "/api/clientes", token, map[string]any{"nombre": "maría", "apellido": "GÓMEZ", "dni": "30123456", "telefono": "+54 11 1234-5678"})
	c.vehicleID = s.create(t, "/api/vehiculos", token, map[string]any{
		"cliente_id": c.clientID, "patente": "ab 123-cd", "marca": "Toyota", "modelo": "Corolla", "año": 2018, "kilometraje": 85000,
	})
	c.employeeID = s.create(t, "/api/empleados", token, map[string]any{"nombre": "pedro", "apellido": "ruiz", "cargo": "Mecánico", "sucursal_id": c.branchID})
	c.oilID = s.create(t, "/api/tipos-servicios", token, map[string]any{"nombre": "Cambio de aceite", "descripcion": "Aceite y filtro"})
	c.filterID = s.create(t, "/api/tipos-servicios", token, map[string]any{"nombre": "Filtro de aire"})
	return c
}

func (c catalog) serviceBody() map[string]any {
	return map[string]any{
		"cliente_id":        c.clientID,
		"vehiculo_id":       c.vehicleID,
		"sucursal_id":       c.branchID,
		"descripcion":       "Service 10.000 km",
		"precio_referencia": "25000.50",
		"empleados":         []int64{c.employeeID},
		"items": []map[string]any{
			{
				"tipo_servicio_id": c.oilID,
				"productos": []map[string]any{
					{"nombre": "Aceite 5W30", "es_nuestro": true},
					{"nombre": "Filtro de aceite", "es_nuestro": false},
				},
			},
			{"tipo_servicio_id": c.filterID, "descripcion": "Reemplazo"},
		},
	}
}
