package http_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
)

func TestClientes_DuplicadoYBajaConVehiculos(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeEmail)
	cat := srv.seedCatalog(t, token)

	res := srv.do(t, http.MethodPost, "/api/clientes", token, map[string]any{"nombre": "Otro", "apellido": "Cliente", "dni": "30123456"})
	assert.Equal(t, http.StatusConflict, res.status)
	assert.Equal(t, "DUPLICATE_ENTRY", res.code())
	assert.Equal(t, "Ya existe un cliente con ese DNI", res.body.Error.Message)

	res = srv.do(t, http.MethodGet, "/api/clientes/"+itoa(cat.clientID), token, nil)
	require.Equal(t, http.StatusOK, res.status)
	var client dto.ClientResponse
	res.into(t, &client)
	assert.Equal(t, "Gómez", client.LastName)
	require.Len(t, client.Vehicles, 1)
	assert.Equal(t, "AB123CD", client.Vehicles[0].Patente)

	res = srv.do(t, http.MethodDelete, "/api/clientes/"+itoa(cat.clientID), token, nil)
	assert.Equal(t, http.StatusConflict, res.status)
	assert.Equal(t, "VEHICLES_ASSOCIATED", res.code())

	// El borrado rechazado no modifica nada.
	res = srv.do(t, http.MethodGet, "/api/clientes/"+itoa(cat.clientID), token, nil)
	require.Equal(t, http.StatusOK, res.status)
	var afterRefused dto.ClientResponse
	res.into(t, &afterRefused)
	assert.True(t, afterRefused.Active)
	assert.Len(t, afterRefused.Vehicles, 1)

	require.Equal(t, http.StatusOK, srv.do(t, http.MethodDelete, "/api/vehiculos/"+itoa(cat.vehicleID), token, nil).status)
	res = srv.do(t, http.MethodDelete, "/api/clientes/"+itoa(cat.clientID), token, nil)
	assert.Equal(t, http.StatusOK, res.status)

	res = srv.do(t, http.MethodGet, "/api/clientes/"+itoa(cat.clientID), token, nil)
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "CLIENT_NOT_FOUND", res.code())

	// Con el cliente dado de baja el DNI vuelve a estar libre.
	srv.create(t, "/api/clientes", token, map[string]any{"nombre": "Otro", "apellido": "Cliente", "dni": "30123456"})
}

func TestClientes_ListadoPaginadoYBusqueda(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeEmail)
	for _, name := range []string{"Ana", "Beatriz", "Carla"} {
		srv.create(t, "/api/clientes", token, map[string]any{"nombre": name, "apellido": "Pérez"})
	}

	res := srv.do(t, http.MethodGet, "/api/clientes?page=2&limit=2", token, nil)
	require.Equal(t, http.StatusOK, res.status)
	require.NotNil(t, res.body.Pagination)
	assert.Equal(t, 3, res.body.Pagination.Total)
	assert.Equal(t, 2, res.body.Pagination.TotalPages)
	assert.Equal(t, 2, res.body.Pagination.CurrentPage)
	var page []dto.ClientResponse
	res.into(t, &page)
	assert.Len(t, page, 1)

	res = srv.do(t, http.MethodGet, "/api/clientes?search=BEA&limit=500", token, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, 1, res.body.Pagination.Total)
	assert.Equal(t, 100, res.body.Pagination.Limit)

	res = srv.do(t, http.MethodGet, "/api/clientes?search=nadie", token, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.JSONEq(t, `[]`, string(res.body.Data))
}

func TestRutas_IDInvalido(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeEmail)

	for _, path := range []string{"/api/clientes/abc", "/api/vehiculos/0", "/api/servicios/-4"} {
		res := srv.do(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusBadRequest, res.status, path)
		assert.Equal(t, "VALIDATION_ERROR", res.code(), path)
	}
}

func TestVehiculos_ClienteInexistenteYKilometraje(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeEmail)
	cat := srv.seedCatalog(t, token)

	res := srv.do(t, http.MethodPost, "/api/vehiculos", token, map[string]any{
		"cliente_id": 999, "patente": "ZZZ999", "marca": "Ford", "modelo": "Ka", "año": 2010,
	})
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "CLIENT_NOT_FOUND", res.code())

	res = srv.do(t, http.MethodPost, "/api/vehiculos", token, map[string]any{
		"cliente_id": cat.clientID, "patente": "AB-123-CD", "marca": "Ford", "modelo": "Ka", "año": 2010,
	})
	assert.Equal(t, http.StatusConflict, res.status, "la patente se normaliza antes de comparar")

	path := "/api/vehiculos/" + itoa(cat.vehicleID) + "/kilometraje"
	res = srv.do(t, http.MethodPatch, path, token, map[string]any{"kilometraje": 90000})
	require.Equal(t, http.StatusOK, res.status, string(res.raw))
	var v dto.VehicleResponse
	res.into(t, &v)
	assert.Equal(t, 90000, v.Mileage)

	res = srv.do(t, http.MethodPatch, path, token, map[string]any{"kilometraje": 1000})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "MILEAGE_DECREASE", res.code())

	res = srv.do(t, http.MethodGet, "/api/vehiculos/cliente/"+itoa(cat.clientID), token, nil)
	require.Equal(t, http.StatusOK, res.status)
	var list []dto.VehicleResponse
	res.into(t, &list)
	require.Len(t, list, 1)
	assert.Equal(t, 90000, list[0].Mileage)
}

func TestSucursalesYTipos_BajaBloqueadaPorUso(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeEmail)
	cat := srv.seedCatalog(t, token)
	srv.create(t, "/api/servicios", token, cat.serviceBody())

	res := srv.do(t, http.MethodDelete, "/api/sucursales/"+itoa(cat.branchID), token, nil)
	assert.Equal(t, http.StatusConflict, res.status)
	assert.Equal(t, "BRANCH_IN_USE", res.code())

	res = srv.do(t, http.MethodDelete, "/api/tipos-servicios/"+itoa(cat.oilID), token, nil)
	assert.Equal(t, http.StatusConflict, res.status)
	assert.Equal(t, "SERVICE_TYPE_IN_USE", res.code())

	res = srv.do(t, http.MethodGet, "/api/tipos-servicios/search?q=acei", token, nil)
	require.Equal(t, http.StatusOK, res.status)
	var types []dto.ServiceTypeResponse
	res.into(t, &types)
	require.Len(t, types, 1)
	assert.Equal(t, "Cambio de aceite", types[0].Name)

	res = srv.do(t, http.MethodGet, "/api/empleados/sucursal/"+itoa(cat.branchID), token, nil)
	require.Equal(t, http.StatusOK, res.status)
	var employees []dto.EmployeeResponse
	res.into(t, &employees)
	assert.Len(t, employees, 1)

	res = srv.do(t, http.MethodGet, "/api/empleados/sucursal/999", token, nil)
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "BRANCH_NOT_FOUND", res.code())
}

func TestUsuarios_SoloAdminYRevocacion(t *testing.T) {
	srv := newTestServer(t)
	employee := srv.login(t, employeeEmail)
	admin := srv.login(t, adminEmail)

	res := srv.do(t, http.MethodGet, "/api/users", employee, nil)
	assert.Equal(t, http.StatusForbidden, res.status)

	var me dto.UserResponse
	srv.do(t, http.MethodGet, "/api/auth/me", admin, nil).into(t, &me)
	var emp dto.UserResponse
	srv.do(t, http.MethodGet, "/api/auth/me", employee, nil).into(t, &emp)

	res = srv.do(t, http.MethodDelete, "/api/users/"+itoa(me.ID), admin, nil)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "CANNOT_DELETE_SELF", res.code())

	// Cambiar el nombre no toca las sesiones; cambiar el rol sí.
	res = srv.do(t, http.MethodPut, "/api/users/"+itoa(emp.ID), admin, map[string]any{
		"nombre": "Juan Renombrado", "email": employeeEmail, "rol": "EMPLEADO",
	})
	require.Equal(t, http.StatusOK, res.status, string(res.raw))
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/api/auth/me", employee, nil).status)

	res = srv.do(t, http.MethodPut, "/api/users/"+itoa(emp.ID), admin, map[string]any{
		"nombre": "Juan Renombrado", "email": employeeEmail, "rol": "ADMIN",
	})
	require.Equal(t, http.StatusOK, res.status)
	res = srv.do(t, http.MethodGet, "/api/auth/me", employee, nil)
	assert.Equal(t, "SESSION_EXPIRED_OR_REVOKED", res.code())

	promoted := srv.login(t, employeeEmail)
	res = srv.do(t, http.MethodGet, "/api/users?search=renombrado", promoted, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, 1, res.body.Pagination.Total)

	res = srv.do(t, http.MethodDelete, "/api/users/"+itoa(emp.ID), admin, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "SESSION_EXPIRED_OR_REVOKED", srv.do(t, http.MethodGet, "/api/auth/me", promoted, nil).code())

	res = srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": employeeEmail, "password": testPassword})
	assert.Equal(t, "INVALID_CREDENTIALS", res.code())
}

func TestConfiguracion_AltaMasiva(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.login(t, adminEmail)

	res := srv.do(t, http.MethodGet, "/api/configuracion", srv.login(t, employeeEmail), nil)
	assert.Equal(t, http.StatusForbidden, res.status)

	srv.create(t, "/api/configuracion", admin, map[string]any{"categoria": "taller", "clave": "nombre", "valor": "Lubricentro Sur", "tipo": "string"})
	res = srv.do(t, http.MethodPost, "/api/configuracion", admin, map[string]any{"categoria": "taller", "clave": "nombre", "valor": "x", "tipo": "string"})
	assert.Equal(t, http.StatusConflict, res.status)

	res = srv.do(t, http.MethodPut, "/api/configuracion", admin, map[string]any{
		"configuraciones": []map[string]any{
			{"categoria": "taller", "clave": "nombre", "valor": "Lubricentro Norte", "tipo": "string"},
			{"categoria": "taller", "clave": "turnos_por_dia", "valor": "12", "tipo": "number"},
		},
	})
	require.Equal(t, http.StatusOK, res.status, string(res.raw))

	res = srv.do(t, http.MethodGet, "/api/configuracion/categoria/taller", admin, nil)
	require.Equal(t, http.StatusOK, res.status)
	var settings []dto.SettingResponse
	res.into(t, &settings)
	require.Len(t, settings, 2)
	values := map[string]string{}
	for _, s := range settings {
		values[s.Key] = s.Value
	}
	assert.Equal(t, "Lubricentro Norte", values["nombre"])
	assert.Equal(t, "12", values["turnos_por_dia"])

	// Una entrada inválida rechaza todo el lote.
	res = srv.do(t, http.MethodPut, "/api/configuracion", admin, map[string]any{
		"configuraciones": []map[string]any{
			{"categoria": "taller", "clave": "nombre", "valor": "Otro", "tipo": "string"},
			{"categoria": "taller", "clave": "activo", "valor": "quizas", "tipo": "boolean"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, res.status)
	require.NotEmpty(t, res.body.Error.Details)
	assert.True(t, strings.HasPrefix(res.body.Error.Details[0].Field, "configuraciones[1]"))
}
