package http_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
)

func TestServicios_AltaNumeraYDevuelveAgregado(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeEmail)
	cat := srv.seedCatalog(t, token)

	res := srv.do(t, http.MethodPost, "/api/servicios", token, cat.serviceBody())
	require.Equal(t, http.StatusCreated, res.status, string(res.raw))

	var first dto.ServiceResponse
	res.into(t, &first)
	assert.Equal(t, "SERV-00001", first.Number)
	assert.Equal(t, "María", first.ClientName, "el nombre del cliente se normaliza al guardarlo")
	assert.Equal(t, "AB123CD", first.Patente)
	require.NotNil(t, first.ReferencePrice)
	assert.Equal(t, "25000.5", first.ReferencePrice.String())
	require.Len(t, first.Items, 2)
	assert.Equal(t, "Cambio de aceite", first.Items[0].ServiceTypeName)
	assert.Len(t, first.Items[0].Products, 2)
	assert.Empty(t, first.Items[1].Products)
	assert.Equal(t, "Reemplazo", first.Items[1].Description)
	require.Len(t, first.Employees, 1)
	assert.Equal(t, "Pedro", first.Employees[0].FirstName)

	second := srv.do(t, http.MethodPost, "/api/servicios", token, cat.serviceBody())
	require.Equal(t, http.StatusCreated, second.status)
	var out dto.ServiceResponse
	second.into(t, &out)
	assert.Equal(t, "SERV-00002", out.Number)
}

func TestServicios_ValidacionReportaTodosLosCampos(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeEmail)

	res := srv.do(t, http.MethodPost, "/api/servicios", token, map[string]any{
		"cliente_id":        0,
		"vehiculo_id":       1,
		"sucursal_id":       1,
		"precio_referencia": "-3",
		"items":             []any{},
	})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "VALIDATION_ERROR", res.code())

	var fields []string
	for _, d := range res.body.Error.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"cliente_id", "precio_referencia", "items"}, fields)
}

func TestServicios_ReferenciasInexistentes(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeEmail)
	cat := srv.seedCatalog(t, token)

	body := cat.serviceBody()
	body["empleados"] = []int64{cat.employeeID, 999}
	body["sucursal_id"] = 404

	res := srv.do(t, http.MethodPost, "/api/servicios", token, body)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "VALIDATION_ERROR", res.code())

	var fields []string
	for _, d := range res.body.Error.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"sucursal_id", "empleados"}, fields)
}

func TestServicios_FalloIntermedioNoDejaRastros(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeEmail)
	cat := srv.seedCatalog(t, token)

	srv.store.FailOn("services.AddItem", errors.New("conexión perdida"))
	res := srv.do(t, http.MethodPost, "/api/servicios", token, cat.serviceBody())
	assert.Equal(t, http.StatusInternalServerError, res.status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", res.code())

	srv.store.ClearFailures()
	list := srv.do(t, http.MethodGet, "/api/servicios", token, nil)
	require.Equal(t, http.StatusOK, list.status)
	require.NotNil(t, list.body.Pagination)
	assert.Equal(t, 0, list.body.Pagination.Total, "el rollback descarta cabecera e hijos")

	res = srv.do(t, http.MethodPost, "/api/servicios", token, cat.serviceBody())
	require.Equal(t, http.StatusCreated, res.status)
	var out dto.ServiceResponse
	res.into(t, &out)
	assert.Equal(t, "SERV-00001", out.Number, "el número consumido por la transacción fallida se libera")
}

func TestServicios_ActualizarReemplazaHijosYConservaNumero(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeEmail)
	cat := srv.seedCatalog(t, token)
	id := srv.create(t, "/api/servicios", token, cat.serviceBody())

	body := cat.serviceBody()
	body["empleados"] = []int64{}
	body["precio_referencia"] = nil
	body["items"] = []map[string]any{{"tipo_servicio_id": cat.filterID, "notas": "Cliente trae filtro"}}

	res := srv.do(t, http.MethodPut, "/api/servicios/"+itoa(id), token, body)
	require.Equal(t, http.StatusOK, res.status, string(res.raw))

	var out dto.ServiceResponse
	res.into(t, &out)
	assert.Equal(t, "SERV-00001", out.Number)
	assert.Nil(t, out.ReferencePrice)
	assert.Empty(t, out.Employees)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Cliente trae filtro", out.Items[0].Remarks)
	assert.Equal(t, 1, out.ItemsCount)

	missing := srv.do(t, http.MethodPut, "/api/servicios/999", token, body)
	assert.Equal(t, http.StatusNotFound, missing.status)
	assert.Equal(t, "SERVICIO_NOT_FOUND", missing.code())
}

func TestServicios_EliminarBorraElAgregado(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeEmail)
	cat := srv.seedCatalog(t, token)
	id := srv.create(t, "/api/servicios", token, cat.serviceBody())

	res := srv.do(t, http.MethodDelete, "/api/servicios/"+itoa(id), token, nil)
	require.Equal(t, http.StatusOK, res.status)

	res = srv.do(t, http.MethodGet, "/api/servicios/"+itoa(id), token, nil)
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "SERVICIO_NOT_FOUND", res.code())

	res = srv.do(t, http.MethodDelete, "/api/servicios/"+itoa(id), token, nil)
	assert.Equal(t, http.StatusNotFound, res.status)

	// El tipo de servicio deja de estar en uso.
	res = srv.do(t, http.MethodDelete, "/api/tipos-servicios/"+itoa(cat.oilID), token, nil)
	assert.Equal(t, http.StatusOK, res.status, string(res.raw))
}

func TestServicios_ConsultasPorClientePatenteYEstadisticas(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeEmail)
	cat := srv.seedCatalog(t, token)
	srv.create(t, "/api/servicios", token, cat.serviceBody())

	var list []dto.ServiceResponse
	res := srv.do(t, http.MethodGet, "/api/servicios/vehiculo/ab-123cd", token, nil)
	require.Equal(t, http.StatusOK, res.status)
	res.into(t, &list)
	assert.Len(t, list, 1)

	res = srv.do(t, http.MethodGet, "/api/servicios/cliente/"+itoa(cat.clientID), token, nil)
	require.Equal(t, http.StatusOK, res.status)
	res.into(t, &list)
	assert.Len(t, list, 1)

	res = srv.do(t, http.MethodGet, "/api/servicios?clienteId=999", token, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, 0, res.body.Pagination.Total)

	res = srv.do(t, http.MethodGet, "/api/servicios?search=serv-0000", token, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, 1, res.body.Pagination.Total)

	var stats dto.ServiceStatsResponse
	res = srv.do(t, http.MethodGet, "/api/servicios/estadisticas", token, nil)
	require.Equal(t, http.StatusOK, res.status)
	res.into(t, &stats)
	assert.EqualValues(t, 1, stats.Total)
	assert.EqualValues(t, 1, stats.Today)
	assert.EqualValues(t, 1, stats.Week)
	assert.EqualValues(t, 1, stats.Month)
}

func TestServicios_OrdenDeTrabajoPDF(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeEmail)
	cat := srv.seedCatalog(t, token)
	id := srv.create(t, "/api/servicios", token, cat.serviceBody())

	res := srv.do(t, http.MethodGet, "/api/servicios/"+itoa(id)+"/pdf", token, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "application/pdf", res.header.Get("Content-Type"))
	assert.Contains(t, res.header.Get("Content-Disposition"), "orden_SERV-00001.pdf")
	assert.True(t, len(res.raw) > 4 && string(res.raw[:4]) == "%PDF")

	res = srv.do(t, http.MethodGet, "/api/servicios/999/pdf", token, nil)
	assert.Equal(t, http.StatusNotFound, res.status)
}
