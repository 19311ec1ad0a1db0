package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CuentaPorRutaYStatus(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, adminEmail)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/clientes/", token, nil).status)
	require.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/clientes/77", token, nil).status)
	require.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/clientes/", "", nil).status)

	res := s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, res.status)
	body := string(res.raw)
	assert.Contains(t, body, `lubricentro_http_requests_total{method="POST",route="/api/auth/login",status="200"} 1`)
	assert.Contains(t, body, `lubricentro_http_requests_total{method="GET",route="/api/clientes/:id",status="404"} 1`)
	assert.Contains(t, body, `lubricentro_http_requests_total{method="GET",route="/api/clientes/",status="200"} 1`)
	assert.Contains(t, body, `status="401"} 1`)
	assert.Contains(t, body, "lubricentro_http_request_duration_seconds_bucket")
}
