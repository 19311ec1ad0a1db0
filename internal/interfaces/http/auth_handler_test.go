package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/pkg/jwt"
)

func TestLogin_DevuelveUsuarioSinPasswordYToken(t *testing.T) {
	srv := newTestServer(t)
	res := srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "  ADMIN@Lubricentro.com ", "password": testPassword})
	require.Equal(t, http.StatusOK, res.status, string(res.raw))

	var out dto.LoginResponse
	res.into(t, &out)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, adminEmail, out.User.Email)
	assert.Equal(t, "ADMIN", out.User.Role)
	assert.NotNil(t, out.User.LastLogin)
	assert.NotContains(t, string(res.raw), "password")
	assert.Equal(t, 1, srv.store.Sessions().Count())
}

func TestLogin_SesionConservaUserAgent(t *testing.T) {
	srv := newTestServer(t)
	body := `{"email":"` + adminEmail + `","password":"` + testPassword + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Taller-Movil/2.1")
	resp, err := srv.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Data dto.LoginResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	// Peticiones posteriores reutilizan los buffers del servidor.
	for i := 0; i < 3; i++ {
		srv.do(t, http.MethodGet, "/api/health", "", nil)
		srv.do(t, http.MethodGet, "/api/clientes/?search=xxxxxxxxxxxxxxxxxxxxxxxx", out.Data.Token, nil)
	}

	sess, err := srv.store.Sessions().FindValidByHash(context.Background(), jwt.Fingerprint(out.Data.Token), time.Now())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "Taller-Movil/2.1", sess.UserAgent)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	srv := newTestServer(t)
	for _, body := range []map[string]string{
		{"email": adminEmail, "password": "incorrecta"},
		{"email": "nadie@lubricentro.com", "password": testPassword},
	} {
		res := srv.do(t, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, res.status)
		assert.Equal(t, "INVALID_CREDENTIALS", res.code())
	}
	assert.Zero(t, srv.store.Sessions().Count())
}

func TestLogin_ValidacionPorCampo(t *testing.T) {
	srv := newTestServer(t)
	res := srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "no-es-email"})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "VALIDATION_ERROR", res.code())
	require.Len(t, res.body.Error.Details, 2)
}

func TestLogin_LimiteDeIntentos(t *testing.T) {
	srv := newTestServer(t, withLoginLimit(2))
	body := map[string]string{"email": adminEmail, "password": "incorrecta"}

	for i := 0; i < 2; i++ {
		res := srv.do(t, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, res.status)
	}
	res := srv.do(t, http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, res.status)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", res.code())
}

func TestMeYVerify(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, employeeEmail)

	res := srv.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, res.status)
	var me dto.UserResponse
	res.into(t, &me)
	assert.Equal(t, employeeEmail, me.Email)
	assert.Equal(t, "EMPLEADO", me.Role)

	res = srv.do(t, http.MethodGet, "/api/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, res.status)
	var claims dto.ClaimsResponse
	res.into(t, &claims)
	assert.Equal(t, me.ID, claims.ID)
	assert.Equal(t, "EMPLEADO", claims.Role)
}

func TestLogout_RevocaLaSesion(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, adminEmail)
	other := srv.login(t, adminEmail)

	res := srv.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, res.status)

	res = srv.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "SESSION_EXPIRED_OR_REVOKED", res.code())

	res = srv.do(t, http.MethodGet, "/api/auth/me", other, nil)
	assert.Equal(t, http.StatusOK, res.status, "las demás sesiones siguen vigentes")
}

func TestChangePassword_RevocaLasOtrasSesiones(t *testing.T) {
	srv := newTestServer(t)
	current := srv.login(t, employeeEmail)
	other := srv.login(t, employeeEmail)

	res := srv.do(t, http.MethodPost, "/api/auth/change-password", current, map[string]string{
		"currentPassword": "equivocada", "newPassword": "nueva-clave",
	})
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "INVALID_CREDENTIALS", res.code())

	res = srv.do(t, http.MethodPost, "/api/auth/change-password", current, map[string]string{
		"currentPassword": testPassword, "newPassword": "nueva-clave",
	})
	require.Equal(t, http.StatusOK, res.status, string(res.raw))

	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/api/auth/me", current, nil).status)
	res = srv.do(t, http.MethodGet, "/api/auth/me", other, nil)
	assert.Equal(t, "SESSION_EXPIRED_OR_REVOKED", res.code())

	res = srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": employeeEmail, "password": "nueva-clave"})
	assert.Equal(t, http.StatusOK, res.status)
}

func TestRegister_SoloAdmin(t *testing.T) {
	srv := newTestServer(t)
	body := map[string]string{"nombre": "Laura Díaz", "email": "laura@lubricentro.com", "password": "secreto1", "rol": "EMPLEADO"}

	res := srv.do(t, http.MethodPost, "/api/auth/register", srv.login(t, employeeEmail), body)
	assert.Equal(t, http.StatusForbidden, res.status)
	assert.Equal(t, "FORBIDDEN", res.code())

	res = srv.do(t, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusUnauthorized, res.status)

	admin := srv.login(t, adminEmail)
	res = srv.do(t, http.MethodPost, "/api/auth/register", admin, body)
	require.Equal(t, http.StatusCreated, res.status, string(res.raw))

	res = srv.do(t, http.MethodPost, "/api/auth/register", admin, body)
	assert.Equal(t, http.StatusConflict, res.status)
	assert.Equal(t, "DUPLICATE_ENTRY", res.code())

	body["rol"] = "SUPERVISOR"
	body["email"] = "otra@lubricentro.com"
	res = srv.do(t, http.MethodPost, "/api/auth/register", admin, body)
	assert.Equal(t, http.StatusBadRequest, res.status)
	require.Len(t, res.body.Error.Details, 1)
	assert.Equal(t, "rol", res.body.Error.Details[0].Field)
}

func TestHealthYRutaInexistente(t *testing.T) {
	srv := newTestServer(t)

	res := srv.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, res.status)
	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(res.raw, &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "connected", health.Database)
	assert.Positive(t, health.Memory.Goroutines)
	assert.NotEmpty(t, res.header.Get("X-Request-Id"))

	res = srv.do(t, http.MethodGet, "/api/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "NOT_FOUND", res.code())
}
