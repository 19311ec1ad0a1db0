package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lubricentro-api/internal/application/auth"
	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	apphttp "github.com/jhoicas/lubricentro-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Verificador fijo: token -> identidad o error
// ──────────────────────────────────────────────────────────────────────────────

type stubVerifier map[string]any

func (s stubVerifier) Verify(_ context.Context, token string) (*auth.Identity, error) {
	switch v := s[token].(type) {
	case auth.Identity:
		return &v, nil
	case error:
		return nil, v
	}
	return nil, domain.ErrInvalidToken
}

var verifier = stubVerifier{
	"tok-admin":    auth.Identity{UserID: 1, Email: "a@x.com", Role: entity.RoleAdmin, TokenHash: "h1"},
	"tok-empleado": auth.Identity{UserID: 2, Email: "e@x.com", Role: entity.RoleEmployee, TokenHash: "h2"},
	"tok-raro":     auth.Identity{UserID: 3, Email: "r@x.com", Role: entity.Role("SUPERVISOR"), TokenHash: "h3"},
	"tok-vencido":  domain.ErrExpiredToken,
	"tok-revocado": domain.ErrSessionRevoked,
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para verificar el token y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...entity.Role) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(false)})
	app.Get("/protected",
		apphttp.AuthMiddleware(verifier),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"role":    apphttp.GetRole(c),
				"user_id": apphttp.GetUserID(c),
			})
		},
	)
	return app
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	assert.False(t, out.Success)
	return out.Error.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: El usuario tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer tok-admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "admin debe poder acceder a ruta restringida a admin")

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "ADMIN", body["role"])
	assert.EqualValues(t, 1, body["user_id"])
}

// Caso 1b: uno de varios roles permitidos → HTTP 200.
func TestRequireRole_EmpleadoAccedeRutaAdminOEmpleado(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleEmployee)
	resp := doRequest(t, app, "Bearer tok-empleado")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 1c: sin roles declarados basta con un rol válido.
func TestRequireRole_SinRolesDeclarados_CualquierRolValido(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Bearer tok-empleado")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "Bearer tok-raro")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "un rol fuera de la enumeración nunca autoriza")
}

// Caso 2: rol distinto al requerido → HTTP 403 FORBIDDEN.
func TestRequireRole_EmpleadoBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer tok-empleado")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
}

// Caso 3: RequireRole sin AuthMiddleware previo → 401.
func TestRequireRole_SinIdentidad_Retorna401(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(false)})
	app.Get("/protected", apphttp.RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestAuthMiddleware_EsquemaNoBearer_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(), "Basic tok-admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestAuthMiddleware_BearerInsensibleAMayusculas(t *testing.T) {
	resp := doRequest(t, buildTestApp(), "bearer tok-admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_ErroresDeVerificacion(t *testing.T) {
	cases := []struct {
		name, header, code string
	}{
		{"token desconocido", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"token vencido", "Bearer tok-vencido", "EXPIRED_TOKEN"},
		{"sesión revocada", "Bearer tok-revocado", "SESSION_EXPIRED_OR_REVOKED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, buildTestApp(), tc.header)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.code, errorCode(t, resp))
		})
	}
}
