package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lubricentro-api/internal/application/auth"
	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

// Claves en c.Locals cargadas por AuthMiddleware.
const (
	LocalUserID    = "user_id"
	LocalEmail     = "email"
	LocalRole      = "role"
	LocalTokenHash = "token_hash"
	localToken     = "token"
)

// TokenVerifier verifica un token contra su sesión. Lo implementa *auth.AuthUseCase.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Identity, error)
}

// AuthMiddleware exige "Authorization: Bearer <token>" con firma válida y sesión vigente.
// Carga user_id, email, role y la huella del token en Locals.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return domain.ErrUnauthorized
		}
		id, err := verifier.Verify(c.UserContext(), token)
		if err != nil {
			return err
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalEmail, id.Email)
		c.Locals(LocalRole, id.Role)
		c.Locals(LocalTokenHash, id.TokenHash)
		c.Locals(localToken, token)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireRole autoriza solo a los roles indicados. Va después de AuthMiddleware.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(entity.Role)
		if !ok || role == "" {
			return domain.ErrUnauthorized
		}
		if err := auth.Authorize(role, roles...); err != nil {
			return err
		}
		return c.Next()
	}
}

// GetUserID devuelve el id del usuario autenticado (0 si no hay).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) entity.Role {
	role, _ := c.Locals(LocalRole).(entity.Role)
	return role
}

// GetIdentity reconstruye la identidad cargada por AuthMiddleware.
func GetIdentity(c *fiber.Ctx) auth.Identity {
	email, _ := c.Locals(LocalEmail).(string)
	hash, _ := c.Locals(LocalTokenHash).(string)
	return auth.Identity{UserID: GetUserID(c), Email: email, Role: GetRole(c), TokenHash: hash}
}

func getToken(c *fiber.Ctx) string {
	token, _ := c.Locals(localToken).(string)
	return token
}
