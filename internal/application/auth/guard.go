package auth

import (
	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

// Authorize decide si role puede acceder a una operación restringida a allowed.
// Sin roles permitidos basta con un rol válido. Un rol desconocido nunca autoriza.
func Authorize(role entity.Role, allowed ...entity.Role) error {
	if _, ok := entity.ParseRole(string(role)); !ok {
		return domain.ErrForbidden
	}
	if len(allowed) == 0 {
		return nil
	}
	for _, a := range allowed {
		if role == a {
			return nil
		}
	}
	return domain.ErrForbidden
}
