package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashea y compara contraseñas con bcrypt.
type Hasher struct {
	cost int
}

// NewHasher construye el hasher con el costo indicado (12 en producción).
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash devuelve el hash bcrypt (con salt) de la contraseña.
func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Compare indica si password corresponde al hash. Tiempo constante respecto del contenido.
func (h *Hasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
