package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name    string
		role    entity.Role
		allowed []entity.Role
		want    error
	}{
		{"admin en ruta admin", entity.RoleAdmin, []entity.Role{entity.RoleAdmin}, nil},
		{"empleado en ruta admin", entity.RoleEmployee, []entity.Role{entity.RoleAdmin}, domain.ErrForbidden},
		{"empleado entre varios", entity.RoleEmployee, []entity.Role{entity.RoleAdmin, entity.RoleEmployee}, nil},
		{"sin restricción", entity.RoleEmployee, nil, nil},
		{"rol vacío", entity.Role(""), nil, domain.ErrForbidden},
		{"rol desconocido", entity.Role("SUPERVISOR"), []entity.Role{entity.Role("SUPERVISOR")}, domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.role, tc.allowed...)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestHasher(t *testing.T) {
	h := NewHasher(4)
	hash, err := h.Hash("secreto1")
	assert.NoError(t, err)
	assert.NotEqual(t, "secreto1", hash)
	assert.True(t, h.Compare(hash, "secreto1"))
	assert.False(t, h.Compare(hash, "secreto2"))
	assert.False(t, h.Compare("no-es-un-hash", "secreto1"))

	other, err := h.Hash("secreto1")
	assert.NoError(t, err)
	assert.NotEqual(t, hash, other, "cada hash lleva su propio salt")
}
