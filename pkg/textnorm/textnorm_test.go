package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonName(t *testing.T) {
	assert.Equal(t, "María José", PersonName("  maría   JOSÉ "))
	assert.Equal(t, "Núñez", PersonName("NÚÑEZ"))
	assert.Equal(t, "", PersonName("   "))
}

func TestPatente(t *testing.T) {
	assert.Equal(t, "AB123CD", Patente("ab 123-cd"))
	assert.Equal(t, "ABC123", Patente("abc.123"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "cambio de aceite", Fold("Cambio de Aceité"))
	assert.Equal(t, "pinon", Fold("PIÑÓN"))
}

func TestSearchPattern(t *testing.T) {
	assert.Equal(t, "", SearchPattern("  "))
	assert.Equal(t, "%juan perez%", SearchPattern(" juan   perez "))
	assert.Equal(t, `%100\%\_x%`, SearchPattern("100%_x"))
}
