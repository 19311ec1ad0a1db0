package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadServiceTypes_DeduplicaYSaltaEncabezado(t *testing.T) {
	csv := "nombre;descripcion\n" +
		"Cambio de aceite;Aceite y filtro\n" +
		"  cambio  de ACEITE ;duplicado\n" +
		"\n" +
		"# comentario\n" +
		"Alineación\n" +
		"Alineacion;sin tilde, mismo servicio\n"

	got, err := readServiceTypes(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []serviceType{
		{name: "Cambio de aceite", description: "Aceite y filtro"},
		{name: "Alineación"},
	}, got)
}

func TestReadServiceTypes_Windows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String("Balanceo;Revisión de neumáticos\n")
	require.NoError(t, err)

	got, err := readServiceTypes(strings.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Revisión de neumáticos", got[0].description)
}

func TestWriteSQL_EscapaComillas(t *testing.T) {
	var buf bytes.Buffer
	err := writeSQL(&buf, seedData{
		adminName:    "Admin",
		adminEmail:   "admin@lubricentro.com",
		adminHash:    "$2a$12$hash",
		branch:       "D'Angelo",
		serviceTypes: []serviceType{{name: "Engrase", description: "Puntos de engrase"}},
	})
	require.NoError(t, err)

	sql := buf.String()
	assert.True(t, strings.HasPrefix(sql, "-- Carga inicial"))
	assert.Contains(t, sql, "SELECT 'D''Angelo'")
	assert.Contains(t, sql, "INSERT INTO tipos_servicios (nombre, descripcion)\nSELECT 'Engrase', 'Puntos de engrase'")
	assert.True(t, strings.HasSuffix(sql, "COMMIT;\n"))
}
