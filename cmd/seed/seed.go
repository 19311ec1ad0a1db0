package main

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/lubricentro-api/pkg/textnorm"
)

type serviceType struct {
	name, description string
}

// readServiceTypes lee "nombre;descripcion" (la descripción es opcional).
// Las planillas exportadas desde Excel suelen venir en Windows-1252: si el contenido
// no es UTF-8 válido se decodifica con ese charset. Nombres repetidos (sin importar
// tildes ni mayúsculas) se descartan conservando el primero.
func readServiceTypes(r io.Reader) ([]serviceType, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	var in io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		in = transform.NewReader(in, charmap.Windows1252.NewDecoder())
	}

	cr := csv.NewReader(bufio.NewReader(in))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	seen := map[string]bool{}
	var out []serviceType
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		name := textnorm.CollapseSpaces(rec[0])
		if name == "" || strings.HasPrefix(name, "#") || (line == 1 && strings.EqualFold(name, "nombre")) {
			continue
		}
		if utf8.RuneCountInString(name) > 100 {
			return nil, fmt.Errorf("línea %d: nombre de más de 100 caracteres", line)
		}
		key := textnorm.Fold(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		st := serviceType{name: name}
		if len(rec) > 1 {
			st.description = textnorm.CollapseSpaces(rec[1])
		}
		out = append(out, st)
	}
	return out, nil
}

// seedData contenido del script de carga inicial.
type seedData struct {
	adminName, adminEmail, adminHash string
	branch                           string
	serviceTypes                     []serviceType
}

// writeSQL genera un script idempotente: cada INSERT se saltea si ya existe un registro activo equivalente.
func writeSQL(w io.Writer, d seedData) error {
	var b strings.Builder
	b.WriteString("-- Carga inicial del lubricentro\n")
	b.WriteString("BEGIN;\n\n")

	b.WriteString("-- 1. Administrador\n")
	fmt.Fprintf(&b, "INSERT INTO usuarios (nombre, email, password, rol)\nSELECT '%s', '%s', '%s', 'ADMIN'\n",
		escapeSQL(d.adminName), escapeSQL(d.adminEmail), escapeSQL(d.adminHash))
	fmt.Fprintf(&b, "WHERE NOT EXISTS (SELECT 1 FROM usuarios WHERE lower(email) = lower('%s') AND activo);\n\n", escapeSQL(d.adminEmail))

	if d.branch != "" {
		b.WriteString("-- 2. Sucursal\n")
		fmt.Fprintf(&b, "INSERT INTO sucursales (nombre)\nSELECT '%s'\n", escapeSQL(d.branch))
		fmt.Fprintf(&b, "WHERE NOT EXISTS (SELECT 1 FROM sucursales WHERE lower(nombre) = lower('%s') AND activo);\n\n", escapeSQL(d.branch))
	}

	if len(d.serviceTypes) > 0 {
		b.WriteString("-- 3. Tipos de servicio\n")
		for _, st := range d.serviceTypes {
			fmt.Fprintf(&b, "INSERT INTO tipos_servicios (nombre, descripcion)\nSELECT '%s', '%s'\n", escapeSQL(st.name), escapeSQL(st.description))
			fmt.Fprintf(&b, "WHERE NOT EXISTS (SELECT 1 FROM tipos_servicios WHERE lower(nombre) = lower('%s') AND activo);\n", escapeSQL(st.name))
		}
		b.WriteString("\n")
	}

	b.WriteString("COMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
