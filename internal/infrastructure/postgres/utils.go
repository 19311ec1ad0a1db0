package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/lubricentro-api/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Mensajes por índice único: la DB es la autoridad final sobre unicidad.
var uniqueMessages = map[string]string{
	"usuarios_email_activo_key":         "El email ya está registrado",
	"clientes_dni_activo_key":           "Ya existe un cliente con ese DNI",
	"vehiculos_patente_activo_key":      "Ya existe un vehículo con esa patente",
	"sucursales_nombre_activo_key":      "Ya existe una sucursal con ese nombre",
	"tipos_servicios_nombre_activo_key": "Ya existe un tipo de servicio con ese nombre",
	"configuracion_categoria_clave_key": "Ya existe una configuración con esa categoría y clave",
	"servicios_numero_key":              "El número de servicio ya existe",
}

// dbErr traduce errores de pgx a errores de dominio y envuelve el resto con op.
func dbErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			msg, ok := uniqueMessages[pgErr.ConstraintName]
			if !ok {
				msg = "Registro duplicado"
			}
			return domain.Conflict(msg)
		case codeForeignKeyViolation:
			return domain.Referenced("REFERENCED_RECORD", "El registro está referenciado por otros datos")
		}
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%s: %w", op, domain.ErrDatabaseUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
