package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas). La capa HTTP los traduce a status y código.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("datos de entrada inválidos")
	ErrDuplicate           = errors.New("registro duplicado")
	ErrReferenced          = errors.New("el registro tiene datos asociados")
	ErrInvalidCredentials  = errors.New("credenciales inválidas")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrInvalidToken        = errors.New("token inválido")
	ErrExpiredToken        = errors.New("token expirado")
	ErrSessionRevoked      = errors.New("sesión expirada o revocada")
	ErrForbidden           = errors.New("acceso denegado")
	ErrDatabaseUnavailable = errors.New("base de datos no disponible")
)

// Error error de dominio con código estable y mensaje para el usuario.
// Kind es uno de los sentinels de arriba y define la clase (status HTTP).
type Error struct {
	Kind    error
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NotFound recurso inexistente o inactivo.
func NotFound(code, message string) error {
	return &Error{Kind: ErrNotFound, Code: code, Message: message}
}

// Conflict violación de unicidad (pre-check o constraint de la DB).
func Conflict(message string) error {
	return &Error{Kind: ErrDuplicate, Code: "DUPLICATE_ENTRY", Message: message}
}

// Referenced borrado bloqueado por registros dependientes.
func Referenced(code, message string) error {
	return &Error{Kind: ErrReferenced, Code: code, Message: message}
}

// Invalid regla de negocio violada que no corresponde a un campo puntual.
func Invalid(code, message string) error {
	return &Error{Kind: ErrInvalidInput, Code: code, Message: message}
}

// FieldError violación de validación de un campo.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reúne todas las violaciones encontradas, no solo la primera.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validación: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Validator acumula errores de campo.
type Validator struct {
	fields []FieldError
}

// Check registra msg para field cuando ok es false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.fields = append(v.fields, FieldError{Field: field, Message: message})
	}
}

// Err devuelve *ValidationError si hubo violaciones, nil si no.
func (v *Validator) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}
