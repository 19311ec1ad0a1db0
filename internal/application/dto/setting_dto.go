package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

// SettingRequest alta de una entrada de configuración.
type SettingRequest struct {
	Category    string `json:"categoria"`
	Key         string `json:"clave"`
	Value       string `json:"valor"`
	Type        string `json:"tipo"`
	Description string `json:"descripcion"`
}

// validate acumula violaciones en v; field es el prefijo del campo en validaciones en lote.
func (r *SettingRequest) validate(v *domain.Validator, field string) {
	r.Category = strings.TrimSpace(r.Category)
	r.Key = strings.TrimSpace(r.Key)
	r.Value = strings.TrimSpace(r.Value)
	v.Check(lenBetween(r.Category, 2, 50) && reCategory.MatchString(r.Category), field+"categoria",
		"La categoría debe tener entre 2 y 50 caracteres (letras y guiones bajos)")
	v.Check(lenBetween(r.Key, 2, 50) && reSettingKey.MatchString(r.Key), field+"clave",
		"La clave debe tener entre 2 y 50 caracteres (letras, números y guiones bajos)")
	v.Check(lenBetween(r.Value, 1, 1000), field+"valor", "El valor debe tener entre 1 y 1000 caracteres")
	if !validSettings[r.Type] {
		v.Check(false, field+"tipo", "Tipo debe ser string, number, boolean o json")
	} else {
		v.Check(valueMatchesType(r.Value, r.Type), field+"valor", "El valor no corresponde al tipo "+r.Type)
	}
	v.Check(maxLen(r.Description, 200), field+"descripcion", "La descripción no puede tener más de 200 caracteres")
}

// Validate reporta cada violación.
func (r *SettingRequest) Validate() error {
	var v domain.Validator
	r.validate(&v, "")
	return v.Err()
}

// ToEntity construye la entidad a persistir.
func (r *SettingRequest) ToEntity() *entity.Setting {
	return &entity.Setting{Category: r.Category, Key: r.Key, Value: r.Value, Type: r.Type, Description: r.Description}
}

// BulkSettingsRequest actualización en lote (PUT /configuracion).
type BulkSettingsRequest struct {
	Settings []SettingRequest `json:"configuraciones"`
}

// Validate exige al menos una entrada y valida cada una.
func (r *BulkSettingsRequest) Validate() error {
	var v domain.Validator
	v.Check(len(r.Settings) > 0, "configuraciones", "Debe proporcionar al menos una configuración")
	for i := range r.Settings {
		r.Settings[i].validate(&v, fmt.Sprintf("configuraciones[%d].", i))
	}
	return v.Err()
}

func valueMatchesType(value, typ string) bool {
	switch typ {
	case entity.SettingNumber:
		_, err := strconv.ParseFloat(value, 64)
		return err == nil
	case entity.SettingBoolean:
		_, err := strconv.ParseBool(value)
		return err == nil
	case entity.SettingJSON:
		return json.Valid([]byte(value))
	default:
		return true
	}
}

// SettingResponse salida de una entrada de configuración.
type SettingResponse struct {
	ID          int64     `json:"id"`
	Category    string    `json:"categoria"`
	Key         string    `json:"clave"`
	Value       string    `json:"valor"`
	Type        string    `json:"tipo"`
	Description string    `json:"descripcion"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSettingResponse mapea la entidad.
func NewSettingResponse(s *entity.Setting) SettingResponse {
	return SettingResponse{
		ID:          s.ID,
		Category:    s.Category,
		Key:         s.Key,
		Value:       s.Value,
		Type:        s.Type,
		Description: s.Description,
		UpdatedAt:   s.UpdatedAt,
	}
}
