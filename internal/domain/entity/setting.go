package entity

import "time"

// Tipos de valor admitidos para Setting.
const (
	SettingString  = "string"
	SettingNumber  = "number"
	SettingBoolean = "boolean"
	SettingJSON    = "json"
)

// Setting par clave/valor de configuración, único por (categoría, clave).
type Setting struct {
	ID          int64
	Category    string
	Key         string
	Value       string
	Type        string
	Description string
	UpdatedAt   time.Time
}
