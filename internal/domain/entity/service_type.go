package entity

import "time"

// ServiceType entrada del catálogo de tipos de servicio (cambio de aceite, filtros, etc.).
type ServiceType struct {
	ID          int64
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
