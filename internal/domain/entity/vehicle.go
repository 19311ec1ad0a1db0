package entity

import "time"

// Vehicle vehículo de un cliente.
type Vehicle struct {
	ID        int64
	ClientID  int64
	Patente   string // mayúsculas, única entre activos
	Brand     string
	Model     string
	Year      int
	Mileage   int
	Notes     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Solo lectura (join con clientes).
	ClientName string
}
