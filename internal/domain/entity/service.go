package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ServiceNumberPrefix prefijo de la numeración legible de servicios.
const ServiceNumberPrefix = "SERV-"

// FormatServiceNumber 1 -> "SERV-00001".
func FormatServiceNumber(n int64) string {
	return fmt.Sprintf("%s%05d", ServiceNumberPrefix, n)
}

// DefaultItemDescription descripción de un ítem cuando no se informa.
const DefaultItemDescription = "Sin descripción"

// Service servicio realizado a un vehículo: agregado raíz de ítems, productos y empleados asignados.
type Service struct {
	ID             int64
	Number         string
	ClientID       int64
	VehicleID      int64
	BranchID       int64
	Description    string
	Notes          string
	ReferencePrice decimal.NullDecimal
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	EmployeeIDs []int64
	Items       []ServiceItem

	// Solo lectura (joins).
	Client     *Client
	Vehicle    *Vehicle
	BranchName string
	Employees  []Employee
	ItemsCount int
}

// ServiceItem línea de trabajo dentro de un servicio.
type ServiceItem struct {
	ID            int64
	ServiceID     int64
	ServiceTypeID int64
	Description   string
	Notes         string // observaciones
	Remarks       string // notas
	Products      []ServiceProduct

	// Solo lectura.
	ServiceTypeName string
}

// ServiceProduct producto/insumo usado en un ítem. OwnStock: lo provee el lubricentro.
type ServiceProduct struct {
	ID       int64
	ItemID   int64
	Name     string
	OwnStock bool
}

// ServiceStats contadores de servicios activos.
type ServiceStats struct {
	Total int64
	Today int64
	Week  int64
	Month int64
}
