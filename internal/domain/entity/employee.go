package entity

import "time"

// Employee empleado asignable a servicios.
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	Phone     string
	Position  string // cargo
	BranchID  int64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Solo lectura (join con sucursales).
	BranchName string
}
