package entity

import "time"

// Branch sucursal.
type Branch struct {
	ID        int64
	Name      string
	Location  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
