package entity

import "time"

// Client cliente del lubricentro.
type Client struct {
	ID        int64
	FirstName string
	LastName  string
	DNI       string // opcional, único entre activos
	Phone     string
	Email     string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName "Nombre Apellido".
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
