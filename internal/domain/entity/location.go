package entity

import "time"

// Location representa una sede del salón (sucursal con stock propio).
type Location struct {
	ID        string
	Name      string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
