package entity

import "time"

// Roles del personal del salón.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStylist = "stylist"
)

// User credencial de un miembro del personal.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | manager | stylist
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
