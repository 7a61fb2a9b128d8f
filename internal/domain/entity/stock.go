package entity

import "time"

// Stock cantidad actual de un producto en una sede (clave única producto-sede).
// Se crea perezosamente en el primer ajuste del par; nunca se elimina.
type Stock struct {
	ProductID  string
	LocationID string
	Quantity   int
	UpdatedAt  time.Time
}
