package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto del catálogo del salón.
const (
	ProductTypeRetail       = "retail"       // venta al cliente
	ProductTypeProfessional = "professional" // uso en cabina/estación
)

// Product representa un producto o SKU del catálogo (multi-sede).
// El stock se maneja por sede en la tabla stock; aquí solo viven los datos del catálogo.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Type        string          // retail | professional
	Price       decimal.Decimal // precio de venta al público
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
