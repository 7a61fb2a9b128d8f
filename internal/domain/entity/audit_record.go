package entity

import "time"

// Tipos de ajuste de stock.
const (
	AdjustmentTypeAdd    = "add"    // suma una cantidad
	AdjustmentTypeRemove = "remove" // resta una cantidad
	AdjustmentTypeSet    = "set"    // fija un valor objetivo
)

// AuditRecord entrada inmutable del libro de auditoría de stock.
// Se escribe exactamente una por ajuste, en la misma transacción que el stock.
// Invariante por par (producto, sede): PreviousStock de cada registro es igual al
// NewStock del registro anterior (o 0 si no existe ninguno).
type AuditRecord struct {
	ID             string
	ProductID      string
	LocationID     string
	AdjustmentType string // add | remove | set
	Quantity       int    // magnitud, siempre >= 0; el signo lo da AdjustmentType
	PreviousStock  int
	NewStock       int
	Reason         string
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
}
