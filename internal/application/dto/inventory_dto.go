package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/inventory/adjust.
// Quantity es puntero para distinguir "campo ausente" de 0 (0 también es inválido).
type AdjustStockRequest struct {
	ProductID      string `json:"productId"`
	LocationID     string `json:"locationId"`
	Quantity       *int   `json:"quantity"`
	AdjustmentType string `json:"adjustmentType"` // add | remove
	Reason         string `json:"reason"`
	Notes          string `json:"notes,omitempty"`
}

// AdjustStockResponse resultado de un ajuste en una sede.
type AdjustStockResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	PreviousStock int    `json:"previousStock"`
	NewStock      int    `json:"newStock"`
	Adjustment    int    `json:"adjustment"` // cambio con signo
	AuditTrail    bool   `json:"auditTrail"`
}

// LocationAdjustmentEntry entrada por sede del ajuste multi-sede.
// NewStock es el valor objetivo (no un delta); Operation etiqueta el registro de auditoría.
type LocationAdjustmentEntry struct {
	LocationID string `json:"locationId"`
	NewStock   *int   `json:"newStock"`
	Operation  string `json:"operation"` // add | remove | set
}

// MultiLocationAdjustmentRequest body para POST /api/inventory/adjust-multi-location.
type MultiLocationAdjustmentRequest struct {
	ProductID   string                    `json:"productId"`
	Adjustments []LocationAdjustmentEntry `json:"adjustments"`
	Reason      string                    `json:"reason"`
	Notes       string                    `json:"notes,omitempty"`
}

// LocationAdjustmentResult resultado por sede del ajuste multi-sede.
type LocationAdjustmentResult struct {
	LocationID    string `json:"locationId"`
	LocationName  string `json:"locationName"`
	PreviousStock int    `json:"previousStock"`
	NewStock      int    `json:"newStock"`
	Change        int    `json:"change"`
	Operation     string `json:"operation"`
}

// MultiLocationSummary agregado del ajuste multi-sede.
type MultiLocationSummary struct {
	TotalPreviousStock int `json:"totalPreviousStock"`
	TotalNewStock      int `json:"totalNewStock"`
	TotalChange        int `json:"totalChange"`
}

// MultiLocationAdjustmentResponse respuesta completa del ajuste multi-sede.
type MultiLocationAdjustmentResponse struct {
	Success     bool                       `json:"success"`
	Message     string                     `json:"message"`
	Adjustments []LocationAdjustmentResult `json:"adjustments"`
	Summary     MultiLocationSummary       `json:"summary"`
}

// BulkAddStockRequest body para POST /api/inventory/add-stock-all-locations.
// StockToAdd ausente usa el valor por defecto configurado.
type BulkAddStockRequest struct {
	StockToAdd *int `json:"stockToAdd,omitempty"`
}

// BulkUpdateEntry resultado por par (producto, sede) del bulk add.
type BulkUpdateEntry struct {
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	LocationID    string `json:"locationId"`
	LocationName  string `json:"locationName"`
	PreviousStock int    `json:"previousStock"`
	NewStock      int    `json:"newStock"`
	StockAdded    int    `json:"stockAdded"`
}

// BulkAddStockResult agregado del bulk add.
type BulkAddStockResult struct {
	ProductsUpdated  int               `json:"productsUpdated"`
	LocationsUpdated int               `json:"locationsUpdated"`
	TotalUpdates     int               `json:"totalUpdates"`
	Updates          []BulkUpdateEntry `json:"updates"`
	Locations        []string          `json:"locations"`
}

// BulkAddStockResponse respuesta completa del bulk add.
type BulkAddStockResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Result  BulkAddStockResult `json:"result"`
}

// LocationStockSummaryDTO resumen de stock de una sede (GET add-stock-all-locations).
type LocationStockSummaryDTO struct {
	LocationID           string          `json:"locationId"`
	LocationName         string          `json:"locationName"`
	TotalUnits           int             `json:"totalUnits"`
	RetailProducts       int             `json:"retailProducts"`
	ProfessionalProducts int             `json:"professionalProducts"`
	RetailValue          decimal.Decimal `json:"retailValue"`
	RetailValueFormatted string          `json:"retailValueFormatted"`
}

// StockSummaryResponse respuesta del resumen por sede.
type StockSummaryResponse struct {
	Success   bool                      `json:"success"`
	Locations []LocationStockSummaryDTO `json:"locations"`
}

// AuditRecordDTO registro del libro de auditoría en respuestas.
type AuditRecordDTO struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"productId"`
	LocationID     string    `json:"locationId"`
	AdjustmentType string    `json:"adjustmentType"`
	Quantity       int       `json:"quantity"`
	PreviousStock  int       `json:"previousStock"`
	NewStock       int       `json:"newStock"`
	Reason         string    `json:"reason"`
	Notes          string    `json:"notes,omitempty"`
	CreatedBy      string    `json:"createdBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AuditListResponse listado paginado de auditoría.
type AuditListResponse struct {
	Items []AuditRecordDTO `json:"items"`
	Page  PageResponse     `json:"page"`
}
