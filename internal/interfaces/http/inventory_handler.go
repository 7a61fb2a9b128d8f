package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/salon-pro/internal/application/dto"
	"github.com/tu-usuario/salon-pro/internal/application/inventory"
	"github.com/tu-usuario/salon-pro/internal/application/reports"
	"github.com/tu-usuario/salon-pro/internal/domain"
	"github.com/tu-usuario/salon-pro/internal/infrastructure/cache"
	"github.com/tu-usuario/salon-pro/pkg/logger"
)

// InventoryHandler maneja las peticiones HTTP de ajustes de stock (protegido).
type InventoryHandler struct {
	adjustUC          *inventory.AdjustStockUseCase
	queryUC           *inventory.StockQueryUseCase
	reportUC          *reports.StockReportUseCase
	summaryCache      *cache.SummaryCache
	defaultStockToAdd int
	log               *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	adjustUC *inventory.AdjustStockUseCase,
	queryUC *inventory.StockQueryUseCase,
	reportUC *reports.StockReportUseCase,
	summaryCache *cache.SummaryCache,
	defaultStockToAdd int,
	log *logger.Logger,
) *InventoryHandler {
	return &InventoryHandler{
		adjustUC:          adjustUC,
		queryUC:           queryUC,
		reportUC:          reportUC,
		summaryCache:      summaryCache,
		defaultStockToAdd: defaultStockToAdd,
		log:               log,
	}
}

// logInternal registra el error real del lado del servidor y responde 500
// genérico: el detalle (SQL, pool, etc.) jamás viaja al cliente.
func logInternal(c *fiber.Ctx, log *logger.Logger, err error) error {
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// inventoryError traduce errores de dominio a respuestas HTTP con detalles.
func (h *InventoryHandler) inventoryError(c *fiber.Ctx, err error) error {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: validation.Error(),
			Details: fiber.Map{"fields": validation.Fields},
		})
	}
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: notFound.Error(),
			Details: fiber.Map{"resource": notFound.Resource, "ids": notFound.IDs},
		})
	}
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: insufficient.Error(),
			Details: fiber.Map{
				"currentStock":      insufficient.CurrentStock,
				"requestedQuantity": insufficient.RequestedQuantity,
			},
		})
	}
	var consistency *domain.ConsistencyError
	if errors.As(err, &consistency) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "CONSISTENCY",
			Message: consistency.Error(),
			Details: fiber.Map{"locationIds": consistency.LocationIDs},
		})
	}
	return logInternal(c, h.log, err)
}

// Adjust godoc
// @Summary      Ajustar stock de un producto en una sede
// @Description  Aplica un add/remove atómico con bloqueo de fila y auditoría en la misma transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "productId, locationId, quantity (>0), adjustmentType (add|remove), reason, notes"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.adjustUC.Adjust(c.Context(), GetUserID(c), in)
	if err != nil {
		return h.inventoryError(c, err)
	}
	h.invalidateSummary(c)
	return c.JSON(out)
}

// AdjustInfo godoc
// @Summary      Describir el endpoint de ajuste
// @Description  Devuelve el contrato del POST: campos requeridos, tipos de ajuste y un ejemplo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory/adjust [get]
func (h *InventoryHandler) AdjustInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"endpoint": "/api/inventory/adjust",
		"method":   "POST",
		"requiredFields": []string{
			"productId", "locationId", "quantity", "adjustmentType", "reason",
		},
		"optionalFields":  []string{"notes"},
		"adjustmentTypes": []string{"add", "remove"},
		"example": dto.AdjustStockRequest{
			ProductID:      "uuid-del-producto",
			LocationID:     "uuid-de-la-sede",
			Quantity:       intPtr(5),
			AdjustmentType: "add",
			Reason:         "recepción de pedido",
			Notes:          "pedido #1042",
		},
	})
}

// AdjustMultiLocation godoc
// @Summary      Fijar stock de un producto en varias sedes
// @Description  Cada entrada trae el valor objetivo (newStock). Todo o nada: si una sede falla no se escribe nada.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MultiLocationAdjustmentRequest  true  "productId, adjustments[] (locationId, newStock, operation), reason"
// @Success      200   {object}  dto.MultiLocationAdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust-multi-location [post]
func (h *InventoryHandler) AdjustMultiLocation(c *fiber.Ctx) error {
	var in dto.MultiLocationAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.adjustUC.AdjustMultiLocation(c.Context(), GetUserID(c), in)
	if err != nil {
		return h.inventoryError(c, err)
	}
	h.invalidateSummary(c)
	return c.JSON(out)
}

// AdjustMultiLocationInfo godoc
// @Summary      Describir el endpoint de ajuste multi-sede
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory/adjust-multi-location [get]
func (h *InventoryHandler) AdjustMultiLocationInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"endpoint":       "/api/inventory/adjust-multi-location",
		"method":         "POST",
		"requiredFields": []string{"productId", "adjustments", "reason"},
		"operations":     []string{"add", "remove", "set"},
		"example": dto.MultiLocationAdjustmentRequest{
			ProductID: "uuid-del-producto",
			Adjustments: []dto.LocationAdjustmentEntry{
				{LocationID: "uuid-sede-norte", NewStock: intPtr(20), Operation: "set"},
				{LocationID: "uuid-sede-centro", NewStock: intPtr(15), Operation: "set"},
			},
			Reason: "conteo físico mensual",
		},
	})
}

// BulkAddStock godoc
// @Summary      Sumar stock a todos los productos en todas las sedes
// @Description  Suma stockToAdd a cada producto activo en cada sede calificada. Corre con timeout y escrituras en batch.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAddStockRequest  false  "stockToAdd (>0); ausente usa el valor configurado"
// @Success      200   {object}  dto.BulkAddStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/add-stock-all-locations [post]
func (h *InventoryHandler) BulkAddStock(c *fiber.Ctx) error {
	var in dto.BulkAddStockRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	stockToAdd := h.defaultStockToAdd
	if in.StockToAdd != nil {
		stockToAdd = *in.StockToAdd
	}
	result, err := h.adjustUC.BulkAddStock(c.Context(), GetUserID(c), stockToAdd)
	if err != nil {
		return h.inventoryError(c, err)
	}
	h.invalidateSummary(c)
	return c.JSON(dto.BulkAddStockResponse{
		Success: true,
		Message: "stock agregado en todas las sedes",
		Result:  *result,
	})
}

// StockSummary godoc
// @Summary      Resumen de stock por sede
// @Description  Unidades totales, productos retail/professional y valor retail por sede activa. Respuesta cacheada.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockSummaryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/add-stock-all-locations [get]
func (h *InventoryHandler) StockSummary(c *fiber.Ctx) error {
	if cached, err := h.summaryCache.Get(c.Context()); err == nil && cached != nil {
		return c.JSON(cached)
	}
	out, err := h.queryUC.LocationSummaries(c.Context())
	if err != nil {
		return h.inventoryError(c, err)
	}
	_ = h.summaryCache.Set(c.Context(), out)
	return c.JSON(out)
}

// ListAudit godoc
// @Summary      Libro de auditoría de ajustes
// @Description  Registros más recientes primero. productId y locationId filtran; vacíos devuelven todo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId   query  string  false  "Filtrar por producto (UUID)"
// @Param        locationId  query  string  false  "Filtrar por sede (UUID)"
// @Param        limit       query  int     false  "Máximo de registros (def. 20)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.AuditListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/audit [get]
func (h *InventoryHandler) ListAudit(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()
	out, err := h.queryUC.ListAudit(c.Context(), c.Query("productId"), c.Query("locationId"), page.Limit, page.Offset)
	if err != nil {
		return h.inventoryError(c, err)
	}
	return c.JSON(out)
}

// StockReportPDF godoc
// @Summary      Reporte PDF de stock de una sede
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la sede"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/locations/{id}/report [get]
func (h *InventoryHandler) StockReportPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.reportUC.Generate(c.Context(), c.Params("id"))
	if err != nil {
		return h.inventoryError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-stock.pdf"`)
	return c.Send(pdfBytes)
}

// invalidateSummary borra el resumen cacheado después de una escritura de stock.
func (h *InventoryHandler) invalidateSummary(c *fiber.Ctx) {
	_ = h.summaryCache.Invalidate(c.Context())
}

func intPtr(v int) *int { return &v }
