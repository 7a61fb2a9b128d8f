package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/salon-pro/internal/application/dto"
	"github.com/tu-usuario/salon-pro/internal/application/inventory"
	"github.com/tu-usuario/salon-pro/internal/domain"
	"github.com/tu-usuario/salon-pro/internal/domain/entity"
)

const testUserID = "00000000-0000-0000-0000-000000000099"

func intPtr(v int) *int { return &v }

func adjustRequest(productID, locationID string, quantity int, adjustmentType string) dto.AdjustStockRequest {
	return dto.AdjustStockRequest{
		ProductID:      productID,
		LocationID:     locationID,
		Quantity:       intPtr(quantity),
		AdjustmentType: adjustmentType,
		Reason:         "conteo físico",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust — ajuste simple por sede
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_AddSumaStockYRegistraAuditoria(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Shampoo Reparador", entity.ProductTypeRetail, 25000)
	store.addLocation("l1", "Sede Norte")
	store.setStock("p1", "l1", 10)
	uc := newTestUseCase(store, inventory.Policy{})

	out, err := uc.Adjust(context.Background(), testUserID, adjustRequest("p1", "l1", 5, "add"))
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, 10, out.PreviousStock)
	assert.Equal(t, 15, out.NewStock)
	assert.Equal(t, 5, out.Adjustment, "el cambio con signo debe ser +5")
	assert.True(t, out.AuditTrail)
	assert.Equal(t, 15, store.stock("p1", "l1"), "el stock persistido debe reflejar el ajuste")

	require.Len(t, store.audit, 1, "debe registrarse exactamente un registro de auditoría")
	rec := store.audit[0]
	assert.Equal(t, "add", rec.AdjustmentType)
	assert.Equal(t, 5, rec.Quantity)
	assert.Equal(t, 10, rec.PreviousStock)
	assert.Equal(t, 15, rec.NewStock)
	assert.Equal(t, testUserID, rec.CreatedBy)
}

func TestAdjust_RemoveRestaStock(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Tinte Profesional", entity.ProductTypeProfessional, 40000)
	store.addLocation("l1", "Sede Centro")
	store.setStock("p1", "l1", 8)
	uc := newTestUseCase(store, inventory.Policy{})

	out, err := uc.Adjust(context.Background(), testUserID, adjustRequest("p1", "l1", 3, "remove"))
	require.NoError(t, err)

	assert.Equal(t, 5, out.NewStock)
	assert.Equal(t, -3, out.Adjustment, "el cambio con signo debe ser -3")
	assert.Equal(t, 5, store.stock("p1", "l1"))
}

func TestAdjust_RemoveSinStockSuficiente_RechazaSinEscribir(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Cera Moldeadora", entity.ProductTypeRetail, 18000)
	store.addLocation("l1", "Sede Norte")
	store.setStock("p1", "l1", 2)
	uc := newTestUseCase(store, inventory.Policy{})

	_, err := uc.Adjust(context.Background(), testUserID, adjustRequest("p1", "l1", 5, "remove"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.CurrentStock)
	assert.Equal(t, 5, insufficient.RequestedQuantity)

	assert.Equal(t, 2, store.stock("p1", "l1"), "el stock no debe cambiar")
	assert.Empty(t, store.audit, "un ajuste rechazado no genera auditoría")
}

func TestAdjust_StockNegativoPermitidoPorPolitica(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Acondicionador", entity.ProductTypeRetail, 22000)
	store.addLocation("l1", "Sede Norte")
	store.setStock("p1", "l1", 2)
	uc := newTestUseCase(store, inventory.Policy{AllowNegativeStock: true})

	out, err := uc.Adjust(context.Background(), testUserID, adjustRequest("p1", "l1", 5, "remove"))
	require.NoError(t, err)
	assert.Equal(t, -3, out.NewStock, "con la política activa el stock puede quedar negativo")
	require.Len(t, store.audit, 1, "el ajuste negativo permitido también se audita")
}

func TestAdjust_SinFilaDeStockPrevia_ParteDeCero(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Mascarilla Capilar", entity.ProductTypeRetail, 30000)
	store.addLocation("l1", "Sede Sur")
	uc := newTestUseCase(store, inventory.Policy{})

	out, err := uc.Adjust(context.Background(), testUserID, adjustRequest("p1", "l1", 7, "add"))
	require.NoError(t, err)
	assert.Equal(t, 0, out.PreviousStock, "sin fila previa el stock parte de 0")
	assert.Equal(t, 7, out.NewStock)
}

// Una secuencia mixta de add/remove sobre un mismo par debe conservar el total
// (stock final = inicial + suma con signo) y dejar un libro de auditoría
// encadenado: el NewStock de cada registro es el PreviousStock del siguiente.
func TestAdjust_SecuenciaMixta_ConservaYEncadenaAuditoria(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Keratina", entity.ProductTypeProfessional, 60000)
	store.addLocation("l1", "Sede Norte")
	uc := newTestUseCase(store, inventory.Policy{})

	steps := []struct {
		quantity int
		kind     string
	}{
		{7, "add"}, // primer ajuste del par: parte de 0
		{5, "add"},
		{3, "remove"},
		{4, "add"},
		{6, "remove"},
	}
	signed := 0
	for _, step := range steps {
		_, err := uc.Adjust(context.Background(), testUserID, adjustRequest("p1", "l1", step.quantity, step.kind))
		require.NoError(t, err)
		if step.kind == "add" {
			signed += step.quantity
		} else {
			signed -= step.quantity
		}
	}

	assert.Equal(t, signed, store.stock("p1", "l1"),
		"el stock final debe ser la suma con signo de todos los ajustes aplicados")

	require.Len(t, store.audit, len(steps))
	assert.Equal(t, 0, store.audit[0].PreviousStock, "la cadena arranca en 0 para un par sin fila previa")
	for i := 1; i < len(store.audit); i++ {
		assert.Equal(t, store.audit[i-1].NewStock, store.audit[i].PreviousStock,
			"el registro %d debe encadenar con el anterior", i)
	}
	last := store.audit[len(store.audit)-1]
	assert.Equal(t, store.stock("p1", "l1"), last.NewStock,
		"el último registro debe coincidir con el stock persistido")
}

func TestAdjust_CamposFaltantes_ReportaTodosLosCampos(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store, inventory.Policy{})

	_, err := uc.Adjust(context.Background(), testUserID, dto.AdjustStockRequest{})
	require.Error(t, err)

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.ElementsMatch(t,
		[]string{"productId", "locationId", "quantity", "adjustmentType", "reason"},
		validation.Fields,
		"deben reportarse todos los campos faltantes, no solo el primero")
	assert.Empty(t, store.audit, "una petición inválida no escribe nada")
}

func TestAdjust_CantidadCeroONegativa_Rechazada(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Laca", entity.ProductTypeRetail, 15000)
	store.addLocation("l1", "Sede Norte")
	store.setStock("p1", "l1", 10)
	uc := newTestUseCase(store, inventory.Policy{})

	for _, quantity := range []int{0, -4} {
		_, err := uc.Adjust(context.Background(), testUserID, adjustRequest("p1", "l1", quantity, "add"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d debe rechazarse", quantity)
	}
	assert.Equal(t, 10, store.stock("p1", "l1"), "el stock no debe cambiar")
}

func TestAdjust_TipoDeAjusteDesconocido_Rechazado(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Laca", entity.ProductTypeRetail, 15000)
	store.addLocation("l1", "Sede Norte")
	uc := newTestUseCase(store, inventory.Policy{})

	_, err := uc.Adjust(context.Background(), testUserID, adjustRequest("p1", "l1", 5, "transfer"))
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"adjustmentType"}, validation.Fields)
}

func TestAdjust_ProductoInexistente_Retorna404(t *testing.T) {
	store := newMemStore()
	store.addLocation("l1", "Sede Norte")
	uc := newTestUseCase(store, inventory.Policy{})

	_, err := uc.Adjust(context.Background(), testUserID, adjustRequest("no-existe", "l1", 5, "add"))
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "product", notFound.Resource)
	assert.Equal(t, []string{"no-existe"}, notFound.IDs)
}

func TestAdjust_FalloDeAuditoria_RevierteElStock(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Serum", entity.ProductTypeRetail, 50000)
	store.addLocation("l1", "Sede Norte")
	store.setStock("p1", "l1", 10)
	store.failAuditAfter = 1
	uc := newTestUseCase(store, inventory.Policy{})

	_, err := uc.Adjust(context.Background(), testUserID, adjustRequest("p1", "l1", 5, "add"))
	require.Error(t, err)

	assert.Equal(t, 10, store.stock("p1", "l1"),
		"si la auditoría falla, el upsert de stock debe revertirse (misma transacción)")
	assert.Empty(t, store.audit)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustMultiLocation — valor objetivo por sede, todo o nada
// ──────────────────────────────────────────────────────────────────────────────

func multiRequest(productID string, entries ...dto.LocationAdjustmentEntry) dto.MultiLocationAdjustmentRequest {
	return dto.MultiLocationAdjustmentRequest{
		ProductID:   productID,
		Adjustments: entries,
		Reason:      "redistribución entre sedes",
	}
}

func TestAdjustMultiLocation_FijaValoresObjetivo(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Shampoo Reparador", entity.ProductTypeRetail, 25000)
	store.addLocation("l1", "Sede Norte")
	store.addLocation("l2", "Sede Centro")
	store.setStock("p1", "l1", 10)
	store.setStock("p1", "l2", 4)
	uc := newTestUseCase(store, inventory.Policy{})

	out, err := uc.AdjustMultiLocation(context.Background(), testUserID, multiRequest("p1",
		dto.LocationAdjustmentEntry{LocationID: "l1", NewStock: intPtr(20), Operation: "set"},
		dto.LocationAdjustmentEntry{LocationID: "l2", NewStock: intPtr(2), Operation: "remove"},
	))
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, "stock ajustado en 2 sedes", out.Message)
	require.Len(t, out.Adjustments, 2)

	assert.Equal(t, 10, out.Adjustments[0].PreviousStock)
	assert.Equal(t, 20, out.Adjustments[0].NewStock)
	assert.Equal(t, 10, out.Adjustments[0].Change)
	assert.Equal(t, "Sede Norte", out.Adjustments[0].LocationName)

	assert.Equal(t, -2, out.Adjustments[1].Change, "newStock es valor objetivo, no delta")

	assert.Equal(t, 14, out.Summary.TotalPreviousStock)
	assert.Equal(t, 22, out.Summary.TotalNewStock)
	assert.Equal(t, 8, out.Summary.TotalChange)

	assert.Equal(t, 20, store.stock("p1", "l1"))
	assert.Equal(t, 2, store.stock("p1", "l2"))
	assert.Len(t, store.audit, 2, "una entrada de auditoría por sede ajustada")
}

func TestAdjustMultiLocation_SedeInexistente_NoEscribeNada(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Shampoo Reparador", entity.ProductTypeRetail, 25000)
	store.addLocation("l1", "Sede Norte")
	store.setStock("p1", "l1", 10)
	uc := newTestUseCase(store, inventory.Policy{})

	_, err := uc.AdjustMultiLocation(context.Background(), testUserID, multiRequest("p1",
		dto.LocationAdjustmentEntry{LocationID: "l1", NewStock: intPtr(20), Operation: "set"},
		dto.LocationAdjustmentEntry{LocationID: "fantasma", NewStock: intPtr(5), Operation: "set"},
	))
	require.Error(t, err)

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "location", notFound.Resource)
	assert.Equal(t, []string{"fantasma"}, notFound.IDs, "debe nombrar exactamente las sedes faltantes")

	assert.Equal(t, 10, store.stock("p1", "l1"), "todo o nada: la sede válida tampoco se toca")
	assert.Empty(t, store.audit)
}

func TestAdjustMultiLocation_NewStockNegativo_Rechazado(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Shampoo", entity.ProductTypeRetail, 25000)
	store.addLocation("l1", "Sede Norte")
	uc := newTestUseCase(store, inventory.Policy{})

	_, err := uc.AdjustMultiLocation(context.Background(), testUserID, multiRequest("p1",
		dto.LocationAdjustmentEntry{LocationID: "l1", NewStock: intPtr(-1), Operation: "set"},
	))
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"adjustments[0].newStock"}, validation.Fields)
}

func TestAdjustMultiLocation_OperacionInvalida_NombraLaEntrada(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Shampoo", entity.ProductTypeRetail, 25000)
	store.addLocation("l1", "Sede Norte")
	store.addLocation("l2", "Sede Centro")
	uc := newTestUseCase(store, inventory.Policy{})

	_, err := uc.AdjustMultiLocation(context.Background(), testUserID, multiRequest("p1",
		dto.LocationAdjustmentEntry{LocationID: "l1", NewStock: intPtr(5), Operation: "set"},
		dto.LocationAdjustmentEntry{LocationID: "l2", NewStock: intPtr(5), Operation: "subtract"},
	))
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"adjustments[1].operation"}, validation.Fields)
}

func TestAdjustMultiLocation_FalloEnUltimaSede_RevierteTodas(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Shampoo Reparador", entity.ProductTypeRetail, 25000)
	store.addLocation("l1", "Sede Norte")
	store.addLocation("l2", "Sede Centro")
	store.setStock("p1", "l1", 10)
	store.setStock("p1", "l2", 4)
	// Falla el segundo insert de auditoría: la primera sede ya habría escrito.
	store.failAuditAfter = 2
	uc := newTestUseCase(store, inventory.Policy{})

	_, err := uc.AdjustMultiLocation(context.Background(), testUserID, multiRequest("p1",
		dto.LocationAdjustmentEntry{LocationID: "l1", NewStock: intPtr(20), Operation: "set"},
		dto.LocationAdjustmentEntry{LocationID: "l2", NewStock: intPtr(8), Operation: "set"},
	))
	require.Error(t, err)

	assert.Equal(t, 10, store.stock("p1", "l1"), "la primera sede también debe revertirse")
	assert.Equal(t, 4, store.stock("p1", "l2"))
	assert.Empty(t, store.audit)
}
