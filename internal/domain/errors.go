package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrConsistency        = errors.New("estado inconsistente detectado")
)

// ValidationError señala campos faltantes o inválidos en una petición.
// Fields enumera los nombres de los campos ofensores tal como viajan en el JSON.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "campos faltantes o inválidos: " + strings.Join(e.Fields, ", ")
}

// Is permite errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError construye el error con los campos ofensores.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NotFoundError identifica el tipo de recurso referenciado que no pudo resolverse
// y los IDs que no existen.
type NotFoundError struct {
	Resource string // "product" | "location" | ...
	IDs      []string
}

func (e *NotFoundError) Error() string {
	if len(e.IDs) == 0 {
		return e.Resource + " no encontrado"
	}
	return fmt.Sprintf("%s no encontrado: %s", e.Resource, strings.Join(e.IDs, ", "))
}

// Is permite errors.Is(err, domain.ErrNotFound).
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InsufficientStockError indica que un retiro dejaría el stock en negativo.
// Lleva el stock actual y la cantidad solicitada para que el caller arme un mensaje preciso.
type InsufficientStockError struct {
	CurrentStock      int
	RequestedQuantity int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: actual %d, solicitado %d", e.CurrentStock, e.RequestedQuantity)
}

// Is permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// ConsistencyError indica que una o más sedes calificadas desaparecieron entre la
// consulta inicial y la transacción (ej. desactivación concurrente durante el bulk).
type ConsistencyError struct {
	LocationIDs []string
}

func (e *ConsistencyError) Error() string {
	return "sedes desaparecidas durante la operación: " + strings.Join(e.LocationIDs, ", ")
}

// Is permite errors.Is(err, domain.ErrConsistency).
func (e *ConsistencyError) Is(target error) bool { return target == ErrConsistency }
