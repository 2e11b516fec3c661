package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrMaterialInUse     = errors.New("el material está asignado a una tienda")
	ErrLastStore         = errors.New("no se puede eliminar la última tienda")
)

// InsufficientStockError rechazo de traslado por saldo insuficiente.
// Lleva el saldo disponible real (stocked − consumido) para que el operador
// vea cuánto podía mover; puede ser negativo (sobregiro).
type InsufficientStockError struct {
	Remaining int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Remaining, e.Requested)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
