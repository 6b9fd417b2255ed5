package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidCode        = errors.New("código de invitación inválido o vencido")
	ErrUnknownProduct     = errors.New("producto inexistente o de otra empresa")
	ErrRenderingFailed    = errors.New("error generando PDF")
)

// UnknownProductError indica qué producto de la lista no pertenece al catálogo de la empresa.
// Un id ajeno y un id inexistente producen exactamente el mismo error.
type UnknownProductError struct {
	ProductID string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("producto con id %s no existe o no pertenece a la empresa", e.ProductID)
}

// Is permite errors.Is(err, ErrUnknownProduct).
func (e *UnknownProductError) Is(target error) bool {
	return target == ErrUnknownProduct
}
