package repository

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// QuoteRepository define el puerto de persistencia para Quote.
// Las lecturas nunca cargan los bytes del PDF salvo GetDocument.
type QuoteRepository interface {
	// Create devuelve domain.ErrDuplicate si el código ya existe en la empresa.
	Create(ctx context.Context, quote *entity.Quote) error
	// CodeExists informa si la empresa ya tiene una cotización con ese código.
	CodeExists(ctx context.Context, companyID, code string) (bool, error)
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Quote, error)
	// GetForUpdate igual que GetByIDAndCompany pero bloquea la fila (usar dentro de una tx).
	GetForUpdate(ctx context.Context, id, companyID string) (*entity.Quote, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Quote, error)
	// GetDocument devuelve el PDF almacenado y el código de la cotización (nil si no hay).
	GetDocument(ctx context.Context, id, companyID string) ([]byte, string, error)
	// Update persiste campos escalares, líneas y totales. No toca el documento.
	Update(ctx context.Context, quote *entity.Quote) error
	DeleteByIDAndCompany(ctx context.Context, id, companyID string) (bool, error)
}
