package repository

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Toda lectura y escritura filtra por empresa.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Product, error)
	// GetByIDsAndCompany devuelve los productos encontrados indexados por id; los ids ajenos
	// o inexistentes simplemente no aparecen en el mapa.
	GetByIDsAndCompany(ctx context.Context, companyID string, ids []string) (map[string]*entity.Product, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
	// Update devuelve domain.ErrNotFound si el producto no existe para esa empresa.
	Update(ctx context.Context, product *entity.Product) error
	DeleteByIDAndCompany(ctx context.Context, id, companyID string) (bool, error)
}
