package repository

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya está registrado.
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByEmail(ctx context.Context, email string) (*entity.Company, error)
	// SetActiveToken sobrescribe la sesión vigente (nil la cierra). Último en escribir gana.
	SetActiveToken(ctx context.Context, companyID string, token *string) error
}
