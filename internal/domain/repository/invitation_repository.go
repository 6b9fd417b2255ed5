package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// InvitationRepository define el puerto de persistencia para códigos de invitación.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *entity.InvitationCode) error
	// Redeem marca el código como usado solo si no estaba usado y no ha vencido en now
	// (compare-and-set). Devuelve false si ningún registro cumplía la condición.
	Redeem(ctx context.Context, code string, now time.Time) (bool, error)
}
