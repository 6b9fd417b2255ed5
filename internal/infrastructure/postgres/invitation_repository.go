package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

// InvitationRepo códigos de invitación sobre PostgreSQL.
type InvitationRepo struct {
	q Querier
}

// NewInvitationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvitationRepository(q Querier) *InvitationRepo {
	return &InvitationRepo{q: q}
}

// Create persiste un código nuevo.
func (r *InvitationRepo) Create(ctx context.Context, inv *entity.InvitationCode) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invitation_codes (id, code, created_at, expires_at, used)
		VALUES ($1, $2, $3, $4, $5)`,
		inv.ID, inv.Code, inv.CreatedAt, inv.ExpiresAt, inv.Used,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

// Redeem marca el código como usado en una sola sentencia condicional.
// Dos canjes concurrentes del mismo código: solo uno afecta la fila.
func (r *InvitationRepo) Redeem(ctx context.Context, code string, now time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE invitation_codes SET used = true
		 WHERE code = $1 AND used = false AND expires_at > $2`,
		code, now,
	)
	if err != nil {
		return false, fmt.Errorf("redeem invitation: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}
