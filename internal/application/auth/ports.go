package auth

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// RegistrationTxRunner ejecuta el canje del código y el alta de la empresa en una sola transacción.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		invitationRepo repository.InvitationRepository,
	) error) error
}

// TokenCodec firma y verifica el token de sesión (lo implementa *jwt.Codec).
type TokenCodec interface {
	Generate(companyID string) (string, error)
	Parse(token string) (companyID string, err error)
}

// PasswordHasher hash de una vía + verificación.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// BcryptHasher implementa PasswordHasher con bcrypt.
type BcryptHasher struct {
	Cost int
}

// Hash genera el hash bcrypt (DefaultCost si Cost es 0).
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare devuelve nil si password corresponde a hash.
func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
