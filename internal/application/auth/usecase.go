package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

// maxPasswordBytes límite de bcrypt: bytes posteriores no se pueden verificar.
const maxPasswordBytes = 72

// Config parámetros del caso de uso de auth.
type Config struct {
	AdminEmail    string
	AdminPassword string
	InvitationTTL time.Duration
}

// AuthUseCase casos de uso de autenticación: invitaciones, registro, login, logout
// y resolución del token de sesión.
type AuthUseCase struct {
	companyRepo    repository.CompanyRepository
	invitationRepo repository.InvitationRepository
	txRunner       RegistrationTxRunner
	tokens         TokenCodec
	hasher         PasswordHasher
	cfg            Config
	now            func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	companyRepo repository.CompanyRepository,
	invitationRepo repository.InvitationRepository,
	txRunner RegistrationTxRunner,
	tokens TokenCodec,
	hasher PasswordHasher,
	cfg Config,
) *AuthUseCase {
	if cfg.InvitationTTL <= 0 {
		cfg.InvitationTTL = 3 * time.Minute
	}
	return &AuthUseCase{
		companyRepo:    companyRepo,
		invitationRepo: invitationRepo,
		txRunner:       txRunner,
		tokens:         tokens,
		hasher:         hasher,
		cfg:            cfg,
		now:            time.Now,
	}
}

// IssueInvitation emite un código de invitación si las credenciales coinciden con las del administrador.
func (uc *AuthUseCase) IssueInvitation(ctx context.Context, in dto.InvitationRequest) (*dto.InvitationResponse, error) {
	if !uc.isAdmin(in.Email, in.Password) {
		return nil, domain.ErrForbidden
	}
	code, err := randomCode(8)
	if err != nil {
		return nil, fmt.Errorf("generar código: %w", err)
	}
	now := uc.now().UTC()
	inv := &entity.InvitationCode{
		ID:        uuid.New().String(),
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.cfg.InvitationTTL),
	}
	if err := uc.invitationRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return &dto.InvitationResponse{Code: inv.Code, ExpiresAt: inv.ExpiresAt}, nil
}

func (uc *AuthUseCase) isAdmin(email, password string) bool {
	if uc.cfg.AdminEmail == "" || uc.cfg.AdminPassword == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(uc.cfg.AdminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(uc.cfg.AdminPassword)) == 1
	return emailOK && passOK
}

// Register crea la empresa consumiendo el código de invitación. Email duplicado, canje del
// código e inserción ocurren en la misma transacción: si algo falla el código sigue disponible.
// No inicia sesión.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.CompanyProfile, error) {
	if err := requireFields(in); err != nil {
		return nil, err
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: el password no puede superar %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := uc.now().UTC()
	company := &entity.Company{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		NIT:          strings.TrimSpace(in.NIT),
		Address:      in.Address,
		Phone:        in.Phone,
		Contact:      in.Contact,
		LogoURL:      in.LogoURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunRegistration(ctx, func(
		companyRepo repository.CompanyRepository,
		invitationRepo repository.InvitationRepository,
	) error {
		existing, err := companyRepo.GetByEmail(ctx, company.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		ok, err := invitationRepo.Redeem(ctx, strings.TrimSpace(in.InvitationCode), now)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidCode
		}
		return companyRepo.Create(ctx, company)
	})
	if err != nil {
		return nil, err
	}
	return toCompanyProfile(company), nil
}

// Login verifica email/password, emite un token nuevo y lo guarda como única sesión vigente.
// Cualquier token anterior de la empresa deja de ser válido.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	company, err := uc.companyRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := uc.hasher.Compare(company.PasswordHash, in.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := uc.tokens.Generate(company.ID)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	if err := uc.companyRepo.SetActiveToken(ctx, company.ID, &token); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Company: *toCompanyProfile(company)}, nil
}

// Logout cierra la sesión vigente de la empresa.
func (uc *AuthUseCase) Logout(ctx context.Context, companyID string) error {
	return uc.companyRepo.SetActiveToken(ctx, companyID, nil)
}

// Authenticate resuelve el token a la empresa cuya sesión vigente es exactamente ese token.
// Cualquier falla (firma, expiración, empresa inexistente, sesión reemplazada o cerrada)
// devuelve domain.ErrUnauthorized.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.Company, error) {
	companyID, err := uc.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("%w: empresa no encontrada", domain.ErrUnauthorized)
	}
	if !company.HasSession(token) {
		return nil, fmt.Errorf("%w: token inválido o sesión cerrada", domain.ErrUnauthorized)
	}
	return company, nil
}

func requireFields(in dto.RegisterRequest) error {
	fields := map[string]string{
		"nombre": in.Name, "email": in.Email, "password": in.Password, "nit": in.NIT,
		"direccion": in.Address, "telefono": in.Phone, "contacto": in.Contact,
		"logo_url": in.LogoURL, "codigo_invitacion": in.InvitationCode,
	}
	for k, v := range fields {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: campo requerido: %s", domain.ErrInvalidInput, k)
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// randomCode devuelve n bytes aleatorios en base64 URL sin padding.
func randomCode(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func toCompanyProfile(c *entity.Company) *dto.CompanyProfile {
	if c == nil {
		return nil
	}
	return &dto.CompanyProfile{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		NIT:     c.NIT,
		Address: c.Address,
		Phone:   c.Phone,
		Contact: c.Contact,
		LogoURL: c.LogoURL,
	}
}
