package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

type memStore struct {
	mu          sync.Mutex
	companies   map[string]*entity.Company
	invitations map[string]*entity.InvitationCode
}

func newMemStore() *memStore {
	return &memStore{
		companies:   map[string]*entity.Company{},
		invitations: map[string]*entity.InvitationCode{},
	}
}

type memCompanyRepo struct{ s *memStore }

func (r memCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	for _, existing := range r.s.companies {
		if existing.Email == c.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r memCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r memCompanyRepo) GetByEmail(_ context.Context, email string) (*entity.Company, error) {
	for _, c := range r.s.companies {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memCompanyRepo) SetActiveToken(_ context.Context, id string, token *string) error {
	c, ok := r.s.companies[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.ActiveToken = token
	return nil
}

type memInvitationRepo struct{ s *memStore }

func (r memInvitationRepo) Create(_ context.Context, inv *entity.InvitationCode) error {
	cp := *inv
	r.s.invitations[inv.Code] = &cp
	return nil
}

func (r memInvitationRepo) Redeem(_ context.Context, code string, now time.Time) (bool, error) {
	inv, ok := r.s.invitations[code]
	if !ok || !inv.Redeemable(now) {
		return false, nil
	}
	inv.Used = true
	return true, nil
}

// memTx simula la transacción: si fn falla, restaura el estado previo.
type memTx struct{ s *memStore }

func (t memTx) RunRegistration(_ context.Context, fn func(repository.CompanyRepository, repository.InvitationRepository) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	companies := map[string]entity.Company{}
	for k, v := range t.s.companies {
		companies[k] = *v
	}
	invitations := map[string]entity.InvitationCode{}
	for k, v := range t.s.invitations {
		invitations[k] = *v
	}
	if err := fn(memCompanyRepo{t.s}, memInvitationRepo{t.s}); err != nil {
		t.s.companies = map[string]*entity.Company{}
		for k, v := range companies {
			v := v
			t.s.companies[k] = &v
		}
		t.s.invitations = map[string]*entity.InvitationCode{}
		for k, v := range invitations {
			v := v
			t.s.invitations[k] = &v
		}
		return err
	}
	return nil
}

// fakeCodec emite tokens secuenciales "tok-<n>:<companyID>".
type fakeCodec struct {
	mu sync.Mutex
	n  int
}

func (c *fakeCodec) Generate(companyID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return "tok-" + string(rune('a'+c.n)) + ":" + companyID, nil
}

func (c *fakeCodec) Parse(token string) (string, error) {
	for i := 0; i < len(token); i++ {
		if token[i] == ':' && i+1 < len(token) {
			return token[i+1:], nil
		}
	}
	return "", errors.New("token malformado")
}

// plainHasher evita el costo de bcrypt en tests.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }
func (plainHasher) Compare(hash, p string) error {
	if hash != "h:"+p {
		return errors.New("mismatch")
	}
	return nil
}
