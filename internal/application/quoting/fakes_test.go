package quoting

import (
	"context"
	"errors"
	"sort"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

type memProducts struct {
	items map[string]*entity.Product
}

func (r *memProducts) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memProducts) GetByIDAndCompany(_ context.Context, id, companyID string) (*entity.Product, error) {
	p, ok := r.items[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProducts) GetByIDsAndCompany(ctx context.Context, companyID string, ids []string) (map[string]*entity.Product, error) {
	out := map[string]*entity.Product{}
	for _, id := range ids {
		if p, _ := r.GetByIDAndCompany(ctx, id, companyID); p != nil {
			out[id] = p
		}
	}
	return out, nil
}

func (r *memProducts) ListByCompany(context.Context, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProducts) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memProducts) DeleteByIDAndCompany(_ context.Context, id, companyID string) (bool, error) {
	p, ok := r.items[id]
	if !ok || p.CompanyID != companyID {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

type memQuotes struct {
	items map[string]*entity.Quote
}

func cloneQuote(q *entity.Quote, withDoc bool) *entity.Quote {
	cp := *q
	cp.Lines = append([]entity.QuoteLine(nil), q.Lines...)
	cp.HasDocument = len(q.Document) > 0
	if !withDoc {
		cp.Document = nil
	}
	return &cp
}

func (r *memQuotes) Create(_ context.Context, q *entity.Quote) error {
	for _, existing := range r.items {
		if existing.CompanyID == q.CompanyID && existing.Code == q.Code {
			return domain.ErrDuplicate
		}
	}
	r.items[q.ID] = cloneQuote(q, true)
	return nil
}

func (r *memQuotes) CodeExists(_ context.Context, companyID, code string) (bool, error) {
	for _, q := range r.items {
		if q.CompanyID == companyID && q.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *memQuotes) GetByIDAndCompany(_ context.Context, id, companyID string) (*entity.Quote, error) {
	q, ok := r.items[id]
	if !ok || q.CompanyID != companyID {
		return nil, nil
	}
	return cloneQuote(q, false), nil
}

func (r *memQuotes) GetForUpdate(ctx context.Context, id, companyID string) (*entity.Quote, error) {
	return r.GetByIDAndCompany(ctx, id, companyID)
}

func (r *memQuotes) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range r.items {
		if q.CompanyID == companyID {
			out = append(out, cloneQuote(q, false))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memQuotes) GetDocument(_ context.Context, id, companyID string) ([]byte, string, error) {
	q, ok := r.items[id]
	if !ok || q.CompanyID != companyID {
		return nil, "", nil
	}
	return q.Document, q.Code, nil
}

func (r *memQuotes) Update(_ context.Context, q *entity.Quote) error {
	existing, ok := r.items[q.ID]
	if !ok || existing.CompanyID != q.CompanyID {
		return domain.ErrNotFound
	}
	cp := cloneQuote(q, false)
	cp.Document = existing.Document
	r.items[q.ID] = cp
	return nil
}

func (r *memQuotes) DeleteByIDAndCompany(_ context.Context, id, companyID string) (bool, error) {
	q, ok := r.items[id]
	if !ok || q.CompanyID != companyID {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

type memTx struct {
	products *memProducts
	quotes   *memQuotes
}

func (t memTx) RunQuote(_ context.Context, fn func(repository.ProductRepository, repository.QuoteRepository) error) error {
	return fn(t.products, t.quotes)
}

type fakeRenderer struct {
	err   error
	calls int
}

func (r *fakeRenderer) RenderQuote(_ context.Context, q *entity.Quote, _ *entity.Company, filename string) (*RenderedDocument, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	b := []byte("%PDF-fake " + q.Code)
	return &RenderedDocument{Bytes: b, Filename: filename, Size: len(b)}, nil
}

type fakeMailer struct {
	err  error
	sent []Message
}

func (m *fakeMailer) Send(_ context.Context, msg Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

var errBoom = errors.New("boom")
