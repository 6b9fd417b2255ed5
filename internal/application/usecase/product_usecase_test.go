package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

type memProductRepo struct {
	items map[string]*entity.Product
	order []string
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{items: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.items[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memProductRepo) GetByIDAndCompany(_ context.Context, id, companyID string) (*entity.Product, error) {
	p, ok := r.items[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByIDsAndCompany(ctx context.Context, companyID string, ids []string) (map[string]*entity.Product, error) {
	out := map[string]*entity.Product{}
	for _, id := range ids {
		if p, _ := r.GetByIDAndCompany(ctx, id, companyID); p != nil {
			out[id] = p
		}
	}
	return out, nil
}

func (r *memProductRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range r.order {
		if p, ok := r.items[id]; ok && p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	existing, ok := r.items[p.ID]
	if !ok || existing.CompanyID != p.CompanyID {
		return domain.ErrNotFound
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memProductRepo) DeleteByIDAndCompany(_ context.Context, id, companyID string) (bool, error) {
	p, ok := r.items[id]
	if !ok || p.CompanyID != companyID {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestProductUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := NewProductUseCase(newMemProductRepo())

	created, err := uc.Create(ctx, "empresa-a", dto.CreateProductRequest{Name: "Tornillo", Price: price("10.005"), Unit: "und"})
	require.NoError(t, err)
	assert.Equal(t, "10.01", created.Price.StringFixed(2))

	newName := "Tornillo 1/4"
	updated, err := uc.Update(ctx, "empresa-a", created.ID, dto.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.True(t, created.Price.Equal(updated.Price), "los campos ausentes no cambian")

	list, err := uc.List(ctx, "empresa-a", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 20, list.Page.Limit)

	require.NoError(t, uc.Delete(ctx, "empresa-a", created.ID))
	_, err = uc.GetByID(ctx, "empresa-a", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_AisladoPorEmpresa(t *testing.T) {
	ctx := context.Background()
	uc := NewProductUseCase(newMemProductRepo())
	p, err := uc.Create(ctx, "empresa-a", dto.CreateProductRequest{Name: "Tuerca", Price: price("5")})
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, "empresa-b", p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	name := "robado"
	_, err = uc.Update(ctx, "empresa-b", p.ID, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Delete(ctx, "empresa-b", p.ID), domain.ErrNotFound)

	list, err := uc.List(ctx, "empresa-b", dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestProductUseCase_PrecioNegativo(t *testing.T) {
	ctx := context.Background()
	uc := NewProductUseCase(newMemProductRepo())

	_, err := uc.Create(ctx, "empresa-a", dto.CreateProductRequest{Name: "X", Price: price("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := uc.Create(ctx, "empresa-a", dto.CreateProductRequest{Name: "X", Price: price("0")})
	require.NoError(t, err)
	_, err = uc.Update(ctx, "empresa-a", p.ID, dto.UpdateProductRequest{Price: price("-0.5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "empresa-a", dto.CreateProductRequest{Name: "X", Price: price("1000000000000")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio fuera de NUMERIC(14,2)")
	_, err = uc.Update(ctx, "empresa-a", p.ID, dto.UpdateProductRequest{Price: price("999999999999.99")})
	assert.NoError(t, err)
}

func TestProductUseCase_CamposObligatorios(t *testing.T) {
	uc := NewProductUseCase(newMemProductRepo())
	_, err := uc.Create(context.Background(), "empresa-a", dto.CreateProductRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
