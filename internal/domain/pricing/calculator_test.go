package pricing_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testCatalog() map[string]*entity.Product {
	return map[string]*entity.Product{
		"p1": {ID: "p1", CompanyID: "c1", Name: "Cemento", Description: "Bulto 50kg", Price: d("100"), Unit: "bulto", Code: "CEM-50"},
		"p2": {ID: "p2", CompanyID: "c1", Name: "Arena", Price: d("50"), Unit: "m3", Code: "ARE"},
	}
}

// Ejemplo de referencia: P1 (100 × 2) + P2 (50 × 1), descuento 20, IVA 10 → total 253.
func TestCalculate_EjemploReferencia(t *testing.T) {
	lines, err := pricing.BuildLines([]pricing.Item{
		{ProductID: "p1", Quantity: d("2")},
		{ProductID: "p2", Quantity: d("1")},
	}, testCatalog())
	require.NoError(t, err)

	totals, err := pricing.Calculate(lines, d("20"), d("10"))
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(d("250")), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.Total.Equal(d("253")), "total = %s", totals.Total)
}

func TestCalculate_SinIVA(t *testing.T) {
	lines, err := pricing.BuildLines([]pricing.Item{{ProductID: "p1", Quantity: d("3")}}, testCatalog())
	require.NoError(t, err)

	totals, err := pricing.Calculate(lines, d("50"), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, totals.Total.Equal(d("250")))
}

func TestCalculate_RedondeaADosDecimales(t *testing.T) {
	catalog := map[string]*entity.Product{"x": {ID: "x", Name: "Tornillo", Price: d("0.33")}}
	lines, err := pricing.BuildLines([]pricing.Item{{ProductID: "x", Quantity: d("3")}}, catalog)
	require.NoError(t, err)

	totals, err := pricing.Calculate(lines, decimal.Zero, d("19"))
	require.NoError(t, err)
	// 0.99 × 1.19 = 1.1781
	assert.Equal(t, "1.18", totals.Total.StringFixed(2))
}

func TestBuildLines_UsaDatosDelCatalogo(t *testing.T) {
	lines, err := pricing.BuildLines([]pricing.Item{{ProductID: "p1", Quantity: d("1")}}, testCatalog())
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, "Cemento", lines[0].Name)
	assert.Equal(t, "CEM-50", lines[0].Code)
	assert.True(t, lines[0].Price.Equal(d("100")))
}

func TestBuildLines_ProductoDesconocidoAbortaTodo(t *testing.T) {
	lines, err := pricing.BuildLines([]pricing.Item{
		{ProductID: "p1", Quantity: d("1")},
		{ProductID: "de-otra-empresa", Quantity: d("1")},
	}, testCatalog())

	assert.Nil(t, lines)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownProduct))

	var upe *domain.UnknownProductError
	require.True(t, errors.As(err, &upe))
	assert.Equal(t, "de-otra-empresa", upe.ProductID)
}

func TestBuildLines_CantidadNoPositiva(t *testing.T) {
	_, err := pricing.BuildLines([]pricing.Item{{ProductID: "p1", Quantity: d("0")}}, testCatalog())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = pricing.BuildLines([]pricing.Item{{ProductID: "p1", Quantity: d("-2")}}, testCatalog())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildLines_ListaVacia(t *testing.T) {
	_, err := pricing.BuildLines(nil, testCatalog())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCalculate_RechazaMontosInvalidos(t *testing.T) {
	lines, err := pricing.BuildLines([]pricing.Item{{ProductID: "p2", Quantity: d("1")}}, testCatalog())
	require.NoError(t, err)

	_, err = pricing.Calculate(lines, d("-1"), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = pricing.Calculate(lines, decimal.Zero, d("-5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = pricing.Calculate(lines, d("60"), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "descuento mayor al subtotal")
}

func TestGenerateCode(t *testing.T) {
	now := time.Unix(1700000000, 0)
	a := pricing.GenerateCode("COT", now)
	b := pricing.GenerateCode("COT", now)

	assert.True(t, strings.HasPrefix(a, "COT-1700000000-"), a)
	assert.NotEqual(t, a, b, "dos códigos en el mismo segundo no deben colisionar")
	assert.True(t, strings.HasPrefix(pricing.GenerateCode("", now), "COT-"))
}

func TestCalculate_RedondeaDescuentoEIVAComoSePersisten(t *testing.T) {
	lines, err := pricing.BuildLines([]pricing.Item{{ProductID: "p1", Quantity: d("1")}}, testCatalog())
	require.NoError(t, err)

	totals, err := pricing.Calculate(lines, d("0.005"), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "0.01", totals.Discount.StringFixed(2))
	assert.Equal(t, "99.99", totals.Total.StringFixed(2))

	totals, err = pricing.Calculate(lines, decimal.Zero, d("12.345"))
	require.NoError(t, err)
	assert.Equal(t, "12.35", totals.TaxRate.StringFixed(2))
	assert.Equal(t, "112.35", totals.Total.StringFixed(2))

	// El total se recalcula igual desde los valores devueltos.
	for _, c := range []struct{ discount, tax string }{{"0.004", "7.125"}, {"33.335", "19.999"}, {"1.555", "0"}} {
		totals, err := pricing.Calculate(lines, d(c.discount), d(c.tax))
		require.NoError(t, err)
		base := totals.Subtotal.Sub(totals.Discount)
		want := base.Add(base.Mul(totals.TaxRate).Div(decimal.NewFromInt(100))).Round(pricing.MoneyScale)
		assert.True(t, totals.Total.Equal(want), "descuento %s iva %s: total %s, esperado %s", c.discount, c.tax, totals.Total, want)
		assert.Equal(t, totals.Discount.String(), totals.Discount.Round(pricing.MoneyScale).String())
	}
}

func TestCalculate_RechazaValoresFueraDeRango(t *testing.T) {
	lines, err := pricing.BuildLines([]pricing.Item{{ProductID: "p1", Quantity: d("1")}}, testCatalog())
	require.NoError(t, err)

	_, err = pricing.Calculate(lines, decimal.Zero, d("10000"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "iva fuera de NUMERIC(6,2)")

	_, err = pricing.Calculate(lines, decimal.Zero, pricing.MaxTaxRate)
	assert.NoError(t, err)

	huge, err := pricing.BuildLines([]pricing.Item{{ProductID: "p1", Quantity: d("1e13")}}, testCatalog())
	require.NoError(t, err)
	_, err = pricing.Calculate(huge, decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "subtotal de 1e15")

	// Subtotal dentro del rango pero el IVA lo lleva por encima.
	edge, err := pricing.BuildLines([]pricing.Item{{ProductID: "p1", Quantity: d("900000000000")}}, testCatalog())
	require.NoError(t, err)
	_, err = pricing.Calculate(edge, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	_, err = pricing.Calculate(edge, decimal.Zero, d("19"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "total sobre el máximo")
}
