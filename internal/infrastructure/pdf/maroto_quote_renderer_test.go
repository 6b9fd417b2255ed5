package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

func sampleQuote() (*entity.Quote, *entity.Company) {
	company := &entity.Company{ID: "c1", Name: "ACME S.A.S.", NIT: "900123456", Email: "ventas@acme.test"}
	quote := &entity.Quote{
		ID: "q1", CompanyID: "c1", Code: "COT-1700000000-ABCDEF",
		ClientName: "Cliente Uno", ClientEmail: "cliente@example.com",
		Validity: "30 días", LegalNotes: "Precios sujetos a cambio",
		Lines: []entity.QuoteLine{
			{ProductID: "p1", Name: "Silla", Price: decimal.NewFromInt(100), Quantity: decimal.NewFromInt(2), Unit: "und"},
			{ProductID: "p2", Name: "Mesa", Price: decimal.NewFromInt(50), Quantity: decimal.NewFromInt(1), Unit: "und"},
		},
		Subtotal:  decimal.NewFromInt(250),
		Discount:  decimal.NewFromInt(20),
		TaxRate:   decimal.NewFromInt(10),
		Total:     decimal.NewFromInt(253),
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	return quote, company
}

func TestRenderQuote_GeneraPDF(t *testing.T) {
	q, c := sampleQuote()
	doc, err := NewMarotoQuoteRenderer().RenderQuote(context.Background(), q, c, "cotizacion_x.pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Bytes, []byte("%PDF")))
	assert.Equal(t, len(doc.Bytes), doc.Size)
	assert.Equal(t, "cotizacion_x.pdf", doc.Filename)
}

func TestRenderQuote_ContextoCancelado(t *testing.T) {
	q, c := sampleQuote()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMarotoQuoteRenderer().RenderQuote(ctx, q, c, "x.pdf")
	assert.Error(t, err)
}

func TestTaxAmount(t *testing.T) {
	q, _ := sampleQuote()
	assert.Equal(t, "23", taxAmount(q).String())
}

func TestMoneyFormatter(t *testing.T) {
	f := NewMoneyFormatter("es-CO")
	out := f.Format(decimal.RequireFromString("253"))
	assert.Contains(t, out, "253")
	assert.Equal(t, byte('$'), out[0])
}
