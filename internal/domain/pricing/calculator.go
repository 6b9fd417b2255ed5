// Package pricing: reconciliación de la lista de productos solicitada contra el catálogo
// de la empresa y cálculo de totales de la cotización.
//
//	subtotal = Σ cantidad × precio
//	total    = subtotal − descuento
//	si iva > 0: total = total + total × iva / 100   (IVA sobre la base ya descontada)
package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// MoneyScale decimales de los montos monetarios (igual que la columna NUMERIC(14,2) de precios).
const MoneyScale = 2

var hundred = decimal.NewFromInt(100)

// Límites de las columnas: precio NUMERIC(14,2), montos de quotes NUMERIC(16,2) e iva NUMERIC(6,2).
var (
	MaxPrice   = decimal.RequireFromString("999999999999.99")
	MaxAmount  = decimal.RequireFromString("99999999999999.99")
	MaxTaxRate = decimal.RequireFromString("9999.99")
)

// Item producto solicitado por el cliente. El precio y el nombre nunca vienen del cliente.
type Item struct {
	ProductID string
	Quantity  decimal.Decimal
}

// Totals resultado del cálculo.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	TaxRate  decimal.Decimal
	Total    decimal.Decimal
}

// BuildLines arma las líneas de la cotización con los datos del catálogo.
// Todo o nada: el primer id que no esté en catalog aborta con *domain.UnknownProductError.
func BuildLines(items []Item, catalog map[string]*entity.Product) ([]entity.QuoteLine, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: debe enviar al menos un producto válido", domain.ErrInvalidInput)
	}
	lines := make([]entity.QuoteLine, 0, len(items))
	for _, it := range items {
		p, ok := catalog[it.ProductID]
		if it.ProductID == "" || !ok || p == nil {
			return nil, &domain.UnknownProductError{ProductID: it.ProductID}
		}
		if !it.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: la cantidad del producto %s debe ser mayor que 0", domain.ErrInvalidInput, it.ProductID)
		}
		lines = append(lines, entity.QuoteLine{
			ProductID:   p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Unit:        p.Unit,
			Code:        p.Code,
			Quantity:    it.Quantity,
		})
	}
	return lines, nil
}

// Calculate aplica descuento e IVA sobre las líneas.
// Descuento, IVA y subtotal se redondean a MoneyScale antes de operar.
func Calculate(lines []entity.QuoteLine, discount, taxRate decimal.Decimal) (Totals, error) {
	discount = discount.Round(MoneyScale)
	taxRate = taxRate.Round(MoneyScale)
	if discount.IsNegative() {
		return Totals{}, fmt.Errorf("%w: el descuento no puede ser negativo", domain.ErrInvalidInput)
	}
	if taxRate.IsNegative() {
		return Totals{}, fmt.Errorf("%w: el IVA no puede ser negativo", domain.ErrInvalidInput)
	}
	if taxRate.GreaterThan(MaxTaxRate) {
		return Totals{}, fmt.Errorf("%w: el IVA no puede superar %s", domain.ErrInvalidInput, MaxTaxRate)
	}
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Amount())
	}
	subtotal = subtotal.Round(MoneyScale)
	if subtotal.GreaterThan(MaxAmount) {
		return Totals{}, fmt.Errorf("%w: el subtotal excede el máximo permitido", domain.ErrInvalidInput)
	}
	if discount.GreaterThan(subtotal) {
		return Totals{}, fmt.Errorf("%w: el descuento supera el subtotal", domain.ErrInvalidInput)
	}
	total := subtotal.Sub(discount)
	if taxRate.IsPositive() {
		total = total.Add(total.Mul(taxRate).Div(hundred))
	}
	total = total.Round(MoneyScale)
	if total.GreaterThan(MaxAmount) {
		return Totals{}, fmt.Errorf("%w: el total excede el máximo permitido", domain.ErrInvalidInput)
	}
	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		TaxRate:  taxRate,
		Total:    total,
	}, nil
}

// GenerateCode sintetiza un código de cotización: PREFIJO-<unix>-<sufijo aleatorio>.
// El sufijo evita colisiones entre solicitudes concurrentes del mismo segundo.
func GenerateCode(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = "COT"
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%d-%s", prefix, now.Unix(), suffix)
}
