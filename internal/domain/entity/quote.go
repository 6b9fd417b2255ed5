package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de envío por correo de la cotización.
const (
	DeliveryStatusSent   = "Enviado"
	DeliveryStatusFailed = "Fallido"
)

// QuoteLine copia de los datos del producto al momento de cotizar más la cantidad.
// No referencia al producto vivo: editar o borrar el producto no altera cotizaciones anteriores.
type QuoteLine struct {
	ProductID   string          `json:"id"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Unit        string          `json:"unidad"`
	Code        string          `json:"codigo"`
	Quantity    decimal.Decimal `json:"cantidad"`
}

// Amount devuelve cantidad × precio.
func (l QuoteLine) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.Price)
}

// Quote cotización emitida por una empresa a un cliente.
type Quote struct {
	ID             string
	CompanyID      string
	Code           string
	ClientName     string
	ClientEmail    string
	ClientPhone    string
	ClientAddress  string
	Salesperson    string
	Date           string
	Validity       string
	PaymentTerms   string
	DeliveryTime   string
	Status         string // etiqueta libre (borrador, aprobada, ...)
	LegalNotes     string
	Signature      string
	Observations   string
	Conditions     string
	Lines          []QuoteLine
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	TaxRate        decimal.Decimal // porcentaje (19 = 19 %)
	Total          decimal.Decimal
	DeliveryStatus string // DeliveryStatusSent | DeliveryStatusFailed
	Document       []byte // PDF renderizado
	HasDocument    bool   // se llena en listados, donde Document no se carga
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
