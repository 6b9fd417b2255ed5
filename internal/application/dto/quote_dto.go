package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidItemList el campo productos no es una lista JSON (ni directa ni como string).
var ErrInvalidItemList = errors.New("el campo 'productos' no es un JSON válido")

// QuoteItemInput producto solicitado. Cualquier otro campo enviado por el cliente
// (precio, nombre...) se ignora: la línea se arma con el catálogo.
type QuoteItemInput struct {
	ProductID string           `json:"id" validate:"required"`
	Quantity  *decimal.Decimal `json:"cantidad"`
}

// QuoteItemsInput lista de productos. Acepta un arreglo JSON o un string que contenga
// un arreglo JSON (clientes multipart/form heredados envían "productos": "[...]").
type QuoteItemsInput []QuoteItemInput

// UnmarshalJSON normaliza ambos formatos a la lista tipada.
func (in *QuoteItemsInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return ErrInvalidItemList
		}
		data = []byte(raw)
	}
	var items []QuoteItemInput
	if err := json.Unmarshal(data, &items); err != nil {
		return ErrInvalidItemList
	}
	*in = items
	return nil
}

// CreateQuoteRequest entrada para crear una cotización.
type CreateQuoteRequest struct {
	ClientName    string           `json:"cliente" validate:"required"`
	ClientEmail   string           `json:"correo" validate:"required,email"`
	ClientPhone   string           `json:"telefono"`
	ClientAddress string           `json:"direccion"`
	Salesperson   string           `json:"vendedor"`
	Date          string           `json:"fecha"`
	Validity      string           `json:"validez"`
	PaymentTerms  string           `json:"forma_pago"`
	DeliveryTime  string           `json:"tiempo_entrega"`
	Status        string           `json:"estado_cotizacion"`
	LegalNotes    string           `json:"notas_legales"`
	Signature     string           `json:"firma"`
	Code          string           `json:"codigo_cotizacion" validate:"max=60"`
	Observations  string           `json:"observaciones"`
	Conditions    string           `json:"condiciones"`
	Items         QuoteItemsInput  `json:"productos" validate:"required,min=1,dive"`
	Discount      *decimal.Decimal `json:"descuento"`
	TaxRate       *decimal.Decimal `json:"iva"`
}

// UpdateQuoteRequest actualización parcial. Si viene Items se vuelve a cotizar contra el catálogo.
type UpdateQuoteRequest struct {
	ClientName     *string          `json:"cliente" validate:"omitempty,min=1"`
	ClientEmail    *string          `json:"correo" validate:"omitempty,email"`
	ClientPhone    *string          `json:"telefono"`
	ClientAddress  *string          `json:"direccion"`
	Salesperson    *string          `json:"vendedor"`
	Date           *string          `json:"fecha"`
	Validity       *string          `json:"validez"`
	PaymentTerms   *string          `json:"forma_pago"`
	DeliveryTime   *string          `json:"tiempo_entrega"`
	Status         *string          `json:"estado_cotizacion"`
	LegalNotes     *string          `json:"notas_legales"`
	Signature      *string          `json:"firma"`
	Observations   *string          `json:"observaciones"`
	Conditions     *string          `json:"condiciones"`
	DeliveryStatus *string          `json:"estado_envio" validate:"omitempty,oneof=Enviado Fallido"`
	Items          *QuoteItemsInput `json:"productos" validate:"omitempty,min=1,dive"`
	Discount       *decimal.Decimal `json:"descuento"`
	TaxRate        *decimal.Decimal `json:"iva"`
}

// QuoteLineResponse línea congelada de la cotización.
type QuoteLineResponse struct {
	ProductID   string          `json:"id"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Unit        string          `json:"unidad"`
	Code        string          `json:"codigo"`
	Quantity    decimal.Decimal `json:"cantidad"`
}

// QuoteResponse salida de una cotización. Nunca incluye los bytes del PDF.
type QuoteResponse struct {
	ID             string              `json:"id"`
	CompanyID      string              `json:"empresa_id"`
	Code           string              `json:"codigo_cotizacion"`
	ClientName     string              `json:"cliente"`
	ClientEmail    string              `json:"correo"`
	ClientPhone    string              `json:"telefono"`
	ClientAddress  string              `json:"direccion"`
	Salesperson    string              `json:"vendedor"`
	Date           string              `json:"fecha"`
	Validity       string              `json:"validez"`
	PaymentTerms   string              `json:"forma_pago"`
	DeliveryTime   string              `json:"tiempo_entrega"`
	Status         string              `json:"estado_cotizacion"`
	LegalNotes     string              `json:"notas_legales"`
	Signature      string              `json:"firma"`
	Observations   string              `json:"observaciones"`
	Conditions     string              `json:"condiciones"`
	Items          []QuoteLineResponse `json:"productos"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	Discount       decimal.Decimal     `json:"descuento"`
	TaxRate        decimal.Decimal     `json:"iva"`
	Total          decimal.Decimal     `json:"total"`
	DeliveryStatus string              `json:"estado_envio"`
	HasDocument    bool                `json:"archivo_pdf"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// QuoteListResponse lista paginada de cotizaciones.
type QuoteListResponse struct {
	Items []QuoteResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CreateQuoteResponse resultado del flujo de creación.
type CreateQuoteResponse struct {
	Message        string          `json:"mensaje"`
	ID             string          `json:"id"`
	Code           string          `json:"codigo_cotizacion"`
	Total          decimal.Decimal `json:"total"`
	DeliveryStatus string          `json:"estado"`
}
