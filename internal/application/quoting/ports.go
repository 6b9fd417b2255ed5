package quoting

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

// QuoteTxRunner ejecuta una función dentro de una transacción con los repos de catálogo y cotizaciones.
type QuoteTxRunner interface {
	RunQuote(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		quoteRepo repository.QuoteRepository,
	) error) error
}

// RenderedDocument resultado del renderizado.
type RenderedDocument struct {
	Bytes    []byte
	Filename string
	Size     int
}

// QuoteRenderer genera la representación PDF de una cotización.
// Un error aquí aborta la creación: no se persiste nada.
type QuoteRenderer interface {
	RenderQuote(ctx context.Context, quote *entity.Quote, company *entity.Company, filename string) (*RenderedDocument, error)
}

// Attachment archivo adjunto a un correo.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message correo saliente.
type Message struct {
	To         string
	Subject    string
	Body       string
	Attachment *Attachment
}

// MailSender entrega correos. Un error solo cambia el estado de envío de la cotización.
type MailSender interface {
	Send(ctx context.Context, msg Message) error
}
