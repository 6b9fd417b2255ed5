package quoting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// Config parámetros del flujo de cotización.
type Config struct {
	CodePrefix  string
	MailSubject string
	MailBody    string
}

// QuoteUseCase flujo de cotización: precios contra el catálogo, PDF, envío por correo y persistencia.
type QuoteUseCase struct {
	productRepo repository.ProductRepository
	quoteRepo   repository.QuoteRepository
	txRunner    QuoteTxRunner
	renderer    QuoteRenderer
	mailer      MailSender
	cfg         Config
	log         *logger.Logger
	now         func() time.Time
}

// NewQuoteUseCase construye el caso de uso inyectando todas sus dependencias.
func NewQuoteUseCase(
	productRepo repository.ProductRepository,
	quoteRepo repository.QuoteRepository,
	txRunner QuoteTxRunner,
	renderer QuoteRenderer,
	mailer MailSender,
	cfg Config,
	log *logger.Logger,
) *QuoteUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &QuoteUseCase{
		productRepo: productRepo,
		quoteRepo:   quoteRepo,
		txRunner:    txRunner,
		renderer:    renderer,
		mailer:      mailer,
		cfg:         cfg,
		log:         log,
		now:         time.Now,
	}
}

// Create cotiza la lista de productos contra el catálogo de la empresa, genera el PDF,
// lo envía al cliente y persiste la cotización.
//
// Retorna:
//   - domain.ErrInvalidInput         datos del cliente o lista de productos inválidos.
//   - *domain.UnknownProductError    algún id no pertenece al catálogo de la empresa.
//   - domain.ErrDuplicate            el código enviado ya existe en la empresa.
//   - domain.ErrRenderingFailed      falló el PDF; no se persiste nada.
//
// Un fallo de correo no es error: la cotización queda con estado de envío Fallido.
func (uc *QuoteUseCase) Create(ctx context.Context, company *entity.Company, in dto.CreateQuoteRequest) (*dto.CreateQuoteResponse, error) {
	clientName := strings.TrimSpace(in.ClientName)
	clientEmail := strings.TrimSpace(in.ClientEmail)
	if clientName == "" || clientEmail == "" || len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: cliente, correo y productos son obligatorios", domain.ErrInvalidInput)
	}

	// ── 1. Líneas y totales ──────────────────────────────────────────────────
	lines, err := uc.priceItems(ctx, uc.productRepo, company.ID, in.Items)
	if err != nil {
		return nil, err
	}
	totals, err := pricing.Calculate(lines, orZero(in.Discount), orZero(in.TaxRate))
	if err != nil {
		return nil, err
	}

	// ── 2. Código ─────────────────────────────────────────────────────────────
	now := uc.now().UTC()
	code := strings.TrimSpace(in.Code)
	if code == "" {
		code = pricing.GenerateCode(uc.cfg.CodePrefix, now)
	} else {
		exists, err := uc.quoteRepo.CodeExists(ctx, company.ID, code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: el código de cotización %s ya existe", domain.ErrDuplicate, code)
		}
	}

	quote := &entity.Quote{
		ID:            uuid.New().String(),
		CompanyID:     company.ID,
		Code:          code,
		ClientName:    clientName,
		ClientEmail:   clientEmail,
		ClientPhone:   in.ClientPhone,
		ClientAddress: in.ClientAddress,
		Salesperson:   in.Salesperson,
		Date:          in.Date,
		Validity:      in.Validity,
		PaymentTerms:  in.PaymentTerms,
		DeliveryTime:  in.DeliveryTime,
		Status:        in.Status,
		LegalNotes:    in.LegalNotes,
		Signature:     in.Signature,
		Observations:  in.Observations,
		Conditions:    in.Conditions,
		Lines:         lines,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		TaxRate:       totals.TaxRate,
		Total:         totals.Total,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// ── 3. PDF ────────────────────────────────────────────────────────────────
	filename := DocumentFilename(code)
	doc, err := uc.renderer.RenderQuote(ctx, quote, company, filename)
	if err != nil {
		uc.log.Error().Err(err).Str("company_id", company.ID).Str("code", code).Msg("render de cotización fallido")
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderingFailed, err)
	}
	quote.Document = doc.Bytes
	quote.HasDocument = len(doc.Bytes) > 0

	// ── 4. Correo ─────────────────────────────────────────────────────────────
	quote.DeliveryStatus = entity.DeliveryStatusSent
	if err := uc.mailer.Send(ctx, Message{
		To:         clientEmail,
		Subject:    uc.cfg.MailSubject,
		Body:       uc.cfg.MailBody,
		Attachment: &Attachment{Filename: filename, Content: doc.Bytes},
	}); err != nil {
		uc.log.Warn().Err(err).Str("company_id", company.ID).Str("code", code).Msg("envío de cotización fallido")
		quote.DeliveryStatus = entity.DeliveryStatusFailed
	}

	// ── 5. Persistencia ───────────────────────────────────────────────────────
	if err := uc.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", company.ID).Str("quote_id", quote.ID).Str("code", code).
		Str("estado_envio", quote.DeliveryStatus).Msg("cotización creada")

	return &dto.CreateQuoteResponse{
		Message:        "Cotización procesada",
		ID:             quote.ID,
		Code:           quote.Code,
		Total:          quote.Total,
		DeliveryStatus: quote.DeliveryStatus,
	}, nil
}

// Update aplica los campos presentes. Si viene la lista de productos se vuelve a cotizar contra
// el catálogo actual; si solo cambian descuento o IVA se recalcula sobre las líneas guardadas.
// El PDF almacenado no se regenera.
func (uc *QuoteUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateQuoteRequest) (*dto.QuoteResponse, error) {
	var updated *entity.Quote
	err := uc.txRunner.RunQuote(ctx, func(productRepo repository.ProductRepository, quoteRepo repository.QuoteRepository) error {
		q, err := quoteRepo.GetForUpdate(ctx, id, companyID)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		if err := patchScalars(q, in); err != nil {
			return err
		}

		reprice := false
		if in.Items != nil {
			lines, err := uc.priceItems(ctx, productRepo, companyID, *in.Items)
			if err != nil {
				return err
			}
			q.Lines = lines
			reprice = true
		}
		if in.Discount != nil {
			q.Discount = *in.Discount
			reprice = true
		}
		if in.TaxRate != nil {
			q.TaxRate = *in.TaxRate
			reprice = true
		}
		if reprice {
			totals, err := pricing.Calculate(q.Lines, q.Discount, q.TaxRate)
			if err != nil {
				return err
			}
			q.Subtotal, q.Discount, q.TaxRate, q.Total = totals.Subtotal, totals.Discount, totals.TaxRate, totals.Total
		}

		q.UpdatedAt = uc.now().UTC()
		if err := quoteRepo.Update(ctx, q); err != nil {
			return err
		}
		updated = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(updated), nil
}

// Get obtiene una cotización de la empresa (sin bytes del PDF).
func (uc *QuoteUseCase) Get(ctx context.Context, companyID, id string) (*dto.QuoteResponse, error) {
	q, err := uc.quoteRepo.GetByIDAndCompany(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return toQuoteResponse(q), nil
}

// List lista las cotizaciones de la empresa, más recientes primero.
func (uc *QuoteUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.QuoteListResponse, error) {
	page.DefaultPage()
	list, err := uc.quoteRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		items = append(items, *toQuoteResponse(q))
	}
	return &dto.QuoteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una cotización de la empresa.
func (uc *QuoteUseCase) Delete(ctx context.Context, companyID, id string) error {
	deleted, err := uc.quoteRepo.DeleteByIDAndCompany(ctx, id, companyID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// priceItems resuelve la lista solicitada contra el catálogo de la empresa (todo o nada).
func (uc *QuoteUseCase) priceItems(ctx context.Context, productRepo repository.ProductRepository, companyID string, in dto.QuoteItemsInput) ([]entity.QuoteLine, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: debe enviar al menos un producto válido", domain.ErrInvalidInput)
	}
	items := make([]pricing.Item, 0, len(in))
	ids := make([]string, 0, len(in))
	for _, it := range in {
		qty := decimal.NewFromInt(1)
		if it.Quantity != nil {
			qty = *it.Quantity
		}
		items = append(items, pricing.Item{ProductID: it.ProductID, Quantity: qty})
		if it.ProductID != "" {
			ids = append(ids, it.ProductID)
		}
	}
	catalog, err := productRepo.GetByIDsAndCompany(ctx, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("cotización: obtener productos: %w", err)
	}
	return pricing.BuildLines(items, catalog)
}

func patchScalars(q *entity.Quote, in dto.UpdateQuoteRequest) error {
	if in.ClientName != nil {
		name := strings.TrimSpace(*in.ClientName)
		if name == "" {
			return fmt.Errorf("%w: el cliente no puede quedar vacío", domain.ErrInvalidInput)
		}
		q.ClientName = name
	}
	if in.ClientEmail != nil {
		email := strings.TrimSpace(*in.ClientEmail)
		if email == "" {
			return fmt.Errorf("%w: el correo no puede quedar vacío", domain.ErrInvalidInput)
		}
		q.ClientEmail = email
	}
	if in.DeliveryStatus != nil {
		switch *in.DeliveryStatus {
		case entity.DeliveryStatusSent, entity.DeliveryStatusFailed:
			q.DeliveryStatus = *in.DeliveryStatus
		default:
			return fmt.Errorf("%w: estado de envío desconocido %q", domain.ErrInvalidInput, *in.DeliveryStatus)
		}
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&q.ClientPhone, in.ClientPhone)
	set(&q.ClientAddress, in.ClientAddress)
	set(&q.Salesperson, in.Salesperson)
	set(&q.Date, in.Date)
	set(&q.Validity, in.Validity)
	set(&q.PaymentTerms, in.PaymentTerms)
	set(&q.DeliveryTime, in.DeliveryTime)
	set(&q.Status, in.Status)
	set(&q.LegalNotes, in.LegalNotes)
	set(&q.Signature, in.Signature)
	set(&q.Observations, in.Observations)
	set(&q.Conditions, in.Conditions)
	return nil
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func toQuoteResponse(q *entity.Quote) *dto.QuoteResponse {
	if q == nil {
		return nil
	}
	lines := make([]dto.QuoteLineResponse, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, dto.QuoteLineResponse{
			ProductID:   l.ProductID,
			Name:        l.Name,
			Description: l.Description,
			Price:       l.Price,
			Unit:        l.Unit,
			Code:        l.Code,
			Quantity:    l.Quantity,
		})
	}
	return &dto.QuoteResponse{
		ID:             q.ID,
		CompanyID:      q.CompanyID,
		Code:           q.Code,
		ClientName:     q.ClientName,
		ClientEmail:    q.ClientEmail,
		ClientPhone:    q.ClientPhone,
		ClientAddress:  q.ClientAddress,
		Salesperson:    q.Salesperson,
		Date:           q.Date,
		Validity:       q.Validity,
		PaymentTerms:   q.PaymentTerms,
		DeliveryTime:   q.DeliveryTime,
		Status:         q.Status,
		LegalNotes:     q.LegalNotes,
		Signature:      q.Signature,
		Observations:   q.Observations,
		Conditions:     q.Conditions,
		Items:          lines,
		Subtotal:       q.Subtotal,
		Discount:       q.Discount,
		TaxRate:        q.TaxRate,
		Total:          q.Total,
		DeliveryStatus: q.DeliveryStatus,
		HasDocument:    q.HasDocument || len(q.Document) > 0,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}
