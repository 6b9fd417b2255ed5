package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo cotizaciones sobre PostgreSQL. Las líneas se guardan como JSONB y el PDF como BYTEA;
// las lecturas normales solo consultan si el PDF existe.
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteColumns = `id, company_id, code, client_name, client_email, client_phone, client_address,
	salesperson, quote_date, validity, payment_terms, delivery_time, status, legal_notes, signature,
	observations, conditions, lines, subtotal, discount, tax_rate, total, delivery_status,
	(document IS NOT NULL) AS has_document, created_at, updated_at`

// Create persiste la cotización con su PDF.
func (r *QuoteRepo) Create(ctx context.Context, q *entity.Quote) error {
	lines, err := json.Marshal(q.Lines)
	if err != nil {
		return fmt.Errorf("marshal quote lines: %w", err)
	}
	query := `
		INSERT INTO quotes (id, company_id, code, client_name, client_email, client_phone, client_address,
			salesperson, quote_date, validity, payment_terms, delivery_time, status, legal_notes, signature,
			observations, conditions, lines, subtotal, discount, tax_rate, total, delivery_status,
			document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26)`
	_, err = r.q.Exec(ctx, query,
		q.ID, q.CompanyID, q.Code, q.ClientName, q.ClientEmail, q.ClientPhone, q.ClientAddress,
		q.Salesperson, q.Date, q.Validity, q.PaymentTerms, q.DeliveryTime, q.Status, q.LegalNotes, q.Signature,
		q.Observations, q.Conditions, string(lines), q.Subtotal, q.Discount, q.TaxRate, q.Total, q.DeliveryStatus,
		q.Document, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && constraintName(err) == "quotes_company_code_key" {
			return fmt.Errorf("%w: el código de cotización %s ya existe", domain.ErrDuplicate, q.Code)
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// CodeExists informa si la empresa ya usó ese código.
func (r *QuoteRepo) CodeExists(ctx context.Context, companyID, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM quotes WHERE company_id = $1 AND code = $2)`,
		companyID, code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check quote code: %w", err)
	}
	return exists, nil
}

// GetByIDAndCompany obtiene una cotización de la empresa sin los bytes del PDF.
func (r *QuoteRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Quote, error) {
	return r.getOne(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1 AND company_id = $2`, id, companyID)
}

// GetForUpdate igual que GetByIDAndCompany pero bloquea la fila hasta el fin de la tx.
func (r *QuoteRepo) GetForUpdate(ctx context.Context, id, companyID string) (*entity.Quote, error) {
	return r.getOne(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1 AND company_id = $2 FOR UPDATE`, id, companyID)
}

func (r *QuoteRepo) getOne(ctx context.Context, query, id, companyID string) (*entity.Quote, error) {
	q, err := scanQuote(r.q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

// ListByCompany lista cotizaciones de la empresa, más recientes primero.
func (r *QuoteRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Quote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM quotes WHERE company_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// GetDocument devuelve el PDF y el código. (nil, "", nil) si no existe o es ajena.
func (r *QuoteRepo) GetDocument(ctx context.Context, id, companyID string) ([]byte, string, error) {
	var (
		doc  []byte
		code string
	)
	err := r.q.QueryRow(ctx,
		`SELECT document, code FROM quotes WHERE id = $1 AND company_id = $2`,
		id, companyID,
	).Scan(&doc, &code)
	if err != nil {
		if isNoRows(err) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("get quote document: %w", err)
	}
	return doc, code, nil
}

// Update persiste campos, líneas y totales. El PDF no se toca.
func (r *QuoteRepo) Update(ctx context.Context, q *entity.Quote) error {
	lines, err := json.Marshal(q.Lines)
	if err != nil {
		return fmt.Errorf("marshal quote lines: %w", err)
	}
	query := `
		UPDATE quotes SET client_name = $3, client_email = $4, client_phone = $5, client_address = $6,
			salesperson = $7, quote_date = $8, validity = $9, payment_terms = $10, delivery_time = $11,
			status = $12, legal_notes = $13, signature = $14, observations = $15, conditions = $16,
			lines = $17, subtotal = $18, discount = $19, tax_rate = $20, total = $21,
			delivery_status = $22, updated_at = $23
		WHERE id = $1 AND company_id = $2`
	cmd, err := r.q.Exec(ctx, query,
		q.ID, q.CompanyID, q.ClientName, q.ClientEmail, q.ClientPhone, q.ClientAddress,
		q.Salesperson, q.Date, q.Validity, q.PaymentTerms, q.DeliveryTime,
		q.Status, q.LegalNotes, q.Signature, q.Observations, q.Conditions,
		string(lines), q.Subtotal, q.Discount, q.TaxRate, q.Total,
		q.DeliveryStatus, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByIDAndCompany elimina una cotización de la empresa.
func (r *QuoteRepo) DeleteByIDAndCompany(ctx context.Context, id, companyID string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM quotes WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return false, fmt.Errorf("delete quote: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanQuote(row rowScanner) (*entity.Quote, error) {
	var (
		q     entity.Quote
		lines []byte
	)
	if err := row.Scan(
		&q.ID, &q.CompanyID, &q.Code, &q.ClientName, &q.ClientEmail, &q.ClientPhone, &q.ClientAddress,
		&q.Salesperson, &q.Date, &q.Validity, &q.PaymentTerms, &q.DeliveryTime, &q.Status, &q.LegalNotes, &q.Signature,
		&q.Observations, &q.Conditions, &lines, &q.Subtotal, &q.Discount, &q.TaxRate, &q.Total, &q.DeliveryStatus,
		&q.HasDocument, &q.CreatedAt, &q.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &q.Lines); err != nil {
			return nil, fmt.Errorf("unmarshal quote lines: %w", err)
		}
	}
	return &q, nil
}
