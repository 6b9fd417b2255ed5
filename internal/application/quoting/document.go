package quoting

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cotizador-api/internal/domain"
)

// DocumentFilename nombre del PDF de una cotización.
func DocumentFilename(code string) string {
	return fmt.Sprintf("cotizacion_%s.pdf", code)
}

// DownloadDocument devuelve el PDF almacenado al crear la cotización.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la cotización no existe, es de otra empresa o no tiene PDF.
func (uc *QuoteUseCase) DownloadDocument(ctx context.Context, companyID, id string) ([]byte, string, error) {
	doc, code, err := uc.quoteRepo.GetDocument(ctx, id, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cotización: %w", err)
	}
	if len(doc) == 0 {
		return nil, "", domain.ErrNotFound
	}
	return doc, DocumentFilename(code), nil
}
