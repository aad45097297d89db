package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/nfe-emissor/internal/domain"
	"github.com/jhoicas/nfe-emissor/internal/domain/repository"
)

// DanfeUseCase gera a representação gráfica (DANFE) de uma NF-e.
// Notas ainda sem chave de acesso saem como rascunho, sem código de barras.
type DanfeUseCase struct {
	invoiceRepo repository.InvoiceRepository
	emitterRepo repository.EmitterRepository
	generator   DanfeGenerator
}

// NewDanfeUseCase constrói o caso de uso injetando todas as suas dependências.
func NewDanfeUseCase(
	invoiceRepo repository.InvoiceRepository,
	emitterRepo repository.EmitterRepository,
	generator DanfeGenerator,
) *DanfeUseCase {
	return &DanfeUseCase{
		invoiceRepo: invoiceRepo,
		emitterRepo: emitterRepo,
		generator:   generator,
	}
}

// DownloadDanfe recupera nota, itens e emitente e gera o PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)         se tudo der certo.
//   - domain.ErrNotFound                se a nota não existe para o usuário.
//   - domain.ErrEmitterNotConfigured    se o emitente não foi cadastrado.
func (uc *DanfeUseCase) DownloadDanfe(ctx context.Context, userID, invoiceID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Carregar nota ──────────────────────────────────────────────────────
	inv, err := uc.invoiceRepo.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("danfe: obter nota: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Carregar emitente ──────────────────────────────────────────────────
	emitter, err := uc.emitterRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("danfe: obter emitente: %w", err)
	}
	if emitter == nil {
		return nil, "", domain.ErrEmitterNotConfigured
	}

	// ── 3. Carregar itens ─────────────────────────────────────────────────────
	items, err := uc.invoiceRepo.GetItems(ctx, inv.ID)
	if err != nil {
		return nil, "", fmt.Errorf("danfe: obter itens: %w", err)
	}

	// ── 4. Gerar PDF ──────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateDanfe(ctx, inv, items, emitter)
	if err != nil {
		return nil, "", fmt.Errorf("danfe: geração falhou: %w", err)
	}

	filename = fmt.Sprintf("DANFE-%s.pdf", inv.Number)
	if inv.AccessKey != "" {
		filename = fmt.Sprintf("DANFE-%s.pdf", inv.AccessKey)
	}
	return pdfBytes, filename, nil
}
