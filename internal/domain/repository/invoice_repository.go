package repository

import (
	"context"
	"time"

	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
)

// InvoiceRepository define o port de persistência para Invoice e seus itens.
// Todas as consultas são particionadas por usuário.
type InvoiceRepository interface {
	// Create grava cabeçalho e itens numa transação, atribuindo o próximo número sequencial do usuário.
	Create(ctx context.Context, invoice *entity.Invoice, items []*entity.InvoiceItem) error
	GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error)
	GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Invoice, error)
	// Replace substitui cabeçalho e itens apenas se a nota estiver em estado editável.
	// Devolve domain.ErrInvoiceNotEditable quando a guarda de estado falha.
	Replace(ctx context.Context, invoice *entity.Invoice, items []*entity.InvoiceItem) error
	// StartEmission leva a nota a processing com compare-and-set: só aplica upd se a
	// nota ainda estiver como foi lida (mesmo updated_at) e em estado editável, ou em
	// processing parada há mais de staleAfter. Caso contrário devolve
	// domain.ErrEmissionConflict sem alterar nada.
	StartEmission(ctx context.Context, inv *entity.Invoice, staleAfter time.Duration, upd entity.EmissionUpdate) error
	// UpdateEmission aplica uma atualização parcial e atômica dos artefatos de emissão.
	UpdateEmission(ctx context.Context, id string, upd entity.EmissionUpdate) error
	Delete(ctx context.Context, userID, id string) error
}
