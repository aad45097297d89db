package repository

import (
	"context"

	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
)

// EmitterRepository define o port de persistência dos dados do emitente.
type EmitterRepository interface {
	GetByUser(ctx context.Context, userID string) (*entity.Emitter, error)
	// Upsert cria ou substitui o emitente do usuário (um por conta).
	Upsert(ctx context.Context, emitter *entity.Emitter) error
}
