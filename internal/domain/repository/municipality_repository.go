package repository

import (
	"context"

	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
)

// MunicipalityRepository consulta a tabela IBGE de municípios.
type MunicipalityRepository interface {
	// FindCode devolve o código IBGE do município (nome sem acentos, caixa alta) ou "" se não existir.
	FindCode(ctx context.Context, uf, name string) (string, error)
	ListByUF(ctx context.Context, uf string) ([]*entity.Municipality, error)
	BulkUpsert(ctx context.Context, items []*entity.Municipality) (int, error)
}
