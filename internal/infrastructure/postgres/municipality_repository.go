package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
	"github.com/jhoicas/nfe-emissor/internal/domain/repository"
	"github.com/jhoicas/nfe-emissor/pkg/nfe"
)

var _ repository.MunicipalityRepository = (*MunicipalityRepo)(nil)

// MunicipalityRepo consulta a tabela IBGE. name_search guarda o nome sem acentos em caixa alta.
type MunicipalityRepo struct {
	q Querier
}

// NewMunicipalityRepository constrói o adaptador.
func NewMunicipalityRepository(q Querier) *MunicipalityRepo {
	return &MunicipalityRepo{q: q}
}

// FindCode devolve o código IBGE ou "" quando não há correspondência.
func (r *MunicipalityRepo) FindCode(ctx context.Context, uf, name string) (string, error) {
	var code string
	err := r.q.QueryRow(ctx,
		`SELECT code FROM municipalities WHERE uf = $1 AND name_search = $2 LIMIT 1`,
		uf, nfe.NormalizeName(name),
	).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("find municipality: %w", err)
	}
	return code, nil
}

// ListByUF lista os municípios de uma UF em ordem alfabética.
func (r *MunicipalityRepo) ListByUF(ctx context.Context, uf string) ([]*entity.Municipality, error) {
	rows, err := r.q.Query(ctx, `SELECT code, name, uf FROM municipalities WHERE uf = $1 ORDER BY name_search`, uf)
	if err != nil {
		return nil, fmt.Errorf("list municipalities: %w", err)
	}
	defer rows.Close()
	var list []*entity.Municipality
	for rows.Next() {
		var m entity.Municipality
		if err := rows.Scan(&m.Code, &m.Name, &m.UF); err != nil {
			return nil, fmt.Errorf("scan municipality: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// BulkUpsert grava os municípios num único batch e devolve quantos foram processados.
func (r *MunicipalityRepo) BulkUpsert(ctx context.Context, items []*entity.Municipality) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, m := range items {
		batch.Queue(`
			INSERT INTO municipalities (code, name, name_search, uf)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (code) DO UPDATE
			SET name = EXCLUDED.name, name_search = EXCLUDED.name_search, uf = EXCLUDED.uf`,
			m.Code, m.Name, nfe.NormalizeName(m.Name), m.UF)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for i := range items {
		if _, err := br.Exec(); err != nil {
			return i, fmt.Errorf("upsert municipality %s: %w", items[i].Code, err)
		}
	}
	return len(items), nil
}
