package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
	"github.com/jhoicas/nfe-emissor/internal/domain/repository"
)

var _ repository.EmitterRepository = (*EmitterRepo)(nil)

// EmitterRepo persiste os dados do emitente (um por usuário).
type EmitterRepo struct {
	q Querier
}

// NewEmitterRepository constrói o adaptador.
func NewEmitterRepository(q Querier) *EmitterRepo {
	return &EmitterRepo{q: q}
}

// GetByUser devolve o emitente do usuário ou (nil, nil).
func (r *EmitterRepo) GetByUser(ctx context.Context, userID string) (*entity.Emitter, error) {
	query := `
		SELECT id, user_id, legal_name, trade_name, cnpj, state_registration, municipal_registration,
		       tax_regime, zip_code, uf, city, city_code, district, street, number, complement,
		       phone, email, created_at, updated_at
		FROM emitters WHERE user_id = $1`
	var e entity.Emitter
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&e.ID, &e.UserID, &e.LegalName, &e.TradeName, &e.CNPJ, &e.StateRegistration, &e.MunicipalRegistration,
		&e.TaxRegime, &e.ZipCode, &e.UF, &e.City, &e.CityCode, &e.District, &e.Street, &e.Number, &e.Complement,
		&e.Phone, &e.Email, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get emitter: %w", err)
	}
	return &e, nil
}

// Upsert cria ou substitui o emitente. O ID e created_at originais são preservados no conflito.
func (r *EmitterRepo) Upsert(ctx context.Context, e *entity.Emitter) error {
	query := `
		INSERT INTO emitters (id, user_id, legal_name, trade_name, cnpj, state_registration, municipal_registration,
		                      tax_regime, zip_code, uf, city, city_code, district, street, number, complement,
		                      phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (user_id) DO UPDATE SET
		    legal_name = EXCLUDED.legal_name,
		    trade_name = EXCLUDED.trade_name,
		    cnpj = EXCLUDED.cnpj,
		    state_registration = EXCLUDED.state_registration,
		    municipal_registration = EXCLUDED.municipal_registration,
		    tax_regime = EXCLUDED.tax_regime,
		    zip_code = EXCLUDED.zip_code,
		    uf = EXCLUDED.uf,
		    city = EXCLUDED.city,
		    city_code = EXCLUDED.city_code,
		    district = EXCLUDED.district,
		    street = EXCLUDED.street,
		    number = EXCLUDED.number,
		    complement = EXCLUDED.complement,
		    phone = EXCLUDED.phone,
		    email = EXCLUDED.email,
		    updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.UserID, e.LegalName, e.TradeName, e.CNPJ, e.StateRegistration, e.MunicipalRegistration,
		e.TaxRegime, e.ZipCode, e.UF, e.City, e.CityCode, e.District, e.Street, e.Number, e.Complement,
		e.Phone, e.Email, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert emitter: %w", err)
	}
	return nil
}
