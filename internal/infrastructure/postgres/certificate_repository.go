package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/nfe-emissor/internal/domain"
	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
	"github.com/jhoicas/nfe-emissor/internal/domain/repository"
)

var _ repository.CertificateRepository = (*CertificateRepo)(nil)

// CertificateRepo persiste certificados A1. O índice único parcial
// certificates_one_active garante no máximo um ativo por usuário.
type CertificateRepo struct {
	q  Querier
	tx *TxRunner
}

// NewCertificateRepository constrói o adaptador.
func NewCertificateRepository(q Querier) *CertificateRepo {
	return &CertificateRepo{q: q, tx: NewTxRunner(q)}
}

const certificateColumns = `id, user_id, name, pfx_base64, password, expires_at, active, created_at`

// GetActive devolve o certificado ativo ou (nil, nil).
func (r *CertificateRepo) GetActive(ctx context.Context, userID string) (*entity.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE user_id = $1 AND active`
	c, err := scanCertificate(r.q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active certificate: %w", err)
	}
	return c, nil
}

// ListByUser lista os certificados do usuário, o mais recente primeiro.
func (r *CertificateRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	defer rows.Close()
	var list []*entity.Certificate
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan certificate: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ReplaceActive desativa os certificados atuais e grava cert como ativo, na mesma transação.
func (r *CertificateRepo) ReplaceActive(ctx context.Context, cert *entity.Certificate) error {
	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`UPDATE certificates SET active = FALSE WHERE user_id = $1 AND active`, cert.UserID,
		); err != nil {
			return fmt.Errorf("deactivate certificates: %w", err)
		}
		cert.Active = true
		_, err := tx.Exec(ctx, `
			INSERT INTO certificates (`+certificateColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			cert.ID, cert.UserID, cert.Name, cert.PFXBase64, cert.Password, cert.ExpiresAt, cert.Active, cert.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: outro certificado ativo gravado em paralelo", domain.ErrConflict)
			}
			return fmt.Errorf("insert certificate: %w", err)
		}
		return nil
	})
}

// Delete remove um certificado do usuário.
func (r *CertificateRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM certificates WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete certificate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCertificate(row rowScanner) (*entity.Certificate, error) {
	var c entity.Certificate
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.PFXBase64, &c.Password, &c.ExpiresAt, &c.Active, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
