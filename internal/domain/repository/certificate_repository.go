package repository

import (
	"context"

	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
)

// CertificateRepository define o port de persistência de certificados A1.
type CertificateRepository interface {
	// GetActive devolve o certificado ativo do usuário ou (nil, nil).
	GetActive(ctx context.Context, userID string) (*entity.Certificate, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Certificate, error)
	// ReplaceActive desativa os certificados do usuário e grava cert como ativo na mesma transação.
	ReplaceActive(ctx context.Context, cert *entity.Certificate) error
	Delete(ctx context.Context, userID, id string) error
}
