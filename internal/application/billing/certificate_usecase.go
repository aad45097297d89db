package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/nfe-emissor/internal/application/dto"
	"github.com/jhoicas/nfe-emissor/internal/domain"
	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
	"github.com/jhoicas/nfe-emissor/internal/domain/repository"
	"github.com/jhoicas/nfe-emissor/pkg/nfe"
)

// CertificateUseCase cadastro de certificados A1. O .pfx é validado (senha, chave e
// validade) no upload; o novo certificado passa a ser o único ativo do usuário.
type CertificateUseCase struct {
	repo      repository.CertificateRepository
	extractor nfe.CertificateExtractor
	logger    zerolog.Logger
	now       func() time.Time
}

// NewCertificateUseCase constrói o caso de uso.
func NewCertificateUseCase(repo repository.CertificateRepository, extractor nfe.CertificateExtractor, logger zerolog.Logger) *CertificateUseCase {
	return &CertificateUseCase{repo: repo, extractor: extractor, logger: logger, now: time.Now}
}

// Upload valida o PKCS#12 e o grava como certificado ativo.
// Devolve domain.ErrInvalidCertificate quando o arquivo, a senha ou a validade não servem.
func (uc *CertificateUseCase) Upload(ctx context.Context, userID string, in dto.UploadCertificateRequest) (*dto.CertificateResponse, error) {
	data, err := uc.extractor.Extract(in.CertificateBase64, in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCertificate, err)
	}
	if data.ExpiredAt(uc.now()) {
		return nil, fmt.Errorf("%w: certificado expirado em %s", domain.ErrInvalidCertificate, data.NotAfter.Format("02/01/2006"))
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = data.Subject
	}
	expires := data.NotAfter
	cert := &entity.Certificate{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		PFXBase64: in.CertificateBase64,
		Password:  in.Password,
		ExpiresAt: &expires,
		Active:    true,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.ReplaceActive(ctx, cert); err != nil {
		return nil, fmt.Errorf("certificado: gravar: %w", err)
	}
	uc.logger.Info().Str("user_id", userID).Str("subject", data.Subject).Time("expires_at", expires).Msg("certificado A1 ativado")
	return toCertificateResponse(cert), nil
}

// List lista os certificados do usuário com conteúdo e senha mascarados.
func (uc *CertificateUseCase) List(ctx context.Context, userID string) ([]dto.CertificateResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CertificateResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCertificateResponse(c))
	}
	return out, nil
}

// Delete remove um certificado do usuário.
func (uc *CertificateUseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.repo.Delete(ctx, userID, id)
}

func toCertificateResponse(c *entity.Certificate) *dto.CertificateResponse {
	return &dto.CertificateResponse{
		ID:                c.ID,
		Name:              c.Name,
		CertificateBase64: dto.MaskedSecret,
		Password:          dto.MaskedSecret,
		ExpiresAt:         c.ExpiresAt,
		Active:            c.Active,
		CreatedAt:         c.CreatedAt,
	}
}
