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

// EmitterUseCase dados do emitente (um por usuário).
type EmitterUseCase struct {
	repo           repository.EmitterRepository
	municipalities repository.MunicipalityRepository
	logger         zerolog.Logger
}

// NewEmitterUseCase constrói o caso de uso.
func NewEmitterUseCase(repo repository.EmitterRepository, municipalities repository.MunicipalityRepository, logger zerolog.Logger) *EmitterUseCase {
	return &EmitterUseCase{repo: repo, municipalities: municipalities, logger: logger}
}

// Get devolve o emitente do usuário ou (nil, nil) se ainda não foi cadastrado.
func (uc *EmitterUseCase) Get(ctx context.Context, userID string) (*dto.EmitterResponse, error) {
	e, err := uc.repo.GetByUser(ctx, userID)
	if err != nil || e == nil {
		return nil, err
	}
	return toEmitterResponse(e), nil
}

// Save cria ou substitui o emitente. O CNPJ é validado e, sem codigo_municipio,
// o código IBGE é buscado pela UF e nome do município.
func (uc *EmitterUseCase) Save(ctx context.Context, userID string, in dto.EmitterRequest) (*dto.EmitterResponse, error) {
	if !nfe.IsValidCNPJ(in.CNPJ) {
		return nil, fmt.Errorf("%w: CNPJ do emitente inválido", domain.ErrInvalidInput)
	}
	uf := strings.ToUpper(strings.TrimSpace(in.UF))
	if !nfe.IsKnownUF(uf) {
		return nil, fmt.Errorf("%w: UF desconhecida %q", domain.ErrInvalidInput, in.UF)
	}

	existing, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	e := &entity.Emitter{
		ID:                    uuid.New().String(),
		UserID:                userID,
		LegalName:             strings.TrimSpace(in.LegalName),
		TradeName:             strings.TrimSpace(in.TradeName),
		CNPJ:                  nfe.OnlyDigits(in.CNPJ),
		StateRegistration:     strings.TrimSpace(in.StateRegistration),
		MunicipalRegistration: strings.TrimSpace(in.MunicipalRegistration),
		TaxRegime:             orDefault(in.TaxRegime, entity.TaxRegimeSimples),
		ZipCode:               nfe.OnlyDigits(in.ZipCode),
		UF:                    uf,
		City:                  strings.TrimSpace(in.City),
		CityCode:              strings.TrimSpace(in.CityCode),
		District:              in.District,
		Street:                in.Street,
		Number:                in.Number,
		Complement:            in.Complement,
		Phone:                 in.Phone,
		Email:                 in.Email,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if existing != nil {
		e.ID = existing.ID
		e.CreatedAt = existing.CreatedAt
	}

	if e.CityCode == "" && uc.municipalities != nil {
		code, err := uc.municipalities.FindCode(ctx, uf, nfe.NormalizeName(e.City))
		if err != nil {
			return nil, fmt.Errorf("emitente: buscar município: %w", err)
		}
		if code == "" {
			uc.logger.Warn().Str("uf", uf).Str("municipio", e.City).Msg("código IBGE do município não encontrado")
		}
		e.CityCode = code
	}

	if err := uc.repo.Upsert(ctx, e); err != nil {
		return nil, fmt.Errorf("emitente: gravar: %w", err)
	}
	return toEmitterResponse(e), nil
}

func toEmitterResponse(e *entity.Emitter) *dto.EmitterResponse {
	return &dto.EmitterResponse{
		ID:                    e.ID,
		LegalName:             e.LegalName,
		TradeName:             e.TradeName,
		CNPJ:                  e.CNPJ,
		StateRegistration:     e.StateRegistration,
		MunicipalRegistration: e.MunicipalRegistration,
		TaxRegime:             e.TaxRegime,
		ZipCode:               e.ZipCode,
		UF:                    e.UF,
		City:                  e.City,
		CityCode:              e.CityCode,
		District:              e.District,
		Street:                e.Street,
		Number:                e.Number,
		Complement:            e.Complement,
		Phone:                 e.Phone,
		Email:                 e.Email,
		UpdatedAt:             e.UpdatedAt,
	}
}
