package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/nfe-emissor/internal/application/dto"
	"github.com/jhoicas/nfe-emissor/internal/domain"
	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
	"github.com/jhoicas/nfe-emissor/internal/domain/repository"
	"github.com/jhoicas/nfe-emissor/pkg/nfe"
)

// ProductUseCase casos de uso CRUD do catálogo de produtos do usuário.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create cria um produto. O código é único por usuário.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.TrimSpace(in.Code)
	existing, err := uc.repo.GetByUserAndCode(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		UserID:      userID,
		Code:        code,
		Description: strings.TrimSpace(in.Description),
		NCM:         in.NCM,
		CFOP:        orDefault(in.CFOP, "5102"),
		Unit:        orDefault(in.Unit, "UN"),
		UnitPrice:   in.UnitPrice,
		EAN:         orDefault(in.EAN, nfe.NoGTIN),
		CEST:        in.CEST,
		Origin:      orDefault(in.Origin, nfe.DefaultOrigin),
		CSOSN:       orDefault(in.CSOSN, nfe.DefaultCSOSN),
		CSTPIS:      orDefault(in.CSTPIS, nfe.DefaultCSTPis),
		CSTCOFINS:   orDefault(in.CSTCOFINS, nfe.DefaultCSTCof),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtém um produto do usuário. Devolve domain.ErrNotFound se não existir.
func (uc *ProductUseCase) GetByID(ctx context.Context, userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update aplica os campos não nulos do request. O código não muda.
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.NCM != nil {
		product.NCM = *in.NCM
	}
	if in.CFOP != nil {
		product.CFOP = *in.CFOP
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.EAN != nil {
		product.EAN = orDefault(*in.EAN, nfe.NoGTIN)
	}
	if in.CEST != nil {
		product.CEST = *in.CEST
	}
	if in.Origin != nil {
		product.Origin = *in.Origin
	}
	if in.CSOSN != nil {
		product.CSOSN = *in.CSOSN
	}
	if in.CSTPIS != nil {
		product.CSTPIS = *in.CSTPIS
	}
	if in.CSTCOFINS != nil {
		product.CSTCOFINS = *in.CSTCOFINS
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista os produtos do usuário com paginação.
func (uc *ProductUseCase) List(ctx context.Context, userID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete remove um produto. Itens de notas já gravadas guardam cópia dos dados.
func (uc *ProductUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.load(ctx, userID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, userID, id)
}

func (uc *ProductUseCase) load(ctx context.Context, userID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Description: p.Description,
		NCM:         p.NCM,
		CFOP:        p.CFOP,
		Unit:        p.Unit,
		UnitPrice:   p.UnitPrice,
		EAN:         p.EAN,
		CEST:        p.CEST,
		Origin:      p.Origin,
		CSOSN:       p.CSOSN,
		CSTPIS:      p.CSTPIS,
		CSTCOFINS:   p.CSTCOFINS,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
