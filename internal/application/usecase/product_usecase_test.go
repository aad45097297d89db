package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nfe-emissor/internal/application/dto"
	"github.com/jhoicas/nfe-emissor/internal/application/usecase"
	"github.com/jhoicas/nfe-emissor/internal/domain"
	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
)

type memProductRepo struct{ items map[string]*entity.Product }

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{items: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, userID, id string) (*entity.Product, error) {
	p, ok := r.items[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByUserAndCode(_ context.Context, userID, code string) (*entity.Product, error) {
	for _, p := range r.items {
		if p.UserID == userID && p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memProductRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.items {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Delete(_ context.Context, _ string, id string) error {
	delete(r.items, id)
	return nil
}

func createRequest(code string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Code:        code,
		Description: "Caneta esferográfica azul",
		NCM:         "96081000",
		UnitPrice:   decimal.RequireFromString("2.50"),
	}
}

func TestProductUseCase_CreateAppliesDefaults(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo())

	out, err := uc.Create(context.Background(), "user-1", createRequest("CAN-01"))
	require.NoError(t, err)
	assert.Equal(t, "5102", out.CFOP)
	assert.Equal(t, "UN", out.Unit)
	assert.Equal(t, "SEM GTIN", out.EAN)
	assert.Equal(t, "0", out.Origin)
	assert.Equal(t, "102", out.CSOSN)
	assert.Equal(t, "49", out.CSTPIS)
	assert.Equal(t, "49", out.CSTCOFINS)
	assert.True(t, out.Active)
}

func TestProductUseCase_DuplicateCodePerUser(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo())
	_, err := uc.Create(context.Background(), "user-1", createRequest("CAN-01"))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), "user-1", createRequest("CAN-01"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(context.Background(), "user-2", createRequest("CAN-01"))
	assert.NoError(t, err, "outro usuário pode usar o mesmo código")
}

func TestProductUseCase_UpdateAndDelete(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo())
	ctx := context.Background()
	created, err := uc.Create(ctx, "user-1", createRequest("CAN-01"))
	require.NoError(t, err)

	price := decimal.RequireFromString("3.10")
	inactive := false
	updated, err := uc.Update(ctx, "user-1", created.ID, dto.UpdateProductRequest{UnitPrice: &price, Active: &inactive})
	require.NoError(t, err)
	assert.True(t, updated.UnitPrice.Equal(price))
	assert.False(t, updated.Active)
	assert.Equal(t, "CAN-01", updated.Code)

	negative := decimal.NewFromInt(-1)
	_, err = uc.Update(ctx, "user-1", created.ID, dto.UpdateProductRequest{UnitPrice: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetByID(ctx, "user-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, "user-1", created.ID))
	_, err = uc.GetByID(ctx, "user-1", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_ListDefaultPage(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo())
	ctx := context.Background()
	for _, code := range []string{"A", "B"} {
		_, err := uc.Create(ctx, "user-1", createRequest(code))
		require.NoError(t, err)
	}
	out, err := uc.List(ctx, "user-1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 20, out.Page.Limit)
}
