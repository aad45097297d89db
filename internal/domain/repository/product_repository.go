package repository

import (
	"context"

	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
)

// ProductRepository define o port de persistência para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, userID, id string) (*entity.Product, error)
	GetByUserAndCode(ctx context.Context, userID, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, userID, id string) error
}
