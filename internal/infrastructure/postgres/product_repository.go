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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementação do port ProductRepository sobre PostgreSQL (pool ou tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador de persistência de produtos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, user_id, code, description, ncm, cfop, unit, unit_price, ean, cest,
	origin, csosn, cst_pis, cst_cofins, active, created_at, updated_at`

// Create persiste um novo produto. Código repetido para o mesmo usuário devolve ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.UserID, p.Code, p.Description, p.NCM, p.CFOP, p.Unit, p.UnitPrice, p.EAN, p.CEST,
		p.Origin, p.CSOSN, p.CSTPIS, p.CSTCOFINS, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtém um produto do usuário ou (nil, nil).
func (r *ProductRepo) GetByID(ctx context.Context, userID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND user_id = $2`
	return r.findOne(ctx, query, id, userID)
}

// GetByUserAndCode obtém um produto pelo código ou (nil, nil).
func (r *ProductRepo) GetByUserAndCode(ctx context.Context, userID, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND code = $2`
	return r.findOne(ctx, query, userID, code)
}

// Update atualiza os campos editáveis do produto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET description = $3, ncm = $4, cfop = $5, unit = $6, unit_price = $7, ean = $8, cest = $9,
		    origin = $10, csosn = $11, cst_pis = $12, cst_cofins = $13, active = $14, updated_at = $15
		WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.UserID, p.Description, p.NCM, p.CFOP, p.Unit, p.UnitPrice, p.EAN, p.CEST,
		p.Origin, p.CSOSN, p.CSTPIS, p.CSTCOFINS, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser lista os produtos do usuário ordenados por código.
func (r *ProductRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE user_id = $1 ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete remove o produto. Itens de nota mantêm a cópia dos dados (product_id vira NULL).
func (r *ProductRepo) Delete(ctx context.Context, userID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.UserID, &p.Code, &p.Description, &p.NCM, &p.CFOP, &p.Unit, &p.UnitPrice, &p.EAN, &p.CEST,
		&p.Origin, &p.CSOSN, &p.CSTPIS, &p.CSTCOFINS, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
