package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para criar um produto.
type CreateProductRequest struct {
	Code        string          `json:"codigo" validate:"required,min=1,max=60"`
	Description string          `json:"descricao" validate:"required,min=1,max=120"`
	NCM         string          `json:"ncm" validate:"required,numeric,len=8"`
	CFOP        string          `json:"cfop" validate:"omitempty,numeric,len=4"`
	Unit        string          `json:"unidade" validate:"omitempty,max=6"`
	UnitPrice   decimal.Decimal `json:"valor_unitario"`
	EAN         string          `json:"ean,omitempty"`
	CEST        string          `json:"cest,omitempty" validate:"omitempty,numeric,len=7"`
	Origin      string          `json:"origem" validate:"omitempty,numeric,len=1"`
	CSOSN       string          `json:"csosn,omitempty"`
	CSTPIS      string          `json:"cst_pis,omitempty"`
	CSTCOFINS   string          `json:"cst_cofins,omitempty"`
}

// UpdateProductRequest entrada para atualizar um produto (campos nil não mudam).
type UpdateProductRequest struct {
	Description *string          `json:"descricao" validate:"omitempty,min=1,max=120"`
	NCM         *string          `json:"ncm" validate:"omitempty,numeric,len=8"`
	CFOP        *string          `json:"cfop" validate:"omitempty,numeric,len=4"`
	Unit        *string          `json:"unidade" validate:"omitempty,max=6"`
	UnitPrice   *decimal.Decimal `json:"valor_unitario"`
	EAN         *string          `json:"ean"`
	CEST        *string          `json:"cest"`
	Origin      *string          `json:"origem" validate:"omitempty,numeric,len=1"`
	CSOSN       *string          `json:"csosn"`
	CSTPIS      *string          `json:"cst_pis"`
	CSTCOFINS   *string          `json:"cst_cofins"`
	Active      *bool            `json:"active"`
}

// ProductResponse saída de um produto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"codigo"`
	Description string          `json:"descricao"`
	NCM         string          `json:"ncm"`
	CFOP        string          `json:"cfop"`
	Unit        string          `json:"unidade"`
	UnitPrice   decimal.Decimal `json:"valor_unitario"`
	EAN         string          `json:"ean"`
	CEST        string          `json:"cest,omitempty"`
	Origin      string          `json:"origem"`
	CSOSN       string          `json:"csosn"`
	CSTPIS      string          `json:"cst_pis"`
	CSTCOFINS   string          `json:"cst_cofins"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de produtos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
