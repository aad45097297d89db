package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product item do catálogo usado para preencher linhas da nota.
type Product struct {
	ID          string
	UserID      string
	Code        string
	Description string
	NCM         string
	CFOP        string
	Unit        string
	UnitPrice   decimal.Decimal
	EAN         string
	CEST        string
	Origin      string
	CSOSN       string
	CSTPIS      string
	CSTCOFINS   string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
