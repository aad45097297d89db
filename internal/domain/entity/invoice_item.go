package entity

import "github.com/shopspring/decimal"

// InvoiceItem linha de produto da NF-e. Total = Quantity × UnitPrice.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	ProductID   string // opcional: item pode não vir do catálogo
	Code        string
	Description string
	NCM         string
	CFOP        string
	Unit        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	EAN         string
	Origin      string
	CSOSN       string
	CSTPIS      string
	CSTCOFINS   string
	Position    int
}

// ComputeTotal aplica o invariante total = quantidade × valor unitário (2 casas).
func (it *InvoiceItem) ComputeTotal() decimal.Decimal {
	it.Total = it.Quantity.Mul(it.UnitPrice).Round(2)
	return it.Total
}
