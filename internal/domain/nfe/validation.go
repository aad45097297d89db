// Package nfe contém validações de domínio aplicadas à NF-e modelo 55 antes da montagem do XML.
// Usa as regras de documento e catálogos de pkg/nfe.
package nfe

import (
	"errors"
	"fmt"

	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
	"github.com/jhoicas/nfe-emissor/pkg/nfe"

	"github.com/shopspring/decimal"
)

// ErrInvalidDocument agrupa os erros de validação da nota.
var ErrInvalidDocument = errors.New("nota fiscal inválida para emissão")

// ValidateRecipient valida o CPF/CNPJ do destinatário (o tamanho do documento decide o tipo).
func ValidateRecipient(invoice *entity.Invoice) error {
	if invoice == nil {
		return fmt.Errorf("%w: nota nula", ErrInvalidDocument)
	}
	if err := nfe.ValidateRecipientTaxID(invoice.DestTaxID); err != nil {
		return errors.Join(ErrInvalidDocument, err)
	}
	return nil
}

// ValidateInvoice valida nota, itens e emitente antes da geração do XML.
// Confere os totais de cada item (quantidade × valor unitário) e o total da nota.
func ValidateInvoice(invoice *entity.Invoice, items []*entity.InvoiceItem, emitter *entity.Emitter) error {
	if invoice == nil {
		return fmt.Errorf("%w: nota nula", ErrInvalidDocument)
	}
	var errs []error

	if emitter == nil {
		errs = append(errs, errors.New("emitente não informado"))
	} else if !nfe.IsValidCNPJ(emitter.CNPJ) {
		errs = append(errs, fmt.Errorf("CNPJ do emitente inválido: %s", emitter.CNPJ))
	}

	if err := nfe.ValidateRecipientTaxID(invoice.DestTaxID); err != nil {
		errs = append(errs, err)
	}

	if len(items) == 0 {
		errs = append(errs, errors.New("a nota fiscal deve ter ao menos um item"))
	} else {
		sum := decimal.Zero
		for i, it := range items {
			expected := it.Quantity.Mul(it.UnitPrice).Round(2)
			if !it.Total.Equal(expected) {
				errs = append(errs, fmt.Errorf("item %d: total (%s) difere de quantidade × valor unitário (%s)", i+1, it.Total.StringFixed(2), expected.StringFixed(2)))
			}
			sum = sum.Add(it.Total)
		}
		if !invoice.ProductsTotal.Equal(sum) {
			errs = append(errs, fmt.Errorf("total dos produtos (%s) difere da soma dos itens (%s)", invoice.ProductsTotal.StringFixed(2), sum.StringFixed(2)))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidDocument}, errs...)...)
	}
	return nil
}
