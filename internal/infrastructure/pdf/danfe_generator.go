// Package pdf gera o DANFE (Documento Auxiliar da NF-e) em A4 com Maroto v2.
//
// Layout da página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  DANFE | situação + ambiente | entrada/saída, nº, série      │
//	│  Chave de acesso (grupos de 4) + código de barras Code128    │
//	│  Protocolo de autorização (se houver)                        │
//	│  EMITENTE                                                    │
//	│  DESTINATÁRIO / REMETENTE                                    │
//	│  ITENS: Código | Descrição | NCM | CFOP | UN | Qtd | Vl      │
//	│  TOTAIS                                                      │
//	│  INFORMAÇÕES COMPLEMENTARES                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/nfe-emissor/internal/application/billing"
	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
	"github.com/jhoicas/nfe-emissor/pkg/nfe"
)

var _ billing.DanfeGenerator = (*DanfeGenerator)(nil)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorGray  = &props.Color{Red: 90, Green: 90, Blue: 90}
	colorLight = &props.Color{Red: 240, Green: 240, Blue: 240}
	colorZebra = &props.Color{Red: 250, Green: 250, Blue: 250}
	colorRed   = &props.Color{Red: 170, Green: 20, Blue: 20}

	boxStyle = &props.Cell{BorderType: border.Full, BorderColor: &props.Color{}, BorderThickness: 0.2}
)

// descriptionLimit corta descrições longas na tabela de itens.
const descriptionLimit = 45

// DanfeGenerator implementa billing.DanfeGenerator usando Maroto v2.
type DanfeGenerator struct{}

// NewDanfeGenerator constrói o gerador.
func NewDanfeGenerator() *DanfeGenerator { return &DanfeGenerator{} }

// GenerateDanfe gera o PDF e devolve seus bytes.
func (g *DanfeGenerator) GenerateDanfe(
	_ context.Context,
	inv *entity.Invoice,
	items []*entity.InvoiceItem,
	emitter *entity.Emitter,
) ([]byte, error) {
	if inv == nil || emitter == nil {
		return nil, fmt.Errorf("danfe: nota e emitente são obrigatórios")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle("DANFE "+inv.Number, true).
		WithAuthor(emitter.LegalName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(inv)...)
	if inv.AccessKey != "" {
		m.AddRows(accessKeyRows(inv.AccessKey)...)
	}
	if inv.Protocol != "" {
		m.AddRows(protocolRow(inv))
	}
	m.AddRows(line.NewRow(2))
	m.AddRows(emitterRow(emitter))
	m.AddRows(line.NewRow(2))
	m.AddRows(recipientRow(inv))
	m.AddRows(line.NewRow(2))

	m.AddRows(itemsHeaderRow())
	m.AddRows(itemRows(items)...)

	m.AddRows(line.NewRow(2))
	m.AddRows(totalsRows(inv)...)

	if strings.TrimSpace(inv.AdditionalInfo) != "" {
		m.AddRows(line.NewRow(2))
		m.AddRows(additionalInfoRows(inv.AdditionalInfo)...)
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(row.New(5).Add(col.New(12).Add(
		text.New("Documento gerado pelo NF-e Emissor", props.Text{Size: 6, Align: align.Center, Color: colorGray}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("danfe: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

func headerRows(inv *entity.Invoice) []core.Row {
	operation := "ENTRADA"
	if inv.OperationType != "0" {
		operation = "SAÍDA"
	}
	situation := fmt.Sprintf("%s | Ambiente: %s", statusLabel(inv.Status), environmentLabel(inv.Environment))

	rows := []core.Row{
		row.New(28).WithStyle(boxStyle).Add(
			col.New(12).Add(
				text.New("DANFE", props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Center, Top: 2}),
				text.New("Documento Auxiliar da Nota Fiscal Eletrônica", props.Text{Size: 8, Align: align.Center, Top: 9}),
				text.New(situation, props.Text{Size: 7, Align: align.Center, Top: 14}),
				text.New("Entrada/Saída: "+operation, props.Text{Size: 7, Top: 20, Left: 2}),
				text.New("Nº: "+orDash(inv.Number), props.Text{Size: 7, Top: 24, Left: 2}),
				text.New("Série: "+orDash(inv.Series), props.Text{Size: 7, Top: 24, Left: 40}),
				text.New("Emissão: "+strings.TrimSpace(inv.IssueDate+" "+inv.IssueTime), props.Text{Size: 7, Top: 24, Left: 90}),
			),
		),
	}
	if inv.Environment == nfe.EnvironmentHomologation {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("SEM VALOR FISCAL", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: colorRed, Top: 1}),
		)))
	}
	return rows
}

func accessKeyRows(key string) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Chave de Acesso: "+nfe.FormatAccessKey(key), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1}),
		)),
		code.NewBarRow(14, key, props.Barcode{Percent: 80, Center: true}),
	}
}

func protocolRow(inv *entity.Invoice) core.Row {
	label := "Protocolo de Autorização: " + inv.Protocol
	if inv.ReceivedAt != "" {
		label += "  " + inv.ReceivedAt
	}
	return row.New(7).WithStyle(boxStyle).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Top: 2, Left: 2}),
	))
}

func emitterRow(e *entity.Emitter) core.Row {
	ie := ""
	if e.StateRegistration != "" {
		ie = "IE: " + e.StateRegistration
	}
	return row.New(24).WithStyle(boxStyle).Add(col.New(12).Add(
		text.New("EMITENTE", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 2}),
		text.New("Razão Social: "+e.LegalName, props.Text{Top: 6, Left: 2}),
		text.New("CNPJ: "+FormatTaxID(e.CNPJ), props.Text{Top: 10, Left: 2}),
		text.New(ie, props.Text{Top: 10, Left: 90}),
		text.New(fmt.Sprintf("End.: %s, %s - %s", e.Street, orDefault(e.Number, "S/N"), e.District), props.Text{Top: 14, Left: 2}),
		text.New(fmt.Sprintf("%s/%s - CEP: %s", e.City, e.UF, e.ZipCode), props.Text{Top: 18, Left: 2}),
	))
}

func recipientRow(inv *entity.Invoice) core.Row {
	components := []core.Component{
		text.New("DESTINATÁRIO / REMETENTE", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 2}),
		text.New("Nome: "+inv.DestName, props.Text{Top: 6, Left: 2}),
		text.New("CPF/CNPJ: "+FormatTaxID(inv.DestTaxID), props.Text{Top: 10, Left: 2}),
	}
	if inv.DestStreet != "" {
		components = append(components, text.New(
			fmt.Sprintf("End.: %s, %s - %s", inv.DestStreet, orDefault(inv.DestNumber, "S/N"), inv.DestDistrict),
			props.Text{Top: 14, Left: 2},
		))
	}
	if inv.DestCity != "" {
		components = append(components, text.New(
			fmt.Sprintf("%s/%s - CEP: %s", inv.DestCity, inv.DestUF, inv.DestZipCode),
			props.Text{Top: 18, Left: 2},
		))
	}
	return row.New(24).WithStyle(boxStyle).Add(col.New(12).Add(components...))
}

// Larguras das colunas da tabela de itens (soma 12).
var itemColumnSizes = []int{1, 4, 1, 1, 1, 1, 1, 2}

func itemsHeaderRow() core.Row {
	labels := []string{"CÓDIGO", "DESCRIÇÃO", "NCM", "CFOP", "UN", "QTD", "VL UNIT", "VL TOTAL"}
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Left
		if i >= 5 {
			a = align.Right
		}
		cols = append(cols, col.New(itemColumnSizes[i]).Add(
			text.New(l, props.Text{Style: fontstyle.Bold, Size: 6, Align: a, Top: 1.5, Left: 1, Right: 1}),
		))
	}
	return row.New(6).WithStyle(&props.Cell{BackgroundColor: colorLight}).Add(cols...)
}

func itemRows(items []*entity.InvoiceItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for i, it := range items {
		values := []string{
			it.Code,
			truncate(it.Description, descriptionLimit),
			it.NCM,
			it.CFOP,
			it.Unit,
			it.Quantity.StringFixed(2),
			FormatBRL(it.UnitPrice),
			FormatBRL(it.Total),
		}
		cols := make([]core.Col, 0, len(values))
		for j, v := range values {
			a := align.Left
			if j >= 5 {
				a = align.Right
			}
			cols = append(cols, col.New(itemColumnSizes[j]).Add(
				text.New(v, props.Text{Size: 6, Align: a, Top: 1.5, Left: 1, Right: 1}),
			))
		}
		r := row.New(6).Add(cols...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorZebra})
		}
		rows = append(rows, r)
	}
	return rows
}

func totalsRows(inv *entity.Invoice) []core.Row {
	cell := func(label string, v decimal.Decimal) core.Col {
		return col.New(4).Add(text.New(label+": R$ "+FormatBRL(v), props.Text{Top: 1, Left: 2}))
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("TOTAIS", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 2}))),
		row.New(5).Add(
			cell("Total Produtos", inv.ProductsTotal),
			cell("Frete", inv.Freight),
			cell("Seguro", inv.Insurance),
		),
		row.New(5).Add(
			cell("Desconto", inv.Discount),
			cell("Outras Despesas", inv.OtherExpenses),
			col.New(4),
		),
		row.New(8).Add(col.New(12).Add(
			text.New("TOTAL DA NOTA: R$ "+FormatBRL(inv.Total), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 2}),
		)),
	}
}

func additionalInfoRows(info string) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("INFORMAÇÕES COMPLEMENTARES", props.Text{Style: fontstyle.Bold, Size: 7, Top: 1, Left: 2}),
		)),
		row.New(12).Add(col.New(12).Add(
			text.New(info, props.Text{Size: 6, Left: 2, Right: 2}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(status string) string {
	switch status {
	case entity.InvoiceStatusAuthorized:
		return "AUTORIZADA"
	case entity.InvoiceStatusRejected:
		return "REJEITADA"
	case entity.InvoiceStatusProcessing:
		return "PROCESSANDO"
	case entity.InvoiceStatusSignatureError:
		return "ERRO DE ASSINATURA"
	default:
		return "RASCUNHO"
	}
}

func environmentLabel(env string) string {
	if env == nfe.EnvironmentProduction {
		return "PRODUÇÃO"
	}
	return "HOMOLOGAÇÃO"
}

// FormatBRL formata no padrão brasileiro: 1234.5 → "1.234,50".
func FormatBRL(v decimal.Decimal) string {
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	out := b.String() + "," + frac
	if neg {
		return "-" + out
	}
	return out
}

// FormatTaxID aplica a máscara de CPF (11 dígitos) ou CNPJ (14 dígitos).
// Outros tamanhos são devolvidos como vieram.
func FormatTaxID(doc string) string {
	d := nfe.OnlyDigits(doc)
	switch len(d) {
	case 11:
		return fmt.Sprintf("%s.%s.%s-%s", d[0:3], d[3:6], d[6:9], d[9:])
	case 14:
		return fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:])
	}
	return doc
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func orDash(s string) string { return orDefault(s, "---") }
