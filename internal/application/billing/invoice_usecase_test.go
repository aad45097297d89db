package billing_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nfe-emissor/internal/application/billing"
	"github.com/jhoicas/nfe-emissor/internal/application/dto"
	"github.com/jhoicas/nfe-emissor/internal/domain"
	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
	"github.com/jhoicas/nfe-emissor/internal/infrastructure/sefaz"
)

const productID = "3f2b8c9e-1d4a-4b6e-9f0a-2c7d5e8b1a33"

func newInvoiceUseCase() (*billing.InvoiceUseCase, *memInvoiceRepo, *memEmitterRepo) {
	invoices := newMemInvoiceRepo()
	emitters := &memEmitterRepo{emitter: fixtureEmitter()}
	products := &memProductRepo{products: map[string]*entity.Product{
		productID: {
			ID: productID, UserID: testUser, Code: "CAM-01", Description: "Camiseta algodão",
			NCM: "61091000", CFOP: "5102", Unit: "UN", UnitPrice: decimal.RequireFromString("49.90"),
			EAN: "7891234567895", Origin: "0", CSOSN: "102", CSTPIS: "49", CSTCOFINS: "49",
		},
	}}
	uc := billing.NewInvoiceUseCase(invoices, products, emitters, sefaz.NewXMLBuilderService(zerolog.Nop()), "2")
	return uc, invoices, emitters
}

func invoiceRequest() dto.InvoiceRequest {
	return dto.InvoiceRequest{
		OperationNature: "Venda de mercadoria",
		IssueDate:       "2024-03-15",
		IssueTime:       "10:30",
		DestName:        "Fulano de Tal",
		DestTaxID:       "529.982.247-25",
		DestUF:          "sp",
		DestCity:        "São Paulo",
		Items: []dto.InvoiceItemRequest{{
			Code:        "P001",
			Description: "Produto teste",
			NCM:         "61091000",
			Quantity:    decimal.RequireFromString("2"),
			UnitPrice:   decimal.RequireFromString("10.00"),
		}},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Create
// ─────────────────────────────────────────────────────────────────────────────

func TestInvoiceCreate_ComputesTotalsAndDefaults(t *testing.T) {
	uc, _, _ := newInvoiceUseCase()
	in := invoiceRequest()
	in.Freight = decimal.RequireFromString("5.50")
	in.Discount = decimal.RequireFromString("1.50")

	out, err := uc.Create(context.Background(), testUser, in)
	require.NoError(t, err)

	inv := out.Invoice
	assert.Equal(t, "000001", inv.Number)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, "1", inv.Series)
	assert.Equal(t, "F", inv.DestPersonType)
	assert.Equal(t, "SP", inv.DestUF)
	assert.Equal(t, "9", inv.FreightMode)
	assert.True(t, inv.FinalConsumer)
	assert.Equal(t, "20.00", inv.ProductsTotal.StringFixed(2))
	assert.Equal(t, "24.00", inv.Total.StringFixed(2))

	require.Len(t, out.Items, 1)
	it := out.Items[0]
	assert.Equal(t, "20.00", it.Total.StringFixed(2))
	assert.Equal(t, 1, it.Position)
	assert.Equal(t, "5102", it.CFOP)
	assert.Equal(t, "SEM GTIN", it.EAN)
	assert.Equal(t, "102", it.CSOSN)
}

func TestInvoiceCreate_SequentialNumbers(t *testing.T) {
	uc, _, _ := newInvoiceUseCase()
	first, err := uc.Create(context.Background(), testUser, invoiceRequest())
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), testUser, invoiceRequest())
	require.NoError(t, err)

	assert.Equal(t, "000001", first.Invoice.Number)
	assert.Equal(t, "000002", second.Invoice.Number)
}

func TestInvoiceCreate_FillsItemFromProduct(t *testing.T) {
	uc, _, _ := newInvoiceUseCase()
	in := invoiceRequest()
	in.Items = []dto.InvoiceItemRequest{{ProductID: productID, Quantity: decimal.RequireFromString("3")}}

	out, err := uc.Create(context.Background(), testUser, in)
	require.NoError(t, err)

	it := out.Items[0]
	assert.Equal(t, "CAM-01", it.Code)
	assert.Equal(t, "Camiseta algodão", it.Description)
	assert.Equal(t, "7891234567895", it.EAN)
	assert.Equal(t, "49.90", it.UnitPrice.StringFixed(2))
	assert.Equal(t, "149.70", it.Total.StringFixed(2))
	assert.Equal(t, "149.70", out.Invoice.Total.StringFixed(2))
}

func TestInvoiceCreate_LegalEntityRecipient(t *testing.T) {
	uc, _, _ := newInvoiceUseCase()
	in := invoiceRequest()
	in.DestTaxID = "11.222.333/0001-81"

	out, err := uc.Create(context.Background(), testUser, in)
	require.NoError(t, err)
	assert.Equal(t, "J", out.Invoice.DestPersonType)
}

func TestInvoiceCreate_Rejections(t *testing.T) {
	cases := map[string]func(*dto.InvoiceRequest){
		"sem itens":          func(in *dto.InvoiceRequest) { in.Items = nil },
		"quantidade zero":    func(in *dto.InvoiceRequest) { in.Items[0].Quantity = decimal.Zero },
		"preço negativo":     func(in *dto.InvoiceRequest) { in.Items[0].UnitPrice = decimal.NewFromInt(-1) },
		"sem NCM":            func(in *dto.InvoiceRequest) { in.Items[0].NCM = "" },
		"CPF inválido":       func(in *dto.InvoiceRequest) { in.DestTaxID = "111.111.111-11" },
		"data inválida":      func(in *dto.InvoiceRequest) { in.IssueDate = "15-03" },
		"desconto excessivo": func(in *dto.InvoiceRequest) { in.Discount = decimal.NewFromInt(100) },
		"frete com 3 casas":  func(in *dto.InvoiceRequest) { in.Freight = decimal.RequireFromString("0.005") },
		"desconto com 3 casas": func(in *dto.InvoiceRequest) {
			in.Discount = decimal.RequireFromString("1.999")
		},
		"quantidade com 5 casas": func(in *dto.InvoiceRequest) {
			in.Items[0].Quantity = decimal.RequireFromString("1.00001")
		},
		"produto inexistente": func(in *dto.InvoiceRequest) {
			in.Items[0].ProductID = "00000000-0000-0000-0000-000000000000"
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			uc, invoices, _ := newInvoiceUseCase()
			in := invoiceRequest()
			mutate(&in)

			_, err := uc.Create(context.Background(), testUser, in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrNotFound), err.Error())
			assert.Empty(t, invoices.invoices)
		})
	}
}

func TestInvoiceCreate_SubCentAmountsDoNotSkewTotal(t *testing.T) {
	uc, invoices, _ := newInvoiceUseCase()
	in := invoiceRequest()
	in.Freight = decimal.RequireFromString("0.005")
	in.Insurance = decimal.RequireFromString("0.005")

	_, err := uc.Create(context.Background(), testUser, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "2 casas decimais")
	assert.Empty(t, invoices.invoices)
}

func TestInvoiceCreate_TrailingZerosAreAccepted(t *testing.T) {
	uc, _, _ := newInvoiceUseCase()
	in := invoiceRequest()
	in.Freight = decimal.RequireFromString("5.500")
	in.Items[0].UnitPrice = decimal.RequireFromString("10.000000")

	out, err := uc.Create(context.Background(), testUser, in)
	require.NoError(t, err)
	assert.Equal(t, "25.50", out.Invoice.Total.StringFixed(2))
}

// ─────────────────────────────────────────────────────────────────────────────
// Get / List / Delete
// ─────────────────────────────────────────────────────────────────────────────

func TestInvoiceGet_OtherUserIsNotFound(t *testing.T) {
	uc, _, _ := newInvoiceUseCase()
	out, err := uc.Create(context.Background(), testUser, invoiceRequest())
	require.NoError(t, err)

	_, err = uc.Get(context.Background(), "user-2", out.Invoice.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.Get(context.Background(), testUser, out.Invoice.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}

func TestInvoiceList_DefaultPage(t *testing.T) {
	uc, _, _ := newInvoiceUseCase()
	_, err := uc.Create(context.Background(), testUser, invoiceRequest())
	require.NoError(t, err)

	list, err := uc.List(context.Background(), testUser, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 20, list.Page.Limit)
}

func TestInvoiceDelete_RemovesItems(t *testing.T) {
	uc, invoices, _ := newInvoiceUseCase()
	out, err := uc.Create(context.Background(), testUser, invoiceRequest())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), testUser, out.Invoice.ID))
	assert.Empty(t, invoices.invoices)
	assert.Empty(t, invoices.items)
}

func TestInvoiceDelete_AuthorizedIsConflict(t *testing.T) {
	uc, invoices, _ := newInvoiceUseCase()
	out, err := uc.Create(context.Background(), testUser, invoiceRequest())
	require.NoError(t, err)
	invoices.invoices[out.Invoice.ID].Status = entity.InvoiceStatusAuthorized

	err = uc.Delete(context.Background(), testUser, out.Invoice.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ─────────────────────────────────────────────────────────────────────────────
// Replace
// ─────────────────────────────────────────────────────────────────────────────

func TestInvoiceReplace_RejectedReturnsToDraftWithoutArtifacts(t *testing.T) {
	uc, invoices, _ := newInvoiceUseCase()
	out, err := uc.Create(context.Background(), testUser, invoiceRequest())
	require.NoError(t, err)
	id := out.Invoice.ID
	require.NoError(t, invoices.UpdateEmission(context.Background(), id, entity.EmissionUpdate{
		Status:          entity.Str(entity.InvoiceStatusRejected),
		AccessKey:       entity.Str(strings.Repeat("1", 44)),
		StatusCode:      entity.Str("225"),
		RejectionReason: entity.Str("Rejeição"),
		XMLSigned:       entity.Str("<NFe/>"),
	}))

	in := invoiceRequest()
	in.Items[0].Quantity = decimal.RequireFromString("5")
	got, err := uc.Replace(context.Background(), testUser, id, in)
	require.NoError(t, err)

	assert.Equal(t, out.Invoice.Number, got.Invoice.Number)
	assert.Equal(t, "50.00", got.Invoice.Total.StringFixed(2))

	stored := invoices.stored(id)
	assert.Equal(t, entity.InvoiceStatusDraft, stored.Status)
	assert.Empty(t, stored.AccessKey)
	assert.Empty(t, stored.StatusCode)
	assert.Empty(t, stored.RejectionReason)
	assert.Empty(t, stored.XMLSigned)
}

func TestInvoiceReplace_NotEditableStates(t *testing.T) {
	for _, status := range []string{entity.InvoiceStatusAuthorized, entity.InvoiceStatusProcessing} {
		t.Run(status, func(t *testing.T) {
			uc, invoices, _ := newInvoiceUseCase()
			out, err := uc.Create(context.Background(), testUser, invoiceRequest())
			require.NoError(t, err)
			invoices.invoices[out.Invoice.ID].Status = status

			_, err = uc.Replace(context.Background(), testUser, out.Invoice.ID, invoiceRequest())
			assert.ErrorIs(t, err, domain.ErrInvoiceNotEditable)
			assert.Equal(t, status, invoices.stored(out.Invoice.ID).Status)
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// XML
// ─────────────────────────────────────────────────────────────────────────────

func TestInvoiceXML_PrefersSignedThenUnsigned(t *testing.T) {
	uc, invoices, _ := newInvoiceUseCase()
	out, err := uc.Create(context.Background(), testUser, invoiceRequest())
	require.NoError(t, err)
	id := out.Invoice.ID

	require.NoError(t, invoices.UpdateEmission(context.Background(), id, entity.EmissionUpdate{
		XMLContent: entity.Str("<NFe>sem</NFe>"),
		AccessKey:  entity.Str("35240311222333000181550010000000011000000015"),
	}))
	body, name, err := uc.DownloadXML(context.Background(), testUser, id)
	require.NoError(t, err)
	assert.Equal(t, "<NFe>sem</NFe>", string(body))
	assert.Equal(t, "NFe35240311222333000181550010000000011000000015.xml", name)

	require.NoError(t, invoices.UpdateEmission(context.Background(), id, entity.EmissionUpdate{XMLSigned: entity.Str("<NFe>assinada</NFe>")}))
	body, _, err = uc.DownloadXML(context.Background(), testUser, id)
	require.NoError(t, err)
	assert.Equal(t, "<NFe>assinada</NFe>", string(body))
}

func TestInvoiceXML_PreviewIsBuiltButNotPersisted(t *testing.T) {
	uc, invoices, _ := newInvoiceUseCase()
	out, err := uc.Create(context.Background(), testUser, invoiceRequest())
	require.NoError(t, err)

	body, name, err := uc.DownloadXML(context.Background(), testUser, out.Invoice.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "<?xml"))
	assert.Contains(t, string(body), "<tpAmb>2</tpAmb>")
	assert.Regexp(t, `^NFe\d{44}\.xml$`, name)
	assert.Empty(t, invoices.stored(out.Invoice.ID).XMLContent)
	assert.Empty(t, invoices.updates)
}

func TestInvoiceXML_PreviewNeedsEmitter(t *testing.T) {
	uc, _, emitters := newInvoiceUseCase()
	out, err := uc.Create(context.Background(), testUser, invoiceRequest())
	require.NoError(t, err)
	emitters.emitter = nil

	_, _, err = uc.DownloadXML(context.Background(), testUser, out.Invoice.ID)
	assert.ErrorIs(t, err, domain.ErrEmitterNotConfigured)
}
