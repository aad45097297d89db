package billing_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nfe-emissor/internal/domain"
	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
	"github.com/jhoicas/nfe-emissor/internal/infrastructure/sefaz"
	"github.com/jhoicas/nfe-emissor/pkg/nfe"
)

// ─────────────────────────────────────────────────────────────────────────────
// Repositórios em memória
// ─────────────────────────────────────────────────────────────────────────────

type memInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]*entity.Invoice
	items    map[string][]*entity.InvoiceItem
	updates  []entity.EmissionUpdate
	seq      int
	failOn   string // status cujo UpdateEmission deve falhar
	// beforeStart roda antes do compare-and-set de StartEmission (simula outra
	// requisição gravando no intervalo entre a leitura e a escrita).
	beforeStart func(stored *entity.Invoice)
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{invoices: map[string]*entity.Invoice{}, items: map[string][]*entity.InvoiceItem{}}
}

func (r *memInvoiceRepo) Create(_ context.Context, inv *entity.Invoice, items []*entity.InvoiceItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if inv.ID == "" {
		inv.ID = fmt.Sprintf("inv-%d", r.seq)
	}
	inv.Number = fmt.Sprintf("%06d", r.seq)
	cp := *inv
	r.invoices[inv.ID] = &cp
	for _, it := range items {
		it.InvoiceID = inv.ID
	}
	r.items[inv.ID] = items
	return nil
}

func (r *memInvoiceRepo) GetByID(_ context.Context, userID, id string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok || inv.UserID != userID {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) GetItems(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[invoiceID], nil
}

func (r *memInvoiceRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.UserID == userID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) Replace(_ context.Context, inv *entity.Invoice, items []*entity.InvoiceItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.invoices[inv.ID]
	if !ok || cur.UserID != inv.UserID {
		return domain.ErrNotFound
	}
	if !entity.IsEditableStatus(cur.Status) {
		return domain.ErrInvoiceNotEditable
	}
	cp := *inv
	cp.Number = cur.Number
	cp.UpdatedAt = time.Now()
	r.invoices[inv.ID] = &cp
	r.items[inv.ID] = items
	return nil
}

func (r *memInvoiceRepo) UpdateEmission(_ context.Context, id string, upd entity.EmissionUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn != "" && upd.Status != nil && *upd.Status == r.failOn {
		return errors.New("conexão perdida")
	}
	inv, ok := r.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.apply(inv, upd)
	return nil
}

func (r *memInvoiceRepo) StartEmission(_ context.Context, inv *entity.Invoice, staleAfter time.Duration, upd entity.EmissionUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.invoices[inv.ID]
	if !ok || cur.UserID != inv.UserID {
		return domain.ErrEmissionConflict
	}
	if r.beforeStart != nil {
		r.beforeStart(cur)
	}
	stale := cur.Status == entity.InvoiceStatusProcessing && time.Since(cur.UpdatedAt) > staleAfter
	if !cur.UpdatedAt.Equal(inv.UpdatedAt) || !(entity.IsEditableStatus(cur.Status) || stale) {
		return domain.ErrEmissionConflict
	}
	r.apply(cur, upd)
	return nil
}

func (r *memInvoiceRepo) apply(inv *entity.Invoice, upd entity.EmissionUpdate) {
	r.updates = append(r.updates, upd)
	inv.UpdatedAt = time.Now()
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&inv.Status, upd.Status)
	set(&inv.Environment, upd.Environment)
	set(&inv.AccessKey, upd.AccessKey)
	set(&inv.Protocol, upd.Protocol)
	set(&inv.Receipt, upd.Receipt)
	set(&inv.StatusCode, upd.StatusCode)
	set(&inv.RejectionReason, upd.RejectionReason)
	set(&inv.ReceivedAt, upd.ReceivedAt)
	set(&inv.XMLContent, upd.XMLContent)
	set(&inv.XMLSigned, upd.XMLSigned)
	set(&inv.XMLProtocol, upd.XMLProtocol)
}

func (r *memInvoiceRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok || inv.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.invoices, id)
	delete(r.items, id)
	return nil
}

func (r *memInvoiceRepo) stored(id string) *entity.Invoice {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *r.invoices[id]
	return &cp
}

type memEmitterRepo struct{ emitter *entity.Emitter }

func (r *memEmitterRepo) GetByUser(_ context.Context, userID string) (*entity.Emitter, error) {
	if r.emitter == nil || r.emitter.UserID != userID {
		return nil, nil
	}
	return r.emitter, nil
}

func (r *memEmitterRepo) Upsert(_ context.Context, e *entity.Emitter) error {
	r.emitter = e
	return nil
}

type memCertificateRepo struct {
	certs []*entity.Certificate
}

func (r *memCertificateRepo) GetActive(_ context.Context, userID string) (*entity.Certificate, error) {
	for _, c := range r.certs {
		if c.UserID == userID && c.Active {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCertificateRepo) ListByUser(_ context.Context, userID string) ([]*entity.Certificate, error) {
	var out []*entity.Certificate
	for _, c := range r.certs {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCertificateRepo) ReplaceActive(_ context.Context, cert *entity.Certificate) error {
	for _, c := range r.certs {
		if c.UserID == cert.UserID {
			c.Active = false
		}
	}
	if cert.ID == "" {
		cert.ID = fmt.Sprintf("cert-%d", len(r.certs)+1)
	}
	cert.Active = true
	r.certs = append(r.certs, cert)
	return nil
}

func (r *memCertificateRepo) Delete(_ context.Context, userID, id string) error {
	for i, c := range r.certs {
		if c.ID == id && c.UserID == userID {
			r.certs = append(r.certs[:i], r.certs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memMunicipalityRepo struct{ codes map[string]string }

func (r *memMunicipalityRepo) FindCode(_ context.Context, uf, name string) (string, error) {
	return r.codes[uf+"|"+name], nil
}

func (r *memMunicipalityRepo) ListByUF(_ context.Context, uf string) ([]*entity.Municipality, error) {
	return nil, nil
}

func (r *memMunicipalityRepo) BulkUpsert(_ context.Context, items []*entity.Municipality) (int, error) {
	return len(items), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Dublês de certificado, assinatura e SEFAZ
// ─────────────────────────────────────────────────────────────────────────────

// testCertificate gera um par RSA autoassinado já no formato extraído do .pfx.
func testCertificate(t *testing.T, notAfter time.Time) *nfe.CertificateData {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	notBefore := notAfter.Add(-365 * 24 * time.Hour)
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(7),
		Subject:      pkix.Name{CommonName: "EMPRESA TESTE LTDA:11222333000181"},
		NotBefore:    notBefore,
		NotAfter:     notAfter,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	pkcs8, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return &nfe.CertificateData{
		CertificatePEM: string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})),
		PrivateKeyPEM:  string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8})),
		Subject:        "EMPRESA TESTE LTDA:11222333000181",
		NotBefore:      notBefore,
		NotAfter:       notAfter,
	}
}

type stubExtractor struct {
	cert  *nfe.CertificateData
	err   error
	calls int
}

func (s *stubExtractor) Extract(_, _ string) (*nfe.CertificateData, error) {
	s.calls++
	return s.cert, s.err
}

type failingSigner struct{}

func (failingSigner) Sign(_ []byte, _ *nfe.CertificateData) ([]byte, error) {
	return nil, errors.New("chave privada inválida")
}

// fakeSefaz devolve respostas programadas e conta as chamadas.
type fakeSefaz struct {
	submit      *sefaz.AuthorityResult
	poll        *sefaz.AuthorityResult
	submitCalls int
	pollCalls   int
	lastReceipt string
	lastUF      string
	lastEnv     string
	lastXML     []byte
}

func (f *fakeSefaz) Submit(_ context.Context, signedXML []byte, uf, environment string, _ *nfe.CertificateData) *sefaz.AuthorityResult {
	f.submitCalls++
	f.lastXML = signedXML
	f.lastUF = uf
	f.lastEnv = environment
	return f.submit
}

func (f *fakeSefaz) PollReceipt(_ context.Context, receipt, uf, environment string, _ *nfe.CertificateData) *sefaz.AuthorityResult {
	f.pollCalls++
	f.lastReceipt = receipt
	return f.poll
}

// ─────────────────────────────────────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────────────────────────────────────

const testUser = "user-1"

func fixtureEmitter() *entity.Emitter {
	return &entity.Emitter{
		ID:                "em-1",
		UserID:            testUser,
		LegalName:         "EMPRESA TESTE LTDA",
		TradeName:         "TESTE",
		CNPJ:              "11.222.333/0001-81",
		StateRegistration: "123456789",
		TaxRegime:         entity.TaxRegimeSimples,
		ZipCode:           "01001-000",
		UF:                "SP",
		City:              "São Paulo",
		CityCode:          "3550308",
		District:          "Centro",
		Street:            "Praça da Sé",
		Number:            "100",
	}
}

func fixtureInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:              "inv-1",
		UserID:          testUser,
		Number:          "000123",
		Series:          "1",
		OperationNature: "Venda de mercadoria",
		OperationType:   "1",
		Purpose:         "1",
		IssueDate:       "15/03/2024",
		IssueTime:       "10:30",
		DestName:        "Fulano de Tal",
		DestPersonType:  "F",
		DestTaxID:       "529.982.247-25",
		DestUF:          "SP",
		DestCity:        "São Paulo",
		DestCityCode:    "3550308",
		DestZipCode:     "01001000",
		DestStreet:      "Rua A",
		DestNumber:      "1",
		DestDistrict:    "Centro",
		FinalConsumer:   true,
		ProductsTotal:   decimal.RequireFromString("20.00"),
		Total:           decimal.RequireFromString("20.00"),
		Status:          entity.InvoiceStatusDraft,
		UpdatedAt:       time.Now(),
	}
}

func fixtureItems() []*entity.InvoiceItem {
	return []*entity.InvoiceItem{{
		ID:          "it-1",
		InvoiceID:   "inv-1",
		Code:        "P001",
		Description: "Produto teste",
		NCM:         "61091000",
		CFOP:        "5102",
		Unit:        "UN",
		Quantity:    decimal.RequireFromString("2"),
		UnitPrice:   decimal.RequireFromString("10.00"),
		Total:       decimal.RequireFromString("20.00"),
		Position:    1,
	}}
}

type memProductRepo struct{ products map[string]*entity.Product }

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, userID, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	return p, nil
}

func (r *memProductRepo) GetByUserAndCode(_ context.Context, userID, code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.UserID == userID && p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Delete(_ context.Context, _, id string) error {
	delete(r.products, id)
	return nil
}
