package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados da NF-e no ciclo de emissão.
const (
	InvoiceStatusDraft          = "draft"           // Rascunho, itens editáveis
	InvoiceStatusProcessing     = "processing"      // XML gerado e enviado, aguardando veredito
	InvoiceStatusAuthorized     = "authorized"      // Autorizada pela SEFAZ (cStat 100)
	InvoiceStatusRejected       = "rejected"        // Rejeitada pela SEFAZ ou erro de comunicação (999)
	InvoiceStatusSignatureError = "signature_error" // Falha local ao assinar o XML
)

// IsEditableStatus indica se cabeçalho e itens podem ser substituídos.
func IsEditableStatus(status string) bool {
	switch status {
	case InvoiceStatusDraft, InvoiceStatusRejected, InvoiceStatusSignatureError:
		return true
	}
	return false
}

// EditableStatuses lista os estados que permitem edição (usado como guarda no UPDATE).
var EditableStatuses = []string{InvoiceStatusDraft, InvoiceStatusRejected, InvoiceStatusSignatureError}

// Invoice representa o cabeçalho de uma NF-e modelo 55.
type Invoice struct {
	ID                string
	UserID            string
	Number            string // sequencial, 6 dígitos
	Series            string
	OperationNature   string // natOp
	OperationType     string // tpNF: 0 entrada, 1 saída
	Purpose           string // finNFe
	PresenceIndicator string // indPres
	IssueDate         string // dd/mm/aaaa ou aaaa-mm-dd
	IssueTime         string // hh:mm:ss
	ExitDate          string
	ExitTime          string

	DestName              string
	DestPersonType        string // F ou J
	DestTaxID             string // CPF ou CNPJ
	DestStateRegistration string
	DestZipCode           string
	DestUF                string
	DestCity              string
	DestCityCode          string
	DestDistrict          string
	DestStreet            string
	DestNumber            string
	DestComplement        string
	DestPhone             string
	DestEmail             string
	FinalConsumer         bool

	ProductsTotal  decimal.Decimal
	Freight        decimal.Decimal
	Insurance      decimal.Decimal
	OtherExpenses  decimal.Decimal
	Discount       decimal.Decimal
	Total          decimal.Decimal
	FreightMode    string // modFrete
	AdditionalInfo string // infCpl

	Status          string
	Environment     string // tpAmb usado na última emissão
	AccessKey       string
	Protocol        string
	Receipt         string
	StatusCode      string // cStat
	RejectionReason string
	ReceivedAt      string // dhRecbto
	XMLContent      string // XML sem assinatura
	XMLSigned       string
	XMLProtocol     string // resposta bruta com protNFe

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmissionUpdate atualização parcial e atômica dos artefatos de emissão.
// Campos nil não são alterados.
type EmissionUpdate struct {
	Status          *string
	Environment     *string
	AccessKey       *string
	Protocol        *string
	Receipt         *string
	StatusCode      *string
	RejectionReason *string
	ReceivedAt      *string
	XMLContent      *string
	XMLSigned       *string
	XMLProtocol     *string
}

// Str devolve um ponteiro para s (atalho para montar EmissionUpdate).
func Str(s string) *string { return &s }

// ClearEmissionArtifacts limpa os artefatos da SEFAZ e volta a nota para rascunho (edição).
func (i *Invoice) ClearEmissionArtifacts() {
	i.Status = InvoiceStatusDraft
	i.Environment = ""
	i.AccessKey = ""
	i.Protocol = ""
	i.Receipt = ""
	i.StatusCode = ""
	i.RejectionReason = ""
	i.ReceivedAt = ""
	i.XMLContent = ""
	i.XMLSigned = ""
	i.XMLProtocol = ""
}
