package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceRequest body para POST /api/invoices e PUT /api/invoices/:id.
// Totais de item e da nota são calculados no servidor.
type InvoiceRequest struct {
	Series            string `json:"serie" validate:"omitempty,numeric,max=3"`
	OperationNature   string `json:"natureza_operacao" validate:"required,max=60"`
	OperationType     string `json:"tipo_saida" validate:"omitempty,oneof=0 1"`
	Purpose           string `json:"finalidade" validate:"omitempty,oneof=1 2 3 4"`
	PresenceIndicator string `json:"indicador_presenca" validate:"omitempty,oneof=0 1 2 3 4 5 9"`
	IssueDate         string `json:"data_emissao" validate:"required"`
	IssueTime         string `json:"hora_emissao" validate:"required"`
	ExitDate          string `json:"data_saida,omitempty"`
	ExitTime          string `json:"hora_saida,omitempty"`

	DestName              string `json:"dest_nome" validate:"required,max=60"`
	DestPersonType        string `json:"dest_tipo_pessoa" validate:"omitempty,oneof=F J"`
	DestTaxID             string `json:"dest_cpf_cnpj" validate:"required,cpfcnpj"`
	DestStateRegistration string `json:"dest_inscricao_estadual,omitempty"`
	DestZipCode           string `json:"dest_cep,omitempty"`
	DestUF                string `json:"dest_uf" validate:"omitempty,uf"`
	DestCity              string `json:"dest_municipio,omitempty"`
	DestCityCode          string `json:"dest_codigo_municipio,omitempty" validate:"omitempty,numeric,len=7"`
	DestDistrict          string `json:"dest_bairro,omitempty"`
	DestStreet            string `json:"dest_logradouro,omitempty"`
	DestNumber            string `json:"dest_numero,omitempty"`
	DestComplement        string `json:"dest_complemento,omitempty"`
	DestPhone             string `json:"dest_telefone,omitempty"`
	DestEmail             string `json:"dest_email,omitempty" validate:"omitempty,email"`
	FinalConsumer         *bool  `json:"consumidor_final,omitempty"`

	Freight        decimal.Decimal `json:"valor_frete"`
	Insurance      decimal.Decimal `json:"valor_seguro"`
	OtherExpenses  decimal.Decimal `json:"outras_despesas"`
	Discount       decimal.Decimal `json:"desconto"`
	FreightMode    string          `json:"modalidade_frete" validate:"omitempty,oneof=0 1 2 3 4 9"`
	AdditionalInfo string          `json:"informacoes_complementares,omitempty" validate:"max=5000"`

	Items []InvoiceItemRequest `json:"itens" validate:"required,min=1,dive"`
}

// InvoiceItemRequest linha da nota. Com product_id os campos vazios vêm do cadastro do produto.
type InvoiceItemRequest struct {
	ProductID   string          `json:"product_id,omitempty" validate:"omitempty,uuid"`
	Code        string          `json:"codigo,omitempty"`
	Description string          `json:"descricao,omitempty" validate:"max=120"`
	NCM         string          `json:"ncm,omitempty" validate:"omitempty,numeric,len=8"`
	CFOP        string          `json:"cfop,omitempty" validate:"omitempty,numeric,len=4"`
	Unit        string          `json:"unidade,omitempty" validate:"max=6"`
	Quantity    decimal.Decimal `json:"quantidade"`
	UnitPrice   decimal.Decimal `json:"valor_unitario"`
	EAN         string          `json:"ean,omitempty"`
	Origin      string          `json:"origem,omitempty" validate:"omitempty,numeric,len=1"`
	CSOSN       string          `json:"csosn,omitempty"`
	CSTPIS      string          `json:"cst_pis,omitempty"`
	CSTCOFINS   string          `json:"cst_cofins,omitempty"`
}

// InvoiceResponse cabeçalho da nota (sem os XML) para listagens e detalhe.
type InvoiceResponse struct {
	ID                string          `json:"id"`
	Number            string          `json:"numero"`
	Series            string          `json:"serie"`
	OperationNature   string          `json:"natureza_operacao"`
	OperationType     string          `json:"tipo_saida"`
	Purpose           string          `json:"finalidade"`
	PresenceIndicator string          `json:"indicador_presenca"`
	IssueDate         string          `json:"data_emissao"`
	IssueTime         string          `json:"hora_emissao"`
	ExitDate          string          `json:"data_saida,omitempty"`
	ExitTime          string          `json:"hora_saida,omitempty"`
	DestName          string          `json:"dest_nome"`
	DestPersonType    string          `json:"dest_tipo_pessoa"`
	DestTaxID         string          `json:"dest_cpf_cnpj"`
	DestUF            string          `json:"dest_uf,omitempty"`
	DestCity          string          `json:"dest_municipio,omitempty"`
	FinalConsumer     bool            `json:"consumidor_final"`
	ProductsTotal     decimal.Decimal `json:"total_produtos"`
	Freight           decimal.Decimal `json:"valor_frete"`
	Insurance         decimal.Decimal `json:"valor_seguro"`
	OtherExpenses     decimal.Decimal `json:"outras_despesas"`
	Discount          decimal.Decimal `json:"desconto"`
	Total             decimal.Decimal `json:"total_nota"`
	FreightMode       string          `json:"modalidade_frete"`
	AdditionalInfo    string          `json:"informacoes_complementares,omitempty"`
	Status            string          `json:"status"`
	Environment       string          `json:"ambiente,omitempty"`
	AccessKey         string          `json:"chave_acesso,omitempty"`
	Protocol          string          `json:"protocolo,omitempty"`
	Receipt           string          `json:"recibo,omitempty"`
	StatusCode        string          `json:"codigo_status,omitempty"`
	RejectionReason   string          `json:"motivo_rejeicao,omitempty"`
	ReceivedAt        string          `json:"dh_recebimento,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// InvoiceItemResponse linha da nota na resposta.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"`
	Position    int             `json:"posicao"`
	Code        string          `json:"codigo"`
	Description string          `json:"descricao"`
	NCM         string          `json:"ncm"`
	CFOP        string          `json:"cfop"`
	Unit        string          `json:"unidade"`
	Quantity    decimal.Decimal `json:"quantidade"`
	UnitPrice   decimal.Decimal `json:"valor_unitario"`
	Total       decimal.Decimal `json:"valor_total"`
	EAN         string          `json:"ean"`
	Origin      string          `json:"origem"`
	CSOSN       string          `json:"csosn"`
	CSTPIS      string          `json:"cst_pis"`
	CSTCOFINS   string          `json:"cst_cofins"`
}

// InvoiceDetailResponse GET /api/invoices/:id: cabeçalho + itens.
type InvoiceDetailResponse struct {
	Invoice InvoiceResponse       `json:"invoice"`
	Items   []InvoiceItemResponse `json:"items"`
}

// InvoiceListResponse lista paginada de notas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// EmitRequest body para POST /api/invoices/:id/emit.
type EmitRequest struct {
	Environment string `json:"ambiente" validate:"omitempty,oneof=1 2"`
}

// EmitResponse resultado da emissão (mesmo formato para sucesso e rejeição).
type EmitResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	AccessKey string `json:"chaveAcesso,omitempty"`
	Protocol  string `json:"protocolo,omitempty"`
	Status    string `json:"status,omitempty"`
}
