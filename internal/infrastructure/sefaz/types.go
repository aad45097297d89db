// Package sefaz implementa a geração do XML da NF-e 4.00 (modelo 55) e o transporte
// SOAP 1.2 com os web services autorizadores (SEFAZ estaduais e SVRS).
package sefaz

import (
	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
)

// BuildInput dados necessários para montar o XML da NF-e.
type BuildInput struct {
	Invoice     *entity.Invoice
	Items       []*entity.InvoiceItem
	Emitter     *entity.Emitter
	Environment string // tpAmb: "1" produção, "2" homologação
}

// BuildResult XML sem assinatura e os identificadores gerados nesta montagem.
type BuildResult struct {
	XML         []byte
	AccessKey   string
	NumericCode string
}

// AuthorityResult veredito normalizado de uma chamada à SEFAZ.
// Falhas de transporte viram StatusCode "999"; nunca são devolvidas como error.
type AuthorityResult struct {
	Success     bool
	StatusCode  string // cStat
	Reason      string // xMotivo
	Protocol    string // nProt
	ReceivedAt  string // dhRecbto
	RawResponse string // resposta completa quando há protNFe
	Receipt     string // nRec (lote em processamento, cStat 103)
}

// Códigos de situação tratados pelo emissor.
const (
	StatusAuthorized     = "100"
	StatusBatchReceived  = "103"
	StatusBatchProcessed = "104"
	StatusTransportError = "999"
)

func transportError(reason string) *AuthorityResult {
	return &AuthorityResult{Success: false, StatusCode: StatusTransportError, Reason: reason}
}
