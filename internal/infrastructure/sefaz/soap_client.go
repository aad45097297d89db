package sefaz

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/nfe-emissor/pkg/nfe"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
)

// ── Configuração de transporte ────────────────────────────────────────────────

const (
	soap12NS           = "http://www.w3.org/2003/05/soap-envelope"
	soapContentType    = "application/soap+xml; charset=utf-8"
	defaultTimeout     = 30 * time.Second
	defaultMaxResponse = 1 << 20 // 1 MiB
)

// TransportConfig parâmetros da conexão mTLS com os autorizadores.
type TransportConfig struct {
	Timeout time.Duration
	// PreferIPv4 disca primeiro em tcp4 e só cai para a família padrão se falhar.
	PreferIPv4 bool
	// InsecureSkipVerify desativa a verificação da cadeia do servidor
	// (várias SEFAZ usam a ICP-Brasil, ausente dos trust stores comuns).
	InsecureSkipVerify bool
	MaxResponseBytes   int64
}

// DefaultTransportConfig valores usados em produção.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		Timeout:            defaultTimeout,
		InsecureSkipVerify: true,
		MaxResponseBytes:   defaultMaxResponse,
	}
}

// ── Port (interface) ──────────────────────────────────────────────────────────

// SefazSubmitter define o port de saída para os serviços de autorização.
// A implementação concreta usa SOAP 1.2; nos testes injeta-se um mock.
type SefazSubmitter interface {
	// Submit envia a NF-e assinada num lote síncrono (NFeAutorizacao4).
	Submit(ctx context.Context, signedXML []byte, uf, environment string, cert *nfe.CertificateData) *AuthorityResult
	// PollReceipt consulta o recibo de um lote assíncrono (NFeRetAutorizacao4).
	PollReceipt(ctx context.Context, receipt, uf, environment string, cert *nfe.CertificateData) *AuthorityResult
}

// ── Implementação SOAP ────────────────────────────────────────────────────────

// SOAPSefazClient implementa SefazSubmitter sobre net/http com certificado de cliente.
type SOAPSefazClient struct {
	cfg     TransportConfig
	logger  zerolog.Logger
	resolve func(uf, environment, service string) (Endpoint, error)
	now     func() time.Time
}

// ClientOption personaliza o cliente.
type ClientOption func(*SOAPSefazClient)

// WithEndpointResolver substitui a tabela de roteamento (usado em testes e proxies).
func WithEndpointResolver(fn func(uf, environment, service string) (Endpoint, error)) ClientOption {
	return func(c *SOAPSefazClient) { c.resolve = fn }
}

// WithClock fixa o relógio usado no idLote.
func WithClock(now func() time.Time) ClientOption {
	return func(c *SOAPSefazClient) { c.now = now }
}

// NewSOAPSefazClient constrói o cliente. Campos zerados da configuração assumem os padrões.
func NewSOAPSefazClient(cfg TransportConfig, logger zerolog.Logger, opts ...ClientOption) *SOAPSefazClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxResponseBytes <= 0 {
		cfg.MaxResponseBytes = defaultMaxResponse
	}
	c := &SOAPSefazClient{
		cfg:     cfg,
		logger:  logger,
		resolve: ResolveEndpoint,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Estruturas SOAP de requisição ─────────────────────────────────────────────

type soapRequestEnvelope struct {
	XMLName     xml.Name        `xml:"soap12:Envelope"`
	XmlnsSoap12 string          `xml:"xmlns:soap12,attr"`
	XmlnsNFe    string          `xml:"xmlns:nfe,attr"`
	Body        soapRequestBody `xml:"soap12:Body"`
}

type soapRequestBody struct {
	Msg nfeDadosMsg `xml:"nfe:nfeDadosMsg"`
}

type nfeDadosMsg struct {
	Content string `xml:",innerxml"`
}

type enviNFe struct {
	XMLName xml.Name `xml:"enviNFe"`
	Xmlns   string   `xml:"xmlns,attr"`
	Versao  string   `xml:"versao,attr"`
	IDLote  string   `xml:"idLote"`
	IndSinc string   `xml:"indSinc"`
	NFe     string   `xml:",innerxml"` // NF-e assinada, sem declaração XML
}

type consReciNFe struct {
	XMLName xml.Name `xml:"consReciNFe"`
	Xmlns   string   `xml:"xmlns,attr"`
	Versao  string   `xml:"versao,attr"`
	TpAmb   string   `xml:"tpAmb"`
	NRec    string   `xml:"nRec"`
}

// ── Estruturas SOAP de resposta ───────────────────────────────────────────────

type soapResponseEnvelope struct {
	Body soapResponseBody `xml:"Body"`
}

type soapResponseBody struct {
	Fault   *soapFault `xml:"Fault"`
	Content []byte     `xml:",innerxml"`
}

// soapFault cobre SOAP 1.2 (Code/Reason) e SOAP 1.1 (faultcode/faultstring).
type soapFault struct {
	Code struct {
		Value string `xml:"Value"`
	} `xml:"Code"`
	Reason struct {
		Text string `xml:"Text"`
	} `xml:"Reason"`
	FaultCode   string `xml:"faultcode"`
	FaultString string `xml:"faultstring"`
}

func (f *soapFault) message() string {
	switch {
	case strings.TrimSpace(f.FaultString) != "":
		return strings.TrimSpace(f.FaultString)
	case strings.TrimSpace(f.Reason.Text) != "":
		return strings.TrimSpace(f.Reason.Text)
	case strings.TrimSpace(f.Code.Value) != "":
		return strings.TrimSpace(f.Code.Value)
	}
	return "falha sem descrição"
}

// nfeResultMsg wrapper de retorno dos serviços 4.00.
type nfeResultMsg struct {
	RetEnviNFe     *retEnviNFe     `xml:"retEnviNFe"`
	RetConsReciNFe *retConsReciNFe `xml:"retConsReciNFe"`
}

type retEnviNFe struct {
	TpAmb    string   `xml:"tpAmb"`
	CStat    string   `xml:"cStat"`
	XMotivo  string   `xml:"xMotivo"`
	CUF      string   `xml:"cUF"`
	DhRecbto string   `xml:"dhRecbto"`
	InfRec   *infRec  `xml:"infRec"`
	ProtNFe  *protNFe `xml:"protNFe"`
}

type infRec struct {
	NRec string `xml:"nRec"`
	TMed string `xml:"tMed"`
}

type retConsReciNFe struct {
	TpAmb   string    `xml:"tpAmb"`
	NRec    string    `xml:"nRec"`
	CStat   string    `xml:"cStat"`
	XMotivo string    `xml:"xMotivo"`
	ProtNFe []protNFe `xml:"protNFe"`
}

type protNFe struct {
	InfProt infProt `xml:"infProt"`
}

type infProt struct {
	TpAmb    string `xml:"tpAmb"`
	ChNFe    string `xml:"chNFe"`
	DhRecbto string `xml:"dhRecbto"`
	NProt    string `xml:"nProt"`
	DigVal   string `xml:"digVal"`
	CStat    string `xml:"cStat"`
	XMotivo  string `xml:"xMotivo"`
}

// ── Submit ────────────────────────────────────────────────────────────────────

// Submit envia o lote com uma NF-e (indSinc=1). Nunca devolve nil.
func (c *SOAPSefazClient) Submit(ctx context.Context, signedXML []byte, uf, environment string, cert *nfe.CertificateData) *AuthorityResult {
	ep, err := c.resolve(uf, environment, ServiceAuthorization)
	if err != nil {
		return transportError(fmt.Sprintf("Erro de comunicação: %v", err))
	}
	log := c.logger.With().Str("uf", uf).Str("url", ep.URL).Str("service", ep.Service).Logger()

	lote := enviNFe{
		Xmlns:   NsNFe,
		Versao:  nfe.LayoutVersion,
		IDLote:  c.batchID(),
		IndSinc: "1",
		NFe:     string(stripXMLDeclaration(signedXML)),
	}
	raw, err := c.call(ctx, ep, lote, cert)
	if err != nil {
		log.Error().Err(err).Msg("falha de comunicação com a SEFAZ")
		return transportError(fmt.Sprintf("Erro de comunicação: %v", err))
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return transportError("SEFAZ retornou resposta vazia")
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		log.Error().Err(err).Str("body", truncate(raw, 3000)).Msg("resposta SEFAZ ilegível")
		return transportError(fmt.Sprintf("Erro ao interpretar resposta SEFAZ: %v", err))
	}
	if env.Body.Fault != nil {
		return transportError("Erro SEFAZ (SOAP Fault): " + env.Body.Fault.message())
	}
	msg, err := decodeResult(resultContent(env, raw), ep.ResultWrapper)
	if err != nil {
		return transportError(fmt.Sprintf("Erro ao interpretar resposta SEFAZ: %v", err))
	}
	ret := msg.RetEnviNFe
	if ret == nil {
		log.Error().Str("body", truncate(raw, 3000)).Msg("retEnviNFe ausente na resposta")
		return transportError("Não foi possível interpretar a resposta da SEFAZ. Verifique os dados do emitente e do certificado.")
	}

	log.Info().Str("cstat", ret.CStat).Str("xmotivo", ret.XMotivo).Msg("retEnviNFe recebido")

	switch ret.CStat {
	case StatusAuthorized, StatusBatchProcessed:
		if ret.ProtNFe != nil {
			return protocolResult(&ret.ProtNFe.InfProt, ret.CStat, ret.XMotivo, raw)
		}
	case StatusBatchReceived:
		res := &AuthorityResult{StatusCode: ret.CStat, Reason: ret.XMotivo}
		if ret.InfRec != nil {
			res.Receipt = strings.TrimSpace(ret.InfRec.NRec)
		}
		return res
	}
	return &AuthorityResult{StatusCode: ret.CStat, Reason: ret.XMotivo}
}

// ── PollReceipt ───────────────────────────────────────────────────────────────

// PollReceipt consulta o resultado do processamento de um lote. Nunca devolve nil.
func (c *SOAPSefazClient) PollReceipt(ctx context.Context, receipt, uf, environment string, cert *nfe.CertificateData) *AuthorityResult {
	ep, err := c.resolve(uf, environment, ServiceReturnAuthorization)
	if err != nil {
		return transportError(fmt.Sprintf("Erro de comunicação: %v", err))
	}
	log := c.logger.With().Str("uf", uf).Str("url", ep.URL).Str("receipt", receipt).Logger()

	query := consReciNFe{
		Xmlns:  NsNFe,
		Versao: nfe.LayoutVersion,
		TpAmb:  environment,
		NRec:   receipt,
	}
	raw, err := c.call(ctx, ep, query, cert)
	if err != nil {
		log.Error().Err(err).Msg("falha de comunicação na consulta do recibo")
		return transportError(fmt.Sprintf("Erro de comunicação: %v", err))
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return transportError("Não foi possível interpretar a resposta da consulta")
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		return transportError(fmt.Sprintf("Erro ao interpretar resposta da consulta: %v", err))
	}
	if env.Body.Fault != nil {
		return transportError("Erro SEFAZ (SOAP Fault): " + env.Body.Fault.message())
	}
	msg, err := decodeResult(resultContent(env, raw), ep.ResultWrapper)
	if err != nil {
		return transportError(fmt.Sprintf("Erro ao interpretar resposta da consulta: %v", err))
	}
	ret := msg.RetConsReciNFe
	if ret == nil {
		return transportError("Não foi possível interpretar a resposta da consulta")
	}

	log.Info().Str("cstat", ret.CStat).Str("xmotivo", ret.XMotivo).Msg("retConsReciNFe recebido")

	if len(ret.ProtNFe) > 0 {
		return protocolResult(&ret.ProtNFe[0].InfProt, ret.CStat, "", raw)
	}
	return &AuthorityResult{StatusCode: ret.CStat, Reason: ret.XMotivo}
}

// protocolResult normaliza o protNFe: sucesso somente com infProt.cStat 100.
func protocolResult(p *infProt, outerStat, outerReason string, raw []byte) *AuthorityResult {
	stat := strings.TrimSpace(p.CStat)
	if stat == "" {
		stat = outerStat
	}
	reason := p.XMotivo
	if reason == "" {
		reason = outerReason
	}
	return &AuthorityResult{
		Success:     stat == StatusAuthorized,
		StatusCode:  stat,
		Reason:      reason,
		Protocol:    strings.TrimSpace(p.NProt),
		ReceivedAt:  strings.TrimSpace(p.DhRecbto),
		RawResponse: string(raw),
	}
}

// ── HTTP ──────────────────────────────────────────────────────────────────────

// call serializa o envelope, faz o POST mTLS e devolve o corpo (limitado) qualquer que seja o status HTTP.
func (c *SOAPSefazClient) call(ctx context.Context, ep Endpoint, payload any, cert *nfe.CertificateData) ([]byte, error) {
	if cert == nil {
		return nil, errors.New("certificado não informado")
	}
	content, err := xml.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("serializar mensagem: %w", err)
	}
	envelope := soapRequestEnvelope{
		XmlnsSoap12: soap12NS,
		XmlnsNFe:    ep.SOAPNamespace,
		Body:        soapRequestBody{Msg: nfeDadosMsg{Content: string(content)}},
	}
	body, err := xml.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("serializar envelope: %w", err)
	}
	body = append([]byte(xml.Header[:len(xml.Header)-1]), body...)

	httpClient, closeIdle, err := c.httpClient(cert)
	if err != nil {
		return nil, err
	}
	defer closeIdle()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("criar request: %w", err)
	}
	req.Header.Set("Content-Type", soapContentType)

	resp, err := httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("timeout ou cancelamento: %w", ctx.Err())
		}
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("ler resposta: %w", err)
	}
	c.logger.Debug().Int("status", resp.StatusCode).Int("bytes", len(raw)).Str("url", ep.URL).Msg("resposta SEFAZ")
	return raw, nil
}

// httpClient monta um cliente por chamada com o certificado desta emissão.
func (c *SOAPSefazClient) httpClient(cert *nfe.CertificateData) (*http.Client, func(), error) {
	tlsCert, err := cert.TLSCertificate()
	if err != nil {
		return nil, nil, err
	}
	dialer := &net.Dialer{Timeout: c.cfg.Timeout}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			Certificates:       []tls.Certificate{tlsCert},
			InsecureSkipVerify: c.cfg.InsecureSkipVerify, //nolint:gosec // cadeia ICP-Brasil
			Renegotiation:      tls.RenegotiateFreelyAsClient,
			MinVersion:         tls.VersionTLS12,
		},
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: c.cfg.Timeout,
	}
	if c.cfg.PreferIPv4 {
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, "tcp4", addr)
			if err == nil {
				return conn, nil
			}
			return dialer.DialContext(ctx, network, addr)
		}
	}
	return &http.Client{Transport: transport, Timeout: c.cfg.Timeout}, transport.CloseIdleConnections, nil
}

// batchID últimos 15 dígitos do epoch em milissegundos.
func (c *SOAPSefazClient) batchID() string {
	s := strconv.FormatInt(c.now().UnixMilli(), 10)
	if len(s) > 15 {
		s = s[len(s)-15:]
	}
	return s
}

// ── Decodificação ─────────────────────────────────────────────────────────────

func newDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	return dec
}

// charsetReader aceita respostas declaradas em Latin-1 (alguns autorizadores antigos).
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	}
	return nil, fmt.Errorf("charset não suportado: %s", label)
}

func decodeEnvelope(raw []byte) (*soapResponseEnvelope, error) {
	var env soapResponseEnvelope
	if err := newDecoder(bytes.NewReader(raw)).Decode(&env); err != nil {
		return nil, err
	}
	return &env, nil
}

// resultContent devolve o conteúdo do Body; sem Body, o documento inteiro
// (autorizadores que respondem o ret* sem envelope).
func resultContent(env *soapResponseEnvelope, raw []byte) []byte {
	if len(bytes.TrimSpace(env.Body.Content)) > 0 {
		return env.Body.Content
	}
	return raw
}

// decodeResult percorre o conteúdo e decodifica o wrapper do autorizador ou,
// na falta dele, um elemento ret* solto.
func decodeResult(content []byte, wrapper string) (*nfeResultMsg, error) {
	msg := &nfeResultMsg{}
	dec := newDecoder(bytes.NewReader(content))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return msg, nil
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case wrapper:
			if err := dec.DecodeElement(msg, &start); err != nil {
				return nil, err
			}
			return msg, nil
		case "retEnviNFe":
			msg.RetEnviNFe = &retEnviNFe{}
			if err := dec.DecodeElement(msg.RetEnviNFe, &start); err != nil {
				return nil, err
			}
			return msg, nil
		case "retConsReciNFe":
			msg.RetConsReciNFe = &retConsReciNFe{}
			if err := dec.DecodeElement(msg.RetConsReciNFe, &start); err != nil {
				return nil, err
			}
			return msg, nil
		}
	}
}

// stripXMLDeclaration remove o prólogo para embutir a NF-e dentro do enviNFe.
func stripXMLDeclaration(doc []byte) []byte {
	doc = bytes.TrimSpace(doc)
	if bytes.HasPrefix(doc, []byte("<?xml")) {
		if end := bytes.Index(doc, []byte("?>")); end >= 0 {
			doc = bytes.TrimSpace(doc[end+2:])
		}
	}
	return doc
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}

var _ SefazSubmitter = (*SOAPSefazClient)(nil)
