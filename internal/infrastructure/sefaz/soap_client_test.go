package sefaz_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/nfe-emissor/internal/infrastructure/sefaz"
	"github.com/jhoicas/nfe-emissor/pkg/nfe"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func clientCertificate(t *testing.T) *nfe.CertificateData {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "EMPRESA TESTE LTDA:11222333000181"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return &nfe.CertificateData{
		CertificatePEM: string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})),
		PrivateKeyPEM:  string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})),
		Subject:        tmpl.Subject.CommonName,
		NotBefore:      tmpl.NotBefore,
		NotAfter:       tmpl.NotAfter,
	}
}

type capturedRequest struct {
	contentType string
	body        string
}

// fakeAuthority sobe um servidor TLS que responde sempre com status/body fixos.
func fakeAuthority(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	var mu sync.Mutex
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		captured.contentType = r.Header.Get("Content-Type")
		captured.body = string(raw)
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func clientFor(url string, opts ...sefaz.ClientOption) *sefaz.SOAPSefazClient {
	resolver := sefaz.WithEndpointResolver(func(uf, env, service string) (sefaz.Endpoint, error) {
		ep, err := sefaz.ResolveEndpoint(uf, env, service)
		if err != nil {
			return ep, err
		}
		ep.URL = url
		return ep, nil
	})
	return sefaz.NewSOAPSefazClient(sefaz.DefaultTransportConfig(), zerolog.Nop(), append([]sefaz.ClientOption{resolver}, opts...)...)
}

func envelope(inner string) string {
	return `<?xml version="1.0" encoding="utf-8"?>` +
		`<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope"><soap:Body>` +
		`<nfeResultMsg xmlns="http://www.portalfiscal.inf.br/nfe/wsdl/NFeAutorizacao4">` + inner + `</nfeResultMsg>` +
		`</soap:Body></soap:Envelope>`
}

const signedDoc = `<?xml version="1.0" encoding="UTF-8"?><NFe xmlns="http://www.portalfiscal.inf.br/nfe"><infNFe versao="4.00" Id="NFe1"></infNFe></NFe>`

const authorizedRet = `<retEnviNFe versao="4.00" xmlns="http://www.portalfiscal.inf.br/nfe">` +
	`<tpAmb>2</tpAmb><cStat>104</cStat><xMotivo>Lote processado</xMotivo><cUF>35</cUF>` +
	`<protNFe versao="4.00"><infProt><tpAmb>2</tpAmb><chNFe>35240311222333000181550010000001231123456788</chNFe>` +
	`<dhRecbto>2024-03-15T10:31:02-03:00</dhRecbto><nProt>135240000012345</nProt>` +
	`<cStat>100</cStat><xMotivo>Autorizado o uso da NF-e</xMotivo></infProt></protNFe></retEnviNFe>`

// ─────────────────────────────────────────────────────────────────────────────
// Submit
// ─────────────────────────────────────────────────────────────────────────────

func TestSubmit_AuthorizedSynchronously(t *testing.T) {
	srv, captured := fakeAuthority(t, http.StatusOK, envelope(authorizedRet))
	fixed := time.UnixMilli(1710509462123)
	client := clientFor(srv.URL, sefaz.WithClock(func() time.Time { return fixed }))

	res := client.Submit(context.Background(), []byte(signedDoc), "SP", "2", clientCertificate(t))

	require.NotNil(t, res)
	assert.True(t, res.Success)
	assert.Equal(t, "100", res.StatusCode)
	assert.Equal(t, "Autorizado o uso da NF-e", res.Reason)
	assert.Equal(t, "135240000012345", res.Protocol)
	assert.Equal(t, "2024-03-15T10:31:02-03:00", res.ReceivedAt)
	assert.Contains(t, res.RawResponse, "<nProt>135240000012345</nProt>")

	assert.Equal(t, "application/soap+xml; charset=utf-8", captured.contentType)
	assert.Contains(t, captured.body, `<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope" xmlns:nfe="http://www.portalfiscal.inf.br/nfe/wsdl/NFeAutorizacao4">`)
	assert.Contains(t, captured.body, `<enviNFe xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00"><idLote>1710509462123</idLote><indSinc>1</indSinc><NFe xmlns=`)
	assert.Equal(t, 1, strings.Count(captured.body, "<?xml"), "a declaração da NF-e não pode ir dentro do lote")
}

func TestSubmit_ProtocolRejected(t *testing.T) {
	ret := strings.Replace(authorizedRet, "<cStat>100</cStat><xMotivo>Autorizado o uso da NF-e</xMotivo>",
		"<cStat>302</cStat><xMotivo>Uso Denegado</xMotivo>", 1)
	srv, _ := fakeAuthority(t, http.StatusOK, envelope(ret))

	res := clientFor(srv.URL).Submit(context.Background(), []byte(signedDoc), "SP", "2", clientCertificate(t))

	assert.False(t, res.Success)
	assert.Equal(t, "302", res.StatusCode)
	assert.Equal(t, "Uso Denegado", res.Reason)
}

func TestSubmit_BatchReceivedReturnsReceipt(t *testing.T) {
	ret := `<retEnviNFe xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00"><tpAmb>2</tpAmb>` +
		`<cStat>103</cStat><xMotivo>Lote recebido com sucesso</xMotivo>` +
		`<infRec><nRec>351000012345678</nRec><tMed>1</tMed></infRec></retEnviNFe>`
	srv, _ := fakeAuthority(t, http.StatusOK, envelope(ret))

	res := clientFor(srv.URL).Submit(context.Background(), []byte(signedDoc), "RJ", "2", clientCertificate(t))

	assert.False(t, res.Success)
	assert.Equal(t, "103", res.StatusCode)
	assert.Equal(t, "351000012345678", res.Receipt)
}

func TestSubmit_Rejection(t *testing.T) {
	ret := `<retEnviNFe xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">` +
		`<cStat>225</cStat><xMotivo>Rejeicao: Falha no Schema XML</xMotivo></retEnviNFe>`
	srv, _ := fakeAuthority(t, http.StatusOK, envelope(ret))

	res := clientFor(srv.URL).Submit(context.Background(), []byte(signedDoc), "SP", "2", clientCertificate(t))

	assert.False(t, res.Success)
	assert.Equal(t, "225", res.StatusCode)
	assert.Equal(t, "Rejeicao: Falha no Schema XML", res.Reason)
	assert.Empty(t, res.Protocol)
}

func TestSubmit_ParsesBodyOnHTTPError(t *testing.T) {
	ret := `<retEnviNFe xmlns="http://www.portalfiscal.inf.br/nfe"><cStat>215</cStat><xMotivo>Rejeicao</xMotivo></retEnviNFe>`
	srv, _ := fakeAuthority(t, http.StatusInternalServerError, envelope(ret))

	res := clientFor(srv.URL).Submit(context.Background(), []byte(signedDoc), "SP", "2", clientCertificate(t))

	assert.Equal(t, "215", res.StatusCode)
}

func TestSubmit_BareReturnWithoutEnvelope(t *testing.T) {
	srv, _ := fakeAuthority(t, http.StatusOK, authorizedRet)

	res := clientFor(srv.URL).Submit(context.Background(), []byte(signedDoc), "SP", "2", clientCertificate(t))

	assert.True(t, res.Success)
	assert.Equal(t, "135240000012345", res.Protocol)
}

func TestSubmit_Latin1Response(t *testing.T) {
	body := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>" +
		"<soap:Envelope xmlns:soap=\"http://www.w3.org/2003/05/soap-envelope\"><soap:Body><nfeResultMsg>" +
		"<retEnviNFe><cStat>539</cStat><xMotivo>Rejei\xe7\xe3o: Duplicidade</xMotivo></retEnviNFe>" +
		"</nfeResultMsg></soap:Body></soap:Envelope>"
	srv, _ := fakeAuthority(t, http.StatusOK, body)

	res := clientFor(srv.URL).Submit(context.Background(), []byte(signedDoc), "SP", "2", clientCertificate(t))

	assert.Equal(t, "539", res.StatusCode)
	assert.Equal(t, "Rejeição: Duplicidade", res.Reason)
}

func TestSubmit_TransportFailuresMapTo999(t *testing.T) {
	cert := clientCertificate(t)

	t.Run("resposta vazia", func(t *testing.T) {
		srv, _ := fakeAuthority(t, http.StatusOK, "  ")
		res := clientFor(srv.URL).Submit(context.Background(), []byte(signedDoc), "SP", "2", cert)
		assert.Equal(t, "999", res.StatusCode)
		assert.Equal(t, "SEFAZ retornou resposta vazia", res.Reason)
	})

	t.Run("XML malformado", func(t *testing.T) {
		srv, _ := fakeAuthority(t, http.StatusOK, "not xml <<<")
		res := clientFor(srv.URL).Submit(context.Background(), []byte(signedDoc), "SP", "2", cert)
		assert.Equal(t, "999", res.StatusCode)
		assert.True(t, strings.HasPrefix(res.Reason, "Erro ao interpretar resposta SEFAZ: "), res.Reason)
	})

	t.Run("SOAP 1.2 Fault", func(t *testing.T) {
		fault := `<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope"><soap:Body><soap:Fault>` +
			`<soap:Code><soap:Value>soap:Receiver</soap:Value></soap:Code>` +
			`<soap:Reason><soap:Text xml:lang="pt">Certificado revogado</soap:Text></soap:Reason>` +
			`</soap:Fault></soap:Body></soap:Envelope>`
		srv, _ := fakeAuthority(t, http.StatusInternalServerError, fault)
		res := clientFor(srv.URL).Submit(context.Background(), []byte(signedDoc), "SP", "2", cert)
		assert.Equal(t, "999", res.StatusCode)
		assert.Equal(t, "Erro SEFAZ (SOAP Fault): Certificado revogado", res.Reason)
	})

	t.Run("resposta sem retEnviNFe", func(t *testing.T) {
		srv, _ := fakeAuthority(t, http.StatusOK, envelope("<outro/>"))
		res := clientFor(srv.URL).Submit(context.Background(), []byte(signedDoc), "SP", "2", cert)
		assert.Equal(t, "999", res.StatusCode)
		assert.Equal(t, "Não foi possível interpretar a resposta da SEFAZ. Verifique os dados do emitente e do certificado.", res.Reason)
	})

	t.Run("falha de conexão", func(t *testing.T) {
		srv, _ := fakeAuthority(t, http.StatusOK, "")
		url := srv.URL
		srv.Close()
		res := clientFor(url).Submit(context.Background(), []byte(signedDoc), "SP", "2", cert)
		assert.Equal(t, "999", res.StatusCode)
		assert.True(t, strings.HasPrefix(res.Reason, "Erro de comunicação: "), res.Reason)
	})

	t.Run("certificado inválido", func(t *testing.T) {
		srv, _ := fakeAuthority(t, http.StatusOK, envelope(authorizedRet))
		res := clientFor(srv.URL).Submit(context.Background(), []byte(signedDoc), "SP", "2", &nfe.CertificateData{})
		assert.Equal(t, "999", res.StatusCode)
		assert.False(t, res.Success)
	})
}

func TestSubmit_PreferIPv4(t *testing.T) {
	srv, _ := fakeAuthority(t, http.StatusOK, envelope(authorizedRet))
	cfg := sefaz.DefaultTransportConfig()
	cfg.PreferIPv4 = true
	client := sefaz.NewSOAPSefazClient(cfg, zerolog.Nop(), sefaz.WithEndpointResolver(func(_, _, _ string) (sefaz.Endpoint, error) {
		return sefaz.Endpoint{URL: srv.URL, ResultWrapper: "nfeResultMsg", SOAPNamespace: "urn:x"}, nil
	}))

	res := client.Submit(context.Background(), []byte(signedDoc), "SP", "2", clientCertificate(t))
	assert.True(t, res.Success)
}

// ─────────────────────────────────────────────────────────────────────────────
// PollReceipt
// ─────────────────────────────────────────────────────────────────────────────

func TestPollReceipt_Authorized(t *testing.T) {
	ret := `<retConsReciNFe versao="4.00" xmlns="http://www.portalfiscal.inf.br/nfe"><tpAmb>2</tpAmb>` +
		`<nRec>351000012345678</nRec><cStat>104</cStat><xMotivo>Lote processado</xMotivo>` +
		`<protNFe versao="4.00"><infProt><nProt>135240000099999</nProt><dhRecbto>2024-03-15T10:32:00-03:00</dhRecbto>` +
		`<cStat>100</cStat><xMotivo>Autorizado o uso da NF-e</xMotivo></infProt></protNFe></retConsReciNFe>`
	srv, captured := fakeAuthority(t, http.StatusOK, envelope(ret))

	res := clientFor(srv.URL).PollReceipt(context.Background(), "351000012345678", "SP", "2", clientCertificate(t))

	assert.True(t, res.Success)
	assert.Equal(t, "135240000099999", res.Protocol)
	assert.Equal(t, "2024-03-15T10:32:00-03:00", res.ReceivedAt)
	assert.NotEmpty(t, res.RawResponse)
	assert.Contains(t, captured.body, `xmlns:nfe="http://www.portalfiscal.inf.br/nfe/wsdl/NFeRetAutorizacao4"`)
	assert.Contains(t, captured.body, `<consReciNFe xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00"><tpAmb>2</tpAmb><nRec>351000012345678</nRec></consReciNFe>`)
}

func TestPollReceipt_StillProcessing(t *testing.T) {
	ret := `<retConsReciNFe xmlns="http://www.portalfiscal.inf.br/nfe"><cStat>105</cStat><xMotivo>Lote em processamento</xMotivo></retConsReciNFe>`
	srv, _ := fakeAuthority(t, http.StatusOK, envelope(ret))

	res := clientFor(srv.URL).PollReceipt(context.Background(), "1", "SP", "2", clientCertificate(t))

	assert.False(t, res.Success)
	assert.Equal(t, "105", res.StatusCode)
	assert.Equal(t, "Lote em processamento", res.Reason)
}

func TestPollReceipt_Unparseable(t *testing.T) {
	srv, _ := fakeAuthority(t, http.StatusOK, envelope("<nada/>"))

	res := clientFor(srv.URL).PollReceipt(context.Background(), "1", "SP", "2", clientCertificate(t))

	assert.Equal(t, "999", res.StatusCode)
	assert.Equal(t, "Não foi possível interpretar a resposta da consulta", res.Reason)
}
