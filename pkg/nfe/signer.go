package nfe

import (
	"crypto/tls"
	"fmt"
	"time"
)

// CertificateData é o material extraído de um certificado A1 (.pfx). Vive apenas
// em memória durante uma emissão; nunca é persistido decodificado.
type CertificateData struct {
	CertificatePEM string
	PrivateKeyPEM  string
	Subject        string // CN
	NotBefore      time.Time
	NotAfter       time.Time
}

// ExpiredAt indica se o certificado já venceu no instante informado.
func (c *CertificateData) ExpiredAt(now time.Time) bool {
	return now.After(c.NotAfter)
}

// TLSCertificate monta a credencial de cliente para o mTLS com a SEFAZ.
func (c *CertificateData) TLSCertificate() (tls.Certificate, error) {
	cert, err := tls.X509KeyPair([]byte(c.CertificatePEM), []byte(c.PrivateKeyPEM))
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("nfe: montar par TLS: %w", err)
	}
	return cert, nil
}

// CertificateExtractor decodifica o PKCS#12 armazenado (base64 + senha).
type CertificateExtractor interface {
	Extract(pfxBase64, password string) (*CertificateData, error)
}

// Signer assina o XML da NF-e e devolve o documento com <Signature> logo após infNFe.
type Signer interface {
	Sign(xmlBytes []byte, cert *CertificateData) ([]byte, error)
}
