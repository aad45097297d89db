// Extração de certificado A1 a partir do .pfx (PKCS#12) armazenado em base64.

package signer

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/nfe-emissor/pkg/nfe"

	"software.sslmate.com/src/go-pkcs12"
)

// ErrIncorrectPassword senha do .pfx não confere.
var ErrIncorrectPassword = errors.New("senha do certificado incorreta")

// PKCS12Extractor implementa nfe.CertificateExtractor. Não guarda estado: cada
// chamada decodifica o material novamente.
type PKCS12Extractor struct{}

// NewPKCS12Extractor cria o extrator.
func NewPKCS12Extractor() *PKCS12Extractor {
	return &PKCS12Extractor{}
}

// Extract decodifica o .pfx e devolve certificado (PEM), chave privada (PKCS#8 PEM),
// CN do titular e período de validade.
func (e *PKCS12Extractor) Extract(pfxBase64, password string) (*nfe.CertificateData, error) {
	data, err := decodeBase64(pfxBase64)
	if err != nil {
		return nil, fmt.Errorf("certificado: base64 inválido: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("certificado: arquivo PFX vazio")
	}

	key, leaf, _, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		if errors.Is(err, pkcs12.ErrIncorrectPassword) {
			return nil, ErrIncorrectPassword
		}
		return nil, fmt.Errorf("certificado: não foi possível extrair chave privada ou certificado do arquivo PFX: %w", err)
	}
	if key == nil || leaf == nil {
		return nil, errors.New("certificado: não foi possível extrair chave privada ou certificado do arquivo PFX")
	}

	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("certificado: serializar chave privada: %w", err)
	}

	return &nfe.CertificateData{
		CertificatePEM: string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: leaf.Raw})),
		PrivateKeyPEM:  string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})),
		Subject:        leaf.Subject.CommonName,
		NotBefore:      leaf.NotBefore,
		NotAfter:       leaf.NotAfter,
	}, nil
}

// decodeBase64 aceita base64 puro ou data URL ("data:application/x-pkcs12;base64,...").
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ";base64,"); i >= 0 && strings.HasPrefix(s, "data:") {
		s = s[i+len(";base64,"):]
	}
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
	return base64.StdEncoding.DecodeString(s)
}

// parseKeyPair recupera chave RSA e certificado DER a partir do material PEM extraído.
func parseKeyPair(cert *nfe.CertificateData) (*rsa.PrivateKey, []byte, error) {
	if cert == nil {
		return nil, nil, errors.New("certificado não informado")
	}
	certBlock, _ := pem.Decode([]byte(cert.CertificatePEM))
	if certBlock == nil {
		return nil, nil, errors.New("certificado PEM inválido")
	}
	keyBlock, _ := pem.Decode([]byte(cert.PrivateKeyPEM))
	if keyBlock == nil {
		return nil, nil, errors.New("chave privada PEM inválida")
	}
	key, err := x509.ParsePKCS8PrivateKey(keyBlock.Bytes)
	if err != nil {
		// chaves legadas em PKCS#1
		rsaKey, errPKCS1 := x509.ParsePKCS1PrivateKey(keyBlock.Bytes)
		if errPKCS1 != nil {
			return nil, nil, fmt.Errorf("parsear chave privada: %w", err)
		}
		key = rsaKey
	}
	sk, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, nil, errors.New("a chave privada do certificado deve ser RSA")
	}
	return sk, certBlock.Bytes, nil
}

var _ nfe.CertificateExtractor = (*PKCS12Extractor)(nil)
