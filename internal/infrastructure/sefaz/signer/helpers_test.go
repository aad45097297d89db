package signer

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"software.sslmate.com/src/go-pkcs12"
)

// newTestCertificate gera um par autoassinado no formato de um e-CNPJ A1.
func newTestCertificate(t *testing.T, notBefore, notAfter time.Time) (*rsa.PrivateKey, *x509.Certificate) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject: pkix.Name{
			CommonName:   "EMPRESA TESTE LTDA:11222333000181",
			Organization: []string{"ICP-Brasil"},
			Country:      []string{"BR"},
		},
		NotBefore:   notBefore,
		NotAfter:    notAfter,
		KeyUsage:    x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	return key, cert
}

func encodePFX(t *testing.T, enc *pkcs12.Encoder, key *rsa.PrivateKey, cert *x509.Certificate, password string) string {
	t.Helper()
	pfx, err := enc.Encode(key, cert, nil, password)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(pfx)
}

func validWindow() (time.Time, time.Time) {
	now := time.Now().UTC().Truncate(time.Second)
	return now.Add(-24 * time.Hour), now.Add(365 * 24 * time.Hour)
}
