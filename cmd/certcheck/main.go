// certcheck diagnostica um certificado A1 (.pfx) antes do upload.
//
// Uso: go run ./cmd/certcheck caminho/certificado.pfx
// A senha vem de CERT_PASSWORD.
package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/nfe-emissor/internal/infrastructure/sefaz/signer"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: certcheck <arquivo.pfx>  (senha em CERT_PASSWORD)")
		os.Exit(2)
	}
	certPath := os.Args[1]
	certPass := os.Getenv("CERT_PASSWORD")

	fmt.Println("DIAGNÓSTICO DE CERTIFICADO A1")
	fmt.Println("-----------------------------")
	fmt.Printf("Arquivo: %s\n", certPath)

	pfx, err := os.ReadFile(certPath)
	if err != nil {
		fmt.Printf("ERRO DE ARQUIVO: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Tamanho: %d bytes\n", len(pfx))

	cert, err := signer.NewPKCS12Extractor().Extract(base64.StdEncoding.EncodeToString(pfx), certPass)
	if err != nil {
		if errors.Is(err, signer.ErrIncorrectPassword) {
			fmt.Println("ERRO: senha incorreta (confira CERT_PASSWORD)")
		} else {
			fmt.Printf("ERRO DE FORMATO: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Titular (CN): %s\n", cert.Subject)
	fmt.Printf("Válido de %s até %s\n", cert.NotBefore.Format("02/01/2006"), cert.NotAfter.Format("02/01/2006"))

	if cert.ExpiredAt(time.Now()) {
		fmt.Println("ERRO: certificado expirado")
		os.Exit(1)
	}
	if _, err := cert.TLSCertificate(); err != nil {
		fmt.Printf("ERRO: par chave/certificado inválido para TLS: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK: certificado pronto para emissão (%d dias restantes)\n", int(time.Until(cert.NotAfter).Hours()/24))
}
