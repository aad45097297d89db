// Assinatura XML-DSig enveloped da NF-e. Insere <Signature> como irmão seguinte de infNFe.

package signer

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1" //nolint:gosec // algoritmo exigido pelo leiaute NF-e 4.00
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/jhoicas/nfe-emissor/pkg/nfe"
	dsig "github.com/russellhaering/goxmldsig"
	"github.com/ucarion/c14n"
)

// XMLSignatureService implementa nfe.Signer para o leiaute NF-e 4.00.
type XMLSignatureService struct{}

// NewXMLSignatureService cria o serviço.
func NewXMLSignatureService() *XMLSignatureService {
	return &XMLSignatureService{}
}

// Sign assina o elemento com Id="NFe..." e devolve o documento completo.
// Em caso de erro nada é devolvido.
func (s *XMLSignatureService) Sign(xmlBytes []byte, cert *nfe.CertificateData) ([]byte, error) {
	if len(bytes.TrimSpace(xmlBytes)) == 0 {
		return nil, fmt.Errorf("nfe: XML vazio")
	}
	priv, certDER, err := parseKeyPair(cert)
	if err != nil {
		return nil, fmt.Errorf("nfe: %w", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, fmt.Errorf("nfe: parsear XML: %w", err)
	}
	target := findSignedElement(doc.Root())
	if target == nil {
		return nil, fmt.Errorf("nfe: não foi possível encontrar o Id da infNFe no XML")
	}
	id := target.SelectAttrValue("Id", "")

	// 1) Digest do elemento referenciado (C14N inclusivo, SHA-1)
	digest, err := digestElement(target)
	if err != nil {
		return nil, err
	}

	// 2) SignedInfo
	sig := etree.NewElement("Signature")
	sig.CreateAttr("xmlns", NamespaceDS)
	signedInfo := buildSignedInfo(sig, "#"+id, digest)

	// 3) SignatureValue sobre o SignedInfo canônico (namespace herdado de Signature)
	canonicalSignedInfo, err := canonicalSignedInfo(signedInfo)
	if err != nil {
		return nil, fmt.Errorf("nfe: canonicalizar SignedInfo: %w", err)
	}
	hashed := sha1.Sum(canonicalSignedInfo) //nolint:gosec
	value, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA1, hashed[:])
	if err != nil {
		return nil, fmt.Errorf("nfe: assinar SignedInfo: %w", err)
	}
	sig.CreateElement("SignatureValue").SetText(base64.StdEncoding.EncodeToString(value))

	// 4) KeyInfo (DER em base64, sem armadura PEM)
	sig.CreateElement("KeyInfo").
		CreateElement("X509Data").
		CreateElement("X509Certificate").
		SetText(base64.StdEncoding.EncodeToString(certDER))

	// 5) Irmão seguinte do elemento assinado
	parent := target.Parent()
	if parent == nil {
		return nil, fmt.Errorf("nfe: o elemento %s não pode ser a raiz do documento", target.Tag)
	}
	parent.InsertChildAt(target.Index()+1, sig)

	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("nfe: serializar XML assinado: %w", err)
	}
	return out.Bytes(), nil
}

// findSignedElement busca em profundidade o primeiro elemento com Id="NFe...".
func findSignedElement(el *etree.Element) *etree.Element {
	if el == nil {
		return nil
	}
	if strings.HasPrefix(el.SelectAttrValue("Id", ""), SignedElementIDPrefix) {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := findSignedElement(child); found != nil {
			return found
		}
	}
	return nil
}

// digestElement canonicaliza uma cópia do elemento com o namespace padrão herdado
// declarado explicitamente, como faz o C14N inclusivo de um subconjunto do documento.
func digestElement(el *etree.Element) (string, error) {
	subset := el.Copy()
	if ns := el.NamespaceURI(); ns != "" && subset.SelectAttr("xmlns") == nil {
		subset.CreateAttr("xmlns", ns)
	}
	canonical, err := dsig.MakeC14N10RecCanonicalizer().Canonicalize(subset)
	if err != nil {
		return "", fmt.Errorf("nfe: canonicalizar %s: %w", el.Tag, err)
	}
	sum := sha1.Sum(canonical) //nolint:gosec
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func buildSignedInfo(sig *etree.Element, uri, digest string) *etree.Element {
	si := sig.CreateElement("SignedInfo")
	si.CreateElement("CanonicalizationMethod").CreateAttr("Algorithm", AlgC14N)
	si.CreateElement("SignatureMethod").CreateAttr("Algorithm", AlgRSASHA1)

	ref := si.CreateElement("Reference")
	ref.CreateAttr("URI", uri)
	transforms := ref.CreateElement("Transforms")
	transforms.CreateElement("Transform").CreateAttr("Algorithm", TransformEnveloped)
	transforms.CreateElement("Transform").CreateAttr("Algorithm", AlgC14N)
	ref.CreateElement("DigestMethod").CreateAttr("Algorithm", AlgSHA1)
	ref.CreateElement("DigestValue").SetText(digest)
	return si
}

// canonicalSignedInfo serializa o SignedInfo com o xmlns do Signature e aplica C14N.
func canonicalSignedInfo(si *etree.Element) ([]byte, error) {
	standalone := si.Copy()
	standalone.CreateAttr("xmlns", NamespaceDS)
	doc := etree.NewDocument()
	doc.SetRoot(standalone)
	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, err
	}
	return canonicalizeXML(raw)
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

var _ nfe.Signer = (*XMLSignatureService)(nil)
