// Constantes XML-DSig exigidas pelo leiaute NF-e 4.00 (assinatura enveloped, RSA-SHA1).

package signer

// Namespaces e algoritmos XMLDSig.
const (
	NamespaceDS        = "http://www.w3.org/2000/09/xmldsig#"
	AlgC14N            = "http://www.w3.org/TR/2001/REC-xml-c14n-20010315"
	AlgRSASHA1         = "http://www.w3.org/2000/09/xmldsig#rsa-sha1"
	AlgSHA1            = "http://www.w3.org/2000/09/xmldsig#sha1"
	TransformEnveloped = "http://www.w3.org/2000/09/xmldsig#enveloped-signature"
)

// Prefixo do atributo Id do elemento assinado (infNFe).
const SignedElementIDPrefix = "NFe"
