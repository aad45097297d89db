package dto

import "time"

// MaskedSecret substitui o conteúdo do .pfx e a senha em todas as respostas.
const MaskedSecret = "***"

// UploadCertificateRequest body para POST /api/certificates.
// certificate_base64 aceita também o formato data URL (data:...;base64,...).
type UploadCertificateRequest struct {
	Name              string `json:"name,omitempty" validate:"max=200"`
	CertificateBase64 string `json:"certificate_base64" validate:"required"`
	Password          string `json:"password" validate:"required"`
}

// CertificateResponse certificado com os segredos mascarados.
type CertificateResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	CertificateBase64 string     `json:"certificate_base64"`
	Password          string     `json:"password"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	Active            bool       `json:"active"`
	CreatedAt         time.Time  `json:"created_at"`
}
