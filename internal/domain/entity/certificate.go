package entity

import "time"

// Certificate certificado A1 (PKCS#12) enviado pelo usuário.
// No máximo um ativo por usuário; PFXBase64 e Password nunca saem da API sem máscara.
type Certificate struct {
	ID        string
	UserID    string
	Name      string
	PFXBase64 string
	Password  string
	ExpiresAt *time.Time
	Active    bool
	CreatedAt time.Time
}
