package entity

import "time"

// Regimes tributários (CRT).
const (
	TaxRegimeSimples       = "1"
	TaxRegimeSimplesExcess = "2"
	TaxRegimeNormal        = "3"
)

// Emitter dados do emitente. Exatamente um por conta de usuário.
type Emitter struct {
	ID                    string
	UserID                string
	LegalName             string // razão social
	TradeName             string // nome fantasia
	CNPJ                  string
	StateRegistration     string // IE; vazio ou "ISENTO" = isento
	MunicipalRegistration string
	TaxRegime             string
	ZipCode               string
	UF                    string
	City                  string
	CityCode              string // código IBGE
	District              string
	Street                string
	Number                string
	Complement            string
	Phone                 string
	Email                 string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
