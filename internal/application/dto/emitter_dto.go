package dto

import "time"

// EmitterRequest body para POST/PUT /api/emitter.
type EmitterRequest struct {
	LegalName             string `json:"razao_social" validate:"required,max=60"`
	TradeName             string `json:"nome_fantasia,omitempty" validate:"max=60"`
	CNPJ                  string `json:"cnpj" validate:"required,cnpj"`
	StateRegistration     string `json:"inscricao_estadual,omitempty"`
	MunicipalRegistration string `json:"inscricao_municipal,omitempty"`
	TaxRegime             string `json:"regime_tributario" validate:"omitempty,oneof=1 2 3"`
	ZipCode               string `json:"cep" validate:"required"`
	UF                    string `json:"uf" validate:"required,uf"`
	City                  string `json:"municipio" validate:"required"`
	CityCode              string `json:"codigo_municipio,omitempty" validate:"omitempty,numeric,len=7"`
	District              string `json:"bairro" validate:"required"`
	Street                string `json:"logradouro" validate:"required"`
	Number                string `json:"numero" validate:"required"`
	Complement            string `json:"complemento,omitempty"`
	Phone                 string `json:"telefone,omitempty"`
	Email                 string `json:"email,omitempty" validate:"omitempty,email"`
}

// EmitterResponse dados do emitente.
type EmitterResponse struct {
	ID                    string    `json:"id"`
	LegalName             string    `json:"razao_social"`
	TradeName             string    `json:"nome_fantasia,omitempty"`
	CNPJ                  string    `json:"cnpj"`
	StateRegistration     string    `json:"inscricao_estadual,omitempty"`
	MunicipalRegistration string    `json:"inscricao_municipal,omitempty"`
	TaxRegime             string    `json:"regime_tributario"`
	ZipCode               string    `json:"cep"`
	UF                    string    `json:"uf"`
	City                  string    `json:"municipio"`
	CityCode              string    `json:"codigo_municipio,omitempty"`
	District              string    `json:"bairro"`
	Street                string    `json:"logradouro"`
	Number                string    `json:"numero"`
	Complement            string    `json:"complemento,omitempty"`
	Phone                 string    `json:"telefone,omitempty"`
	Email                 string    `json:"email,omitempty"`
	UpdatedAt             time.Time `json:"updated_at"`
}
