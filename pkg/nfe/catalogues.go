// Package nfe contiene catálogos, chave de acesso e validações de documentos
// usados na emissão da Nota Fiscal Eletrônica modelo 55 (layout 4.00).
package nfe

// =============================================================================
// Tabela de códigos IBGE das Unidades Federativas (cUF)
// =============================================================================

// DefaultUFCode é usado quando a UF não consta da tabela (comportamento histórico: RJ).
const DefaultUFCode = "33"

var ufCodes = map[string]string{
	"AC": "12", "AL": "27", "AP": "16", "AM": "13", "BA": "29", "CE": "23", "DF": "53",
	"ES": "32", "GO": "52", "MA": "21", "MT": "51", "MS": "50", "MG": "31", "PA": "15",
	"PB": "25", "PR": "41", "PE": "26", "PI": "22", "RJ": "33", "RN": "24", "RS": "43",
	"RO": "11", "RR": "14", "SC": "42", "SP": "35", "SE": "28", "TO": "17",
}

// UFCode devolve o código IBGE de dois dígitos da UF.
func UFCode(uf string) string {
	if code, ok := ufCodes[uf]; ok {
		return code
	}
	return DefaultUFCode
}

// IsKnownUF indica se a sigla pertence à tabela de UFs.
func IsKnownUF(uf string) bool {
	_, ok := ufCodes[uf]
	return ok
}

// =============================================================================
// Ambiente, modelo e tipo de emissão
// =============================================================================

const (
	EnvironmentProduction   = "1" // tpAmb=1
	EnvironmentHomologation = "2" // tpAmb=2

	ModelNFe        = "55"
	EmissionNormal  = "1" // tpEmis=1
	LayoutVersion   = "4.00"
	ProcessVersion  = "NFe-Emissor-1.0"
	CountryCode     = "1058"
	CountryName     = "BRASIL"
	NoGTIN          = "SEM GTIN"
	EmptyCityCode   = "0000000"
	StateRegExempt  = "ISENTO"
	DefaultCSOSN    = "102"
	DefaultCSTPis   = "49"
	DefaultCSTCof   = "49"
	DefaultOrigin   = "0"
	DefaultCRT      = "1"
	DefaultModFrete = "9"
)

// Textos obrigatórios em ambiente de homologação.
const (
	HomologationItemText      = "NOTA FISCAL EMITIDA EM AMBIENTE DE HOMOLOGACAO - SEM VALOR FISCAL"
	HomologationRecipientName = "NF-E EMITIDA EM AMBIENTE DE HOMOLOGACAO - SEM VALOR FISCAL"
)

// IsValidEnvironment aceita apenas "1" (produção) e "2" (homologação).
func IsValidEnvironment(env string) bool {
	return env == EnvironmentProduction || env == EnvironmentHomologation
}
