package nfe

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// AccessKeyParams reúne os campos que compõem a chave de acesso de 44 dígitos.
type AccessKeyParams struct {
	UF           string // sigla, ex. "SP"
	IssueDate    string // "dd/mm/yyyy" ou "yyyy-mm-dd"
	CNPJ         string // com ou sem máscara
	Model        string // "55"
	Series       string
	Number       string
	EmissionType string // tpEmis
	NumericCode  string // cNF, 8 dígitos
}

// pesos cíclicos aplicados da direita para a esquerda (módulo 11).
var accessKeyWeights = [8]int{2, 3, 4, 5, 6, 7, 8, 9}

// GenerateAccessKey monta a chave:
//
//	cUF(2) AAMM(4) CNPJ(14) mod(2) serie(3) nNF(9) tpEmis(1) cNF(8) DV(1)
func GenerateAccessKey(p AccessKeyParams) (string, error) {
	year, month, _, err := ParseDate(p.IssueDate)
	if err != nil {
		return "", err
	}
	cnpj := OnlyDigits(p.CNPJ)
	if len(cnpj) > 14 {
		return "", fmt.Errorf("nfe: CNPJ com mais de 14 dígitos: %q", p.CNPJ)
	}
	emissionType := p.EmissionType
	if emissionType == "" {
		emissionType = EmissionNormal
	}

	var sb strings.Builder
	sb.Grow(44)
	sb.WriteString(UFCode(p.UF))
	sb.WriteString(year[2:] + month)
	sb.WriteString(padLeft(cnpj, 14))
	sb.WriteString(padLeft(OnlyDigits(p.Model), 2))
	sb.WriteString(padLeft(OnlyDigits(p.Series), 3))
	sb.WriteString(padLeft(OnlyDigits(p.Number), 9))
	sb.WriteString(emissionType)
	sb.WriteString(padLeft(OnlyDigits(p.NumericCode), 8))

	key43 := sb.String()
	if len(key43) != 43 {
		return "", fmt.Errorf("nfe: chave parcial com %d dígitos (esperado 43)", len(key43))
	}
	return key43 + fmt.Sprintf("%d", CheckDigit(key43)), nil
}

// CheckDigit calcula o DV da chave: soma ponderada dos dígitos invertidos,
// resto < 2 => 0, caso contrário 11 - resto.
func CheckDigit(key43 string) int {
	var sum int
	pos := 0
	for i := len(key43) - 1; i >= 0; i-- {
		c := key43[i]
		if c < '0' || c > '9' {
			continue
		}
		sum += int(c-'0') * accessKeyWeights[pos%len(accessKeyWeights)]
		pos++
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

// IsValidAccessKey verifica tamanho e dígito verificador.
func IsValidAccessKey(key string) bool {
	if len(key) != 44 || OnlyDigits(key) != key {
		return false
	}
	return int(key[43]-'0') == CheckDigit(key[:43])
}

// GenerateNumericCode sorteia o cNF de 8 dígitos. Cada emissão usa um novo código,
// por isso a chave muda a cada tentativa.
func GenerateNumericCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(99999999))
	if err != nil {
		// crypto/rand não falha em plataformas suportadas
		panic(fmt.Sprintf("nfe: gerar cNF: %v", err))
	}
	return fmt.Sprintf("%08d", n.Int64())
}

// FormatAccessKey agrupa a chave de 4 em 4 dígitos para exibição (DANFE).
func FormatAccessKey(key string) string {
	parts := make([]string, 0, 11)
	for len(key) > 4 {
		parts = append(parts, key[:4])
		key = key[4:]
	}
	if key != "" {
		parts = append(parts, key)
	}
	return strings.Join(parts, " ")
}

// ParseDate aceita "dd/mm/yyyy" ou "yyyy-mm-dd" e devolve ano, mês e dia com zeros à esquerda.
func ParseDate(s string) (year, month, day string, err error) {
	s = strings.TrimSpace(s)
	var parts []string
	switch {
	case strings.Contains(s, "/"):
		parts = strings.Split(s, "/")
		if len(parts) == 3 {
			day, month, year = parts[0], parts[1], parts[2]
		}
	case strings.Contains(s, "-"):
		parts = strings.Split(s, "-")
		if len(parts) == 3 {
			year, month, day = parts[0], parts[1], parts[2]
		}
	}
	if len(parts) != 3 || len(year) != 4 || OnlyDigits(year+month+day) != year+month+day ||
		len(month) == 0 || len(month) > 2 || len(day) == 0 || len(day) > 2 {
		return "", "", "", fmt.Errorf("nfe: data inválida %q (use dd/mm/aaaa ou aaaa-mm-dd)", s)
	}
	return year, padLeft(month, 2), padLeft(day, 2), nil
}

func padLeft(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}
