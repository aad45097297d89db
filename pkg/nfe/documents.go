package nfe

import (
	"fmt"
	"strings"
	"unicode"
)

// pesos do primeiro e do segundo dígito verificador do CNPJ.
var (
	cnpjWeights1 = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// OnlyDigits remove máscara (pontos, barras, hífens, espaços) de CPF, CNPJ, CEP etc.
func OnlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			return r
		}
		return -1
	}, s)
}

// IsValidCPF valida os dois dígitos verificadores (módulo 11). Sequências repetidas são inválidas.
func IsValidCPF(cpf string) bool {
	d := OnlyDigits(cpf)
	if len(d) != 11 || allSame(d) {
		return false
	}
	for _, n := range []int{9, 10} {
		var sum int
		for i := 0; i < n; i++ {
			sum += int(d[i]-'0') * (n + 1 - i)
		}
		check := 11 - sum%11
		if check >= 10 {
			check = 0
		}
		if int(d[n]-'0') != check {
			return false
		}
	}
	return true
}

// IsValidCNPJ valida os dois dígitos verificadores ponderados do CNPJ.
func IsValidCNPJ(cnpj string) bool {
	d := OnlyDigits(cnpj)
	if len(d) != 14 || allSame(d) {
		return false
	}
	if int(d[12]-'0') != cnpjCheck(d[:12], cnpjWeights1[:]) {
		return false
	}
	return int(d[13]-'0') == cnpjCheck(d[:13], cnpjWeights2[:])
}

func cnpjCheck(digits string, weights []int) int {
	var sum int
	for i := range digits {
		sum += int(digits[i]-'0') * weights[i]
	}
	if sum%11 < 2 {
		return 0
	}
	return 11 - sum%11
}

func allSame(d string) bool {
	return strings.Count(d, d[:1]) == len(d)
}

// IsLegalEntity usa o tamanho do documento limpo como discriminador: mais de 11 dígitos é CNPJ.
func IsLegalEntity(taxID string) bool {
	return len(OnlyDigits(taxID)) > 11
}

// ValidateRecipientTaxID valida CPF ou CNPJ conforme o discriminador de tamanho.
func ValidateRecipientTaxID(taxID string) error {
	if IsLegalEntity(taxID) {
		if !IsValidCNPJ(taxID) {
			return fmt.Errorf("CNPJ do destinatário inválido: %s. Verifique os dígitos verificadores", taxID)
		}
		return nil
	}
	if !IsValidCPF(taxID) {
		return fmt.Errorf("CPF do destinatário inválido: %s. Verifique os dígitos verificadores", taxID)
	}
	return nil
}
