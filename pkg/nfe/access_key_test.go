package nfe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nfe-emissor/pkg/nfe"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vetor calculado à mão:
//
//	cUF=35 AAMM=2403 CNPJ=11222333000181 mod=55 serie=001 nNF=000000123
//	tpEmis=1 cNF=12345678  =>  DV=8
// ──────────────────────────────────────────────────────────────────────────────

const testAccessKey = "35240311222333000181550010000001231123456788"

func buildKeyParams() nfe.AccessKeyParams {
	return nfe.AccessKeyParams{
		UF:           "SP",
		IssueDate:    "2024-03-15",
		CNPJ:         "11.222.333/0001-81",
		Model:        "55",
		Series:       "1",
		Number:       "123",
		EmissionType: "1",
		NumericCode:  "12345678",
	}
}

func TestGenerateAccessKey_VetorExato(t *testing.T) {
	key, err := nfe.GenerateAccessKey(buildKeyParams())
	require.NoError(t, err)
	assert.Equal(t, testAccessKey, key)
	assert.Len(t, key, 44)
	assert.True(t, nfe.IsValidAccessKey(key))
}

func TestGenerateAccessKey_DataFormatoBrasileiro(t *testing.T) {
	p := buildKeyParams()
	p.IssueDate = "15/03/2024"
	key, err := nfe.GenerateAccessKey(p)
	require.NoError(t, err)
	assert.Equal(t, testAccessKey, key, "dd/mm/aaaa e aaaa-mm-dd devem gerar a mesma chave")
}

func TestGenerateAccessKey_UFDesconhecidaUsaPadrao(t *testing.T) {
	p := buildKeyParams()
	p.UF = "XX"
	key, err := nfe.GenerateAccessKey(p)
	require.NoError(t, err)
	assert.Equal(t, nfe.DefaultUFCode, key[:2])
}

func TestGenerateAccessKey_DataInvalida(t *testing.T) {
	p := buildKeyParams()
	p.IssueDate = "ontem"
	_, err := nfe.GenerateAccessKey(p)
	assert.Error(t, err)
}

// O DV de qualquer prefixo de 43 dígitos satisfaz a regra do módulo 11.
func TestCheckDigit_RegraModulo11(t *testing.T) {
	prefixes := []string{
		"3524031122233300018155001000000123112345678",
		"0000000000000000000000000000000000000000000",
		"9999999999999999999999999999999999999999999",
		"4124015214578600012055001000004567198765432",
	}
	weights := []int{2, 3, 4, 5, 6, 7, 8, 9}
	for _, p := range prefixes {
		var sum int
		for i := 0; i < len(p); i++ {
			sum += int(p[len(p)-1-i]-'0') * weights[i%8]
		}
		expected := 0
		if sum%11 >= 2 {
			expected = 11 - sum%11
		}
		assert.Equal(t, expected, nfe.CheckDigit(p), "prefixo %s", p)
	}
}

// Com o cNF sorteado, duas gerações com os mesmos dados produzem chaves diferentes.
func TestGenerateAccessKey_NaoIdempotenteComCodigoAleatorio(t *testing.T) {
	p1 := buildKeyParams()
	p1.NumericCode = "00000001"
	p2 := buildKeyParams()
	p2.NumericCode = "00000002"

	k1, err := nfe.GenerateAccessKey(p1)
	require.NoError(t, err)
	k2, err := nfe.GenerateAccessKey(p2)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		p := buildKeyParams()
		p.NumericCode = nfe.GenerateNumericCode()
		require.Len(t, p.NumericCode, 8)
		k, err := nfe.GenerateAccessKey(p)
		require.NoError(t, err)
		seen[k] = true
	}
	assert.Greater(t, len(seen), 1, "códigos aleatórios devem produzir chaves distintas")
}

func TestFormatAccessKey_AgrupaDeQuatro(t *testing.T) {
	formatted := nfe.FormatAccessKey(testAccessKey)
	assert.Equal(t, "3524 0311 2223 3300 0181 5500 1000 0001 2311 2345 6788", formatted)
}

func TestIsValidAccessKey_DVAlterado(t *testing.T) {
	broken := testAccessKey[:43] + "1"
	assert.False(t, nfe.IsValidAccessKey(broken))
	assert.False(t, nfe.IsValidAccessKey(testAccessKey[:40]))
}
