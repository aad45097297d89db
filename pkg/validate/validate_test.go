package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nfe-emissor/pkg/validate"
)

type emitterForm struct {
	CNPJ string `json:"cnpj" validate:"required,cnpj"`
	UF   string `json:"uf" validate:"required,uf"`
	Name string `json:"razao_social" validate:"required,max=60"`
}

type recipientForm struct {
	TaxID string `json:"dest_cpf_cnpj" validate:"required,cpfcnpj"`
	Items []item `json:"itens" validate:"required,min=1,dive"`
}

type item struct {
	Code string `json:"codigo" validate:"required"`
}

func TestStruct_Valid(t *testing.T) {
	err := validate.Struct(&emitterForm{CNPJ: "11.222.333/0001-81", UF: "sp", Name: "EMPRESA"})
	assert.NoError(t, err)
}

func TestStruct_UsesJSONNames(t *testing.T) {
	err := validate.Struct(emitterForm{CNPJ: "11.222.333/0001-82", UF: "XX"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cnpj não é um CNPJ válido")
	assert.Contains(t, err.Error(), "uf não é uma UF válida")
	assert.Contains(t, err.Error(), "razao_social é obrigatório")
}

func TestStruct_RecipientDocumentAndNestedItems(t *testing.T) {
	err := validate.Struct(recipientForm{TaxID: "529.982.247-25", Items: []item{{Code: "P1"}}})
	assert.NoError(t, err)

	err = validate.Struct(recipientForm{TaxID: "123.456.789-00", Items: []item{{}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dest_cpf_cnpj não é um CPF/CNPJ válido")
	assert.Contains(t, err.Error(), "itens[0].codigo é obrigatório")
}

func TestStruct_RejectsNonStruct(t *testing.T) {
	assert.Error(t, validate.Struct("texto"))
	assert.Error(t, validate.Struct(nil))
}
