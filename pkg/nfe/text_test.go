package nfe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/nfe-emissor/pkg/nfe"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "SAO PAULO", nfe.NormalizeName("São Paulo"))
	assert.Equal(t, "SANTA BARBARA D'OESTE", nfe.NormalizeName("  Santa Bárbara   d'Oeste "))
	assert.Equal(t, "MOJI MIRIM", nfe.NormalizeName("MOJI MIRIM"))
	assert.Equal(t, "CONCEICAO DO ARAGUAIA", nfe.NormalizeName("Conceição do Araguaia"))
}
