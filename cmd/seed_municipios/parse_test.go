package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
)

func TestParseMunicipios_Latin1(t *testing.T) {
	raw := "Código;Nome;UF\n3550308;São Paulo;SP\n3304557;Rio de Janeiro;rj\n3550308;São Paulo;SP\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(raw)
	require.NoError(t, err)

	items, err := parseMunicipios(strings.NewReader(encoded), true)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "São Paulo", items[0].Name)
	assert.Equal(t, "RJ", items[1].UF)
}

func TestParseMunicipios_CodeOutsideUF(t *testing.T) {
	_, err := parseMunicipios(strings.NewReader("3550308;São Paulo;RJ\n"), false)
	assert.ErrorContains(t, err, "não pertence")
}

func TestWriteSQL_NormalizesAndEscapes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, []*entity.Municipality{{Code: "5200050", Name: "Abadia de Goiás", UF: "GO"}, {Code: "2600054", Name: "Abreu e Lima", UF: "PE"}}))
	out := buf.String()
	assert.Contains(t, out, "'ABADIA DE GOIAS'")
	assert.Contains(t, out, "ON CONFLICT (code)")

	buf.Reset()
	require.NoError(t, writeSQL(&buf, []*entity.Municipality{{Code: "2100907", Name: "Olho d'Água das Cunhãs", UF: "MA"}}))
	assert.Contains(t, buf.String(), "'Olho d''Água das Cunhãs'")
}
