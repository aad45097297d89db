package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
	"github.com/jhoicas/nfe-emissor/pkg/nfe"
)

// parseMunicipios lê o CSV da DTB/IBGE (código;nome;UF) em ISO-8859-1.
// Linhas sem código de 7 dígitos (cabeçalho, rodapé) são ignoradas.
func parseMunicipios(r io.Reader, latin1 bool) ([]*entity.Municipality, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	seen := make(map[string]bool)
	var out []*entity.Municipality
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("linha %d: %w", line, err)
		}
		if len(rec) < 3 {
			continue
		}
		code := strings.TrimSpace(rec[0])
		name := strings.TrimSpace(rec[1])
		uf := strings.ToUpper(strings.TrimSpace(rec[2]))
		if len(code) != 7 || !isDigits(code) || name == "" {
			continue
		}
		if !nfe.IsKnownUF(uf) {
			return nil, fmt.Errorf("linha %d: UF desconhecida %q", line, uf)
		}
		if nfe.UFCode(uf) != code[:2] {
			return nil, fmt.Errorf("linha %d: código %s não pertence à UF %s", line, code, uf)
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, &entity.Municipality{Code: code, Name: name, UF: uf})
	}
	return out, nil
}

// writeSQL gera um script idempotente equivalente ao BulkUpsert.
func writeSQL(w io.Writer, items []*entity.Municipality) error {
	if _, err := io.WriteString(w, "-- Municípios IBGE (cMun)\n"); err != nil {
		return err
	}
	for _, m := range items {
		if _, err := fmt.Fprintf(w,
			"INSERT INTO municipalities (code, name, name_search, uf) VALUES ('%s', '%s', '%s', '%s')\n"+
				"ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, name_search = EXCLUDED.name_search, uf = EXCLUDED.uf;\n",
			m.Code, escapeSQL(m.Name), escapeSQL(nfe.NormalizeName(m.Name)), m.UF); err != nil {
			return err
		}
	}
	return nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
