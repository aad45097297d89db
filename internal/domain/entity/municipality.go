package entity

// Municipality município da tabela IBGE (cMun de 7 dígitos).
type Municipality struct {
	Code string
	Name string
	UF   string
}
