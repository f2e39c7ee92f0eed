package entity

import "github.com/shopspring/decimal"

// Produto espelho de TGFPRO (somente leitura neste serviço).
type Produto struct {
	CodEmp     int
	CodProd    int64
	Descricao  string
	Referencia string
	Unidade    string
	CodGrupo   int64
	DescrGrupo string
	CustoMedio decimal.Decimal
	Ativo      bool
}
