package dto

import "github.com/shopspring/decimal"

// ProdutoDTO item de GET /api/produtos.
type ProdutoDTO struct {
	CodProd    int64           `json:"cod_prod"`
	Descricao  string          `json:"descricao"`
	Referencia string          `json:"referencia,omitempty"`
	Unidade    string          `json:"unidade,omitempty"`
	DescrGrupo string          `json:"descr_grupo,omitempty"`
	CustoMedio decimal.Decimal `json:"custo_medio"`
	Ativo      bool            `json:"ativo"`
}

// ProdutoListRequest parâmetros para GET /api/produtos.
type ProdutoListRequest struct {
	PageRequest
	Busca string `query:"busca"` // filtra por descrição ou referência
}

// ProdutoListResponse página de produtos.
type ProdutoListResponse struct {
	Dados []ProdutoDTO `json:"dados"`
	PageResponse
}
