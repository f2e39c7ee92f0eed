package entity

import "github.com/shopspring/decimal"

// Tipos de negociação do documento (TGFCAB.TIPMOV).
const (
	TipoNegCompra        = "C" // compra
	TipoNegVenda         = "V" // venda
	TipoNegTransferencia = "T" // transferência entre locais
	TipoNegAjuste        = "J" // ajuste de inventário
)

// Direção de atualização de estoque declarada pelo TOP (TGFTOP.ATUALEST).
const (
	DirecaoEntrada = "E" // soma ao estoque
	DirecaoSaida   = "S" // baixa do estoque
	DirecaoNeutra  = "N" // não movimenta estoque
)

// MovimentoEstoque é uma linha crua de movimentação como o ERP a entrega
// (join TGFITE × TGFCAB × TGFTOP). A data vem serializada como string no formato
// do ERP; quem a interpreta é o normalizador do motor de consumo.
type MovimentoEstoque struct {
	CodEmp  int   // empresa (tenant)
	CodProd int64 // produto

	NuNota    int64 // número único do documento
	Sequencia int   // sequência da linha dentro do documento

	DataMovimento string // dd/MM/yyyy[ HH:mm:ss] ou RFC3339; linhas ilegíveis viram aviso

	CodTipOper      int    // código do TOP
	DescrTipOper    string // descrição do TOP
	TipoNegociacao  string // C, V, T, J
	AtualizaEstoque string // E, S, N — direção declarada

	Quantidade  decimal.Decimal // pode vir com ou sem sinal, conforme a origem
	VlrUnitario decimal.Decimal

	CodParc  int64
	NomeParc string

	CodUsuInclusao   int64
	NomeUsuInclusao  string
	CodUsuAlteracao  int64
	NomeUsuAlteracao string

	Controle   string // lote/série, opcional
	Observacao string // texto livre, opcional
}
