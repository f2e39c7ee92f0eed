// Package consumo implementa o motor de análise de consumo e reconciliação de
// saldos por período: normalização de movimentos crus do ERP, saldo anterior e
// posterior à janela, saldo corrente movimento a movimento, agregações por
// dimensão e tendência de preço de compra.
//
// Todas as funções são puras: recebem snapshots imutáveis já buscados pela
// camada de dados e não guardam estado entre requisições.
package consumo

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoMovimento classificação canônica de um movimento de estoque.
type TipoMovimento string

// Tipos canônicos. Compra e transferência de entrada somam ao estoque;
// venda e transferência de saída baixam; ajuste leva o sinal da origem.
const (
	TipoCompra        TipoMovimento = "COMPRA"
	TipoVenda         TipoMovimento = "VENDA"
	TipoTransfEntrada TipoMovimento = "TRANSF_ENTRADA"
	TipoTransfSaida   TipoMovimento = "TRANSF_SAIDA"
	TipoAjuste        TipoMovimento = "AJUSTE"
)

// MovimentaValor informa se o tipo carrega valor financeiro.
// Transferências puras movem apenas quantidade (delta de valor zero).
func (t TipoMovimento) MovimentaValor() bool {
	return t != TipoTransfEntrada && t != TipoTransfSaida
}

// MovimentoCanonico representação canônica de uma linha de movimentação,
// imutável depois de produzida pelo normalizador.
//
// Invariante: o sinal de DeltaQuantidade segue a direção canônica do tipo
// (compra/transf. entrada positivos, venda/transf. saída negativos; ajuste
// conforme a origem). Violações na origem marcam Suspeito, nunca derrubam a análise.
type MovimentoCanonico struct {
	CodProd   int64
	NuNota    int64
	Sequencia int

	Data       time.Time
	DataValida bool // false quando a data crua não pôde ser interpretada

	Tipo            TipoMovimento
	DeltaQuantidade decimal.Decimal // positivo = entrada, negativo = baixa
	DeltaValor      decimal.Decimal // mesmo sinal do delta de quantidade; zero em transferências
	VlrUnitario     decimal.Decimal // valor unitário da origem, para exibição e tendência

	Suspeito bool // direção declarada inconsistente com o tipo da operação

	// Campos descritivos repassados sem interpretação
	DescricaoOperacao string
	CodParc           int64
	NomeParc          string
	CodUsuInclusao    int64
	NomeUsuInclusao   string
	CodUsuAlteracao   int64
	NomeUsuAlteracao  string
	Controle          string
	Observacao        string
}

// Saldo fotografia de estoque de um produto em um instante de referência.
type Saldo struct {
	CodProd    int64
	Referencia time.Time
	Quantidade decimal.Decimal
	Valor      decimal.Decimal
	Negativo   bool // saldo de quantidade negativo (possível em ERPs reais, apenas sinalizado)
	Aproximado bool // true quando derivado de baseline zero, sem saldo semente autoritativo
}

// MovimentoComSaldo movimento canônico anotado com o saldo corrente
// imediatamente após sua aplicação, em ordem cronológica.
type MovimentoComSaldo struct {
	MovimentoCanonico
	SaldoQuantidade decimal.Decimal
	SaldoValor      decimal.Decimal
}
