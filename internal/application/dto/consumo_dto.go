package dto

import (
	"github.com/shopspring/decimal"
	"github.com/aferraz/consumo-api/internal/domain/consumo"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// ConsumoAnaliseRequest parâmetros para GET /api/consumo/analise.
//
// A janela é [data_inicio, data_fim): o dia final não entra. Quando o chamador
// conhece o saldo de abertura (fechamento de período oficial), informa
// saldo_inicial_* e o motor o usa como semente em vez da aproximação por
// baseline zero.
type ConsumoAnaliseRequest struct {
	CodProd    int64  `query:"cod_prod"`
	DataInicio string `query:"data_inicio"` // YYYY-MM-DD; padrão primeiro dia do mês atual
	DataFim    string `query:"data_fim"`    // YYYY-MM-DD (exclusivo); padrão amanhã
	Pagina     int    `query:"pagina"`      // padrão 1
	PorPagina  int    `query:"por_pagina"`  // padrão 50, máx 500
	AgruparPor string `query:"agrupar_por"` // CSV: USUARIO,DEPARTAMENTO,PARCEIRO,MES,TIPO_OPERACAO

	SaldoInicialQuantidade string `query:"saldo_inicial_quantidade"` // decimal; vazio = sem semente
	SaldoInicialValor      string `query:"saldo_inicial_valor"`      // decimal; vazio = zero
}

// ── Resposta ──────────────────────────────────────────────────────────────────

// PeriodoDTO janela analisada.
type PeriodoDTO struct {
	Inicio string `json:"inicio"` // YYYY-MM-DD
	Fim    string `json:"fim"`    // YYYY-MM-DD (exclusivo)
	Dias   int    `json:"dias"`
}

// SaldoDTO fotografia de saldo antes ou depois da janela.
type SaldoDTO struct {
	Quantidade decimal.Decimal `json:"quantidade"`
	Valor      decimal.Decimal `json:"valor"`
	Negativo   bool            `json:"negativo"`
	Aproximado bool            `json:"aproximado"` // true = baseline zero + movimentos anteriores
}

// ResumoDTO totais de entradas e consumo da janela.
type ResumoDTO struct {
	EntradasQuantidade  decimal.Decimal `json:"entradas_quantidade"`
	EntradasValor       decimal.Decimal `json:"entradas_valor"`
	ConsumoQuantidade   decimal.Decimal `json:"consumo_quantidade"`
	ConsumoValor        decimal.Decimal `json:"consumo_valor"`
	QtdMovimentos       int             `json:"qtd_movimentos"`
	DocumentosDistintos int             `json:"documentos_distintos"`
}

// MovimentacaoDTO uma linha da lista paginada, com o saldo corrente após o movimento.
type MovimentacaoDTO struct {
	NuNota            int64           `json:"nunota"`
	Sequencia         int             `json:"sequencia"`
	Data              string          `json:"data"` // RFC3339
	Tipo              string          `json:"tipo"`
	DescricaoOperacao string          `json:"descricao_operacao,omitempty"`
	Quantidade        decimal.Decimal `json:"quantidade"`
	Valor             decimal.Decimal `json:"valor"`
	VlrUnitario       decimal.Decimal `json:"vlr_unitario"`
	Parceiro          string          `json:"parceiro,omitempty"`
	Usuario           string          `json:"usuario,omitempty"`
	Controle          string          `json:"controle,omitempty"`
	Observacao        string          `json:"observacao,omitempty"`
	Suspeito          bool            `json:"suspeito,omitempty"`
	SaldoQuantidade   decimal.Decimal `json:"saldo_quantidade"`
	SaldoValor        decimal.Decimal `json:"saldo_valor"`
}

// MovimentacoesDTO página de movimentações.
type MovimentacoesDTO struct {
	Dados        []MovimentacaoDTO `json:"dados"`
	Pagina       int               `json:"pagina"`
	PorPagina    int               `json:"por_pagina"`
	Total        int               `json:"total"`
	UltimaPagina int               `json:"ultima_pagina"`
}

// TendenciaPrecoDTO análise da subsequência de compras; omitida quando não há compras.
type TendenciaPrecoDTO struct {
	Historico           []PontoPrecoDTO `json:"historico"`
	PrecoMedioPonderado decimal.Decimal `json:"preco_medio_ponderado"`
	PrecoMinimo         decimal.Decimal `json:"preco_minimo"`
	PrecoMaximo         decimal.Decimal `json:"preco_maximo"`
	UltimoPreco         decimal.Decimal `json:"ultimo_preco"`
	VariacaoPercentual  decimal.Decimal `json:"variacao_percentual"`
	Tendencia           string          `json:"tendencia"` // ALTA | QUEDA | ESTAVEL
}

// PontoPrecoDTO um evento de compra na linha do tempo de preços.
type PontoPrecoDTO struct {
	Data       string          `json:"data"` // YYYY-MM-DD
	Preco      decimal.Decimal `json:"preco"`
	Quantidade decimal.Decimal `json:"quantidade"`
}

// ConsumoAnaliseDTO resposta completa de GET /api/consumo/analise.
type ConsumoAnaliseDTO struct {
	CodProd         int64                                     `json:"cod_prod"`
	DescricaoProd   string                                    `json:"descricao_prod,omitempty"`
	Periodo         PeriodoDTO                                `json:"periodo"`
	SaldoAnterior   SaldoDTO                                  `json:"saldo_anterior"`
	SaldoAtual      SaldoDTO                                  `json:"saldo_atual"`
	Resumo          ResumoDTO                                 `json:"resumo"`
	Agrupamento     map[string][]consumo.GrupoResumo          `json:"agrupamento,omitempty"`
	Movimentacoes   MovimentacoesDTO                          `json:"movimentacoes"`
	TendenciaPreco  *TendenciaPrecoDTO                        `json:"tendencia_preco,omitempty"`
	AvisosQualidade []consumo.AvisoQualidade                  `json:"avisos_qualidade,omitempty"`
}
