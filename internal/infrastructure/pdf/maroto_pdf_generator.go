// Package pdf implementa a exportação em PDF do relatório de consumo e
// reconciliação de saldo de um produto.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Produto + código  │  Janela analisada              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALDOS: anterior / atual, com marca de aproximação         │
//	│  RESUMO: entradas e consumo da janela                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Data | Doc | Tipo | Qtd | Vlr Unit | Valor | Saldo │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TENDÊNCIA DE PREÇO (quando há compras na janela)           │
//	│  AVISOS DE QUALIDADE (quando existem)                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/aferraz/consumo-api/internal/application/dto"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa consumo.RelatorioPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator constrói o gerador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GerarRelatorioConsumo gera o PDF e devolve seus bytes.
func (g *MarotoPDFGenerator) GerarRelatorioConsumo(
	_ context.Context,
	analise *dto.ConsumoAnaliseDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Consumo", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(analise))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(saldosRow(analise))
	m.AddRows(resumoRow(&analise.Resumo))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableMovimentoRows(analise.Movimentacoes.Dados) {
		m.AddRows(r)
	}

	if analise.TendenciaPreco != nil {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(tendenciaRow(analise.TendenciaPreco))
	}

	if len(analise.AvisosQualidade) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		for _, r := range avisosRows(analise) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: produto (esq) e janela analisada (dir).
func headerRow(a *dto.ConsumoAnaliseDTO) core.Row {
	descricao := a.DescricaoProd
	if descricao == "" {
		descricao = fmt.Sprintf("Produto %d", a.CodProd)
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(descricao, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Código: %d", a.CodProd), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RELATÓRIO DE CONSUMO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s a %s", a.Periodo.Inicio, a.Periodo.Fim), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("%d dias (fim exclusivo)", a.Periodo.Dias), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// saldosRow: saldo anterior e saldo atual lado a lado.
func saldosRow(a *dto.ConsumoAnaliseDTO) core.Row {
	saldoCol := func(titulo string, s dto.SaldoDTO) core.Col {
		qtdColor := colorPrimary
		if s.Negativo {
			qtdColor = colorAlert
		}
		sufixo := ""
		if s.Aproximado {
			sufixo = " (aproximado)"
		}
		return col.New(6).Add(
			text.New(titulo+sufixo, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Qtd: "+s.Quantidade.String(), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6, Color: qtdColor,
			}),
			text.New("Valor: R$ "+s.Valor.StringFixed(2), props.Text{
				Size: 9, Top: 12, Color: colorGray,
			}),
		)
	}

	return row.New(18).Add(
		saldoCol("SALDO ANTERIOR", a.SaldoAnterior),
		saldoCol("SALDO ATUAL", a.SaldoAtual),
	)
}

// resumoRow: totais de entradas e consumo da janela.
func resumoRow(r *dto.ResumoDTO) core.Row {
	item := func(label, valor string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(valor, props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
		)
	}
	return row.New(12).Add(
		item("Entradas (qtd)", r.EntradasQuantidade.String()),
		item("Entradas (valor)", "R$ "+r.EntradasValor.StringFixed(2)),
		item("Consumo (qtd)", r.ConsumoQuantidade.String()),
		item("Consumo (valor)", "R$ "+r.ConsumoValor.StringFixed(2)),
	)
}

// tableHeaderRow: cabeçalho da tabela de movimentações.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Data", 2, align.Left),
		h("Doc", 1, align.Center),
		h("Tipo", 2, align.Left),
		h("Qtd", 2, align.Right),
		h("Vlr Unit.", 2, align.Right),
		h("Valor", 2, align.Right),
		h("Saldo", 1, align.Right),
	)
}

// tableMovimentoRows: uma fila por movimento da página exportada.
func tableMovimentoRows(movs []dto.MovimentacaoDTO) []core.Row {
	result := make([]core.Row, 0, len(movs))
	for _, mv := range movs {
		data := mv.Data
		if len(data) >= 10 {
			data = data[:10]
		}
		tipo := mv.Tipo
		if mv.Suspeito {
			tipo += " *"
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(data, props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", mv.NuNota), props.Text{
				Size: 7.5, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New(tipo, props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(2).Add(text.New(mv.Quantidade.String(), props.Text{
				Size: 7.5, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(mv.VlrUnitario.StringFixed(2), props.Text{
				Size: 7.5, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(mv.Valor.StringFixed(2), props.Text{
				Size: 7.5, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(1).Add(text.New(mv.SaldoQuantidade.String(), props.Text{
				Size: 7.5, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// tendenciaRow: síntese da tendência de preço de compra.
func tendenciaRow(t *dto.TendenciaPrecoDTO) core.Row {
	cor := colorGray
	switch t.Tendencia {
	case "ALTA":
		cor = colorAlert
	case "QUEDA":
		cor = colorPrimary
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("TENDÊNCIA DE PREÇO DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf(
				"%s (%s%%)   |   Médio ponderado: R$ %s   |   Mín: R$ %s   |   Máx: R$ %s   |   Último: R$ %s",
				t.Tendencia,
				t.VariacaoPercentual.StringFixed(2),
				t.PrecoMedioPonderado.StringFixed(2),
				t.PrecoMinimo.StringFixed(2),
				t.PrecoMaximo.StringFixed(2),
				t.UltimoPreco.StringFixed(2),
			), props.Text{Style: fontstyle.Bold, Size: 8, Top: 7, Color: cor}),
		),
	)
}

// avisosRows: lista de avisos de qualidade dos dados de origem.
func avisosRows(a *dto.ConsumoAnaliseDTO) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("AVISOS DE QUALIDADE (%d)", len(a.AvisosQualidade)), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorAlert, Top: 1,
			}),
		)),
	}
	for _, av := range a.AvisosQualidade {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s — doc %d/%d: %s", av.Motivo, av.NuNota, av.Sequencia, av.Detalhe),
				props.Text{Size: 6.5, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}
	rows = append(rows, row.New(6).Add(col.New(12).Add(
		text.New("* movimento com classificação suspeita, incluído nos totais.", props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	)))
	return rows
}
