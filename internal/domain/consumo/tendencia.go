package consumo

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var cem = decimal.NewFromInt(100)

// Banda morta da classificação de tendência: variações menores que ±1% são
// ESTAVEL, para suprimir ruído de centavos entre compras consecutivas.
var bandaMortaPct = decimal.NewFromInt(1)

// Tendencia classificação do comportamento do preço de compra na janela.
type Tendencia string

const (
	TendenciaAlta    Tendencia = "ALTA"
	TendenciaQueda   Tendencia = "QUEDA"
	TendenciaEstavel Tendencia = "ESTAVEL"
)

// PontoPreco um evento de compra na linha do tempo de preços.
type PontoPreco struct {
	Data       time.Time       `json:"data"`
	Preco      decimal.Decimal `json:"preco"`
	Quantidade decimal.Decimal `json:"quantidade"`
}

// ResumoPreco análise da subsequência de compras da janela.
//
// A variação percentual compara a PRIMEIRA e a ÚLTIMA compra da janela, não o
// mínimo/máximo — esses são reportados à parte.
type ResumoPreco struct {
	Historico           []PontoPreco    `json:"historico"`
	PrecoMedioPonderado decimal.Decimal `json:"preco_medio_ponderado"`
	PrecoMinimo         decimal.Decimal `json:"preco_minimo"`
	PrecoMaximo         decimal.Decimal `json:"preco_maximo"`
	UltimoPreco         decimal.Decimal `json:"ultimo_preco"`
	VariacaoPercentual  decimal.Decimal `json:"variacao_percentual"`
	Tendencia           Tendencia       `json:"tendencia"`
}

// AnalisarTendencia extrai a subsequência de compras em ordem cronológica e
// deriva o preço médio ponderado por quantidade, extremos e a classificação.
//
// Devolve nil quando a janela não tem nenhuma compra: ausência de tendência é
// "dados insuficientes", distinta de uma tendência ESTAVEL calculada.
// Compras com quantidade zero ficam no histórico mas fora do preço médio.
func AnalisarTendencia(movs []MovimentoCanonico) *ResumoPreco {
	var compras []MovimentoCanonico
	for _, m := range movs {
		if m.Tipo == TipoCompra && m.DataValida {
			compras = append(compras, m)
		}
	}
	if len(compras) == 0 {
		return nil
	}

	sort.SliceStable(compras, func(i, j int) bool {
		a, b := compras[i], compras[j]
		if !a.Data.Equal(b.Data) {
			return a.Data.Before(b.Data)
		}
		if a.NuNota != b.NuNota {
			return a.NuNota < b.NuNota
		}
		return a.Sequencia < b.Sequencia
	})

	historico := make([]PontoPreco, 0, len(compras))
	var somaValor, somaQtd decimal.Decimal
	minimo := compras[0].VlrUnitario
	maximo := compras[0].VlrUnitario

	for _, c := range compras {
		qtd := c.DeltaQuantidade // compras têm delta positivo por convenção canônica
		historico = append(historico, PontoPreco{
			Data:       c.Data,
			Preco:      c.VlrUnitario,
			Quantidade: qtd,
		})
		if c.VlrUnitario.LessThan(minimo) {
			minimo = c.VlrUnitario
		}
		if c.VlrUnitario.GreaterThan(maximo) {
			maximo = c.VlrUnitario
		}
		if qtd.IsPositive() {
			somaValor = somaValor.Add(c.VlrUnitario.Mul(qtd))
			somaQtd = somaQtd.Add(qtd)
		}
	}

	medioPonderado := decimal.Zero
	if somaQtd.IsPositive() {
		medioPonderado = somaValor.Div(somaQtd).Round(4)
	}

	primeiro := compras[0].VlrUnitario
	ultimo := compras[len(compras)-1].VlrUnitario
	variacao := decimal.Zero
	if primeiro.IsPositive() {
		variacao = ultimo.Sub(primeiro).Div(primeiro).Mul(cem).Round(2)
	}

	return &ResumoPreco{
		Historico:           historico,
		PrecoMedioPonderado: medioPonderado,
		PrecoMinimo:         minimo,
		PrecoMaximo:         maximo,
		UltimoPreco:         ultimo,
		VariacaoPercentual:  variacao,
		Tendencia:           classificarTendencia(variacao),
	}
}

func classificarTendencia(variacao decimal.Decimal) Tendencia {
	switch {
	case variacao.GreaterThan(bandaMortaPct):
		return TendenciaAlta
	case variacao.LessThan(bandaMortaPct.Neg()):
		return TendenciaQueda
	default:
		return TendenciaEstavel
	}
}
