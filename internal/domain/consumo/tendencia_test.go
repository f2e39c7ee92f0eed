package consumo_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aferraz/consumo-api/internal/domain/consumo"
)

// compra constrói uma compra canônica com preço e quantidade dados.
func compra(nuNota int64, data time.Time, preco float64, qtd int64) consumo.MovimentoCanonico {
	p := decimal.NewFromFloat(preco)
	q := decimal.NewFromInt(qtd)
	return consumo.MovimentoCanonico{
		CodProd:         100,
		NuNota:          nuNota,
		Sequencia:       1,
		Data:            data,
		DataValida:      true,
		Tipo:            consumo.TipoCompra,
		DeltaQuantidade: q,
		DeltaValor:      q.Mul(p),
		VlrUnitario:     p,
	}
}

// Sem compras não há tendência: nil, distinto de ESTAVEL.
func TestAnalisarTendencia_SemComprasRetornaNil(t *testing.T) {
	resultado := consumo.AnalisarTendencia([]consumo.MovimentoCanonico{
		mov(1, 1, dia(11), consumo.TipoVenda, -10),
		mov(2, 1, dia(12), consumo.TipoAjuste, 3),
	})
	assert.Nil(t, resultado, "janela sem compras deve devolver nil, não ESTAVEL")
}

// Preço subindo de 20 para 25 = +25%, classificado ALTA.
func TestAnalisarTendencia_AltaDePreco(t *testing.T) {
	resultado := consumo.AnalisarTendencia([]consumo.MovimentoCanonico{
		compra(1, dia(11), 20, 10),
		compra(2, dia(15), 22, 5),
		compra(3, dia(19), 25, 10),
		mov(4, 1, dia(16), consumo.TipoVenda, -8), // vendas não entram na tendência
	})
	require.NotNil(t, resultado)

	assert.Equal(t, consumo.TendenciaAlta, resultado.Tendencia)
	assert.True(t, resultado.VariacaoPercentual.Equal(decimal.NewFromInt(25)),
		"variação compara primeira e última compra: (25-20)/20 = 25%")
	assert.True(t, resultado.PrecoMinimo.Equal(decimal.NewFromInt(20)))
	assert.True(t, resultado.PrecoMaximo.Equal(decimal.NewFromInt(25)))
	assert.True(t, resultado.UltimoPreco.Equal(decimal.NewFromInt(25)))
	assert.Len(t, resultado.Historico, 3)

	// Médio ponderado: (20×10 + 22×5 + 25×10) / 25 = 560/25 = 22.4
	assert.True(t, resultado.PrecoMedioPonderado.Equal(decimal.NewFromFloat(22.4)),
		"médio ponderado por quantidade, veio %s", resultado.PrecoMedioPonderado)
}

func TestAnalisarTendencia_QuedaDePreco(t *testing.T) {
	resultado := consumo.AnalisarTendencia([]consumo.MovimentoCanonico{
		compra(1, dia(11), 50, 2),
		compra(2, dia(18), 40, 2),
	})
	require.NotNil(t, resultado)
	assert.Equal(t, consumo.TendenciaQueda, resultado.Tendencia)
	assert.True(t, resultado.VariacaoPercentual.Equal(decimal.NewFromInt(-20)))
}

// Variação dentro da banda morta de ±1% é ESTAVEL.
func TestAnalisarTendencia_BandaMorta(t *testing.T) {
	resultado := consumo.AnalisarTendencia([]consumo.MovimentoCanonico{
		compra(1, dia(11), 100, 1),
		compra(2, dia(18), 100.9, 1),
	})
	require.NotNil(t, resultado)
	assert.Equal(t, consumo.TendenciaEstavel, resultado.Tendencia,
		"variação de 0.9% fica dentro da banda morta")
}

// Compra com quantidade zero fica no histórico mas fora do preço médio.
func TestAnalisarTendencia_QuantidadeZeroForaDoMedio(t *testing.T) {
	resultado := consumo.AnalisarTendencia([]consumo.MovimentoCanonico{
		compra(1, dia(11), 10, 4),
		compra(2, dia(12), 999, 0), // bonificação/brinde: preço não pondera
	})
	require.NotNil(t, resultado)

	assert.Len(t, resultado.Historico, 2, "a compra de quantidade zero permanece no histórico")
	assert.True(t, resultado.PrecoMedioPonderado.Equal(decimal.NewFromInt(10)),
		"quantidade zero não entra na ponderação, veio %s", resultado.PrecoMedioPonderado)
	assert.True(t, resultado.PrecoMaximo.Equal(decimal.NewFromInt(999)),
		"extremos consideram todas as compras")
}

// Compras fora de ordem de chegada são ordenadas cronologicamente.
func TestAnalisarTendencia_OrdenaCronologicamente(t *testing.T) {
	resultado := consumo.AnalisarTendencia([]consumo.MovimentoCanonico{
		compra(2, dia(19), 30, 1),
		compra(1, dia(11), 20, 1),
	})
	require.NotNil(t, resultado)

	assert.True(t, resultado.Historico[0].Preco.Equal(decimal.NewFromInt(20)),
		"histórico em ordem cronológica")
	assert.True(t, resultado.UltimoPreco.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, consumo.TendenciaAlta, resultado.Tendencia, "(30-20)/20 = +50%")
}

// Uma única compra: variação zero, ESTAVEL.
func TestAnalisarTendencia_CompraUnica(t *testing.T) {
	resultado := consumo.AnalisarTendencia([]consumo.MovimentoCanonico{
		compra(1, dia(11), 42, 3),
	})
	require.NotNil(t, resultado)
	assert.True(t, resultado.VariacaoPercentual.IsZero())
	assert.Equal(t, consumo.TendenciaEstavel, resultado.Tendencia)
}
