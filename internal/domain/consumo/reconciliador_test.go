package consumo_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aferraz/consumo-api/internal/domain"
	"github.com/aferraz/consumo-api/internal/domain/consumo"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

func dia(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.Local)
}

// mov constrói um movimento canônico com delta de valor = qtd × 10.
func mov(nuNota int64, seq int, data time.Time, tipo consumo.TipoMovimento, qtd int64) consumo.MovimentoCanonico {
	deltaQtd := decimal.NewFromInt(qtd)
	deltaValor := deltaQtd.Mul(decimal.NewFromInt(10))
	if !tipo.MovimentaValor() {
		deltaValor = decimal.Zero
	}
	return consumo.MovimentoCanonico{
		CodProd:         100,
		NuNota:          nuNota,
		Sequencia:       seq,
		Data:            data,
		DataValida:      true,
		Tipo:            tipo,
		DeltaQuantidade: deltaQtd,
		DeltaValor:      deltaValor,
		VlrUnitario:     decimal.NewFromInt(10),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Janela e particionamento
// ──────────────────────────────────────────────────────────────────────────────

func TestReconciliar_JanelaInvertidaRetornaErro(t *testing.T) {
	_, err := consumo.Reconciliar(nil, dia(10), dia(10), nil)
	assert.True(t, errors.Is(err, domain.ErrEntradaInvalida),
		"janela vazia [d, d) deve ser rejeitada")

	_, err = consumo.Reconciliar(nil, dia(10), dia(5), nil)
	assert.True(t, errors.Is(err, domain.ErrEntradaInvalida),
		"janela invertida deve ser rejeitada")
}

// O fim é exclusivo: movimento exatamente em `fim` fica fora da janela.
func TestReconciliar_FimExclusivo(t *testing.T) {
	movs := []consumo.MovimentoCanonico{
		mov(1, 1, dia(9), consumo.TipoCompra, 10),  // antes
		mov(2, 1, dia(10), consumo.TipoCompra, 20), // dentro (inicio é inclusivo)
		mov(3, 1, dia(19), consumo.TipoVenda, -5),  // dentro
		mov(4, 1, dia(20), consumo.TipoCompra, 99), // fora (fim é exclusivo)
	}

	rec, err := consumo.Reconciliar(movs, dia(10), dia(20), nil)
	require.NoError(t, err)

	assert.Len(t, rec.Movimentos, 2)
	assert.Equal(t, 1, rec.ForaDaJanela)
	assert.True(t, rec.SaldoAnterior.Quantidade.Equal(decimal.NewFromInt(10)),
		"apenas o movimento anterior à janela compõe o saldo anterior")
}

// Todo movimento cai em exatamente uma partição: antes, dentro, fora ou aviso.
func TestReconciliar_ParticionamentoCompleto(t *testing.T) {
	semData := mov(5, 1, time.Time{}, consumo.TipoCompra, 7)
	semData.DataValida = false

	movs := []consumo.MovimentoCanonico{
		mov(1, 1, dia(1), consumo.TipoCompra, 10),
		mov(2, 1, dia(12), consumo.TipoVenda, -4),
		mov(3, 1, dia(25), consumo.TipoCompra, 3),
		semData,
	}

	rec, err := consumo.Reconciliar(movs, dia(10), dia(20), nil)
	require.NoError(t, err)

	dentro := len(rec.Movimentos)
	avisos := len(rec.Avisos)
	// antes não é exposto diretamente; deriva do total
	antes := len(movs) - dentro - rec.ForaDaJanela - avisos
	assert.Equal(t, 1, dentro)
	assert.Equal(t, 1, rec.ForaDaJanela)
	assert.Equal(t, 1, avisos)
	assert.Equal(t, 1, antes)
}

func TestReconciliar_DataIlegivelExcluidaComAviso(t *testing.T) {
	semData := mov(9, 1, time.Time{}, consumo.TipoCompra, 50)
	semData.DataValida = false

	rec, err := consumo.Reconciliar([]consumo.MovimentoCanonico{semData}, dia(1), dia(30), nil)
	require.NoError(t, err)

	assert.Empty(t, rec.Movimentos)
	require.Len(t, rec.Avisos, 1)
	assert.Equal(t, consumo.AvisoDataInvalida, rec.Avisos[0].Motivo)
	assert.True(t, rec.SaldoFinal.Quantidade.IsZero(),
		"linha com data ilegível não pode afetar o saldo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Saldo anterior: semente vs. aproximação por baseline zero
// ──────────────────────────────────────────────────────────────────────────────

func TestReconciliar_SaldoSementeAutoritativo(t *testing.T) {
	semente := &consumo.Saldo{
		CodProd:    100,
		Quantidade: decimal.NewFromInt(100),
		Valor:      decimal.NewFromInt(1000),
	}
	rec, err := consumo.Reconciliar([]consumo.MovimentoCanonico{
		mov(1, 1, dia(5), consumo.TipoCompra, 999), // anterior à janela: ignorado com semente
		mov(2, 1, dia(12), consumo.TipoVenda, -30),
	}, dia(10), dia(20), semente)
	require.NoError(t, err)

	assert.True(t, rec.SaldoAnterior.Quantidade.Equal(decimal.NewFromInt(100)),
		"com semente os movimentos anteriores não entram no saldo anterior")
	assert.False(t, rec.SaldoAnterior.Aproximado)
	assert.False(t, rec.SaldoFinal.Aproximado)
	assert.True(t, rec.SaldoAnterior.Referencia.Equal(dia(10)))
}

func TestReconciliar_SemSemente_AproximadoPorBaselineZero(t *testing.T) {
	rec, err := consumo.Reconciliar([]consumo.MovimentoCanonico{
		mov(1, 1, dia(2), consumo.TipoCompra, 40),
		mov(2, 1, dia(5), consumo.TipoVenda, -15),
		mov(3, 1, dia(12), consumo.TipoCompra, 10),
	}, dia(10), dia(20), nil)
	require.NoError(t, err)

	assert.True(t, rec.SaldoAnterior.Quantidade.Equal(decimal.NewFromInt(25)),
		"saldo anterior = soma dos deltas anteriores sobre baseline zero")
	assert.True(t, rec.SaldoAnterior.Aproximado, "sem semente o saldo é aproximado")
	assert.True(t, rec.SaldoFinal.Aproximado, "a aproximação propaga para o saldo final")
}

// ──────────────────────────────────────────────────────────────────────────────
// Identidade de saldo e ordenação
// ──────────────────────────────────────────────────────────────────────────────

// Invariante central: final = anterior + Σ deltas da janela, em quantidade e valor.
func TestReconciliar_IdentidadeDeSaldo(t *testing.T) {
	movs := []consumo.MovimentoCanonico{
		mov(1, 1, dia(3), consumo.TipoCompra, 12),
		mov(2, 1, dia(11), consumo.TipoCompra, 50),
		mov(3, 1, dia(14), consumo.TipoVenda, -30),
		mov(4, 1, dia(15), consumo.TipoTransfSaida, -5),
		mov(5, 1, dia(18), consumo.TipoAjuste, -2),
	}

	rec, err := consumo.Reconciliar(movs, dia(10), dia(20), nil)
	require.NoError(t, err)

	somaQtd := rec.SaldoAnterior.Quantidade
	somaValor := rec.SaldoAnterior.Valor
	for _, m := range rec.Movimentos {
		somaQtd = somaQtd.Add(m.DeltaQuantidade)
		somaValor = somaValor.Add(m.DeltaValor)
	}
	assert.True(t, rec.SaldoFinal.Quantidade.Equal(somaQtd),
		"quantidade final deve fechar com anterior + Σ deltas")
	assert.True(t, rec.SaldoFinal.Valor.Equal(somaValor),
		"valor final deve fechar com anterior + Σ deltas")

	// O último saldo corrente é o saldo final.
	ultimo := rec.Movimentos[len(rec.Movimentos)-1]
	assert.True(t, ultimo.SaldoQuantidade.Equal(rec.SaldoFinal.Quantidade))
	assert.True(t, ultimo.SaldoValor.Equal(rec.SaldoFinal.Valor))
}

// Ordenação por (data, documento, sequência), independente da ordem de chegada.
func TestReconciliar_OrdenaPorDataDocumentoSequencia(t *testing.T) {
	movs := []consumo.MovimentoCanonico{
		mov(7, 2, dia(12), consumo.TipoCompra, 1),
		mov(7, 1, dia(12), consumo.TipoCompra, 1),
		mov(5, 1, dia(12), consumo.TipoCompra, 1),
		mov(9, 1, dia(11), consumo.TipoCompra, 1),
	}

	rec, err := consumo.Reconciliar(movs, dia(10), dia(20), nil)
	require.NoError(t, err)
	require.Len(t, rec.Movimentos, 4)

	assert.Equal(t, int64(9), rec.Movimentos[0].NuNota, "data mais antiga primeiro")
	assert.Equal(t, int64(5), rec.Movimentos[1].NuNota)
	assert.Equal(t, int64(7), rec.Movimentos[2].NuNota)
	assert.Equal(t, 1, rec.Movimentos[2].Sequencia, "mesmo documento aplica na ordem da sequência")
	assert.Equal(t, 2, rec.Movimentos[3].Sequencia)
}

// Reaplicar sobre o mesmo snapshot produz exatamente o mesmo resultado.
func TestReconciliar_Deterministico(t *testing.T) {
	movs := []consumo.MovimentoCanonico{
		mov(1, 1, dia(11), consumo.TipoCompra, 50),
		mov(2, 1, dia(12), consumo.TipoVenda, -30),
	}

	rec1, err := consumo.Reconciliar(movs, dia(10), dia(20), nil)
	require.NoError(t, err)
	rec2, err := consumo.Reconciliar(movs, dia(10), dia(20), nil)
	require.NoError(t, err)

	assert.True(t, rec1.SaldoFinal.Quantidade.Equal(rec2.SaldoFinal.Quantidade))
	assert.True(t, rec1.SaldoFinal.Valor.Equal(rec2.SaldoFinal.Valor))
	assert.Equal(t, len(rec1.Movimentos), len(rec2.Movimentos))
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos de borda
// ──────────────────────────────────────────────────────────────────────────────

// Janela sem movimentos é resposta válida: final == anterior.
func TestReconciliar_JanelaSemMovimentos(t *testing.T) {
	rec, err := consumo.Reconciliar([]consumo.MovimentoCanonico{
		mov(1, 1, dia(2), consumo.TipoCompra, 30),
	}, dia(10), dia(20), nil)
	require.NoError(t, err)

	assert.Empty(t, rec.Movimentos)
	assert.True(t, rec.SaldoFinal.Quantidade.Equal(rec.SaldoAnterior.Quantidade))
	assert.True(t, rec.SaldoFinal.Valor.Equal(rec.SaldoAnterior.Valor))
}

// Saldo negativo não é erro: o motor apenas sinaliza.
func TestReconciliar_SaldoNegativoSinalizado(t *testing.T) {
	rec, err := consumo.Reconciliar([]consumo.MovimentoCanonico{
		mov(1, 1, dia(12), consumo.TipoVenda, -30),
	}, dia(10), dia(20), nil)
	require.NoError(t, err)

	assert.True(t, rec.SaldoFinal.Negativo, "saldo negativo deve ser sinalizado")
	assert.True(t, rec.SaldoFinal.Quantidade.Equal(decimal.NewFromInt(-30)))
	assert.False(t, rec.SaldoAnterior.Negativo)
}
