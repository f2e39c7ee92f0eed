package consumo

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/aferraz/consumo-api/internal/domain"
)

// ResultadoReconciliacao saída completa da reconciliação de uma janela.
type ResultadoReconciliacao struct {
	SaldoAnterior Saldo               // estado imediatamente antes da janela
	SaldoFinal    Saldo               // estado ao fim da janela
	Movimentos    []MovimentoComSaldo // movimentos da janela com saldo corrente, ordenados
	Avisos        []AvisoQualidade    // linhas excluídas por data ilegível
	ForaDaJanela  int                 // movimentos com data >= fim (conferência, não entram no saldo)
}

// Reconciliar particiona os movimentos canônicos em antes/dentro/depois da
// janela [inicio, fim), calcula o saldo anterior, anota o saldo corrente
// movimento a movimento e fecha o saldo final.
//
// Saldo anterior: saldoSemente quando fornecido; senão a soma de todos os
// deltas anteriores à janela sobre baseline zero — aproximação documentada
// para produtos sem saldo autoritativo de abertura.
//
// Invariante central: SaldoFinal.Quantidade == SaldoAnterior.Quantidade +
// Σ DeltaQuantidade(dentro); idem para valor.
func Reconciliar(
	movs []MovimentoCanonico,
	inicio, fim time.Time,
	saldoSemente *Saldo,
) (*ResultadoReconciliacao, error) {
	if !inicio.Before(fim) {
		return nil, fmt.Errorf("reconciliar: janela [%s, %s) vazia ou invertida: %w",
			inicio.Format("02/01/2006"), fim.Format("02/01/2006"), domain.ErrEntradaInvalida)
	}

	var codProd int64
	if len(movs) > 0 {
		codProd = movs[0].CodProd
	}
	if saldoSemente != nil {
		codProd = saldoSemente.CodProd
	}

	// 1. Particionar. Linhas com data ilegível ficam de fora e viram aviso;
	//    a reconciliação segue com as demais.
	var antes, dentro []MovimentoCanonico
	var avisos []AvisoQualidade
	foraDaJanela := 0

	for _, m := range movs {
		switch {
		case !m.DataValida:
			avisos = append(avisos, AvisoQualidade{
				Motivo:    AvisoDataInvalida,
				NuNota:    m.NuNota,
				Sequencia: m.Sequencia,
				Detalhe:   "movimento excluído da reconciliação por data ilegível",
			})
		case m.Data.Before(inicio):
			antes = append(antes, m)
		case m.Data.Before(fim):
			dentro = append(dentro, m)
		default:
			foraDaJanela++
		}
	}

	// 2. Ordenar a janela por (data, documento, sequência). O desempate por
	//    documento/sequência garante que linhas do mesmo documento apliquem na
	//    ordem de lançamento — o saldo final não depende disso, mas os saldos
	//    intermediários exibidos sim.
	sort.SliceStable(dentro, func(i, j int) bool {
		a, b := dentro[i], dentro[j]
		if !a.Data.Equal(b.Data) {
			return a.Data.Before(b.Data)
		}
		if a.NuNota != b.NuNota {
			return a.NuNota < b.NuNota
		}
		return a.Sequencia < b.Sequencia
	})

	// 3. Saldo anterior
	var anterior Saldo
	if saldoSemente != nil {
		anterior = *saldoSemente
		anterior.Referencia = inicio
	} else {
		qtd, valor := somarDeltas(antes)
		anterior = Saldo{
			CodProd:    codProd,
			Referencia: inicio,
			Quantidade: qtd,
			Valor:      valor,
			Aproximado: true,
		}
	}
	anterior.Negativo = anterior.Quantidade.IsNegative()

	// 4. Saldo corrente movimento a movimento
	entradas := make([]MovimentoComSaldo, 0, len(dentro))
	saldoQtd := anterior.Quantidade
	saldoValor := anterior.Valor
	for _, m := range dentro {
		saldoQtd = saldoQtd.Add(m.DeltaQuantidade)
		saldoValor = saldoValor.Add(m.DeltaValor)
		entradas = append(entradas, MovimentoComSaldo{
			MovimentoCanonico: m,
			SaldoQuantidade:   saldoQtd,
			SaldoValor:        saldoValor,
		})
	}

	// 5. Saldo final (janela vazia => final == anterior, sem erro)
	final := Saldo{
		CodProd:    codProd,
		Referencia: fim,
		Quantidade: saldoQtd,
		Valor:      saldoValor,
		Negativo:   saldoQtd.IsNegative(),
		Aproximado: anterior.Aproximado,
	}

	return &ResultadoReconciliacao{
		SaldoAnterior: anterior,
		SaldoFinal:    final,
		Movimentos:    entradas,
		Avisos:        avisos,
		ForaDaJanela:  foraDaJanela,
	}, nil
}

func somarDeltas(movs []MovimentoCanonico) (qtd, valor decimal.Decimal) {
	for _, m := range movs {
		qtd = qtd.Add(m.DeltaQuantidade)
		valor = valor.Add(m.DeltaValor)
	}
	return qtd, valor
}
