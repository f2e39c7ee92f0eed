package consumo_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aferraz/consumo-api/internal/domain/consumo"
)

func movsComSaldo(n int) []consumo.MovimentoComSaldo {
	out := make([]consumo.MovimentoComSaldo, n)
	saldo := decimal.Zero
	for i := range out {
		saldo = saldo.Add(decimal.NewFromInt(1))
		out[i] = consumo.MovimentoComSaldo{
			MovimentoCanonico: mov(int64(i+1), 1, dia(11), consumo.TipoCompra, 1),
			SaldoQuantidade:   saldo,
			SaldoValor:        saldo.Mul(decimal.NewFromInt(10)),
		}
	}
	return out
}

func TestPaginar_FatiaSimples(t *testing.T) {
	pag := consumo.Paginar(movsComSaldo(10), 2, 3)

	assert.Equal(t, 10, pag.Total)
	assert.Equal(t, 4, pag.UltimaPagina)
	require.Len(t, pag.Dados, 3)
	assert.Equal(t, int64(4), pag.Dados[0].NuNota, "página 2 com 3 por página começa no 4º item")
}

// Paginação nunca recalcula saldos: o saldo corrente de um item é o mesmo em
// qualquer página pedida.
func TestPaginar_NaoInterfereNosSaldos(t *testing.T) {
	movs := movsComSaldo(10)

	tudo := consumo.Paginar(movs, 1, 100)
	fatia := consumo.Paginar(movs, 3, 2) // itens 5 e 6

	require.Len(t, fatia.Dados, 2)
	assert.True(t, fatia.Dados[0].SaldoQuantidade.Equal(tudo.Dados[4].SaldoQuantidade),
		"o saldo corrente reflete a janela inteira, não a página")
	assert.True(t, fatia.Dados[1].SaldoQuantidade.Equal(tudo.Dados[5].SaldoQuantidade))
}

func TestPaginar_NormalizaParametros(t *testing.T) {
	pag := consumo.Paginar(movsComSaldo(5), 0, -3)

	assert.Equal(t, 1, pag.Pagina, "página < 1 é normalizada para 1")
	assert.Equal(t, 1, pag.PorPagina, "por página < 1 é normalizado para 1")
	require.Len(t, pag.Dados, 1)
}

func TestPaginar_PaginaAlemDoFim(t *testing.T) {
	pag := consumo.Paginar(movsComSaldo(5), 99, 10)

	assert.Empty(t, pag.Dados, "página além do fim devolve fatia vazia, não erro")
	assert.Equal(t, 5, pag.Total)
	assert.Equal(t, 1, pag.UltimaPagina)
}

func TestPaginar_ListaVazia(t *testing.T) {
	pag := consumo.Paginar(nil, 1, 50)

	assert.Empty(t, pag.Dados)
	assert.Equal(t, 0, pag.Total)
	assert.Equal(t, 1, pag.UltimaPagina, "lista vazia tem exatamente uma página (vazia)")
}

func TestPaginar_UltimaPaginaParcial(t *testing.T) {
	pag := consumo.Paginar(movsComSaldo(7), 3, 3)

	require.Len(t, pag.Dados, 1, "última página carrega só o resto")
	assert.Equal(t, 3, pag.UltimaPagina)
	assert.Equal(t, int64(7), pag.Dados[0].NuNota)
}
