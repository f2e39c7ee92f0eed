package consumo

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/aferraz/consumo-api/internal/domain"
)

// Dimensao dimensão de agrupamento do resumo de consumo.
type Dimensao string

// Dimensões suportadas.
const (
	DimensaoUsuario      Dimensao = "USUARIO"
	DimensaoDepartamento Dimensao = "DEPARTAMENTO"
	DimensaoParceiro     Dimensao = "PARCEIRO"
	DimensaoMes          Dimensao = "MES"
	DimensaoTipoOperacao Dimensao = "TIPO_OPERACAO"
)

// ChaveDesconhecida agrupa movimentos sem chave para a dimensão. O movimento
// nunca é descartado: a soma dos grupos (incluindo o desconhecido) fecha com o
// total de movimentos da dimensão.
const ChaveDesconhecida = "DESCONHECIDO"

// ParseDimensao valida o nome de uma dimensão vindo da requisição.
func ParseDimensao(s string) (Dimensao, error) {
	switch Dimensao(s) {
	case DimensaoUsuario, DimensaoDepartamento, DimensaoParceiro, DimensaoMes, DimensaoTipoOperacao:
		return Dimensao(s), nil
	}
	return "", fmt.Errorf("dimensão de agrupamento %q desconhecida: %w", s, domain.ErrEntradaInvalida)
}

// Resolvedor extrai a chave de agrupamento de um movimento. Resolvedores de
// cadastros externos (ex.: usuário -> departamento) são funções puras
// fornecidas pelo chamador sobre um snapshot já buscado.
type Resolvedor func(m MovimentoCanonico) string

// Resolvedores mapeia dimensões a resolvedores externos. Dimensões sem entrada
// usam o extrator embutido; DEPARTAMENTO exige resolvedor (sem ele tudo cai em
// ChaveDesconhecida).
type Resolvedores map[Dimensao]Resolvedor

// GrupoResumo linha de um agrupamento, ordenada por impacto de valor.
type GrupoResumo struct {
	Chave             string          `json:"chave"`
	QtdMovimentos     int             `json:"qtd_movimentos"`
	Quantidade        decimal.Decimal `json:"quantidade"`
	Valor             decimal.Decimal `json:"valor"`
	PercentualDoTotal decimal.Decimal `json:"percentual_do_total"`
}

// ResumoAgregado totais da janela e agrupamentos por dimensão solicitada.
//
// Entradas somam os deltas positivos; consumo soma os negativos e é exposto
// como magnitude positiva. O percentual de cada grupo é calculado sobre o
// total absoluto da própria dimensão, de modo que a soma fecha em 100% mesmo
// quando alguma chave é desconhecida em uma dimensão e não em outra.
type ResumoAgregado struct {
	QtdMovimentos       int
	DocumentosDistintos int

	EntradasQuantidade decimal.Decimal
	EntradasValor      decimal.Decimal
	ConsumoQuantidade  decimal.Decimal
	ConsumoValor       decimal.Decimal

	Grupos map[Dimensao][]GrupoResumo
}

// Agregar dobra os movimentos da janela em totais e agrupamentos.
// Percentuais são derivados dos totais já somados (nunca acumulados
// incrementalmente) para não compor erro de arredondamento.
func Agregar(movs []MovimentoCanonico, dimensoes []Dimensao, resolvedores Resolvedores) *ResumoAgregado {
	resumo := &ResumoAgregado{
		QtdMovimentos: len(movs),
		Grupos:        make(map[Dimensao][]GrupoResumo, len(dimensoes)),
	}

	documentos := make(map[int64]struct{}, len(movs))
	for _, m := range movs {
		documentos[m.NuNota] = struct{}{}
		if m.DeltaQuantidade.IsNegative() {
			resumo.ConsumoQuantidade = resumo.ConsumoQuantidade.Add(m.DeltaQuantidade.Abs())
			resumo.ConsumoValor = resumo.ConsumoValor.Add(m.DeltaValor.Abs())
		} else {
			resumo.EntradasQuantidade = resumo.EntradasQuantidade.Add(m.DeltaQuantidade)
			resumo.EntradasValor = resumo.EntradasValor.Add(m.DeltaValor)
		}
	}
	resumo.DocumentosDistintos = len(documentos)

	for _, d := range dimensoes {
		resumo.Grupos[d] = agruparPor(movs, chaveDaDimensao(d, resolvedores))
	}

	return resumo
}

// chaveDaDimensao devolve o resolvedor externo quando fornecido, senão o
// extrator embutido da dimensão.
func chaveDaDimensao(d Dimensao, resolvedores Resolvedores) Resolvedor {
	if r, ok := resolvedores[d]; ok && r != nil {
		return r
	}
	switch d {
	case DimensaoUsuario:
		return func(m MovimentoCanonico) string {
			if m.NomeUsuInclusao != "" {
				return m.NomeUsuInclusao
			}
			if m.CodUsuInclusao != 0 {
				return fmt.Sprintf("USU %d", m.CodUsuInclusao)
			}
			return ""
		}
	case DimensaoParceiro:
		return func(m MovimentoCanonico) string {
			if m.NomeParc != "" {
				return m.NomeParc
			}
			if m.CodParc != 0 {
				return fmt.Sprintf("PARC %d", m.CodParc)
			}
			return ""
		}
	case DimensaoMes:
		return func(m MovimentoCanonico) string {
			return m.Data.Format("2006-01")
		}
	case DimensaoTipoOperacao:
		return func(m MovimentoCanonico) string {
			return m.DescricaoOperacao
		}
	default:
		// DEPARTAMENTO sem resolvedor: não há cadastro embutido no motor.
		return func(MovimentoCanonico) string { return "" }
	}
}

func agruparPor(movs []MovimentoCanonico, chave Resolvedor) []GrupoResumo {
	type acumulado struct {
		qtdMovs int
		qtd     decimal.Decimal
		valor   decimal.Decimal
	}
	porChave := make(map[string]*acumulado)

	for _, m := range movs {
		k := chave(m)
		if k == "" {
			k = ChaveDesconhecida
		}
		g, ok := porChave[k]
		if !ok {
			g = &acumulado{}
			porChave[k] = g
		}
		g.qtdMovs++
		g.qtd = g.qtd.Add(m.DeltaQuantidade)
		g.valor = g.valor.Add(m.DeltaValor)
	}

	// Total absoluto da dimensão, base dos percentuais.
	var totalAbs decimal.Decimal
	for _, g := range porChave {
		totalAbs = totalAbs.Add(g.valor.Abs())
	}

	grupos := make([]GrupoResumo, 0, len(porChave))
	for k, g := range porChave {
		pct := decimal.Zero
		if totalAbs.IsPositive() {
			pct = g.valor.Abs().Div(totalAbs).Mul(cem).Round(2)
		}
		grupos = append(grupos, GrupoResumo{
			Chave:             k,
			QtdMovimentos:     g.qtdMovs,
			Quantidade:        g.qtd,
			Valor:             g.valor,
			PercentualDoTotal: pct,
		})
	}

	// Maior impacto financeiro primeiro; chave como desempate determinístico.
	sort.Slice(grupos, func(i, j int) bool {
		a, b := grupos[i].Valor.Abs(), grupos[j].Valor.Abs()
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return grupos[i].Chave < grupos[j].Chave
	})

	return grupos
}
