package consumo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/aferraz/consumo-api/internal/domain"
	"github.com/aferraz/consumo-api/internal/domain/entity"
)

// Layouts de data aceitos, na ordem de tentativa. O ERP serializa em
// dd/MM/yyyy com ou sem hora; integrações mais novas entregam RFC3339.
var layoutsData = []string{
	"02/01/2006 15:04:05",
	"02/01/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalizar converte linhas cruas em movimentos canônicos com sinal de
// quantidade e valor padronizados (1:1 — nenhuma linha é descartada ou fundida).
//
// Pré-condição: todas as linhas pertencem ao mesmo produto. Linhas de outro
// produto são violação de contrato e retornam ErrEntradaInvalida, nunca são
// filtradas em silêncio.
//
// A saída NÃO é ordenada; ordenar é responsabilidade do reconciliador.
func Normalizar(linhas []entity.MovimentoEstoque) ([]MovimentoCanonico, []AvisoQualidade, error) {
	if len(linhas) == 0 {
		return []MovimentoCanonico{}, nil, nil
	}

	codProd := linhas[0].CodProd
	for _, l := range linhas {
		if l.CodProd != codProd {
			return nil, nil, fmt.Errorf("normalizar: linha do produto %d misturada com produto %d: %w",
				l.CodProd, codProd, domain.ErrEntradaInvalida)
		}
	}

	movs := make([]MovimentoCanonico, 0, len(linhas))
	var avisos []AvisoQualidade

	for _, l := range linhas {
		m, avs := normalizarLinha(l)
		movs = append(movs, m)
		avisos = append(avisos, avs...)
	}

	return movs, avisos, nil
}

// normalizarLinha classifica o tipo canônico, aplica a convenção de sinal e
// interpreta a data de uma única linha.
func normalizarLinha(l entity.MovimentoEstoque) (MovimentoCanonico, []AvisoQualidade) {
	var avisos []AvisoQualidade

	tipo, suspeito, detalhe := classificar(l)
	if suspeito {
		motivo := AvisoDirecaoInconsistente
		if tipo == TipoAjuste && l.TipoNegociacao != entity.TipoNegAjuste {
			motivo = AvisoTipoDesconhecido
		}
		avisos = append(avisos, AvisoQualidade{
			Motivo:    motivo,
			NuNota:    l.NuNota,
			Sequencia: l.Sequencia,
			Detalhe:   detalhe,
		})
	}

	deltaQtd := aplicarSinal(tipo, l)
	deltaValor := decimal.Zero
	if tipo.MovimentaValor() {
		deltaValor = deltaQtd.Mul(l.VlrUnitario)
	}

	if tipo == TipoCompra && deltaQtd.IsZero() {
		avisos = append(avisos, AvisoQualidade{
			Motivo:    AvisoCompraQtdZero,
			NuNota:    l.NuNota,
			Sequencia: l.Sequencia,
			Detalhe:   "compra com quantidade zero não entra no preço médio ponderado",
		})
	}

	data, ok := interpretarData(l.DataMovimento)
	if !ok {
		avisos = append(avisos, AvisoQualidade{
			Motivo:    AvisoDataInvalida,
			NuNota:    l.NuNota,
			Sequencia: l.Sequencia,
			Detalhe:   fmt.Sprintf("data %q ilegível; linha excluída do particionamento", l.DataMovimento),
		})
	}

	return MovimentoCanonico{
		CodProd:           l.CodProd,
		NuNota:            l.NuNota,
		Sequencia:         l.Sequencia,
		Data:              data,
		DataValida:        ok,
		Tipo:              tipo,
		DeltaQuantidade:   deltaQtd,
		DeltaValor:        deltaValor,
		VlrUnitario:       l.VlrUnitario,
		Suspeito:          suspeito,
		DescricaoOperacao: l.DescrTipOper,
		CodParc:           l.CodParc,
		NomeParc:          l.NomeParc,
		CodUsuInclusao:    l.CodUsuInclusao,
		NomeUsuInclusao:   l.NomeUsuInclusao,
		CodUsuAlteracao:   l.CodUsuAlteracao,
		NomeUsuAlteracao:  l.NomeUsuAlteracao,
		Controle:          l.Controle,
		Observacao:        l.Observacao,
	}, avisos
}

// classificar deriva o tipo canônico do tipo de negociação do documento e da
// direção declarada pelo TOP. Devolve suspeito=true quando a direção declarada
// contradiz a direção esperada do tipo (a linha é mantida mesmo assim).
func classificar(l entity.MovimentoEstoque) (tipo TipoMovimento, suspeito bool, detalhe string) {
	switch l.TipoNegociacao {
	case entity.TipoNegCompra:
		if l.AtualizaEstoque == entity.DirecaoSaida {
			return TipoCompra, true, "compra com TOP declarando baixa de estoque"
		}
		return TipoCompra, false, ""

	case entity.TipoNegVenda:
		if l.AtualizaEstoque == entity.DirecaoEntrada {
			return TipoVenda, true, "venda com TOP declarando entrada de estoque"
		}
		return TipoVenda, false, ""

	case entity.TipoNegTransferencia:
		// Na transferência a direção declarada é quem decide o lado.
		switch l.AtualizaEstoque {
		case entity.DirecaoEntrada:
			return TipoTransfEntrada, false, ""
		case entity.DirecaoSaida:
			return TipoTransfSaida, false, ""
		default:
			// Sem direção: decide pelo sinal da quantidade da origem.
			if l.Quantidade.IsNegative() {
				return TipoTransfSaida, true, "transferência sem direção declarada no TOP"
			}
			return TipoTransfEntrada, true, "transferência sem direção declarada no TOP"
		}

	case entity.TipoNegAjuste:
		return TipoAjuste, false, ""

	default:
		return TipoAjuste, true,
			fmt.Sprintf("tipo de negociação %q desconhecido; tratado como ajuste", l.TipoNegociacao)
	}
}

// aplicarSinal padroniza o sinal da quantidade conforme a direção canônica do tipo.
// Ajustes preservam o sinal da origem; quando a origem manda quantidade sem sinal,
// a direção declarada pelo TOP decide.
func aplicarSinal(tipo TipoMovimento, l entity.MovimentoEstoque) decimal.Decimal {
	qtd := l.Quantidade

	switch tipo {
	case TipoCompra, TipoTransfEntrada:
		return qtd.Abs()
	case TipoVenda, TipoTransfSaida:
		return qtd.Abs().Neg()
	default: // ajuste
		if qtd.IsNegative() {
			return qtd
		}
		if l.AtualizaEstoque == entity.DirecaoSaida {
			return qtd.Neg()
		}
		return qtd
	}
}

// interpretarData tenta os layouts conhecidos; ok=false quando nenhum casa.
func interpretarData(s string) (time.Time, bool) {
	for _, layout := range layoutsData {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
