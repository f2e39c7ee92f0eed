package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/aferraz/consumo-api/internal/domain/entity"
	"github.com/aferraz/consumo-api/internal/domain/repository"
)

var _ repository.MovimentoEstoqueRepository = (*MovimentoEstoqueRepo)(nil)

// MovimentoEstoqueRepo leitura do espelho flat de movimentações
// (ETL de TGFITE × TGFCAB × TGFTOP do Sankhya). Usável com pool ou tx (Querier).
//
// O espelho guarda duas colunas de data: dtmov (timestamp, NULL quando a origem
// veio ilegível) para filtrar no banco, e dtmov_origem (texto tal como o ERP
// serializou) que é o que o motor interpreta e audita.
type MovimentoEstoqueRepo struct {
	q Querier
}

// NewMovimentoEstoqueRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMovimentoEstoqueRepository(q Querier) *MovimentoEstoqueRepo {
	return &MovimentoEstoqueRepo{q: q}
}

const colunasMovimento = `
	codemp, codprod, nunota, sequencia, dtmov_origem,
	codtipoper, COALESCE(descrtipoper, ''), tipmov, atualest,
	qtdneg, vlrunit,
	codparc, COALESCE(nomeparc, ''),
	codusuinc, COALESCE(nomeusuinc, ''),
	codusualt, COALESCE(nomeusualt, ''),
	COALESCE(controle, ''), COALESCE(observacao, '')`

// ListarAteData devolve todas as linhas do produto com dtmov < ate, histórico
// incluído. Linhas com dtmov NULL (data de origem ilegível) também retornam,
// para que o motor as contabilize como aviso de qualidade em vez de sumirem
// em silêncio.
func (r *MovimentoEstoqueRepo) ListarAteData(
	ctx context.Context,
	codEmp int,
	codProd int64,
	ate time.Time,
) ([]entity.MovimentoEstoque, error) {
	query := `
		SELECT ` + colunasMovimento + `
		FROM movimentos_estoque
		WHERE codemp = $1 AND codprod = $2 AND (dtmov < $3 OR dtmov IS NULL)`

	rows, err := r.q.Query(ctx, query, codEmp, codProd, ate)
	if err != nil {
		return nil, fmt.Errorf("listar movimentos: %w", err)
	}
	defer rows.Close()

	var linhas []entity.MovimentoEstoque
	for rows.Next() {
		var m entity.MovimentoEstoque
		if err := rows.Scan(
			&m.CodEmp, &m.CodProd, &m.NuNota, &m.Sequencia,
			&m.DataMovimento,
			&m.CodTipOper, &m.DescrTipOper, &m.TipoNegociacao, &m.AtualizaEstoque,
			&m.Quantidade, &m.VlrUnitario,
			&m.CodParc, &m.NomeParc,
			&m.CodUsuInclusao, &m.NomeUsuInclusao,
			&m.CodUsuAlteracao, &m.NomeUsuAlteracao,
			&m.Controle, &m.Observacao,
		); err != nil {
			return nil, fmt.Errorf("scan movimento: %w", err)
		}
		linhas = append(linhas, m)
	}
	return linhas, rows.Err()
}

// Layouts aceitos ao materializar dtmov na carga. Mesma família que o motor
// interpreta; o que não casar vira NULL e fica auditável em dtmov_origem.
var layoutsCarga = []string{
	"02/01/2006 15:04:05",
	"02/01/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// InserirLote grava linhas no espelho (carga de desenvolvimento/seed).
func (r *MovimentoEstoqueRepo) InserirLote(ctx context.Context, linhas []entity.MovimentoEstoque) error {
	const query = `
		INSERT INTO movimentos_estoque (
			codemp, codprod, nunota, sequencia, dtmov, dtmov_origem,
			codtipoper, descrtipoper, tipmov, atualest,
			qtdneg, vlrunit, codparc, nomeparc,
			codusuinc, nomeusuinc, codusualt, nomeusualt,
			controle, observacao
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		)
		ON CONFLICT (nunota, sequencia) DO NOTHING`

	for _, m := range linhas {
		var dtmov *time.Time
		for _, layout := range layoutsCarga {
			if t, err := time.ParseInLocation(layout, m.DataMovimento, time.Local); err == nil {
				dtmov = &t
				break
			}
		}

		_, err := r.q.Exec(ctx, query,
			m.CodEmp, m.CodProd, m.NuNota, m.Sequencia, dtmov, m.DataMovimento,
			m.CodTipOper, m.DescrTipOper, m.TipoNegociacao, m.AtualizaEstoque,
			m.Quantidade, m.VlrUnitario, m.CodParc, m.NomeParc,
			m.CodUsuInclusao, m.NomeUsuInclusao, m.CodUsuAlteracao, m.NomeUsuAlteracao,
			m.Controle, m.Observacao,
		)
		if err != nil {
			return fmt.Errorf("inserir movimento %d/%d: %w", m.NuNota, m.Sequencia, err)
		}
	}
	return nil
}
