package repository

import (
	"context"
	"time"

	"github.com/aferraz/consumo-api/internal/domain/entity"
)

// MovimentoEstoqueRepository fornece as linhas cruas de movimentação de um
// produto. As implementações são read-only para o motor de consumo; InserirLote
// existe apenas para carga de dados de desenvolvimento.
type MovimentoEstoqueRepository interface {
	// ListarAteData devolve todas as linhas do produto com data de movimento
	// anterior a `ate`, incluindo o histórico necessário para derivar o saldo
	// anterior à janela. A ordem de retorno não é garantida.
	ListarAteData(ctx context.Context, codEmp int, codProd int64, ate time.Time) ([]entity.MovimentoEstoque, error)

	// InserirLote grava linhas de movimentação em lote (carga de dev/seed).
	InserirLote(ctx context.Context, linhas []entity.MovimentoEstoque) error
}
