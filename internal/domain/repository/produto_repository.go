package repository

import (
	"context"

	"github.com/aferraz/consumo-api/internal/domain/entity"
)

// ProdutoRepository consultas de leitura sobre o espelho de TGFPRO.
type ProdutoRepository interface {
	// GetByCodigo devolve o produto ou nil quando não existe.
	GetByCodigo(ctx context.Context, codEmp int, codProd int64) (*entity.Produto, error)

	// Listar devolve uma página de produtos da empresa, filtrando por descrição
	// ou referência quando `busca` não é vazio, junto com o total de linhas.
	Listar(ctx context.Context, codEmp int, busca string, limit, offset int) ([]entity.Produto, int, error)
}
