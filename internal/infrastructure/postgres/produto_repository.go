package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/aferraz/consumo-api/internal/domain/entity"
	"github.com/aferraz/consumo-api/internal/domain/repository"
)

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)

// ProdutoRepo leitura do espelho de TGFPRO. Usável com pool ou tx (Querier).
type ProdutoRepo struct {
	q Querier
}

// NewProdutoRepository constrói o adaptador de produtos.
func NewProdutoRepository(q Querier) *ProdutoRepo {
	return &ProdutoRepo{q: q}
}

// GetByCodigo devolve o produto ou nil quando não existe na empresa.
func (r *ProdutoRepo) GetByCodigo(ctx context.Context, codEmp int, codProd int64) (*entity.Produto, error) {
	const query = `
		SELECT codemp, codprod, descrprod, COALESCE(referencia, ''), COALESCE(codvol, ''),
		       codgrupoprod, COALESCE(descrgrupoprod, ''), custo_medio, ativo
		FROM produtos WHERE codemp = $1 AND codprod = $2`

	var p entity.Produto
	err := r.q.QueryRow(ctx, query, codEmp, codProd).Scan(
		&p.CodEmp, &p.CodProd, &p.Descricao, &p.Referencia, &p.Unidade,
		&p.CodGrupo, &p.DescrGrupo, &p.CustoMedio, &p.Ativo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar produto: %w", err)
	}
	return &p, nil
}

// Listar devolve uma página de produtos e o total de linhas do filtro.
func (r *ProdutoRepo) Listar(
	ctx context.Context,
	codEmp int,
	busca string,
	limit, offset int,
) ([]entity.Produto, int, error) {
	query := `
		SELECT codemp, codprod, descrprod, COALESCE(referencia, ''), COALESCE(codvol, ''),
		       codgrupoprod, COALESCE(descrgrupoprod, ''), custo_medio, ativo
		FROM produtos WHERE codemp = $1`
	countQuery := `SELECT COUNT(*) FROM produtos WHERE codemp = $1`
	args := []any{codEmp}

	if busca != "" {
		query += ` AND (descrprod ILIKE $2 OR referencia ILIKE $2)`
		countQuery += ` AND (descrprod ILIKE $2 OR referencia ILIKE $2)`
		args = append(args, "%"+busca+"%")
	}

	var total int
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("contar produtos: %w", err)
	}

	query += fmt.Sprintf(" ORDER BY descrprod LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listar produtos: %w", err)
	}
	defer rows.Close()

	var produtos []entity.Produto
	for rows.Next() {
		var p entity.Produto
		if err := rows.Scan(&p.CodEmp, &p.CodProd, &p.Descricao, &p.Referencia, &p.Unidade,
			&p.CodGrupo, &p.DescrGrupo, &p.CustoMedio, &p.Ativo); err != nil {
			return nil, 0, fmt.Errorf("scan produto: %w", err)
		}
		produtos = append(produtos, p)
	}
	return produtos, total, rows.Err()
}
