package usecase

import (
	"context"
	"fmt"

	"github.com/aferraz/consumo-api/internal/application/dto"
	"github.com/aferraz/consumo-api/internal/domain"
	"github.com/aferraz/consumo-api/internal/domain/entity"
	"github.com/aferraz/consumo-api/internal/domain/repository"
)

// ProdutoUseCase listagem e consulta do espelho de produtos (somente leitura).
type ProdutoUseCase struct {
	produtoRepo repository.ProdutoRepository
}

// NewProdutoUseCase constrói o caso de uso.
func NewProdutoUseCase(produtoRepo repository.ProdutoRepository) *ProdutoUseCase {
	return &ProdutoUseCase{produtoRepo: produtoRepo}
}

// Listar devolve uma página de produtos da empresa.
func (uc *ProdutoUseCase) Listar(
	ctx context.Context,
	codEmp int,
	req dto.ProdutoListRequest,
) (*dto.ProdutoListResponse, error) {
	req.DefaultPage()

	produtos, total, err := uc.produtoRepo.Listar(ctx, codEmp, req.Busca, req.Limit, req.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar produtos: %w", err)
	}

	itens := make([]dto.ProdutoDTO, 0, len(produtos))
	for _, p := range produtos {
		itens = append(itens, produtoDTO(p))
	}

	return &dto.ProdutoListResponse{
		Dados: itens,
		PageResponse: dto.PageResponse{
			Limit:  req.Limit,
			Offset: req.Offset,
			Total:  total,
		},
	}, nil
}

// GetByCodigo devolve um produto; ErrNaoEncontrado quando não existe na empresa.
func (uc *ProdutoUseCase) GetByCodigo(ctx context.Context, codEmp int, codProd int64) (*dto.ProdutoDTO, error) {
	p, err := uc.produtoRepo.GetByCodigo(ctx, codEmp, codProd)
	if err != nil {
		return nil, fmt.Errorf("buscar produto %d: %w", codProd, err)
	}
	if p == nil {
		return nil, domain.ErrNaoEncontrado
	}
	d := produtoDTO(*p)
	return &d, nil
}

func produtoDTO(p entity.Produto) dto.ProdutoDTO {
	return dto.ProdutoDTO{
		CodProd:    p.CodProd,
		Descricao:  p.Descricao,
		Referencia: p.Referencia,
		Unidade:    p.Unidade,
		DescrGrupo: p.DescrGrupo,
		CustoMedio: p.CustoMedio,
		Ativo:      p.Ativo,
	}
}
