package consumo

import (
	"context"

	"github.com/aferraz/consumo-api/internal/application/dto"
)

// RelatorioPDFGenerator renderiza a análise de consumo como PDF.
// Colaborador de exportação: consome apenas o objeto de resposta já montado,
// nunca recalcula saldos.
type RelatorioPDFGenerator interface {
	GerarRelatorioConsumo(ctx context.Context, analise *dto.ConsumoAnaliseDTO) ([]byte, error)
}
