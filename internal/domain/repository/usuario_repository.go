package repository

import (
	"context"

	"github.com/aferraz/consumo-api/internal/domain/entity"
)

// UsuarioRepository consultas sobre o espelho de TSIUSU.
type UsuarioRepository interface {
	// GetByEmail devolve o usuário ou nil quando não existe.
	GetByEmail(ctx context.Context, email string) (*entity.Usuario, error)

	// MapaDepartamentos resolve codUsu -> departamento para o conjunto pedido.
	// Usuários sem vínculo ficam fora do mapa (o agregador os agrupa como
	// desconhecidos).
	MapaDepartamentos(ctx context.Context, codEmp int, codUsus []int64) (map[int64]string, error)
}
