package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/aferraz/consumo-api/internal/domain/entity"
	"github.com/aferraz/consumo-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo leitura do espelho de TSIUSU. Usável com pool ou tx (Querier).
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository constrói o adaptador de usuários.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// GetByEmail devolve o usuário ou nil quando não existe.
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	const query = `
		SELECT codemp, codusu, nome, email, senha_hash, COALESCE(departamento, ''), ativo
		FROM usuarios WHERE LOWER(email) = LOWER($1)`

	var u entity.Usuario
	err := r.q.QueryRow(ctx, query, email).Scan(
		&u.CodEmp, &u.CodUsu, &u.Nome, &u.Email, &u.SenhaHash, &u.Departamento, &u.Ativo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar usuário: %w", err)
	}
	return &u, nil
}

// MapaDepartamentos resolve codusu -> departamento para o conjunto pedido.
func (r *UsuarioRepo) MapaDepartamentos(
	ctx context.Context,
	codEmp int,
	codUsus []int64,
) (map[int64]string, error) {
	if len(codUsus) == 0 {
		return map[int64]string{}, nil
	}

	const query = `
		SELECT codusu, departamento
		FROM usuarios
		WHERE codemp = $1 AND codusu = ANY($2) AND departamento IS NOT NULL`

	rows, err := r.q.Query(ctx, query, codEmp, codUsus)
	if err != nil {
		return nil, fmt.Errorf("mapa de departamentos: %w", err)
	}
	defer rows.Close()

	mapa := make(map[int64]string, len(codUsus))
	for rows.Next() {
		var codUsu int64
		var depto string
		if err := rows.Scan(&codUsu, &depto); err != nil {
			return nil, fmt.Errorf("scan departamento: %w", err)
		}
		mapa[codUsu] = depto
	}
	return mapa, rows.Err()
}
