package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"github.com/aferraz/consumo-api/internal/application/dto"
	"github.com/aferraz/consumo-api/internal/domain"
	"github.com/aferraz/consumo-api/internal/domain/repository"
	pkgjwt "github.com/aferraz/consumo-api/pkg/jwt"
)

// JWTConfig parâmetros de emissão do token.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autenticação por email/senha contra o espelho de usuários.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase constrói o caso de uso.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Login valida as credenciais e emite o token JWT com codUsu e codEmp.
// Credencial inválida e usuário inexistente retornam o mesmo erro, para não
// revelar quais emails existem na base.
func (uc *AuthUseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Email == "" || req.Senha == "" {
		return nil, fmt.Errorf("email e senha obrigatórios: %w", domain.ErrEntradaInvalida)
	}

	u, err := uc.usuarioRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if u == nil || !u.Ativo {
		return nil, domain.ErrNaoAutorizado
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte(req.Senha)); err != nil {
		return nil, domain.ErrNaoAutorizado
	}

	token, err := pkgjwt.Generate(uc.jwtCfg.Secret, u.CodUsu, u.CodEmp, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}

	return &dto.LoginResponse{
		Token:  token,
		CodUsu: u.CodUsu,
		CodEmp: u.CodEmp,
		Nome:   u.Nome,
	}, nil
}
