package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNaoEncontrado        = errors.New("recurso não encontrado")
	ErrEntradaInvalida      = errors.New("entrada inválida")
	ErrUsuarioNaoEncontrado = errors.New("usuário não encontrado")
	ErrNaoAutorizado        = errors.New("não autorizado")
	ErrAcessoNegado         = errors.New("acesso negado")
)
