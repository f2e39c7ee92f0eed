package dto

// LoginRequest body de POST /api/auth/login.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// LoginResponse token JWT e dados básicos do usuário autenticado.
type LoginResponse struct {
	Token  string `json:"token"`
	CodUsu int64  `json:"cod_usu"`
	CodEmp int    `json:"cod_emp"`
	Nome   string `json:"nome"`
}
