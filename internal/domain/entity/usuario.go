package entity

// Usuario espelho de TSIUSU; Departamento vem do vínculo com o cadastro de setores.
type Usuario struct {
	CodEmp       int
	CodUsu       int64
	Nome         string
	Email        string
	SenhaHash    string // bcrypt
	Departamento string
	Ativo        bool
}
