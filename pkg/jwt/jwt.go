package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims inclui os claims padrão JWT mais os campos próprios da aplicação.
// CodEmp identifica a empresa (multi-tenant) para que os handlers filtrem sem consultar a base.
type Claims struct {
	jwt.RegisteredClaims
	CodUsu int64 `json:"cod_usu"`
	CodEmp int   `json:"cod_emp"`
}

// Generate gera um token JWT assinado que inclui codUsu e codEmp.
func Generate(secret string, codUsu int64, codEmp int, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vazio")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", codUsu),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		CodUsu: codUsu,
		CodEmp: codEmp,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida o token e devolve codUsu e codEmp.
// Retorna erro se o token for inválido, expirado ou tiver assinatura incorreta.
func Parse(secret, tokenString string) (codUsu int64, codEmp int, err error) {
	if secret == "" {
		return 0, 0, fmt.Errorf("jwt: secret vazio")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, 0, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, 0, fmt.Errorf("claims inválidos")
	}
	return claims.CodUsu, claims.CodEmp, nil
}
