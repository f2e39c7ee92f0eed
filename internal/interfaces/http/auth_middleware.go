package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/aferraz/consumo-api/internal/application/dto"
	"github.com/aferraz/consumo-api/pkg/jwt"
)

// Locals keys para CodUsu e CodEmp no Fiber.
const (
	LocalCodUsu = "cod_usu"
	LocalCodEmp = "cod_emp"
)

// AuthMiddleware valida o Bearer Token JWT e extrai CodUsu e CodEmp para c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		codUsu, codEmp, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalCodUsu, codUsu)
		c.Locals(LocalCodEmp, codEmp)
		return c.Next()
	}
}

// GetCodUsu devolve o código do usuário autenticado (após o middleware de auth).
func GetCodUsu(c *fiber.Ctx) int64 {
	v := c.Locals(LocalCodUsu)
	if v == nil {
		return 0
	}
	n, _ := v.(int64)
	return n
}

// GetCodEmp devolve a empresa do usuário autenticado (após o middleware de auth).
func GetCodEmp(c *fiber.Ctx) int {
	v := c.Locals(LocalCodEmp)
	if v == nil {
		return 0
	}
	n, _ := v.(int)
	return n
}
