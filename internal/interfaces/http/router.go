package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aferraz/consumo-api/internal/application/auth"
	"github.com/aferraz/consumo-api/internal/application/consumo"
	"github.com/aferraz/consumo-api/internal/application/usecase"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	ConsumoUC *consumo.AnaliseUseCase
	PDFGen    consumo.RelatorioPDFGenerator
	ProdutoUC *usecase.ProdutoUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
	Pool      *pgxpool.Pool
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	// Health check (público); verifica a conexão com o banco.
	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Pool != nil {
			if err := deps.Pool.Ping(c.Context()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "degraded", "db": err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (requerem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Consumo (protegido)
	consumoGroup := protected.Group("/consumo")
	consumoHandler := NewConsumoHandler(deps.ConsumoUC, deps.PDFGen)
	consumoGroup.Get("/analise", consumoHandler.Analise)
	consumoGroup.Get("/analise/pdf", consumoHandler.AnalisePDF)

	// Produtos (protegido)
	produtos := protected.Group("/produtos")
	produtoHandler := NewProdutoHandler(deps.ProdutoUC)
	produtos.Get("/", produtoHandler.Listar)
	produtos.Get("/:codigo", produtoHandler.GetByCodigo)
}
