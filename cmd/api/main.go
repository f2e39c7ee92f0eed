package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/aferraz/consumo-api/internal/application/auth"
	appconsumo "github.com/aferraz/consumo-api/internal/application/consumo"
	"github.com/aferraz/consumo-api/internal/application/usecase"
	infrapdf "github.com/aferraz/consumo-api/internal/infrastructure/pdf"
	"github.com/aferraz/consumo-api/internal/infrastructure/postgres"
	httpRouter "github.com/aferraz/consumo-api/internal/interfaces/http"
	"github.com/aferraz/consumo-api/pkg/config"
	"github.com/aferraz/consumo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	movRepo := postgres.NewMovimentoEstoqueRepository(pool)
	produtoRepo := postgres.NewProdutoRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)

	consumoUC := appconsumo.NewAnaliseUseCase(movRepo, produtoRepo, usuarioRepo, log)
	produtoUC := usecase.NewProdutoUseCase(produtoRepo)
	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Consumo API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ConsumoUC: consumoUC,
		PDFGen:    pdfGenerator,
		ProdutoUC: produtoUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
		Pool:      pool,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
