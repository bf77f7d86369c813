package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	commandhttp "github.com/jhoicas/almacen-api/internal/command/http"
	"github.com/jhoicas/almacen-api/internal/command/postgres"
	"github.com/jhoicas/almacen-api/internal/command/service"
	"github.com/jhoicas/almacen-api/internal/platform/kafka"
	"github.com/jhoicas/almacen-api/internal/platform/observability"
	platformpg "github.com/jhoicas/almacen-api/internal/platform/postgres"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando API de comandos")

	ctx := context.Background()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.App.Name+"-command", cfg.Trace)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de trazas")
	}

	pool, err := platformpg.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	publisher := kafka.NewPublisher(cfg.Kafka)
	defer publisher.Close()

	// Cada petición obtiene su propio almacén con seguimiento de cambios.
	products := service.Factory(func() *service.ProductService {
		store := postgres.NewStore(pool)
		return service.NewProductService(
			store,
			service.NewProductValidator(store),
			store,
			publisher,
			log,
		)
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	commandhttp.Router(app, commandhttp.RouterDeps{
		Products: products,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del exportador de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
