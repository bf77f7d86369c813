package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/almacen-api/internal/platform/kafka"
	"github.com/jhoicas/almacen-api/internal/platform/observability"
	platformpg "github.com/jhoicas/almacen-api/internal/platform/postgres"
	"github.com/jhoicas/almacen-api/internal/query/consumer"
	queryhttp "github.com/jhoicas/almacen-api/internal/query/http"
	"github.com/jhoicas/almacen-api/internal/query/postgres"
	"github.com/jhoicas/almacen-api/internal/query/service"
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
		Msg("iniciando API de consultas")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.App.Name+"-query", cfg.Trace)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de trazas")
	}

	pool, err := platformpg.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Cada mensaje obtiene su propio almacén con seguimiento de cambios.
	products := service.Factory(func() *service.ProductService {
		store := postgres.NewStore(pool)
		return service.NewProductService(store, service.NewProductValidator(store), store)
	})

	listeners := []*kafka.Listener{
		kafka.NewListener(cfg.Kafka, cfg.Kafka.CreatedTopic, consumer.NewProductCreatedConsumer(products).Consume, log),
		kafka.NewListener(cfg.Kafka, cfg.Kafka.UpdatedTopic, consumer.NewProductUpdatedConsumer(products).Consume, log),
		kafka.NewListener(cfg.Kafka, cfg.Kafka.DeletedTopic, consumer.NewProductDeletedConsumer(products).Consume, log),
	}

	var wg sync.WaitGroup
	for _, l := range listeners {
		wg.Add(1)
		go func(l *kafka.Listener) {
			defer wg.Done()
			if err := l.Run(ctx); err != nil {
				log.Error().Err(err).Msg("consumidor finalizado con error")
			}
		}(l)
	}

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

	queryhttp.Router(app, queryhttp.RouterDeps{
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

	log.Info().Msg("señal de apagado recibida, cerrando servicio...")

	cancel()
	wg.Wait()
	for _, l := range listeners {
		if err := l.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar lector de kafka")
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del exportador de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
