package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/weather-assistant/internal/api/http"
	"github.com/i474232898/weather-assistant/internal/config"
	"github.com/i474232898/weather-assistant/internal/llm"
	"github.com/i474232898/weather-assistant/internal/scheduler"
	"github.com/i474232898/weather-assistant/internal/seed"
	"github.com/i474232898/weather-assistant/internal/store"
	"github.com/i474232898/weather-assistant/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Document store: in-memory or PostgreSQL.
	weatherStore, closeStore, err := store.Open(ctx, store.Options{
		Backend:     cfg.StoreBackend,
		DatabaseURL: cfg.DatabaseURL,
		Migrate:     cfg.DatabaseMigrate,
	})
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer closeStore()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider, err := llm.New(ctx, llm.Options{
		Provider:   cfg.LLMProvider,
		HTTPClient: httpClient,
		Ollama: llm.OllamaConfig{
			Host:        cfg.OllamaHost,
			ChatModel:   cfg.OllamaChatModel,
			EmbedModel:  cfg.OllamaEmbedModel,
			Temperature: cfg.LLMTemperature,
		},
		Gemini: llm.GeminiConfig{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.GeminiModel,
			EmbedModel:  cfg.GeminiEmbedModel,
			Temperature: cfg.LLMTemperature,
		},
	})
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	records, err := seedRecords(cfg.SeedFile)
	if err != nil {
		log.Fatalf("failed to load seed records: %v", err)
	}
	seeder := seed.New(weatherStore, records)
	if cfg.SeedOnStart {
		if _, err := seeder.Run(ctx); err != nil {
			log.Fatalf("failed to seed store: %v", err)
		}
	}

	// Optional periodic reseed.
	sched := scheduler.New(cfg.ReseedInterval, seeder)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	service := weather.NewService(weatherStore, provider, provider)

	app := fiber.New(fiber.Config{
		AppName:               "weather-assistant",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// answers wait on the provider
		WriteTimeout: cfg.HTTPTimeout + 10*time.Second,
		ErrorHandler: httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-assistant",
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		log.Printf("INFO: listening on :%s (store=%s, llm=%s)", cfg.Port, cfg.StoreBackend, cfg.LLMProvider)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

func seedRecords(path string) ([]weather.Record, error) {
	if path == "" {
		return seed.DefaultRecords(), nil
	}
	return seed.LoadFile(path)
}
