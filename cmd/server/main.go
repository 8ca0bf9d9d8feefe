package main

//go:generate swag init -d ./,../../internal -g main.go -o ../../docs

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assurgest/internal/adapters/http/handlers"
	"assurgest/internal/adapters/http/middleware"
	"assurgest/internal/adapters/http/routes"
	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/adapters/storage"
	"assurgest/internal/adapters/tokenstore"
	"assurgest/internal/config"
	"assurgest/internal/core/access"
	"assurgest/internal/core/services"
	"assurgest/internal/pkg/logger"
	"assurgest/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "assurgest/docs" // Swagger docs
)

// @title AssurGest API
// @version 1.0
// @description Insurance back office: contracts, claims, indemnification and audit trail.

// @contact.name API Support
// @contact.email support@assurgest.local

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}
	logger.Init(cfg.AppMode)

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	if err := config.NewSeeder(db, cfg.Seed).Run(); err != nil {
		log.Fatalf("❌ Failed to seed database: %v", err)
	}

	gate, err := access.Default()
	if err != nil {
		log.Fatalf("❌ Failed to load capability table: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	checks := map[string]handlers.Pinger{"database": config.DatabaseHealth{DB: db}}

	// Access token blacklist: Redis when configured, in-process otherwise
	var (
		blacklist services.TokenBlacklist
		memory    *tokenstore.Memory
	)
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisStore, err := tokenstore.NewRedis(ctx, cfg.Redis)
		cancel()
		if err != nil {
			log.Fatalf("❌ Failed to connect to redis: %v", err)
		}
		defer redisStore.Close()
		blacklist = redisStore
		checks["redis"] = redisStore
		log.Printf("✅ Token blacklist: redis %s", cfg.Redis.Addr)
	} else {
		memory = tokenstore.NewMemory()
		blacklist = memory
		log.Println("⚠️ REDIS_ADDR not set, token blacklist kept in memory")
	}

	// Document storage is optional
	var store services.BlobStore
	if cfg.Minio.Enabled() {
		minioStore, err := storage.NewMinio(cfg.Minio)
		if err != nil {
			log.Fatalf("❌ Failed to create minio client: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = minioStore.EnsureBucket(ctx)
		cancel()
		if err != nil {
			log.Fatalf("❌ Failed to prepare bucket %s: %v", cfg.Minio.Bucket, err)
		}
		store = minioStore
		log.Printf("✅ Document storage: minio %s/%s", cfg.Minio.Endpoint, cfg.Minio.Bucket)
	} else {
		log.Println("⚠️ MINIO_ENDPOINT not set, document upload disabled")
	}

	svc := services.New(db, cfg, blacklist, store, m)

	cronService := services.NewCronService(cfg.Cron, svc.Contracts, svc.Premiums, svc.Auth, m)
	if memory != nil {
		err := cronService.AddJob("*/10 * * * *", "blacklist_purge", func(context.Context) error {
			memory.Purge()
			return nil
		})
		if err != nil {
			log.Fatalf("❌ Failed to schedule blacklist purge: %v", err)
		}
	}
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron: %v", err)
	}
	defer cronService.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "AssurGest API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    20 * 1024 * 1024,
	})

	middleware.Setup(app, cfg)

	routes.Setup(app, svc, cfg, routes.Options{
		Gate:     gate,
		Gatherer: registry,
		Checks:   checks,
	})

	go gracefulShutdown(app)

	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
