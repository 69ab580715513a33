package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/cache"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/config"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/database"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/handler"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/middleware"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/repository"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/router"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var tableCache cache.TableCache
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		tableCache = cache.NewRedisTableCache(redisClient)
	} else {
		logger.Warn().Msg("redis url not set, table cache disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	clock := service.SystemClock(cfg.Location)

	sheetsClient := sheets.NewClient(repository.NewSpreadsheetRepository(db), logger)
	tables := service.NewTableService(sheetsClient, cfg.SheetsDocument, tableCache, cfg.TableCacheTTL, logger)

	ledgerService := service.NewLedgerService(tables, validate, clock, logger)
	activityService := service.NewActivityService(tables, ledgerService, validate, clock, logger)
	studentService := service.NewStudentService(tables, activityService, ledgerService, validate, clock, logger)
	courtService := service.NewCourtService(tables, logger)
	scheduleService := service.NewScheduleService(tables, validate, cfg.ScheduleStartHour, cfg.ScheduleEndHour, logger)
	adminService := service.NewAdminService(tables, scheduleService, logger)
	sessionService := service.NewSessionService(service.SessionConfig{
		Passphrase: cfg.AdminPassphrase,
		Secret:     cfg.SessionSecret,
		TTL:        cfg.SessionTTL,
	}, validate, clock, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.AllowOrigins,
		Sessions:     sessionService,
	})
	router.Register(app, cfg, router.Dependencies{
		CourtHandler:    handler.NewCourtHandler(courtService, studentService, logger),
		StudentHandler:  handler.NewStudentHandler(studentService, logger),
		ScheduleHandler: handler.NewScheduleHandler(scheduleService, logger),
		CashboxHandler:  handler.NewCashboxHandler(ledgerService, logger),
		HistoryHandler:  handler.NewHistoryHandler(activityService, logger),
		SessionHandler:  handler.NewSessionHandler(sessionService, logger),
		AdminHandler:    handler.NewAdminHandler(adminService, logger),
		HealthProbes:    healthProbes(db, redisClient),
		LoginLimiter:    middleware.RateLimit("session", cfg.LoginRateLimit, cfg.LoginRateWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info().Str("address", cfg.HTTPAddress()).Str("document", cfg.SheetsDocument).Msg("court dashboard started")
	waitForShutdown(app)
}

func healthProbes(db *gorm.DB, redisClient *redis.Client) map[string]handler.Probe {
	probes := map[string]handler.Probe{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if redisClient != nil {
		probes["cache"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	return probes
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
