package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/terraincognita07/nutrilume/internal/api"
	"github.com/terraincognita07/nutrilume/internal/cli"
	"github.com/terraincognita07/nutrilume/internal/config"
	"github.com/terraincognita07/nutrilume/internal/db"
	"github.com/terraincognita07/nutrilume/internal/i18n"
	"github.com/terraincognita07/nutrilume/internal/logger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cli.NewRootCommand(serve).ExecuteContext(ctx)
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveLocation(cfg config.Config, log *zap.Logger) *time.Location {
	location, err := cfg.Location()
	if err != nil {
		log.Warn("falling back to UTC", zap.String("tz", cfg.TimeZone), zap.Error(err))
	}
	return location
}

func serve(ctx context.Context, cfg config.Config) error {
	secretKey, err := cfg.ResolveSecretKey()
	if err != nil {
		return err
	}
	location := resolveLocation(cfg, logger.L())
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
	}()

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(database, secretKey, location, i18nManager, cfg.CookieSecure, cfg.MealSlots)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(handler, logger.L())

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("nutrilume listening",
			zap.String("port", cfg.Port),
			zap.String("db", cfg.DBPath),
			zap.String("tz", location.String()),
			zap.Strings("meal_slots", cfg.MealSlots),
		)
		serverErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server exited: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("nutrilume stopped")
	return nil
}

func newApp(handler *api.Handler, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Nutrilume",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(api.RequestLogger(log.Named("http")))
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)

	api.RegisterRoutes(app, handler)
	return app
}
