package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hyperlocal/cmd"
	adapterhttp "hyperlocal/internal/adapters/in/http"
	"hyperlocal/internal/adapters/out/kafka"
	"hyperlocal/internal/adapters/out/notification"
	"hyperlocal/internal/adapters/out/postgres/orderrepo"
	"hyperlocal/internal/adapters/out/postgres/productrepo"
	"hyperlocal/internal/adapters/out/postgres/riderrepo"
	"hyperlocal/internal/adapters/out/postgres/storerepo"
	"hyperlocal/internal/adapters/out/postgres/zonerepo"
	"hyperlocal/internal/core/domain/model/kernel"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(logger); err != nil {
		logger.Fatal("service failed", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	config, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	tenants, err := parseTenants(config.Tenants)
	if err != nil {
		return err
	}

	db, err := gorm.Open(postgresdriver.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	publisher, err := kafka.NewPublisher(config.KafkaBrokers, config.KafkaOrderEventTopic, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = publisher.Close()
	}()

	notifier, err := notification.NewSendGridNotifier(config.SendgridAPIKey,
		config.NotifyFrom, config.NotifyTo, logger)
	if err != nil {
		return err
	}

	root := cmd.NewCompositionRoot(config, db, publisher, notifier, logger)

	jobManager := root.CreateJobManager(tenants)
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(adapterhttp.MetricsMiddleware)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	server := root.CreateHTTPServer()
	server.RegisterRoutes(e, adapterhttp.NewAuthMiddleware([]byte(config.JWTSecret)))

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + config.HTTPPort)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}

func parseTenants(values []string) ([]kernel.TenantID, error) {
	tenants := make([]kernel.TenantID, 0, len(values))
	for _, value := range values {
		tenant, err := kernel.NewTenantID(value)
		if err != nil {
			return nil, fmt.Errorf("invalid tenant %q: %w", value, err)
		}
		tenants = append(tenants, tenant)
	}
	return tenants, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&zonerepo.ZoneDTO{},
		&zonerepo.ZoneVertexDTO{},
		&storerepo.StoreDTO{},
		&storerepo.StoreHourDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.HistoryEntryDTO{},
		&riderrepo.RiderDTO{},
	)
}
