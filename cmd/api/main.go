package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"marketplace-backend/internal/auth"
	"marketplace-backend/internal/client"
	"marketplace-backend/internal/config"
	"marketplace-backend/internal/repository"
	"marketplace-backend/internal/server"
	"marketplace-backend/internal/service"
)

func newLogger(cfg config.Log) *logrus.Logger {
	log := logrus.New()

	if level, err := logrus.ParseLevel(cfg.Level); err == nil {
		log.SetLevel(level)
	}
	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	return log
}

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Log)

	db, err := client.InitDBClient(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.WithError(err).Fatal("database init failed")
	}

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	paymentEventRepo := repository.NewPaymentEventRepository(db)

	catalogService := service.NewCatalogService(productRepo, log)
	orderService := service.NewOrderService(
		db,
		service.OrderPolicy{
			RequirePayerOwnership: cfg.Orders.RequirePayerOwnership,
			AllowOversell:         cfg.Inventory.AllowOversell,
		},
		orderRepo,
		productRepo,
		inventoryRepo,
		paymentEventRepo,
		log,
	)

	if cfg.SeedDemo {
		if err := catalogService.SeedDemoCatalog(context.Background()); err != nil {
			log.WithError(err).Warn("demo catalog seed failed")
		}
	}

	validator := auth.NewTokenValidator(cfg.Auth.JWTSecret)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(validator, catalogService, orderService, log)

	log.WithField("addr", serverAddr).Info("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.WithError(err).Fatal("HTTP server shutdown error")
	}
}
