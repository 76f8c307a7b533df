package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carita-payment-api/internal/client"
	"carita-payment-api/internal/config"
	"carita-payment-api/internal/logger"
	"carita-payment-api/internal/metrics"
	"carita-payment-api/internal/repository"
	"carita-payment-api/internal/server"
	"carita-payment-api/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

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

	log := logger.New(&cfg.Log)

	if cfg.Midtrans.ServerKey == "" {
		log.Error("MIDTRANS_SERVER_KEY is required")
		os.Exit(1)
	}

	db := client.InitDBClient(cfg.DatabaseURL)
	midtransClient := client.NewMidtransClient(&cfg.Midtrans)

	orderRepo := repository.NewOrderRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	paymentMetrics := metrics.NewPaymentMetrics()

	paymentService := service.NewPaymentService(
		db,
		midtransClient,
		cfg.Midtrans.ServerKey,
		cfg.Midtrans.ClientKey,
		orderRepo,
		webhookEventRepo,
		paymentMetrics,
		log,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(paymentService, cfg.AdminJWTSecret)

	log.Info("starting HTTP server", "addr", serverAddr, "environment", cfg.Environment.Name)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
		os.Exit(1)
	}
}
