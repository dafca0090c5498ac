package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/productorderingapp/ordering/internal/dal/postgres"
	"github.com/productorderingapp/ordering/internal/dal/rabbitmq"
	"github.com/productorderingapp/ordering/internal/order/dal/inventory"
	"github.com/productorderingapp/ordering/internal/order/dal/publisher"
	"github.com/productorderingapp/ordering/internal/order/service/services/ordersvc"
	httptransport "github.com/productorderingapp/ordering/internal/order/transport/http"
	"github.com/productorderingapp/ordering/internal/otel"
	"github.com/spf13/viper"
)

// App represents the order service application.
type App struct {
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitMqClient *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel("order-svc")
	postgresClient := postgres.MustNewClient("ORDER")
	rabbitMqClient := rabbitmq.MustNewClient()

	inventoryTimeout := viper.GetInt("inventory.timeout_seconds")
	if inventoryTimeout == 0 {
		inventoryTimeout = 5
	}
	inventoryClient := inventory.NewClient(
		viper.GetString("inventory.base_url"),
		time.Duration(inventoryTimeout)*time.Second,
	)

	orderPlacedPublisher := publisher.MustNewOrderPlacedPublisher(rabbitMqClient)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithStockChecker(inventoryClient),
		ordersvc.WithPublisher(orderPlacedPublisher),
	)

	transport := httptransport.NewHTTPTransport(orderSvc)
	transport.RegisterRoutes()

	return &App{
		orderSvc:       orderSvc,
		transport:      transport,
		postgresClient: postgresClient,
		rabbitMqClient: rabbitMqClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider close error", "error", err)
	} else {
		slog.Info("Otel trace provider closed gracefully")
	}

	slog.Info("Application shutdown complete")
}
