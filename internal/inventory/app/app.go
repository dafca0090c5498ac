package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/productorderingapp/ordering/internal/dal/postgres"
	stockrepo "github.com/productorderingapp/ordering/internal/inventory/dal/repositories/stock/postgres"
	"github.com/productorderingapp/ordering/internal/inventory/service/services/inventorysvc"
	httptransport "github.com/productorderingapp/ordering/internal/inventory/transport/http"
	"github.com/productorderingapp/ordering/internal/otel"
)

// App represents the inventory service application.
type App struct {
	inventorySvc   *inventorysvc.InventoryService
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel("inventory-svc")
	postgresClient := postgres.MustNewClient("INVENTORY")

	stockRepository := stockrepo.NewPostgresStockRepository(postgresClient.Pool())

	inventorySvc := inventorysvc.MustNewInventoryService(
		inventorysvc.WithStockRepository(stockRepository),
	)

	transport := httptransport.NewHTTPTransport(inventorySvc)
	transport.RegisterRoutes()

	return &App{
		inventorySvc:   inventorySvc,
		transport:      transport,
		postgresClient: postgresClient,
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

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider close error", "error", err)
	} else {
		slog.Info("Otel trace provider closed gracefully")
	}

	slog.Info("Application shutdown complete")
}
