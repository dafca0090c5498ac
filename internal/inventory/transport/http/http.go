package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/productorderingapp/ordering/internal/inventory/service/models/stock"
	checkstock "github.com/productorderingapp/ordering/internal/inventory/transport/http/check_stock"
	"github.com/productorderingapp/ordering/pkg/http/middleware/trace"
	"github.com/productorderingapp/ordering/pkg/logger"
	"github.com/spf13/viper"
)

type service interface {
	IsInStock(ctx context.Context, skuCodes []string) ([]stock.Status, error)
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/inventory", h.checkStock)
	})
}

func (h *HTTPTransport) checkStock(w http.ResponseWriter, r *http.Request) {
	checkstock.CheckStock(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware("inventory-svc"))

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
