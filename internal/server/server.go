// Package server exposes the dispatch operations over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cast"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vanward/dispatch/internal/telemetry"
	"github.com/vanward/dispatch/pkg/courier"
	"github.com/vanward/dispatch/pkg/courier/gogovan"
	"go.uber.org/zap"
)

// Server is the HTTP server for the dispatch service.
type Server struct {
	port     int
	registry *courier.Registry
	logger   *otelzap.Logger
	metrics  *telemetry.Metrics
}

// Config holds server configuration.
type Config struct {
	Port int
}

// maxQuoteTimeout caps the caller-supplied deadline on quote fan-out.
const maxQuoteTimeout = 30 * time.Second

// New creates a new server instance.
func New(cfg Config, registry *courier.Registry, logger *otelzap.Logger) *Server {
	return &Server{
		port:     cfg.Port,
		registry: registry,
		logger:   logger,
		metrics:  telemetry.NewMetrics(),
	}
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Handler builds the route table. Split out from Run for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/providers", s.handleProviders)
	mux.HandleFunc("POST /v1/quotes", s.handleQuote)
	mux.HandleFunc("POST /v1/orders", s.handleCreateOrder)
	mux.HandleFunc("GET /v1/orders/{id}", s.handleOrderStatus)
	mux.HandleFunc("DELETE /v1/orders/{id}", s.handleCancelOrder)
	mux.HandleFunc("GET /v1/wallet", s.handleWallet)
	mux.HandleFunc("POST /v1/webhooks/order-status", s.handleOrderStatusWebhook)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"providers": s.registry.Names()})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqID := uuid.New().String()

	var req quoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	ctx := r.Context()
	if timeout := cast.ToDuration(r.URL.Query().Get("timeout")); timeout > 0 {
		if timeout > maxQuoteTimeout {
			timeout = maxQuoteTimeout
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	quotes, errs := s.registry.QuoteFrom(ctx, req.toModel(), req.Providers)

	for _, qErr := range errs {
		s.logger.Warn("Quote failed",
			zap.String("request_id", reqID),
			zap.Error(qErr),
		)
		s.metrics.RecordError("registry", "quote")
	}
	s.metrics.RecordRequest("quote", providersLabel(req.Providers), quoteStatus(quotes), time.Since(start).Seconds())

	resp := quotesResponseDTO{Errors: errorStrings(errs)}
	for _, q := range quotes {
		resp.Quotes = append(resp.Quotes, quoteToDTO(q.Provider, q.Quote))
	}

	status := http.StatusOK
	if len(quotes) == 0 {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqID := uuid.New().String()

	var req createOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	c, err := s.courierFor(req.Provider)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	conf, err := c.CreateOrder(r.Context(), req.toModel())
	s.metrics.RecordRequest("create_order", c.Name(), outcome(err), time.Since(start).Seconds())
	if err != nil {
		s.logger.Error("Create order failed",
			zap.String("request_id", reqID),
			zap.String("provider", c.Name()),
			zap.Error(err),
		)
		writeProviderError(w, err)
		return
	}

	s.logger.Info("Order created",
		zap.String("request_id", reqID),
		zap.String("provider", c.Name()),
		zap.Int64("order_id", conf.OrderID),
	)
	writeJSON(w, http.StatusCreated, map[string]any{
		"order_id": conf.OrderID,
		"price":    conf.Price,
	})
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	orderID := r.PathValue("id")

	c, err := s.courierFor(r.URL.Query().Get("provider"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	status, err := c.GetOrderStatus(r.Context(), orderID)
	s.metrics.RecordRequest("order_status", c.Name(), outcome(err), time.Since(start).Seconds())
	if err != nil {
		writeProviderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orderStatusToDTO(status))
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	orderID := r.PathValue("id")

	c, err := s.courierFor(r.URL.Query().Get("provider"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	result, err := c.CancelOrder(r.Context(), &courier.CancelOrderRequest{OrderID: orderID})
	s.metrics.RecordRequest("cancel_order", c.Name(), outcome(err), time.Since(start).Seconds())
	if err != nil {
		writeProviderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"cancelled": result.Cancelled,
		"message":   result.Message,
	})
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	c, err := s.courierFor(r.URL.Query().Get("provider"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	balance, err := c.GetWalletBalance(r.Context())
	s.metrics.RecordRequest("wallet_balance", c.Name(), outcome(err), time.Since(start).Seconds())
	if err != nil {
		writeProviderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"amount": balance.Amount,
		"bonus":  balance.Bonus,
	})
}

// handleOrderStatusWebhook receives status pushes from the remote. The
// payload shares the wire shape of the status poll response.
func (s *Server) handleOrderStatusWebhook(w http.ResponseWriter, r *http.Request) {
	var payload gogovan.OrderStatusWebhook
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	status := gogovan.ToOrderStatus(&payload)
	s.logger.Info("Order status webhook",
		zap.Int64("order_id", status.ID),
		zap.String("state", string(status.State)),
		zap.Int64("driver_id", status.Driver.ID),
	)

	w.WriteHeader(http.StatusNoContent)
}

// courierFor resolves a provider by name. An empty name is allowed when
// exactly one provider is registered.
func (s *Server) courierFor(name string) (courier.Courier, error) {
	if name == "" {
		if all := s.registry.All(); len(all) == 1 {
			return all[0], nil
		}
		return nil, fmt.Errorf("%w: provider must be specified", courier.ErrProviderNotFound)
	}
	return s.registry.Get(name)
}

// writeProviderError maps courier errors onto HTTP statuses. Remote
// rejections keep their server-supplied message.
func writeProviderError(w http.ResponseWriter, err error) {
	var apiErr *gogovan.APIError
	if errors.As(err, &apiErr) {
		writeError(w, http.StatusUnprocessableEntity, apiErr.Message)
		return
	}
	if errors.Is(err, courier.ErrProviderNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusBadGateway, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func quoteStatus(quotes []courier.ProviderQuote) string {
	if len(quotes) == 0 {
		return "error"
	}
	return "ok"
}

func providersLabel(providers []string) string {
	if len(providers) == 1 {
		return providers[0]
	}
	return "all"
}

func errorStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}
