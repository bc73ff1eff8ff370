package server_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vanward/dispatch/internal/server"
	"github.com/vanward/dispatch/pkg/courier"
	"github.com/vanward/dispatch/pkg/courier/mock"
	"go.uber.org/zap"
)

func newTestHandler(couriers ...courier.Courier) http.Handler {
	registry := courier.NewRegistry()
	for _, c := range couriers {
		registry.Register(c)
	}
	logger := otelzap.New(zap.NewNop())
	return server.New(server.Config{Port: 0}, registry, logger).Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	handler := newTestHandler(mock.New("gogovan"))

	rec := doJSON(t, handler, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestProviders(t *testing.T) {
	handler := newTestHandler(mock.New("gogovan"))

	rec := doJSON(t, handler, http.MethodGet, "/v1/providers", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Providers []string `json:"providers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"gogovan"}, resp.Providers)
}

func TestQuote_FanOut(t *testing.T) {
	handler := newTestHandler(mock.New("courier-a"), mock.New("courier-b"))

	rec := doJSON(t, handler, http.MethodPost, "/v1/quotes", map[string]any{
		"vehicle":     "motorcycle",
		"pickup_time": "2026-09-01T09:00:00Z",
		"stops": []map[string]any{
			{"address": "100 Harbor Rd"},
			{"address": "55 Market St"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Quotes []struct {
			Provider string  `json:"provider"`
			Total    float64 `json:"total"`
		} `json:"quotes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Quotes, 2)
	assert.Equal(t, float64(120), resp.Quotes[0].Total)
}

func TestQuote_AllProvidersFail(t *testing.T) {
	broken := mock.New("broken")
	broken.Err = errors.New("upstream down")
	handler := newTestHandler(broken)

	rec := doJSON(t, handler, http.MethodPost, "/v1/quotes", map[string]any{
		"vehicle": "motorcycle",
	})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "upstream down")
}

func TestQuote_InvalidJSON(t *testing.T) {
	handler := newTestHandler(mock.New("gogovan"))

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder(t *testing.T) {
	handler := newTestHandler(mock.New("gogovan"))

	rec := doJSON(t, handler, http.MethodPost, "/v1/orders", map[string]any{
		"vehicle":     "struck",
		"pickup_time": "2026-09-01T09:00:00Z",
		"stops":       []map[string]any{{"address": "100 Harbor Rd"}},
		"sender":      map[string]any{"name": "Sender Co.", "phone": "+886911222333"},
		"receiver":    map[string]any{"name": "Ms. Wu", "phone": "+886900111222"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		OrderID int64   `json:"order_id"`
		Price   float64 `json:"price"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotZero(t, resp.OrderID)
	assert.Equal(t, float64(120), resp.Price)
}

func TestCreateOrder_UnknownProvider(t *testing.T) {
	handler := newTestHandler(mock.New("gogovan"))

	rec := doJSON(t, handler, http.MethodPost, "/v1/orders", map[string]any{
		"provider": "nope",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrder_ProviderRequiredWhenAmbiguous(t *testing.T) {
	handler := newTestHandler(mock.New("courier-a"), mock.New("courier-b"))

	rec := doJSON(t, handler, http.MethodPost, "/v1/orders", map[string]any{
		"vehicle": "motorcycle",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "provider must be specified")
}

func TestOrderStatus(t *testing.T) {
	handler := newTestHandler(mock.New("gogovan"))

	rec := doJSON(t, handler, http.MethodGet, "/v1/orders/123456", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID        int64  `json:"id"`
		State     string `json:"state"`
		Waypoints []struct {
			DriverArrivedAt *string `json:"driver_arrived_at"`
		} `json:"waypoints"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(123456), resp.ID)
	assert.Equal(t, "active", resp.State)
	require.Len(t, resp.Waypoints, 2)
	assert.NotNil(t, resp.Waypoints[0].DriverArrivedAt)
	assert.Nil(t, resp.Waypoints[1].DriverArrivedAt)
}

func TestCancelOrder(t *testing.T) {
	handler := newTestHandler(mock.New("gogovan"))

	rec := doJSON(t, handler, http.MethodDelete, "/v1/orders/123456", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Cancelled bool `json:"cancelled"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Cancelled)
}

func TestWallet(t *testing.T) {
	handler := newTestHandler(mock.New("gogovan"))

	rec := doJSON(t, handler, http.MethodGet, "/v1/wallet", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Amount float64 `json:"amount"`
		Bonus  float64 `json:"bonus"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(980), resp.Amount)
	assert.Equal(t, float64(20), resp.Bonus)
}

func TestWallet_ProviderFailure(t *testing.T) {
	broken := mock.New("gogovan")
	broken.Err = errors.New("connection reset")
	handler := newTestHandler(broken)

	rec := doJSON(t, handler, http.MethodGet, "/v1/wallet", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestOrderStatusWebhook(t *testing.T) {
	handler := newTestHandler(mock.New("gogovan"))

	rec := doJSON(t, handler, http.MethodPost, "/v1/webhooks/order-status", map[string]any{
		"id":           123456,
		"status":       "picked",
		"name":         "Sender Co.",
		"phone_number": "+886911222333",
		"driver": map[string]any{
			"id":            7788,
			"name":          "Mr. Chen",
			"license_plate": "ABC-1234",
			"location":      "25.0737746,121.6007978",
		},
		"waypoints": []map[string]any{},
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestOrderStatusWebhook_InvalidJSON(t *testing.T) {
	handler := newTestHandler(mock.New("gogovan"))

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/order-status", bytes.NewBufferString("nope"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
