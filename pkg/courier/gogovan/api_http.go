package gogovan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPAPIClient is the production implementation of APIClient using HTTP.
//
// Error-surfacing convention, shared by all five operations: if the round
// trip produced a response, that response is decoded and inspected, even on
// a non-2xx status (the remote encodes business errors that way). If the
// round trip failed before any response arrived, the transport error from
// net/http propagates to the caller unchanged.
type HTTPAPIClient struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	BaseURL  string
	Email    string
	Password string
	Timeout  time.Duration
}

// defaultTimeout matches the remote API's expected latency budget.
const defaultTimeout = 10 * time.Second

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &HTTPAPIClient{
		baseURL: cfg.BaseURL,
		creds: Credentials{
			Email:    cfg.Email,
			Password: cfg.Password,
		},
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetPrice fetches a price estimate.
// GET /api/order/price with a request body; the remote accepts bodies on
// GET, an unusual but intentional part of its contract.
func (c *HTTPAPIClient) GetPrice(ctx context.Context, order *PriceOrder) (*PriceResponse, error) {
	req := &PriceRequest{
		Credentials: c.creds,
		Data:        PriceData{Order: *order},
	}

	var resp PriceResponse
	status, err := c.do(ctx, http.MethodGet, "/api/order/price", req, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Success != nil && !*resp.Success {
		return nil, &APIError{Op: "price", Message: resp.Msg, StatusCode: rejectionStatus(status)}
	}
	return &resp, nil
}

// CreateOrder books a new delivery order.
// POST /api/order/new. Booth and carry are unconditionally sent as "false"
// here regardless of what the payload carries; only the price endpoint
// honors those flags. This asymmetry is the remote's contract.
func (c *HTTPAPIClient) CreateOrder(ctx context.Context, order *NewOrder) (*NewOrderResponse, error) {
	payload := *order
	payload.Booth = "false"
	payload.Carry = "false"

	req := &NewOrderRequest{
		Credentials: c.creds,
		Data:        NewOrderData{Order: payload},
	}

	var resp NewOrderResponse
	status, err := c.do(ctx, http.MethodPost, "/api/order/new", req, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Success != nil && !*resp.Success {
		return nil, &APIError{Op: "new", Message: resp.Msg, StatusCode: rejectionStatus(status)}
	}
	return &resp, nil
}

// CancelOrder cancels an existing order.
// PUT /api/order/cancel with a fixed "cancel" action field.
func (c *HTTPAPIClient) CancelOrder(ctx context.Context, orderID string) (*CancelResponse, error) {
	req := &CancelRequest{
		Credentials: c.creds,
		Action:      "cancel",
		OrderID:     orderID,
	}

	var resp CancelResponse
	status, err := c.do(ctx, http.MethodPut, "/api/order/cancel", req, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Success != nil && !*resp.Success {
		return nil, &APIError{Op: "cancel", Message: resp.Msg, StatusCode: rejectionStatus(status)}
	}
	return &resp, nil
}

// GetOrderStatus polls the current state of an order.
// GET /api/order/{id}/status with a credentials-only body. This endpoint's
// failure convention differs from the others: any msg field present in the
// response signals failure, with or without a success field.
func (c *HTTPAPIClient) GetOrderStatus(ctx context.Context, orderID string) (*OrderStatusResponse, error) {
	req := &StatusRequest{Credentials: c.creds}
	path := fmt.Sprintf("/api/order/%s/status", orderID)

	var resp OrderStatusResponse
	status, err := c.do(ctx, http.MethodGet, path, req, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Msg != nil {
		return nil, &APIError{Op: "status", Message: *resp.Msg, StatusCode: rejectionStatus(status)}
	}
	return &resp, nil
}

// GetWalletBalance fetches the prepaid account balance.
// GET /api/wallet-balance with a credentials-only body.
func (c *HTTPAPIClient) GetWalletBalance(ctx context.Context) (*WalletBalanceResponse, error) {
	req := &StatusRequest{Credentials: c.creds}

	var resp WalletBalanceResponse
	status, err := c.do(ctx, http.MethodGet, "/api/wallet-balance", req, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Success != nil && !*resp.Success {
		return nil, &APIError{Op: "wallet-balance", Message: resp.Msg, StatusCode: rejectionStatus(status)}
	}
	return &resp, nil
}

// do performs one request-response exchange and decodes the body into out.
// It returns the HTTP status code alongside any error. Transport failures
// come back exactly as net/http produced them; received bodies are decoded
// whatever the status code was.
func (c *HTTPAPIClient) do(ctx context.Context, method, path string, body, out any) (int, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "vanward-dispatch/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response (HTTP %d): %w", resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}

// rejectionStatus keeps the status code on a rejection only when it was
// itself an error status; a 200 carrying success:false adds no information.
func rejectionStatus(status int) int {
	if status >= 200 && status < 300 {
		return 0
	}
	return status
}

// Ensure HTTPAPIClient implements APIClient interface
var _ APIClient = (*HTTPAPIClient)(nil)
