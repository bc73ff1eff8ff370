// Package gogovan provides integration with the GoGoVan Plus dispatch API.
package gogovan

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vanward/dispatch/pkg/courier"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const providerName = "gogovan"

// Config holds GoGoVan Plus configuration.
type Config struct {
	Email    string
	Password string
	BaseURL  string // sandbox or production deployment
	Timeout  time.Duration
	UseMock  bool // when true, uses a mock API client
}

// Client is the GoGoVan Plus courier client.
// It implements the courier.Courier interface and delegates
// API calls to the underlying APIClient (mock or HTTP).
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new GoGoVan Plus client.
// If cfg.UseMock is true, it uses a mock API client for testing.
// Otherwise, it uses the real HTTP API client.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL:  cfg.BaseURL,
			Email:    cfg.Email,
			Password: cfg.Password,
			Timeout:  cfg.Timeout,
		})
	}

	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// NewWithAPIClient creates a new GoGoVan Plus client with a custom API client.
// This is useful for injecting mock clients in tests.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return providerName
}

// QuotePrice returns a delivery price estimate from GoGoVan Plus.
func (c *Client) QuotePrice(ctx context.Context, req *courier.QuoteRequest) (*courier.Quote, error) {
	c.logger.Info("Quoting GoGoVan delivery",
		zap.String("vehicle", string(req.Vehicle)),
		zap.Int("stop_count", len(req.Stops)),
		zap.Bool("booth", req.Booth),
		zap.Bool("carry", req.Carry),
	)

	apiReq := &PriceOrder{
		Booth:      StringBool(req.Booth),
		Carry:      StringBool(req.Carry),
		PickupTime: PickupTime(req.PickupTime),
		Locations:  stopsToLocations(req.Stops),
		Vehicle:    string(req.Vehicle),
	}

	apiResp, err := c.apiClient.GetPrice(ctx, apiReq)
	if err != nil {
		c.logger.Error("GoGoVan API error", zap.Error(err))
		return nil, err
	}

	return priceResponseToQuote(apiResp), nil
}

// CreateOrder books a delivery with GoGoVan Plus.
func (c *Client) CreateOrder(ctx context.Context, req *courier.CreateOrderRequest) (*courier.OrderConfirmation, error) {
	c.logger.Info("Creating GoGoVan order",
		zap.String("vehicle", string(req.Vehicle)),
		zap.Int("stop_count", len(req.Stops)),
		zap.String("receiver", req.ReceiverName),
	)

	// Booth and carry are left unset: the wire layer sends "false" for both
	// on this operation no matter what.
	apiReq := &NewOrder{
		CODPrice:            req.CODPrice,
		Invoice:             invoiceToAPI(req.Invoice),
		IsBonusFirst:        req.BonusFirst,
		Locations:           stopsToLocations(req.Stops),
		Name:                req.SenderName,
		NeedInsulationBags:  StringBool(req.NeedInsulationBags),
		Note:                req.Note,
		PhoneNumber:         req.SenderPhone,
		PickupTime:          PickupTime(req.PickupTime),
		ReceiverName:        req.ReceiverName,
		ReceiverPhoneNumber: req.ReceiverPhone,
		Vehicle:             string(req.Vehicle),
	}

	apiResp, err := c.apiClient.CreateOrder(ctx, apiReq)
	if err != nil {
		c.logger.Error("GoGoVan API error", zap.Error(err))
		return nil, err
	}

	return &courier.OrderConfirmation{
		OrderID: apiResp.OrderID,
		Price:   apiResp.Price,
	}, nil
}

// CancelOrder cancels a delivery with GoGoVan Plus.
func (c *Client) CancelOrder(ctx context.Context, req *courier.CancelOrderRequest) (*courier.CancelResult, error) {
	c.logger.Info("Cancelling GoGoVan order",
		zap.String("order_id", req.OrderID),
	)

	apiResp, err := c.apiClient.CancelOrder(ctx, req.OrderID)
	if err != nil {
		c.logger.Error("GoGoVan API error", zap.Error(err))
		return nil, err
	}

	return &courier.CancelResult{
		Cancelled: apiResp.Success == nil || *apiResp.Success,
		Message:   apiResp.Msg,
	}, nil
}

// GetOrderStatus polls the state of an order from GoGoVan Plus.
func (c *Client) GetOrderStatus(ctx context.Context, orderID string) (*courier.OrderStatus, error) {
	c.logger.Info("Fetching GoGoVan order status",
		zap.String("order_id", orderID),
	)

	apiResp, err := c.apiClient.GetOrderStatus(ctx, orderID)
	if err != nil {
		c.logger.Error("GoGoVan API error", zap.Error(err))
		return nil, err
	}

	return ToOrderStatus(apiResp), nil
}

// GetWalletBalance returns the prepaid account balance from GoGoVan Plus.
func (c *Client) GetWalletBalance(ctx context.Context) (*courier.WalletBalance, error) {
	c.logger.Info("Fetching GoGoVan wallet balance")

	apiResp, err := c.apiClient.GetWalletBalance(ctx)
	if err != nil {
		c.logger.Error("GoGoVan API error", zap.Error(err))
		return nil, err
	}

	return &courier.WalletBalance{
		Amount: apiResp.Amount,
		Bonus:  apiResp.Bonus,
	}, nil
}

// ============================================================================
// Conversion helpers: Courier models -> API models
// ============================================================================

func stopsToLocations(stops []courier.Stop) []Location {
	result := make([]Location, len(stops))
	for i, s := range stops {
		result[i] = NewLocation(s.Lat, s.Lon, s.Address, s.Detail)
	}
	return result
}

func invoiceToAPI(inv *courier.Invoice) *Invoice {
	if inv == nil {
		return nil
	}
	return &Invoice{
		Address: inv.Address,
		Email:   inv.Email,
		Name:    inv.Name,
		Note:    inv.Note,
		TaxIDNo: inv.TaxIDNo,
	}
}

// ============================================================================
// Conversion helpers: API models -> Courier models
// ============================================================================

func priceResponseToQuote(resp *PriceResponse) *courier.Quote {
	distance, _ := strconv.ParseFloat(resp.Data.DistanceInKMs, 64)
	travelSeconds, _ := strconv.ParseFloat(resp.Data.TravelTime, 64)
	walletAmount, _ := strconv.ParseFloat(resp.Data.Wallet.Amount, 64)
	walletBonus, _ := strconv.ParseFloat(resp.Data.Wallet.Bonus, 64)

	return &courier.Quote{
		Fee: courier.FeeLine{
			Title: resp.Data.Breakdown.Fee.Title,
			Value: resp.Data.Breakdown.Fee.Value,
		},
		DistanceKM:    distance,
		TravelTime:    time.Duration(travelSeconds * float64(time.Second)),
		Base:          resp.Data.Base,
		Total:         resp.Data.Total,
		PaymentMethod: resp.Data.PaymentMethod,
		Wallet: courier.WalletBalance{
			Amount: walletAmount,
			Bonus:  walletBonus,
		},
	}
}

// ToOrderStatus normalizes a raw status payload. Exported because the
// webhook endpoint receives the same shape and normalizes it the same way.
func ToOrderStatus(resp *OrderStatusResponse) *courier.OrderStatus {
	waypoints := make([]courier.Waypoint, len(resp.Waypoints))
	for i, w := range resp.Waypoints {
		var arrivedAt *time.Time
		if w.DriverArrivedAt != "" {
			if t, err := time.Parse(time.RFC3339, w.DriverArrivedAt); err == nil {
				arrivedAt = &t
			}
		}

		waypoints[i] = courier.Waypoint{
			Name:            w.Name,
			Address:         w.Address,
			DetailAddress:   w.DetailAddress,
			Lat:             w.Lat,
			Lon:             w.Lon,
			ContactName:     w.ContactName,
			ContactPhone:    w.ContactPhoneNumber,
			DriverArrivedAt: arrivedAt,
		}
	}

	return &courier.OrderStatus{
		ID:    resp.ID,
		State: mapOrderState(resp.Status),
		Name:  resp.Name,
		Phone: resp.PhoneNumber,
		Driver: courier.Driver{
			ID:           resp.Driver.ID,
			Name:         resp.Driver.Name,
			Phone:        resp.Driver.PhoneNumber,
			LicensePlate: resp.Driver.LicensePlate,
			Location:     parseDriverLocation(resp.Driver.Location),
		},
		Waypoints: waypoints,
	}
}

// ============================================================================
// Mapping helpers
// ============================================================================

// parseDriverLocation parses the "lat,lon" position string the remote
// reports for an assigned driver. An empty or malformed value means no
// position is available yet.
func parseDriverLocation(loc string) *courier.LatLon {
	latStr, lonStr, ok := strings.Cut(loc, ",")
	if !ok {
		return nil
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return nil
	}
	return &courier.LatLon{Lat: lat, Lon: lon}
}

func mapOrderState(status string) courier.OrderState {
	switch status {
	case "pending":
		return courier.StatePending
	case "picked":
		return courier.StatePicked
	case "active":
		return courier.StateActive
	case "completed":
		return courier.StateCompleted
	case "cancelled":
		return courier.StateCancelled
	default:
		return courier.StatePending
	}
}

// Ensure Client implements the Courier interface
var _ courier.Courier = (*Client)(nil)
