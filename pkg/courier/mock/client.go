// Package mock provides a mock courier implementation for testing.
package mock

import (
	"context"
	"time"

	"github.com/vanward/dispatch/pkg/courier"
)

// Client is a mock courier for testing.
type Client struct {
	name string

	// Err, when set, is returned by every operation.
	Err error
}

// New creates a new mock courier.
func New(name string) *Client {
	return &Client{name: name}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return c.name
}

// QuotePrice returns a mock price estimate.
func (c *Client) QuotePrice(ctx context.Context, req *courier.QuoteRequest) (*courier.Quote, error) {
	if c.Err != nil {
		return nil, c.Err
	}

	return &courier.Quote{
		Fee:           courier.FeeLine{Title: c.name + " delivery fee", Value: 120},
		DistanceKM:    3.2,
		TravelTime:    14 * time.Minute,
		Base:          100,
		Total:         120,
		PaymentMethod: "wallet",
		Wallet:        courier.WalletBalance{Amount: 980, Bonus: 20},
	}, nil
}

// CreateOrder books a mock delivery order.
func (c *Client) CreateOrder(ctx context.Context, req *courier.CreateOrderRequest) (*courier.OrderConfirmation, error) {
	if c.Err != nil {
		return nil, c.Err
	}

	return &courier.OrderConfirmation{
		OrderID: time.Now().UnixNano() % 1000000,
		Price:   120,
	}, nil
}

// CancelOrder cancels a mock order.
func (c *Client) CancelOrder(ctx context.Context, req *courier.CancelOrderRequest) (*courier.CancelResult, error) {
	if c.Err != nil {
		return nil, c.Err
	}

	return &courier.CancelResult{Cancelled: true}, nil
}

// GetOrderStatus returns a mock order status.
func (c *Client) GetOrderStatus(ctx context.Context, orderID string) (*courier.OrderStatus, error) {
	if c.Err != nil {
		return nil, c.Err
	}

	arrived := time.Now().Add(-10 * time.Minute)
	return &courier.OrderStatus{
		ID:    123456,
		State: courier.StateActive,
		Name:  "Sender Co.",
		Phone: "+886911222333",
		Driver: courier.Driver{
			ID:           7788,
			Name:         "Mr. Chen",
			Phone:        "+886955666777",
			LicensePlate: "ABC-1234",
			Location:     &courier.LatLon{Lat: 25.0737746, Lon: 121.6007978},
		},
		Waypoints: []courier.Waypoint{
			{Name: "Warehouse", Address: "100 Harbor Rd", DriverArrivedAt: &arrived},
			{Name: "Customer", Address: "55 Market St"},
		},
	}, nil
}

// GetWalletBalance returns a mock wallet balance.
func (c *Client) GetWalletBalance(ctx context.Context) (*courier.WalletBalance, error) {
	if c.Err != nil {
		return nil, c.Err
	}

	return &courier.WalletBalance{Amount: 980, Bonus: 20}, nil
}

var _ courier.Courier = (*Client)(nil)
