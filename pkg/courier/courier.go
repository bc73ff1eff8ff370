// Package courier provides an abstraction layer for on-demand delivery providers.
package courier

import (
	"context"
)

// Courier defines the interface that all delivery providers must implement.
type Courier interface {
	// Name returns the provider identifier (e.g., "gogovan").
	Name() string

	// QuotePrice returns a non-binding price estimate for a prospective delivery.
	QuotePrice(ctx context.Context, req *QuoteRequest) (*Quote, error)

	// CreateOrder books a delivery with the provider.
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderConfirmation, error)

	// CancelOrder cancels an existing delivery order.
	CancelOrder(ctx context.Context, req *CancelOrderRequest) (*CancelResult, error)

	// GetOrderStatus polls the current state of an order, including driver
	// assignment and per-waypoint progress.
	GetOrderStatus(ctx context.Context, orderID string) (*OrderStatus, error)

	// GetWalletBalance returns the prepaid balance tied to the account.
	GetWalletBalance(ctx context.Context) (*WalletBalance, error)
}
