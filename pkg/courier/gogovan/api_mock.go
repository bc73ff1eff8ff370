package gogovan

import (
	"context"
	"time"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnGetPrice         func(ctx context.Context, order *PriceOrder) (*PriceResponse, error)
	OnCreateOrder      func(ctx context.Context, order *NewOrder) (*NewOrderResponse, error)
	OnCancelOrder      func(ctx context.Context, orderID string) (*CancelResponse, error)
	OnGetOrderStatus   func(ctx context.Context, orderID string) (*OrderStatusResponse, error)
	OnGetWalletBalance func(ctx context.Context) (*WalletBalanceResponse, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

func (m *MockAPIClient) simulate() error {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}
	if m.SimulateErrors {
		return &APIError{Op: "mock", Message: "simulated API rejection"}
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }

// GetPrice returns a mock price estimate.
func (m *MockAPIClient) GetPrice(ctx context.Context, order *PriceOrder) (*PriceResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnGetPrice != nil {
		return m.OnGetPrice(ctx, order)
	}

	return &PriceResponse{
		Success: boolPtr(true),
		Data: PriceQuote{
			Breakdown: Breakdown{
				Fee: Fee{Title: "Delivery fee", Value: 120},
			},
			DistanceInKMs: "3.2",
			TravelTime:    "840",
			Base:          100,
			Total:         120,
			PaymentMethod: "wallet",
			Wallet: WalletSnapshot{
				Amount: "980.0",
				Bonus:  "20.0",
			},
		},
	}, nil
}

// CreateOrder books a mock order.
func (m *MockAPIClient) CreateOrder(ctx context.Context, order *NewOrder) (*NewOrderResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCreateOrder != nil {
		return m.OnCreateOrder(ctx, order)
	}

	return &NewOrderResponse{
		Success: boolPtr(true),
		OrderID: 100000 + time.Now().UnixNano()%900000,
		Price:   120,
	}, nil
}

// CancelOrder cancels a mock order.
func (m *MockAPIClient) CancelOrder(ctx context.Context, orderID string) (*CancelResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCancelOrder != nil {
		return m.OnCancelOrder(ctx, orderID)
	}

	return &CancelResponse{Success: boolPtr(true)}, nil
}

// GetOrderStatus returns a mock order status with an assigned driver.
func (m *MockAPIClient) GetOrderStatus(ctx context.Context, orderID string) (*OrderStatusResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnGetOrderStatus != nil {
		return m.OnGetOrderStatus(ctx, orderID)
	}

	arrived := time.Now().Add(-20 * time.Minute).UTC().Format(time.RFC3339)
	return &OrderStatusResponse{
		ID:          123456,
		Status:      "active",
		Name:        "Sender Co.",
		PhoneNumber: "+886911222333",
		Driver: DriverInfo{
			ID:           7788,
			PhoneNumber:  "+886955666777",
			Name:         "Mr. Chen",
			LicensePlate: "ABC-1234",
			Location:     "25.0737746,121.6007978",
		},
		Waypoints: []WaypointInfo{
			{
				Name:               "Warehouse",
				Address:            "100 Harbor Rd",
				DetailAddress:      "Dock 3",
				Lat:                25.0737746,
				Lon:                121.6007978,
				ContactName:        "Sender Co.",
				ContactPhoneNumber: "+886911222333",
				DriverArrivedAt:    arrived,
			},
			{
				Name:               "Customer",
				Address:            "55 Market St",
				ContactName:        "Ms. Wu",
				ContactPhoneNumber: "+886900111222",
				Lat:                25.0329694,
				Lon:                121.5654177,
			},
		},
	}, nil
}

// GetWalletBalance returns a mock wallet balance.
func (m *MockAPIClient) GetWalletBalance(ctx context.Context) (*WalletBalanceResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnGetWalletBalance != nil {
		return m.OnGetWalletBalance(ctx)
	}

	return &WalletBalanceResponse{
		Success: boolPtr(true),
		Amount:  980,
		Bonus:   20,
	}, nil
}

var _ APIClient = (*MockAPIClient)(nil)
