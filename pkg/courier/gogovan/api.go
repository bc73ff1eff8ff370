package gogovan

import (
	"context"
	"fmt"
	"time"
)

// APIClient defines the interface for GoGoVan Plus API operations.
// This abstraction allows for mock implementations during testing
// and real implementations in production.
type APIClient interface {
	// GetPrice fetches a delivery price estimate.
	// GET /api/order/price (the remote accepts request bodies on GET).
	GetPrice(ctx context.Context, order *PriceOrder) (*PriceResponse, error)

	// CreateOrder books a new delivery order.
	// POST /api/order/new
	CreateOrder(ctx context.Context, order *NewOrder) (*NewOrderResponse, error)

	// CancelOrder cancels an existing order.
	// PUT /api/order/cancel
	CancelOrder(ctx context.Context, orderID string) (*CancelResponse, error)

	// GetOrderStatus polls the current state of an order.
	// GET /api/order/{id}/status (body-bearing GET).
	GetOrderStatus(ctx context.Context, orderID string) (*OrderStatusResponse, error)

	// GetWalletBalance fetches the prepaid account balance.
	// GET /api/wallet-balance (body-bearing GET).
	GetWalletBalance(ctx context.Context) (*WalletBalanceResponse, error)
}

// ============================================================================
// Wire encoding quirks
// ============================================================================

// StringBool is a boolean the remote API encodes as the literal strings
// "true" and "false" instead of JSON booleans.
type StringBool bool

// MarshalJSON renders the boolean as a quoted "true"/"false" string.
func (b StringBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte(`"true"`), nil
	}
	return []byte(`"false"`), nil
}

// UnmarshalJSON accepts both the string encoding and native booleans.
func (b *StringBool) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"true"`, `true`:
		*b = true
	case `"false"`, `false`:
		*b = false
	default:
		return fmt.Errorf("invalid string boolean %q", data)
	}
	return nil
}

// pickupTimeLayout is the only pickup-time format the remote accepts:
// zero-padded, 24-hour clock, no timezone suffix. The remote has no timezone
// awareness and reads the string in a local timezone agreed out-of-band.
const pickupTimeLayout = "2006/01/02 15:04"

// PickupTime is a timestamp serialized in the remote's "yyyy/MM/dd HH:mm"
// format.
type PickupTime time.Time

// MarshalJSON renders the timestamp in the pickup-time wire format.
func (t PickupTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(pickupTimeLayout) + `"`), nil
}

// UnmarshalJSON parses the pickup-time wire format.
func (t *PickupTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid pickup time %s", s)
	}
	parsed, err := time.Parse(pickupTimeLayout, s[1:len(s)-1])
	if err != nil {
		return err
	}
	*t = PickupTime(parsed)
	return nil
}

func (t PickupTime) String() string {
	return time.Time(t).Format(pickupTimeLayout)
}

// Location is a positional tuple: [latitude, longitude, address, detail].
// Latitude and longitude may be empty strings meaning "unspecified"; the
// address is mandatory. Order within the tuple is significant.
type Location []string

// NewLocation builds a location tuple in the wire order.
func NewLocation(lat, lon, address, detail string) Location {
	return Location{lat, lon, address, detail}
}

// ============================================================================
// API Request/Response Types (match the GoGoVan Plus JSON contract)
// ============================================================================

// Credentials are embedded in every request body. The remote has no
// session or token mechanism.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PriceOrder is the order payload of a price request.
type PriceOrder struct {
	Booth      StringBool `json:"booth"`
	Carry      StringBool `json:"carry"`
	PickupTime PickupTime `json:"pickup_time"`
	Locations  []Location `json:"locations"`
	Vehicle    string     `json:"vehicle"` // motorcycle, struck, mtruck
}

// PriceData nests the order payload under the "data" envelope key.
type PriceData struct {
	Order PriceOrder `json:"order"`
}

// PriceRequest is the full body of GET /api/order/price.
type PriceRequest struct {
	Credentials
	Data PriceData `json:"data"`
}

// Fee is one titled charge in the price breakdown.
type Fee struct {
	Title string  `json:"title"`
	Value float64 `json:"value"`
}

// Breakdown itemizes the quoted price.
type Breakdown struct {
	Fee Fee `json:"fee"`
}

// WalletSnapshot is the account balance as reported inside a quote.
// Amounts are decimal strings here, unlike the wallet-balance endpoint
// which reports numbers.
type WalletSnapshot struct {
	Amount string `json:"amount"`
	Bonus  string `json:"bonus"`
}

// PriceQuote is the data payload of a price response.
type PriceQuote struct {
	Breakdown     Breakdown      `json:"breakdown"`
	DistanceInKMs string         `json:"distance_in_kms"`
	TravelTime    string         `json:"travel_time"` // seconds, as a string
	Base          float64        `json:"base"`
	Total         float64        `json:"total"`
	PaymentMethod string         `json:"payment_method"`
	Wallet        WalletSnapshot `json:"wallet"`
}

// PriceResponse is the body of a price response. Success is a pointer
// because the failure convention distinguishes an explicit false from an
// absent field.
type PriceResponse struct {
	Success *bool      `json:"success,omitempty"`
	Msg     string     `json:"msg,omitempty"`
	Data    PriceQuote `json:"data"`
}

// Invoice holds optional billing details on an order.
type Invoice struct {
	Address string `json:"address"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Note    string `json:"note"`
	TaxIDNo string `json:"tax_id_no"`
}

// NewOrder is the order payload of a booking request.
//
// Booth and Carry are plain strings here rather than StringBool: the remote
// contract requires the literal "false" for both on order creation, whatever
// the caller asked for. The price endpoint honors the caller's flags; this
// one does not. Preserved as-is, not a bug to fix.
type NewOrder struct {
	Booth               string     `json:"booth"`
	Carry               string     `json:"carry"`
	CODPrice            string     `json:"cod_price"`
	Invoice             *Invoice   `json:"invoice,omitempty"`
	IsBonusFirst        bool       `json:"is_bonus_first"` // native boolean on the wire
	Locations           []Location `json:"locations"`
	Name                string     `json:"name"`
	NeedInsulationBags  StringBool `json:"need_insulation_bags"`
	Note                string     `json:"note"`
	PhoneNumber         string     `json:"phone_number"`
	PickupTime          PickupTime `json:"pickup_time"`
	ReceiverName        string     `json:"receiver_name"`
	ReceiverPhoneNumber string     `json:"receiver_phone_number"`
	Vehicle             string     `json:"vehicle"`
}

// NewOrderData nests the order payload under the "data" envelope key.
type NewOrderData struct {
	Order NewOrder `json:"order"`
}

// NewOrderRequest is the full body of POST /api/order/new.
type NewOrderRequest struct {
	Credentials
	Data NewOrderData `json:"data"`
}

// NewOrderResponse is the body of a booking response.
type NewOrderResponse struct {
	Success *bool   `json:"success,omitempty"`
	Msg     string  `json:"msg,omitempty"`
	OrderID int64   `json:"order_id"`
	Price   float64 `json:"price"`
}

// CancelRequest is the full body of PUT /api/order/cancel.
type CancelRequest struct {
	Credentials
	Action  string `json:"action"` // always "cancel"
	OrderID string `json:"order_id"`
}

// CancelResponse is the body of a cancellation response.
type CancelResponse struct {
	Success *bool  `json:"success,omitempty"`
	Msg     string `json:"msg,omitempty"`
}

// StatusRequest is the credentials-only body of a status or wallet request.
type StatusRequest struct {
	Credentials
}

// DriverInfo describes the assigned driver in a status response.
type DriverInfo struct {
	ID           int64  `json:"id"`
	PhoneNumber  string `json:"phone_number"`
	Name         string `json:"name"`
	LicensePlate string `json:"license_plate"`
	Location     string `json:"location,omitempty"` // "25.0737746,121.6007978"
}

// WaypointInfo is one stop in a status response.
type WaypointInfo struct {
	Name               string  `json:"name"`
	Address            string  `json:"address"`
	DetailAddress      string  `json:"detail_address"`
	Lat                float64 `json:"lat"`
	Lon                float64 `json:"lon"`
	ContactName        string  `json:"contact_name"`
	ContactPhoneNumber string  `json:"contact_phone_number"`
	DriverArrivedAt    string  `json:"driver_arrived_at"` // ISO-8601, empty until arrival
}

// OrderStatusResponse is the body of GET /api/order/{id}/status. This
// endpoint has its own failure convention: the presence of Msg signals
// failure regardless of any success field, so Msg is a pointer.
type OrderStatusResponse struct {
	ID          int64          `json:"id"`
	Status      string         `json:"status"` // pending, picked, active, completed, cancelled
	Name        string         `json:"name"`
	PhoneNumber string         `json:"phone_number"`
	Driver      DriverInfo     `json:"driver"`
	Waypoints   []WaypointInfo `json:"waypoints"`
	Msg         *string        `json:"msg,omitempty"`
}

// OrderStatusWebhook is the payload the remote pushes on status changes.
// It shares the status response shape minus the failure field.
type OrderStatusWebhook = OrderStatusResponse

// WalletBalanceResponse is the body of GET /api/wallet-balance.
type WalletBalanceResponse struct {
	Success *bool   `json:"success,omitempty"`
	Msg     string  `json:"msg,omitempty"`
	Amount  float64 `json:"amount"`
	Bonus   float64 `json:"bonus"`
}

// APIError represents a business failure reported by the GoGoVan Plus API.
type APIError struct {
	Op         string // which operation was rejected
	Message    string // server-supplied message
	StatusCode int    // HTTP status, when relevant
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gogovan %s rejected (HTTP %d): %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gogovan %s rejected: %s", e.Op, e.Message)
}
