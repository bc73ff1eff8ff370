package courier

import (
	"time"
)

// OrderState represents the normalized lifecycle state of a delivery order.
type OrderState string

const (
	StatePending   OrderState = "pending"
	StatePicked    OrderState = "picked"
	StateActive    OrderState = "active"
	StateCompleted OrderState = "completed"
	StateCancelled OrderState = "cancelled"
)

// Vehicle represents the requested vehicle class. The values are the
// provider's own wire spellings ("struck" and "mtruck" included).
type Vehicle string

const (
	VehicleMotorcycle  Vehicle = "motorcycle"
	VehicleTruck       Vehicle = "struck"
	VehicleMediumTruck Vehicle = "mtruck"
)

// Stop is one point on a delivery route. Latitude and longitude are carried
// as strings and may be empty, meaning "unspecified"; Address is mandatory.
// The provider resolves coordinates itself when they are absent.
type Stop struct {
	Lat     string
	Lon     string
	Address string
	Detail  string // floor, suite, gate code
}

// LatLon is a parsed geographic position.
type LatLon struct {
	Lat float64
	Lon float64
}

// Invoice holds optional billing details attached to an order.
type Invoice struct {
	Address string
	Email   string
	Name    string
	Note    string
	TaxIDNo string
}

// FeeLine is one titled component of a price breakdown.
type FeeLine struct {
	Title string
	Value float64
}

// WalletBalance is the prepaid balance for the account, split into the paid
// amount and promotional bonus credit.
type WalletBalance struct {
	Amount float64
	Bonus  float64
}

// Driver describes the driver assigned to an order.
type Driver struct {
	ID           int64
	Name         string
	Phone        string
	LicensePlate string
	Location     *LatLon // nil until the provider reports a position
}

// Waypoint is one stop within an active order's route, with arrival progress.
type Waypoint struct {
	Name            string
	Address         string
	DetailAddress   string
	Lat             float64
	Lon             float64
	ContactName     string
	ContactPhone    string
	DriverArrivedAt *time.Time // nil while the driver is still en route
}

// ============================================================================
// Request/Response Types
// ============================================================================

// QuoteRequest is the request for a delivery price estimate.
type QuoteRequest struct {
	Vehicle    Vehicle
	PickupTime time.Time
	Booth      bool // staffed kiosk handling
	Carry      bool // hand-carry handling
	Stops      []Stop
}

// Quote is a non-binding price estimate.
type Quote struct {
	Fee           FeeLine
	DistanceKM    float64
	TravelTime    time.Duration
	Base          float64
	Total         float64
	PaymentMethod string
	Wallet        WalletBalance // balance snapshot at quote time
}

// CreateOrderRequest is the request for booking a delivery.
type CreateOrderRequest struct {
	Vehicle            Vehicle
	PickupTime         time.Time
	Stops              []Stop
	SenderName         string
	SenderPhone        string
	ReceiverName       string
	ReceiverPhone      string
	CODPrice           string // decimal-as-string, passed through verbatim
	Invoice            *Invoice
	NeedInsulationBags bool
	BonusFirst         bool // spend bonus credit before the paid balance
	Note               string
}

// OrderConfirmation is the result of a successful booking.
type OrderConfirmation struct {
	OrderID int64
	Price   float64
}

// CancelOrderRequest is the request for cancelling an order.
type CancelOrderRequest struct {
	OrderID string
}

// CancelResult is the outcome of a cancellation.
type CancelResult struct {
	Cancelled bool
	Message   string
}

// OrderStatus is the current state of an order.
type OrderStatus struct {
	ID        int64
	State     OrderState
	Name      string
	Phone     string
	Driver    Driver
	Waypoints []Waypoint
}
