package server

import (
	"time"

	"github.com/vanward/dispatch/pkg/courier"
)

// Request/response shapes for the JSON facade. Pickup times here are
// RFC 3339; the provider layer owns the remote's own date format.

type stopDTO struct {
	Lat     string `json:"lat,omitempty"`
	Lon     string `json:"lon,omitempty"`
	Address string `json:"address"`
	Detail  string `json:"detail,omitempty"`
}

type contactDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type invoiceDTO struct {
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Note    string `json:"note,omitempty"`
	TaxIDNo string `json:"tax_id_no,omitempty"`
}

type quoteRequestDTO struct {
	Providers  []string  `json:"providers,omitempty"`
	Vehicle    string    `json:"vehicle"`
	PickupTime time.Time `json:"pickup_time"`
	Booth      bool      `json:"booth"`
	Carry      bool      `json:"carry"`
	Stops      []stopDTO `json:"stops"`
}

func (q *quoteRequestDTO) toModel() *courier.QuoteRequest {
	return &courier.QuoteRequest{
		Vehicle:    courier.Vehicle(q.Vehicle),
		PickupTime: q.PickupTime,
		Booth:      q.Booth,
		Carry:      q.Carry,
		Stops:      stopsToModel(q.Stops),
	}
}

type quoteDTO struct {
	Provider          string  `json:"provider"`
	FeeTitle          string  `json:"fee_title"`
	FeeValue          float64 `json:"fee_value"`
	DistanceKM        float64 `json:"distance_km"`
	TravelTimeSeconds float64 `json:"travel_time_seconds"`
	Base              float64 `json:"base"`
	Total             float64 `json:"total"`
	PaymentMethod     string  `json:"payment_method"`
	WalletAmount      float64 `json:"wallet_amount"`
	WalletBonus       float64 `json:"wallet_bonus"`
}

type quotesResponseDTO struct {
	Quotes []quoteDTO `json:"quotes"`
	Errors []string   `json:"errors,omitempty"`
}

func quoteToDTO(provider string, q *courier.Quote) quoteDTO {
	return quoteDTO{
		Provider:          provider,
		FeeTitle:          q.Fee.Title,
		FeeValue:          q.Fee.Value,
		DistanceKM:        q.DistanceKM,
		TravelTimeSeconds: q.TravelTime.Seconds(),
		Base:              q.Base,
		Total:             q.Total,
		PaymentMethod:     q.PaymentMethod,
		WalletAmount:      q.Wallet.Amount,
		WalletBonus:       q.Wallet.Bonus,
	}
}

type createOrderDTO struct {
	Provider           string      `json:"provider,omitempty"`
	Vehicle            string      `json:"vehicle"`
	PickupTime         time.Time   `json:"pickup_time"`
	Stops              []stopDTO   `json:"stops"`
	Sender             contactDTO  `json:"sender"`
	Receiver           contactDTO  `json:"receiver"`
	CODPrice           string      `json:"cod_price,omitempty"`
	Invoice            *invoiceDTO `json:"invoice,omitempty"`
	NeedInsulationBags bool        `json:"need_insulation_bags"`
	BonusFirst         bool        `json:"bonus_first"`
	Note               string      `json:"note,omitempty"`
}

func (o *createOrderDTO) toModel() *courier.CreateOrderRequest {
	req := &courier.CreateOrderRequest{
		Vehicle:            courier.Vehicle(o.Vehicle),
		PickupTime:         o.PickupTime,
		Stops:              stopsToModel(o.Stops),
		SenderName:         o.Sender.Name,
		SenderPhone:        o.Sender.Phone,
		ReceiverName:       o.Receiver.Name,
		ReceiverPhone:      o.Receiver.Phone,
		CODPrice:           o.CODPrice,
		NeedInsulationBags: o.NeedInsulationBags,
		BonusFirst:         o.BonusFirst,
		Note:               o.Note,
	}
	if o.Invoice != nil {
		req.Invoice = &courier.Invoice{
			Address: o.Invoice.Address,
			Email:   o.Invoice.Email,
			Name:    o.Invoice.Name,
			Note:    o.Invoice.Note,
			TaxIDNo: o.Invoice.TaxIDNo,
		}
	}
	return req
}

type driverDTO struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	LicensePlate string   `json:"license_plate"`
	Lat          *float64 `json:"lat,omitempty"`
	Lon          *float64 `json:"lon,omitempty"`
}

type waypointDTO struct {
	Name            string     `json:"name"`
	Address         string     `json:"address"`
	DetailAddress   string     `json:"detail_address,omitempty"`
	Lat             float64    `json:"lat"`
	Lon             float64    `json:"lon"`
	ContactName     string     `json:"contact_name"`
	ContactPhone    string     `json:"contact_phone"`
	DriverArrivedAt *time.Time `json:"driver_arrived_at,omitempty"`
}

type orderStatusDTO struct {
	ID        int64         `json:"id"`
	State     string        `json:"state"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Driver    driverDTO     `json:"driver"`
	Waypoints []waypointDTO `json:"waypoints"`
}

func orderStatusToDTO(status *courier.OrderStatus) orderStatusDTO {
	driver := driverDTO{
		ID:           status.Driver.ID,
		Name:         status.Driver.Name,
		Phone:        status.Driver.Phone,
		LicensePlate: status.Driver.LicensePlate,
	}
	if loc := status.Driver.Location; loc != nil {
		driver.Lat = &loc.Lat
		driver.Lon = &loc.Lon
	}

	waypoints := make([]waypointDTO, len(status.Waypoints))
	for i, wp := range status.Waypoints {
		waypoints[i] = waypointDTO{
			Name:            wp.Name,
			Address:         wp.Address,
			DetailAddress:   wp.DetailAddress,
			Lat:             wp.Lat,
			Lon:             wp.Lon,
			ContactName:     wp.ContactName,
			ContactPhone:    wp.ContactPhone,
			DriverArrivedAt: wp.DriverArrivedAt,
		}
	}

	return orderStatusDTO{
		ID:        status.ID,
		State:     string(status.State),
		Name:      status.Name,
		Phone:     status.Phone,
		Driver:    driver,
		Waypoints: waypoints,
	}
}

func stopsToModel(stops []stopDTO) []courier.Stop {
	result := make([]courier.Stop, len(stops))
	for i, s := range stops {
		result[i] = courier.Stop{
			Lat:     s.Lat,
			Lon:     s.Lon,
			Address: s.Address,
			Detail:  s.Detail,
		}
	}
	return result
}
