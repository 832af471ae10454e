package http

import (
	"time"

	"hyperlocal/internal/core/application/usecases/queries"
	"hyperlocal/internal/core/domain/model/order"
)

type orderItemResponse struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
	LineTotal    int64  `json:"line_total"`
	Substitution string `json:"substitution"`
}

type orderResponse struct {
	ID            string              `json:"id"`
	Status        string              `json:"status"`
	StoreID       string              `json:"store_id"`
	RiderID       *string             `json:"rider_id,omitempty"`
	Items         []orderItemResponse `json:"items"`
	Subtotal      int64               `json:"subtotal"`
	DeliveryFee   int64               `json:"delivery_fee"`
	Tax           int64               `json:"tax"`
	Discount      int64               `json:"discount"`
	Total         int64               `json:"total"`
	PaymentMethod string              `json:"payment_method"`
	PaymentStatus string              `json:"payment_status"`
	AddressText   string              `json:"address_text"`
	PlacedAt      time.Time           `json:"placed_at"`
	DeliveredAt   *time.Time          `json:"delivered_at,omitempty"`
}

func newOrderResponse(o *order.Order) orderResponse {
	items := make([]orderItemResponse, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = orderItemResponse{
			ProductID:    item.ProductID().String(),
			Name:         item.Name(),
			Quantity:     item.Quantity(),
			UnitPrice:    item.UnitPrice().Int64(),
			LineTotal:    item.LineTotal().Int64(),
			Substitution: item.Substitution().String(),
		}
	}

	var riderID *string
	if o.Rider() != nil {
		value := o.Rider().String()
		riderID = &value
	}

	pricing := o.Pricing()
	return orderResponse{
		ID:            o.ID().String(),
		Status:        o.Status().String(),
		StoreID:       o.StoreID().String(),
		RiderID:       riderID,
		Items:         items,
		Subtotal:      pricing.Subtotal().Int64(),
		DeliveryFee:   pricing.DeliveryFee().Int64(),
		Tax:           pricing.Tax().Int64(),
		Discount:      pricing.Discount().Int64(),
		Total:         pricing.Total().Int64(),
		PaymentMethod: o.PaymentMethod().String(),
		PaymentStatus: o.PaymentStatus().String(),
		AddressText:   o.Address().Text(),
		PlacedAt:      o.PlacedAt(),
		DeliveredAt:   o.DeliveredAt(),
	}
}

type timelineEntryResponse struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
	Note   string    `json:"note,omitempty"`
}

// trackingResponse is the customer-facing order view built from the
// read model, history included.
type trackingResponse struct {
	ID            string                  `json:"id"`
	Status        string                  `json:"status"`
	RiderID       *string                 `json:"rider_id,omitempty"`
	Subtotal      int64                   `json:"subtotal"`
	DeliveryFee   int64                   `json:"delivery_fee"`
	Tax           int64                   `json:"tax"`
	Discount      int64                   `json:"discount"`
	Total         int64                   `json:"total"`
	PaymentMethod string                  `json:"payment_method"`
	PaymentStatus string                  `json:"payment_status"`
	PlacedAt      time.Time               `json:"placed_at"`
	DeliveredAt   *time.Time              `json:"delivered_at,omitempty"`
	Timeline      []timelineEntryResponse `json:"timeline"`
}

func newTrackingResponse(result *queries.GetOrderQueryResponse) trackingResponse {
	timeline := make([]timelineEntryResponse, len(result.Timeline))
	for i, entry := range result.Timeline {
		timeline[i] = timelineEntryResponse{
			Status: entry.Status,
			At:     entry.At,
			Note:   entry.Note,
		}
	}

	var riderID *string
	if result.RiderID != nil {
		value := result.RiderID.String()
		riderID = &value
	}

	return trackingResponse{
		ID:            result.ID.String(),
		Status:        result.Status,
		RiderID:       riderID,
		Subtotal:      result.Subtotal,
		DeliveryFee:   result.DeliveryFee,
		Tax:           result.Tax,
		Discount:      result.Discount,
		Total:         result.Total,
		PaymentMethod: result.PaymentMethod,
		PaymentStatus: result.PaymentStatus,
		PlacedAt:      result.PlacedAt,
		DeliveredAt:   result.DeliveredAt,
		Timeline:      timeline,
	}
}

type zoneResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	CenterLat     float64 `json:"center_lat"`
	CenterLng     float64 `json:"center_lng"`
	DistanceKm    float64 `json:"distance_km"`
	EtaMinMinutes int     `json:"eta_min_minutes"`
	EtaMaxMinutes int     `json:"eta_max_minutes"`
}

type storeResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Lat             float64 `json:"lat"`
	Lng             float64 `json:"lng"`
	Rating          float64 `json:"rating"`
	PrepTimeMinutes int     `json:"prep_time_minutes"`
}

type riderResponse struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type earningsResponse struct {
	RiderID         string `json:"rider_id"`
	Balance         int64  `json:"balance"`
	Today           int64  `json:"today"`
	Week            int64  `json:"week"`
	Month           int64  `json:"month"`
	TotalOrders     int    `json:"total_orders"`
	CompletedOrders int    `json:"completed_orders"`
	CancelledOrders int    `json:"cancelled_orders"`
}
