package http

import "time"

// PlaceOrderRequest is the body of POST /api/v1/orders. The placing customer
// comes from the actor headers; money amounts are integer cents.
type PlaceOrderRequest struct {
	SupplierID       string             `json:"supplier_id"`
	Items            []OrderItemRequest `json:"items"`
	Address          AddressRequest     `json:"address"`
	DeliveryFeeCents int64              `json:"delivery_fee_cents"`
	DiscountCents    int64              `json:"discount_cents"`
}

// OrderItemRequest is one line of a placed order.
type OrderItemRequest struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

// AddressRequest is the delivery address snapshot frozen on the order.
type AddressRequest struct {
	Street string `json:"street"`
	City   string `json:"city"`
	Phone  string `json:"phone"`
}

// PlaceOrderResponse is the body returned for a placed order.
type PlaceOrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Version int    `json:"version"`
}

// TransitionRequest is the body of POST /api/v1/orders/:id/transition.
type TransitionRequest struct {
	Target          string `json:"target"`
	ExpectedVersion int    `json:"expected_version"`
	Note            string `json:"note,omitempty"`
}

// TransitionResponse is the outcome of a transition call. Replayed is true
// when the Idempotency-Key matched an earlier success and the stored outcome
// was returned without re-applying anything.
type TransitionResponse struct {
	OrderID  string `json:"order_id"`
	Status   string `json:"status"`
	Version  int    `json:"version"`
	Replayed bool   `json:"replayed"`
}

// MarkLineRequest is the body of POST /api/v1/orders/:id/lines/:product_id/mark.
// Stage is "picked" or "packed".
type MarkLineRequest struct {
	Stage           string `json:"stage"`
	ExpectedVersion int    `json:"expected_version"`
}

// OrderSummaryResponse is one row of a supplier's or customer's order list.
type OrderSummaryResponse struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	SupplierID string    `json:"supplier_id"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	Version    int       `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderLineResponse is one line of the order detail view.
type OrderLineResponse struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	Picked         bool   `json:"picked"`
	Packed         bool   `json:"packed"`
}

// StatusChangeResponse is one audit-trail entry of the order detail view.
type StatusChangeResponse struct {
	Status  string    `json:"status"`
	ActorID string    `json:"actor_id"`
	Role    string    `json:"role"`
	Note    string    `json:"note,omitempty"`
	At      time.Time `json:"at"`
}

// OrderDetailResponse is the body of GET /api/v1/orders/:id.
type OrderDetailResponse struct {
	OrderID          string                 `json:"order_id"`
	CustomerID       string                 `json:"customer_id"`
	SupplierID       string                 `json:"supplier_id"`
	Status           string                 `json:"status"`
	SubtotalCents    int64                  `json:"subtotal_cents"`
	DeliveryFeeCents int64                  `json:"delivery_fee_cents"`
	DiscountCents    int64                  `json:"discount_cents"`
	TotalCents       int64                  `json:"total_cents"`
	Address          AddressRequest         `json:"address"`
	Version          int                    `json:"version"`
	CreatedAt        time.Time              `json:"created_at"`
	Items            []OrderLineResponse    `json:"items"`
	History          []StatusChangeResponse `json:"history"`
}

// OrderUpdateResponse is one streamed line of GET /api/v1/orders/:id/watch.
type OrderUpdateResponse struct {
	OrderID string    `json:"order_id"`
	Status  string    `json:"status"`
	Version int       `json:"version"`
	At      time.Time `json:"at"`
}

// ListProductRequest is the body of POST /api/v1/products.
type ListProductRequest struct {
	ProductID    string `json:"product_id"`
	InitialStock int    `json:"initial_stock"`
}

// ReplenishRequest is the body of POST /api/v1/products/:id/replenish.
type ReplenishRequest struct {
	Quantity int `json:"quantity"`
}

// StockResponse is the body of GET /api/v1/products/:id/stock.
type StockResponse struct {
	ProductID string `json:"product_id"`
	OnHand    int    `json:"on_hand"`
	Reserved  int    `json:"reserved"`
	Available int    `json:"available"`
}
