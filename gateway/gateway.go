package gateway

import "context"

// OrderGateway defines the upstream payment-gateway operations the service
// depends on.
type OrderGateway interface {
	// CreateOrder registers an order with the gateway and returns its
	// descriptor. Amount is in minor currency units.
	CreateOrder(ctx context.Context, params OrderParams) (*Order, error)
}

// OrderParams is the order-creation request sent to the gateway.
type OrderParams struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

// Order is the gateway's view of a created order.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}
