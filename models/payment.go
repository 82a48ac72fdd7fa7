package models

// CreateOrderRequest is the checkout form payload. Amount is in major
// currency units (rupees) and may arrive as a JSON number or a numeric
// string; the service coerces and validates it.
type CreateOrderRequest struct {
	Amount   interface{} `json:"amount"`
	Currency string      `json:"currency"`
	Receipt  string      `json:"receipt"`
}

// CreateOrderResponse is the normalized order descriptor handed to the
// checkout widget. Amount is in minor units (paise).
type CreateOrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
	Receipt  string `json:"receipt"`
}

// VerifyPaymentRequest carries the identifiers the Razorpay widget passes
// to its completion handler. Field names follow the widget's callback.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type VerifyPaymentResponse struct {
	Verified bool `json:"verified"`
}

// PaymentConfig exposes the public key id and whether a secret is
// configured. The secret itself is never serialized.
type PaymentConfig struct {
	KeyID     string `json:"keyId"`
	HasSecret bool   `json:"hasSecret"`
}
