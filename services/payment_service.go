package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"checkout-service/config"
	"checkout-service/gateway"
	"checkout-service/models"

	"go.uber.org/zap"
)

// PaymentService defines the business logic interface.
type PaymentService interface {
	// Config returns the public key id and a secret-presence flag.
	Config() models.PaymentConfig

	// CreateOrder validates the amount, converts it to minor units and
	// registers an order with the gateway.
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, *ServiceError)

	// VerifyPayment recomputes the HMAC signature over the order and payment
	// ids and compares it to the one supplied by the checkout widget.
	// A mismatch is a valid negative result, not an error.
	VerifyPayment(req *models.VerifyPaymentRequest) (*models.VerifyPaymentResponse, *ServiceError)
}

type paymentServiceImpl struct {
	cfg     *config.Config
	gateway gateway.OrderGateway
	logger  *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(cfg *config.Config, gw gateway.OrderGateway, logger *zap.Logger) PaymentService {
	return &paymentServiceImpl{
		cfg:     cfg,
		gateway: gw,
		logger:  logger,
	}
}

// Config implements the config probe. Always succeeds; only the key id and
// a boolean leave the process, never the secret.
func (s *paymentServiceImpl) Config() models.PaymentConfig {
	return models.PaymentConfig{
		KeyID:     s.cfg.RazorpayKeyID,
		HasSecret: s.cfg.RazorpayKeySecret != "",
	}
}

// CreateOrder brokers order creation against the gateway.
func (s *paymentServiceImpl) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, *ServiceError) {
	if !s.cfg.HasCredentials() {
		return nil, newServiceError(KindMissingCredentials,
			"Missing Razorpay credentials. Please set RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET in environment.")
	}

	amount, ok := parseAmount(req.Amount)
	if !ok {
		return nil, newServiceError(KindInvalidAmount, "Invalid amount")
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	receipt := req.Receipt
	if receipt == "" {
		receipt = fmt.Sprintf("rcpt_%d", time.Now().UnixMilli())
	}

	params := gateway.OrderParams{
		Amount:         toMinorUnits(amount),
		Currency:       currency,
		Receipt:        receipt,
		PaymentCapture: 1,
	}

	order, err := s.gateway.CreateOrder(ctx, params)
	if err != nil {
		var apiErr *gateway.APIError
		if errors.As(err, &apiErr) {
			s.logger.Warn("Razorpay rejected order creation",
				zap.Int("upstream_status", apiErr.StatusCode),
				zap.String("currency", currency),
			)
			return nil, newUpstreamError(apiErr.StatusCode, "Failed to create order", apiErr.Body)
		}
		s.logger.Error("Order creation failed", zap.Error(err))
		return nil, newServiceError(KindInternal, "Internal Server Error")
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.Int64("amount", order.Amount),
		zap.String("currency", order.Currency),
	)

	return &models.CreateOrderResponse{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    s.cfg.RazorpayKeyID,
		Receipt:  order.Receipt,
	}, nil
}

// VerifyPayment checks the widget's completion signature. Pure local
// computation; no gateway call.
func (s *paymentServiceImpl) VerifyPayment(req *models.VerifyPaymentRequest) (*models.VerifyPaymentResponse, *ServiceError) {
	if !s.cfg.HasCredentials() {
		return nil, newServiceError(KindMissingCredentials,
			"Missing Razorpay credentials. Please set RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET in environment.")
	}

	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		return nil, newServiceError(KindMissingFields, "Missing verification fields")
	}

	expected := signPayload(s.cfg.RazorpayKeySecret, req.RazorpayOrderID, req.RazorpayPaymentID)
	verified := hmac.Equal([]byte(expected), []byte(req.RazorpaySignature))

	if !verified {
		s.logger.Warn("Payment signature mismatch",
			zap.String("order_id", req.RazorpayOrderID),
			zap.String("payment_id", req.RazorpayPaymentID),
		)
	}

	return &models.VerifyPaymentResponse{Verified: verified}, nil
}

// signPayload computes the Razorpay checkout signature: lowercase hex of
// HMAC-SHA256 over "orderID|paymentID" keyed by the key secret.
func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// maxAmount bounds the major-unit amount so the minor-unit product always
// fits an int64. Far above any amount Razorpay would accept.
const maxAmount = 1e15

// parseAmount coerces the loosely typed amount field to a float. Accepts
// JSON numbers and numeric strings; anything non-finite, <= 0 or beyond
// maxAmount is invalid.
func parseAmount(v interface{}) (float64, bool) {
	var amt float64
	switch n := v.(type) {
	case float64:
		amt = n
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		amt = parsed
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		amt = parsed
	default:
		return 0, false
	}

	if math.IsNaN(amt) || math.IsInf(amt, 0) || amt <= 0 || amt > maxAmount {
		return 0, false
	}
	return amt, true
}

// toMinorUnits converts a major-unit amount to paise by rounding the
// floating-point product, matching the behavior of rounding amt*100 in
// IEEE-754 arithmetic.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
