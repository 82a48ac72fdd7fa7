package services_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"testing"

	"checkout-service/config"
	"checkout-service/gateway"
	"checkout-service/models"
	"checkout-service/services"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// ---- mock gateway ----

type mockGateway struct {
	lastParams *gateway.OrderParams
	calls      int
	order      *gateway.Order
	err        error
}

func (m *mockGateway) CreateOrder(_ context.Context, params gateway.OrderParams) (*gateway.Order, error) {
	m.calls++
	m.lastParams = &params
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

// ---- helpers ----

func newTestService(gw *mockGateway, keyID, keySecret string) services.PaymentService {
	logger := zap.NewNop()
	cfg := &config.Config{
		RazorpayKeyID:     keyID,
		RazorpayKeySecret: keySecret,
	}
	return services.NewPaymentService(cfg, gw, logger)
}

func expectedSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// ---- config probe ----

func TestConfig_WithCredentials(t *testing.T) {
	svc := newTestService(&mockGateway{}, "rzp_test_abc", "s3cr3t")

	cfg := svc.Config()

	assert.Equal(t, "rzp_test_abc", cfg.KeyID)
	assert.True(t, cfg.HasSecret)
}

func TestConfig_WithoutCredentials(t *testing.T) {
	svc := newTestService(&mockGateway{}, "", "")

	cfg := svc.Config()

	assert.Equal(t, "", cfg.KeyID)
	assert.False(t, cfg.HasSecret)
}

// ---- order creation ----

func TestCreateOrder_MissingCredentials(t *testing.T) {
	gw := &mockGateway{}
	svc := newTestService(gw, "", "")

	_, svcErr := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{Amount: float64(499)})

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.KindMissingCredentials, svcErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
	assert.Equal(t, 0, gw.calls)
}

func TestCreateOrder_InvalidAmounts(t *testing.T) {
	cases := []struct {
		name   string
		amount interface{}
	}{
		{"zero", float64(0)},
		{"negative", float64(-10)},
		{"nil", nil},
		{"non-numeric string", "abc"},
		{"nan string", "NaN"},
		{"infinity string", "Inf"},
		{"bool", true},
		{"beyond int64 minor units", float64(1e17)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := &mockGateway{}
			svc := newTestService(gw, "rzp_test_abc", "s3cr3t")

			_, svcErr := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{Amount: tc.amount})

			assert.NotNil(t, svcErr)
			assert.Equal(t, services.KindInvalidAmount, svcErr.Kind)
			assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
			assert.Equal(t, 0, gw.calls, "no upstream call for invalid amount")
		})
	}
}

func TestCreateOrder_MinorUnitConversion(t *testing.T) {
	cases := []struct {
		name   string
		amount interface{}
		want   int64
	}{
		{"whole rupees", float64(499), 49900},
		{"two decimals", float64(19.99), 1999},
		{"numeric string", "250.50", 25050},
		{"exact half rounds up", float64(0.125), 13},
		// The float products of 19.995*100 and 20.005*100 land exactly on
		// the .5 tie and round up.
		{"19.995 rounds to 2000", float64(19.995), 2000},
		{"20.005 rounds to 2001", float64(20.005), 2001},
		{"single paisa", float64(0.01), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := &mockGateway{order: &gateway.Order{ID: "order_ABC", Amount: tc.want, Currency: "INR", Receipt: "rcpt_1"}}
			svc := newTestService(gw, "rzp_test_abc", "s3cr3t")

			_, svcErr := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{Amount: tc.amount})

			assert.Nil(t, svcErr)
			assert.Equal(t, tc.want, gw.lastParams.Amount)
		})
	}
}

func TestCreateOrder_Defaults(t *testing.T) {
	gw := &mockGateway{order: &gateway.Order{ID: "order_ABC", Amount: 49900, Currency: "INR", Receipt: "rcpt_1"}}
	svc := newTestService(gw, "rzp_test_abc", "s3cr3t")

	_, svcErr := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{Amount: float64(499)})

	assert.Nil(t, svcErr)
	assert.Equal(t, "INR", gw.lastParams.Currency)
	assert.True(t, strings.HasPrefix(gw.lastParams.Receipt, "rcpt_"))
	assert.Equal(t, 1, gw.lastParams.PaymentCapture, "auto-capture requested")
}

func TestCreateOrder_ExplicitCurrencyAndReceipt(t *testing.T) {
	gw := &mockGateway{order: &gateway.Order{ID: "order_ABC", Amount: 49900, Currency: "USD", Receipt: "rcpt_custom"}}
	svc := newTestService(gw, "rzp_test_abc", "s3cr3t")

	_, svcErr := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		Amount:   float64(499),
		Currency: "USD",
		Receipt:  "rcpt_custom",
	})

	assert.Nil(t, svcErr)
	assert.Equal(t, "USD", gw.lastParams.Currency)
	assert.Equal(t, "rcpt_custom", gw.lastParams.Receipt)
}

func TestCreateOrder_Success(t *testing.T) {
	gw := &mockGateway{order: &gateway.Order{ID: "order_ABC", Amount: 49900, Currency: "INR", Receipt: "rcpt_99"}}
	svc := newTestService(gw, "rzp_test_abc", "s3cr3t")

	resp, svcErr := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{Amount: float64(499)})

	assert.Nil(t, svcErr)
	assert.Equal(t, "order_ABC", resp.OrderID)
	assert.Equal(t, int64(49900), resp.Amount)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "rzp_test_abc", resp.KeyID, "public key id returned to the client")
	assert.Equal(t, "rcpt_99", resp.Receipt)
}

func TestCreateOrder_UpstreamErrorPassthrough(t *testing.T) {
	gw := &mockGateway{err: &gateway.APIError{StatusCode: http.StatusUnauthorized, Body: `{"error":{"code":"BAD_REQUEST_ERROR"}}`}}
	svc := newTestService(gw, "rzp_test_abc", "s3cr3t")

	_, svcErr := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{Amount: float64(499)})

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.KindUpstreamOrder, svcErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode, "upstream status passed through")
	assert.Equal(t, "Failed to create order", svcErr.Message)
	assert.Contains(t, svcErr.Details, "BAD_REQUEST_ERROR")
}

func TestCreateOrder_TransportError(t *testing.T) {
	gw := &mockGateway{err: context.DeadlineExceeded}
	svc := newTestService(gw, "rzp_test_abc", "s3cr3t")

	_, svcErr := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{Amount: float64(499)})

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.KindInternal, svcErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
}

// ---- payment verification ----

func TestVerifyPayment_RoundTrip(t *testing.T) {
	svc := newTestService(&mockGateway{}, "rzp_test_abc", "s3cr3t")

	sig := expectedSignature("s3cr3t", "order_ABC", "pay_XYZ")
	resp, svcErr := svc.VerifyPayment(&models.VerifyPaymentRequest{
		RazorpayOrderID:   "order_ABC",
		RazorpayPaymentID: "pay_XYZ",
		RazorpaySignature: sig,
	})

	assert.Nil(t, svcErr)
	assert.True(t, resp.Verified)
}

func TestVerifyPayment_TamperedSignature(t *testing.T) {
	svc := newTestService(&mockGateway{}, "rzp_test_abc", "s3cr3t")

	sig := expectedSignature("s3cr3t", "order_ABC", "pay_XYZ")
	// Flip one character; mismatch is a valid negative result, not an error.
	flipped := "0" + sig[1:]
	if flipped == sig {
		flipped = "1" + sig[1:]
	}

	resp, svcErr := svc.VerifyPayment(&models.VerifyPaymentRequest{
		RazorpayOrderID:   "order_ABC",
		RazorpayPaymentID: "pay_XYZ",
		RazorpaySignature: flipped,
	})

	assert.Nil(t, svcErr)
	assert.False(t, resp.Verified)
}

func TestVerifyPayment_Deterministic(t *testing.T) {
	svc := newTestService(&mockGateway{}, "rzp_test_abc", "s3cr3t")

	req := &models.VerifyPaymentRequest{
		RazorpayOrderID:   "order_ABC",
		RazorpayPaymentID: "pay_XYZ",
		RazorpaySignature: expectedSignature("s3cr3t", "order_ABC", "pay_XYZ"),
	}

	first, _ := svc.VerifyPayment(req)
	second, _ := svc.VerifyPayment(req)

	assert.Equal(t, first.Verified, second.Verified)
}

func TestVerifyPayment_MissingFields(t *testing.T) {
	cases := []struct {
		name string
		req  models.VerifyPaymentRequest
	}{
		{"missing order id", models.VerifyPaymentRequest{RazorpayPaymentID: "pay_XYZ", RazorpaySignature: "sig"}},
		{"missing payment id", models.VerifyPaymentRequest{RazorpayOrderID: "order_ABC", RazorpaySignature: "sig"}},
		{"missing signature", models.VerifyPaymentRequest{RazorpayOrderID: "order_ABC", RazorpayPaymentID: "pay_XYZ"}},
		{"all empty", models.VerifyPaymentRequest{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(&mockGateway{}, "rzp_test_abc", "s3cr3t")

			_, svcErr := svc.VerifyPayment(&tc.req)

			assert.NotNil(t, svcErr)
			assert.Equal(t, services.KindMissingFields, svcErr.Kind)
			assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
		})
	}
}

func TestVerifyPayment_MissingCredentials(t *testing.T) {
	svc := newTestService(&mockGateway{}, "", "")

	_, svcErr := svc.VerifyPayment(&models.VerifyPaymentRequest{
		RazorpayOrderID:   "order_ABC",
		RazorpayPaymentID: "pay_XYZ",
		RazorpaySignature: "sig",
	})

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.KindMissingCredentials, svcErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
}
