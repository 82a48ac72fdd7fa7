package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIError is a non-2xx response from the Razorpay API. The upstream status
// code and raw body are preserved so handlers can pass them through.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("razorpay API error (status %d): %s", e.StatusCode, e.Body)
}

// RazorpayGateway implements OrderGateway against the Razorpay REST API.
type RazorpayGateway struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

// NewRazorpayGateway creates a RazorpayGateway. baseURL is configurable so
// tests can point the client at a stub server.
func NewRazorpayGateway(baseURL, keyID, keySecret string, timeout time.Duration) *RazorpayGateway {
	return &RazorpayGateway{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateOrder calls POST /v1/orders under HTTP Basic auth.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, params OrderParams) (*Order, error) {
	var order Order
	if err := g.doRequest(ctx, http.MethodPost, "/v1/orders", params, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (g *RazorpayGateway) doRequest(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBytes)}
	}

	if out != nil {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
