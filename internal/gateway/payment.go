package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"careline-backend/internal/domain"
)

// ConfirmResult is the canonical charge data returned by the gateway on
// approval. Amount comes back from the gateway, not from our request.
type ConfirmResult struct {
	PaymentKey string
	OrderID    string
	Amount     int64
	Method     string
	ApprovedAt time.Time
}

// PaymentGateway is the external money-movement collaborator.
type PaymentGateway interface {
	Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (ConfirmResult, error)
	Cancel(ctx context.Context, paymentKey string, amount int64, reason string) error
}

// TossClient talks to a Toss-style payments API: basic auth with the
// secret key, JSON bodies, declines delivered as {code, message}.
type TossClient struct {
	BaseURL   string
	SecretKey string
	HTTP      *http.Client
}

func NewTossClient(baseURL, secretKey string) *TossClient {
	return &TossClient{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
}

type tossConfirmResponse struct {
	PaymentKey  string `json:"paymentKey"`
	OrderID     string `json:"orderId"`
	TotalAmount int64  `json:"totalAmount"`
	Method      string `json:"method"`
	ApprovedAt  string `json:"approvedAt"`
	Status      string `json:"status"`
}

type tossErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *TossClient) Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (ConfirmResult, error) {
	body, _ := json.Marshal(map[string]any{
		"paymentKey": paymentKey,
		"orderId":    orderID,
		"amount":     amount,
	})

	raw, err := c.post(ctx, "/v1/payments/confirm", body)
	if err != nil {
		return ConfirmResult{}, err
	}

	var resp tossConfirmResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return ConfirmResult{}, fmt.Errorf("parse confirm response: %w", err)
	}

	approvedAt, err := time.Parse(time.RFC3339, resp.ApprovedAt)
	if err != nil {
		approvedAt = time.Now()
	}

	return ConfirmResult{
		PaymentKey: resp.PaymentKey,
		OrderID:    resp.OrderID,
		Amount:     resp.TotalAmount,
		Method:     resp.Method,
		ApprovedAt: approvedAt,
	}, nil
}

func (c *TossClient) Cancel(ctx context.Context, paymentKey string, amount int64, reason string) error {
	body, _ := json.Marshal(map[string]any{
		"cancelAmount": amount,
		"cancelReason": reason,
	})
	_, err := c.post(ctx, "/v1/payments/"+paymentKey+"/cancel", body)
	return err
}

func (c *TossClient) post(ctx context.Context, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.SecretKey+":")))

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, domain.UpstreamError{Source: "payment gateway", Msg: "payment gateway unreachable", Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var decline tossErrorResponse
		if err := json.Unmarshal(raw, &decline); err == nil && decline.Message != "" {
			// the gateway's own reason is surfaced verbatim to the caller
			return nil, domain.UpstreamError{Source: "payment gateway", Code: decline.Code, Msg: decline.Message}
		}
		return nil, domain.UpstreamError{
			Source: "payment gateway",
			Msg:    fmt.Sprintf("payment gateway returned status %d", res.StatusCode),
		}
	}
	return raw, nil
}
