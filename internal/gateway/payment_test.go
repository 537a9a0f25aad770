package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"careline-backend/internal/domain"
)

func TestTossClientConfirm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payments/confirm" {
			t.Errorf("path = %s", r.URL.Path)
		}
		wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("sk_test_123:"))
		if got := r.Header.Get("Authorization"); got != wantAuth {
			t.Errorf("auth header = %q", got)
		}

		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["paymentKey"] != "pay_key_abc" || body["orderId"] != "9" {
			t.Errorf("unexpected body: %v", body)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"paymentKey":  "pay_key_abc",
			"orderId":     "9",
			"totalAmount": 60000,
			"method":      "card",
			"approvedAt":  "2026-09-01T10:00:00+09:00",
			"status":      "DONE",
		})
	}))
	defer srv.Close()

	client := NewTossClient(srv.URL, "sk_test_123")
	res, err := client.Confirm(context.Background(), "pay_key_abc", "9", 60000)
	if err != nil {
		t.Fatalf("confirm error: %v", err)
	}
	if res.Amount != 60000 || res.Method != "card" || res.PaymentKey != "pay_key_abc" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestTossClientConfirmDecline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "REJECT_CARD_COMPANY",
			"message": "card declined by issuer",
		})
	}))
	defer srv.Close()

	client := NewTossClient(srv.URL, "sk_test_123")
	_, err := client.Confirm(context.Background(), "pay_key_abc", "9", 60000)
	if !domain.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if !strings.Contains(err.Error(), "card declined by issuer") {
		t.Fatalf("decline reason must come through verbatim, got %v", err)
	}
}

func TestTossClientCancel(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "CANCELED"})
	}))
	defer srv.Close()

	client := NewTossClient(srv.URL, "sk_test_123")
	if err := client.Cancel(context.Background(), "pay_key_abc", 40000, "booking cancelled"); err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if gotPath != "/v1/payments/pay_key_abc/cancel" {
		t.Fatalf("path = %s", gotPath)
	}
	if gotBody["cancelAmount"] != float64(40000) || gotBody["cancelReason"] != "booking cancelled" {
		t.Fatalf("unexpected body: %v", gotBody)
	}
}

func TestTossClientUnreachable(t *testing.T) {
	client := NewTossClient("http://127.0.0.1:1", "sk_test_123")
	_, err := client.Confirm(context.Background(), "k", "1", 1000)
	if !domain.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
