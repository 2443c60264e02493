package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"testing"

	"github.com/anupamtiwari/homecraft-backend/pkg/config"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard})
}

func TestNewClientRequiresCredentials(t *testing.T) {
	ctx := context.Background()
	if _, err := NewClient(ctx, config.RazorpayConfig{}, testLogger()); err == nil {
		t.Fatal("expected error for missing credentials")
	}
	if _, err := NewClient(ctx, config.RazorpayConfig{KeyID: "rzp_test_key", KeySecret: "secret"}, nil); err == nil {
		t.Fatal("expected error for nil logger")
	}
}

func TestNewClientDefaultsCurrency(t *testing.T) {
	client, err := NewClient(context.Background(), config.RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "secret",
	}, testLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.Currency() != "INR" {
		t.Fatalf("expected INR default, got %s", client.Currency())
	}
	if client.KeyID() != "rzp_test_key" {
		t.Fatalf("unexpected key id %s", client.KeyID())
	}
}

func TestCreateOrderRejectsNonPositiveAmount(t *testing.T) {
	client, err := NewClient(context.Background(), config.RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "secret",
	}, testLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.CreateOrder(context.Background(), 0, "rcpt-1")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestVerifySignature(t *testing.T) {
	client, err := NewClient(context.Background(), config.RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "secret",
	}, testLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("order_123|pay_456"))
	signature := hex.EncodeToString(mac.Sum(nil))

	if !client.VerifySignature("order_123", "pay_456", signature) {
		t.Fatal("expected valid signature to verify")
	}
	if client.VerifySignature("order_123", "pay_456", "deadbeef") {
		t.Fatal("expected tampered signature to fail")
	}
	if client.VerifySignature("", "pay_456", signature) {
		t.Fatal("expected missing order id to fail")
	}
}

func TestOrderFromResponse(t *testing.T) {
	order := orderFromResponse(map[string]interface{}{
		"id":       "order_123",
		"amount":   float64(70000),
		"currency": "INR",
		"receipt":  "rcpt-1",
		"status":   "created",
	})
	if order.ID != "order_123" || order.Amount != 70000 || order.Currency != "INR" {
		t.Fatalf("unexpected order %+v", order)
	}

	empty := orderFromResponse(nil)
	if empty.ID != "" || empty.Amount != 0 {
		t.Fatalf("expected zero order for nil response, got %+v", empty)
	}
}
