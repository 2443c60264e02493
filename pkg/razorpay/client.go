package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	razorpaysdk "github.com/razorpay/razorpay-go"

	"github.com/anupamtiwari/homecraft-backend/pkg/config"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/logger"
)

var (
	errKeyRequired    = errors.New("razorpay key id and secret are required")
	errLoggerRequired = errors.New("razorpay logger is required")
)

// Order is the gateway order descriptor returned to clients so they can
// open the payment sheet.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Client wraps the Razorpay SDK with centralized credentials, logging, and
// error mapping. Amounts cross this boundary in paise only.
type Client struct {
	sdk       *razorpaysdk.Client
	keyID     string
	keySecret string
	currency  string
	logger    *logger.Logger
}

// NewClient initializes the Razorpay wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.RazorpayConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	keyID := strings.TrimSpace(cfg.KeyID)
	keySecret := strings.TrimSpace(cfg.KeySecret)
	if keyID == "" || keySecret == "" {
		return nil, errKeyRequired
	}

	currency := strings.ToUpper(strings.TrimSpace(cfg.Currency))
	if currency == "" {
		currency = "INR"
	}

	c := &Client{
		sdk:       razorpaysdk.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
		currency:  currency,
		logger:    logg,
	}

	logg.Info(ctx, "razorpay client initialized")
	return c, nil
}

// KeyID returns the publishable key clients embed in the payment widget.
func (c *Client) KeyID() string {
	if c == nil {
		return ""
	}
	return c.keyID
}

// Currency reports the configured settlement currency.
func (c *Client) Currency() string {
	if c == nil {
		return ""
	}
	return c.currency
}

// CreateOrder registers a gateway order for the given amount in paise.
func (c *Client) CreateOrder(ctx context.Context, amountPaise int64, receipt string) (*Order, error) {
	if c == nil || c.sdk == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "razorpay client not initialized")
	}
	if amountPaise <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order amount must be a positive paise value")
	}

	payload := map[string]interface{}{
		"amount":   amountPaise,
		"currency": c.currency,
		"receipt":  receipt,
	}

	raw, err := c.sdk.Order.Create(payload, nil)
	if err != nil {
		c.logger.Error(ctx, "razorpay order create failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment gateway rejected the order")
	}

	order := orderFromResponse(raw)
	if order.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payment gateway returned an invalid order")
	}
	if order.Receipt == "" {
		order.Receipt = receipt
	}

	c.logger.Info(c.logger.WithField(ctx, "gateway_order_id", order.ID), "razorpay order created")
	return order, nil
}

// VerifySignature checks the HMAC-SHA256 payment signature issued by the
// gateway for order_id|payment_id.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	if c == nil || c.keySecret == "" {
		return false
	}
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.TrimSpace(signature))) == 1
}

func orderFromResponse(raw map[string]interface{}) *Order {
	order := &Order{}
	if raw == nil {
		return order
	}
	if v, ok := raw["id"].(string); ok {
		order.ID = v
	}
	order.Amount = amountFromResponse(raw["amount"])
	if v, ok := raw["currency"].(string); ok {
		order.Currency = v
	}
	if v, ok := raw["receipt"].(string); ok {
		order.Receipt = v
	}
	if v, ok := raw["status"].(string); ok {
		order.Status = v
	}
	return order
}

// The SDK decodes JSON numbers as float64; paise amounts stay integral well
// below the float64 precision limit.
func amountFromResponse(v interface{}) int64 {
	switch amount := v.(type) {
	case float64:
		return int64(amount)
	case int64:
		return amount
	case int:
		return int64(amount)
	default:
		return 0
	}
}
