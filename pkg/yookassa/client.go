// Package yookassa is a minimal client for the YooKassa payments API,
// limited to what SBP checkout needs: create a redirect payment and parse
// the webhook body.
package yookassa

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const apiURL = "https://api.yookassa.ru/v3/payments"

type Client struct {
	http    *resty.Client
	baseURL string
	shopID  string
	secret  string
}

func NewClient(shopID, secretKey string) *Client {
	return &Client{
		http:    resty.New().SetTimeout(15 * time.Second),
		baseURL: apiURL,
		shopID:  shopID,
		secret:  secretKey,
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// Configured reports whether gateway credentials are present.
func (c *Client) Configured() bool {
	return c.shopID != "" && c.secret != ""
}

type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type Confirmation struct {
	Type            string `json:"type"`
	ReturnURL       string `json:"return_url,omitempty"`
	ConfirmationURL string `json:"confirmation_url,omitempty"`
}

type Payment struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	Amount       Amount            `json:"amount"`
	Confirmation *Confirmation     `json:"confirmation,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type createRequest struct {
	Amount            Amount            `json:"amount"`
	PaymentMethodData map[string]string `json:"payment_method_data"`
	Confirmation      Confirmation      `json:"confirmation"`
	Capture           bool              `json:"capture"`
	Description       string            `json:"description"`
	Metadata          map[string]string `json:"metadata"`
}

// CreateSBPPayment creates a capture-on-success SBP payment with a redirect
// confirmation. idempotenceKey makes retries safe on the gateway side.
func (c *Client) CreateSBPPayment(ctx context.Context, amountRub int64, description, returnURL, orderID, idempotenceKey string) (*Payment, error) {
	req := createRequest{
		Amount:            Amount{Value: fmt.Sprintf("%d.00", amountRub), Currency: "RUB"},
		PaymentMethodData: map[string]string{"type": "sbp"},
		Confirmation:      Confirmation{Type: "redirect", ReturnURL: returnURL},
		Capture:           true,
		Description:       description,
		Metadata:          map[string]string{"orderId": orderID},
	}

	var payment Payment
	res, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.shopID, c.secret).
		SetHeader("Idempotence-Key", idempotenceKey).
		SetBody(req).
		SetResult(&payment).
		Post(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("yookassa create payment: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("yookassa create payment: status %d: %s", res.StatusCode(), res.String())
	}
	return &payment, nil
}

// WebhookEvent is the notification body YooKassa posts to the webhook.
type WebhookEvent struct {
	Event  string  `json:"event"`
	Object Payment `json:"object"`
}
