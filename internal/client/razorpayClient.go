package client

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"medieaze-storefront/internal/config"
)

// RazorpayClient is the contract with the hosted checkout collaborator: the
// storefront creates a gateway order up front and afterwards only consumes
// the pass/fail outcome by checking the returned payment signature.
type RazorpayClient interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error)
	VerifyPaymentSignature(gatewayOrderID, paymentID, signature string) error
}

type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type razorpayClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	keyID      string
	keySecret  string
}

func NewRazorpayClient(cfg *config.Razorpay) RazorpayClient {
	return &razorpayClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: cfg.BaseApiURL,
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
	}
}

func (c *razorpayClientImpl) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error) {
	payload := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/orders",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("razorpay error %d: %s", resp.StatusCode, string(b))
	}

	var result GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode razorpay response: %w", err)
	}

	return &result, nil
}

// VerifyPaymentSignature checks the HMAC the gateway hands back after a
// successful checkout: SHA256(orderID|paymentID) keyed with the secret.
func (c *razorpayClientImpl) VerifyPaymentSignature(gatewayOrderID, paymentID, signature string) error {
	h := hmac.New(sha256.New, []byte(c.keySecret))
	h.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("payment signature mismatch for order %s", gatewayOrderID)
	}
	return nil
}
