package client_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medieaze-storefront/internal/client"
	"medieaze-storefront/internal/config"

	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "rzp_test_key", user)
		require.Equal(t, "secret", pass)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, float64(450000), payload["amount"])
		require.Equal(t, "INR", payload["currency"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "order_GW1", "amount": 450000, "currency": "INR", "status": "created",
		})
	}))
	defer srv.Close()

	c := client.NewRazorpayClient(&config.Razorpay{
		BaseApiURL: srv.URL,
		KeyID:      "rzp_test_key",
		KeySecret:  "secret",
	})

	order, err := c.CreateOrder(context.Background(), 450000, "INR", "flow-1")
	require.NoError(t, err)
	require.Equal(t, "order_GW1", order.ID)
	require.Equal(t, int64(450000), order.Amount)
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := client.NewRazorpayClient(&config.Razorpay{BaseApiURL: srv.URL})
	_, err := c.CreateOrder(context.Background(), 100, "INR", "r")
	require.ErrorContains(t, err, "razorpay error 401")
}

func TestVerifyPaymentSignature(t *testing.T) {
	c := client.NewRazorpayClient(&config.Razorpay{KeySecret: "secret"})

	h := hmac.New(sha256.New, []byte("secret"))
	h.Write([]byte("order_GW1|pay_1"))
	good := hex.EncodeToString(h.Sum(nil))

	require.NoError(t, c.VerifyPaymentSignature("order_GW1", "pay_1", good))
	require.Error(t, c.VerifyPaymentSignature("order_GW1", "pay_1", "deadbeef"))
	require.Error(t, c.VerifyPaymentSignature("order_GW2", "pay_1", good))
}
