package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"medieaze-storefront/internal/checkout"
	"medieaze-storefront/internal/client"
	"medieaze-storefront/internal/dto"
	"medieaze-storefront/internal/events"
	"medieaze-storefront/internal/handler"
	"medieaze-storefront/internal/model"
	"medieaze-storefront/internal/service"
	"medieaze-storefront/internal/storage"
	"medieaze-storefront/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubGateway struct {
	order     *client.GatewayOrder
	createErr error
	verifyErr error
}

func (s *stubGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*client.GatewayOrder, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &client.GatewayOrder{ID: "order_GW1", Amount: amountMinor, Currency: currency, Status: "created"}, nil
}

func (s *stubGateway) VerifyPaymentSignature(gatewayOrderID, paymentID, signature string) error {
	return s.verifyErr
}

type checkoutFixture struct {
	cart    *store.CartStore
	handler *handler.CheckoutHandler
	gateway *stubGateway
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.StorageRecord{}))

	ctx := context.Background()
	local := storage.NewLocalStore(db, events.NewBus())
	cart := store.NewCartStore(ctx, local)
	auth := store.NewAuthStore(ctx, local)
	processor := checkout.NewProcessor(cart, auth, local)
	gateway := &stubGateway{}

	svc := service.NewCheckoutService(cart, processor, gateway, "INR", "rzp_test_key")
	return &checkoutFixture{
		cart:    cart,
		handler: handler.NewCheckoutHandler(svc),
		gateway: gateway,
	}
}

func (f *checkoutFixture) fillCart(t *testing.T) {
	t.Helper()
	_, err := f.cart.AddItem(context.Background(), model.CartItem{
		ProductID: "oxygen_conc_5l", Name: "Oxygen Concentrator 5L",
		Price: 4500, Quantity: 1, PurchaseType: model.PurchaseTypeRent,
	})
	require.NoError(t, err)
}

func TestCheckoutInitiate(t *testing.T) {
	e := echo.New()

	t.Run("empty cart rejected", func(t *testing.T) {
		f := newCheckoutFixture(t)
		r := jsonRequest(http.MethodPost, "/api/checkout/initiate", `{}`)
		w := httptest.NewRecorder()
		err := f.handler.Initiate(e.NewContext(r, w))

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("creates gateway order in minor units", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.fillCart(t)

		r := jsonRequest(http.MethodPost, "/api/checkout/initiate", `{"flowId":"flow-1"}`)
		w := httptest.NewRecorder()
		require.NoError(t, f.handler.Initiate(e.NewContext(r, w)))
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.InitiateCheckoutResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Equal(t, "flow-1", resp.FlowID)
		require.Equal(t, "order_GW1", resp.GatewayOrderID)
		require.Equal(t, int64(450000), resp.Amount)
		require.Equal(t, "rzp_test_key", resp.KeyID)
	})
}

func TestCheckoutConfirm(t *testing.T) {
	e := echo.New()
	addr := `{"fullName":"Asha","mobileNumber":"9876543210","pincode":"411001","addressLine1":"12 MG Road","city":"Pune","state":"MH","type":"home"}`

	t.Run("missing address rejected", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.fillCart(t)

		r := jsonRequest(http.MethodPost, "/api/checkout/confirm",
			`{"flowId":"flow-1","gatewayOrderId":"order_GW1","paymentId":"pay_1","signature":"sig"}`)
		w := httptest.NewRecorder()
		err := f.handler.Confirm(e.NewContext(r, w))

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("bad signature fails", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.fillCart(t)
		f.gateway.verifyErr = errors.New("payment signature mismatch")

		r := jsonRequest(http.MethodPost, "/api/checkout/confirm",
			`{"flowId":"flow-1","gatewayOrderId":"order_GW1","paymentId":"pay_1","signature":"bad","shippingAddress":`+addr+`}`)
		w := httptest.NewRecorder()
		err := f.handler.Confirm(e.NewContext(r, w))
		require.Error(t, err)
		require.NotEmpty(t, f.cart.State().Items, "cart must survive a failed payment")
	})

	t.Run("verified payment creates the order", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.fillCart(t)

		r := jsonRequest(http.MethodPost, "/api/checkout/confirm",
			`{"flowId":"flow-1","gatewayOrderId":"order_GW1","paymentId":"pay_OK","signature":"sig","shippingAddress":`+addr+`}`)
		w := httptest.NewRecorder()
		require.NoError(t, f.handler.Confirm(e.NewContext(r, w)))
		require.Equal(t, http.StatusOK, w.Code)

		var order model.OrderHistoryItem
		require.NoError(t, json.NewDecoder(w.Body).Decode(&order))
		require.Equal(t, "pay_OK", order.ID)
		require.Equal(t, "razorpay", order.Method)
		require.Empty(t, f.cart.State().Items)
	})
}

func TestCheckoutCashOnDelivery(t *testing.T) {
	e := echo.New()
	f := newCheckoutFixture(t)
	f.fillCart(t)

	body := `{"flowId":"flow-cod","shippingAddress":{"fullName":"Asha","addressLine1":"12 MG Road","city":"Pune","state":"MH","pincode":"411001","type":"home"}}`
	r := jsonRequest(http.MethodPost, "/api/checkout/cod", body)
	w := httptest.NewRecorder()
	require.NoError(t, f.handler.CashOnDelivery(e.NewContext(r, w)))
	require.Equal(t, http.StatusOK, w.Code)

	var order model.OrderHistoryItem
	require.NoError(t, json.NewDecoder(w.Body).Decode(&order))
	require.Equal(t, "cod", order.Method)
	require.Equal(t, 4500.0, order.Total)
}
