package checkout_test

import (
	"context"
	"path/filepath"
	"testing"

	"medieaze-storefront/internal/checkout"
	"medieaze-storefront/internal/events"
	"medieaze-storefront/internal/model"
	"medieaze-storefront/internal/storage"
	"medieaze-storefront/internal/store"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	local     storage.LocalStore
	cart      *store.CartStore
	auth      *store.AuthStore
	processor *checkout.Processor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.StorageRecord{}))

	ctx := context.Background()
	local := storage.NewLocalStore(db, events.NewBus())
	cart := store.NewCartStore(ctx, local)
	auth := store.NewAuthStore(ctx, local)

	return &fixture{
		local:     local,
		cart:      cart,
		auth:      auth,
		processor: checkout.NewProcessor(cart, auth, local),
	}
}

func (f *fixture) fillCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.cart.AddItem(ctx, model.CartItem{
		ProductID: "nebulizer", Name: "Compressor Nebulizer",
		Price: 100, Quantity: 2, PurchaseType: model.PurchaseTypeRent,
	})
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, model.CartItem{
		ProductID: "bp_monitor", Name: "Digital BP Monitor",
		Price: 200, Quantity: 1, PurchaseType: model.PurchaseTypeBuy,
	})
	require.NoError(t, err)
}

func TestGuestCashOnDeliveryEndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fillCart(t)

	order, err := f.processor.Process(ctx, checkout.Request{
		FlowID: "flow-1",
		Method: "cod",
	})
	require.NoError(t, err)

	require.Equal(t, 400.0, order.Total)
	require.Equal(t, "confirmed", order.Status)
	require.Equal(t, "cod", order.Method)
	require.Len(t, order.Items, 2)
	require.NotEmpty(t, order.ID)

	// cart is cleared and its record deleted
	require.Empty(t, f.cart.State().Items)
	var persisted model.CartState
	found, err := f.local.Get(ctx, storage.KeyCart, &persisted)
	require.NoError(t, err)
	require.False(t, found)

	// exactly one guest order landed
	var guestOrders []model.OrderHistoryItem
	found, err = f.local.Get(ctx, storage.KeyGuestOrders, &guestOrders)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, guestOrders, 1)
	require.Equal(t, order.ID, guestOrders[0].ID)
}

func TestProcessIsIdempotentPerFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fillCart(t)

	first, err := f.processor.Process(ctx, checkout.Request{FlowID: "flow-1", Method: "cod"})
	require.NoError(t, err)

	// re-running the flow must not create a second order even though the
	// cart is now empty
	second, err := f.processor.Process(ctx, checkout.Request{FlowID: "flow-1", Method: "cod"})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, checkout.FlowCompleted, f.processor.FlowStateOf("flow-1"))

	var guestOrders []model.OrderHistoryItem
	_, err = f.local.Get(ctx, storage.KeyGuestOrders, &guestOrders)
	require.NoError(t, err)
	require.Len(t, guestOrders, 1)
}

func TestProcessEmptyCartAborts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.processor.Process(ctx, checkout.Request{FlowID: "flow-1", Method: "cod"})
	require.ErrorIs(t, err, checkout.ErrEmptyCart)

	// failed flow stays retryable
	require.Equal(t, checkout.FlowPending, f.processor.FlowStateOf("flow-1"))

	var guestOrders []model.OrderHistoryItem
	found, err := f.local.Get(ctx, storage.KeyGuestOrders, &guestOrders)
	require.NoError(t, err)
	require.False(t, found)
}

func TestLoggedInOrderGoesToHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.auth.Register(ctx, store.RegisterData{
		Name: "Asha", Email: "asha@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.True(t, created)

	f.fillCart(t)

	addr := &model.SavedAddress{FullName: "Asha", City: "Pune", State: "MH", Pincode: "411001"}
	order, err := f.processor.Process(ctx, checkout.Request{
		FlowID:          "flow-user",
		Method:          "razorpay",
		PaymentID:       "pay_ABC123",
		ShippingAddress: addr,
	})
	require.NoError(t, err)
	require.Equal(t, "pay_ABC123", order.ID, "gateway payment id becomes the order id")
	require.NotNil(t, order.ShippingAddress)

	user := f.auth.CurrentUser()
	require.Len(t, user.OrderHistory, 1)
	require.Equal(t, "pay_ABC123", user.OrderHistory[0].ID)

	var guestOrders []model.OrderHistoryItem
	found, err := f.local.Get(ctx, storage.KeyGuestOrders, &guestOrders)
	require.NoError(t, err)
	require.False(t, found, "logged-in orders must not touch the guest list")
}

func TestSavingsComputedFromOriginalPrice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.cart.AddItem(ctx, model.CartItem{
		ProductID: "cpap_auto", Name: "Auto CPAP Machine",
		Price: 5499, OriginalPrice: 5999, Quantity: 2,
		PurchaseType: model.PurchaseTypeRent,
	})
	require.NoError(t, err)

	order, err := f.processor.Process(ctx, checkout.Request{FlowID: "f", Method: "cod"})
	require.NoError(t, err)
	require.Equal(t, 10998.0, order.Total)
	require.Equal(t, 1000.0, order.Savings)
}
