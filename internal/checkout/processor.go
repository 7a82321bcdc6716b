package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"medieaze-storefront/internal/model"
	"medieaze-storefront/internal/storage"
	"medieaze-storefront/internal/store"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrFlowInProgress = errors.New("checkout flow already processing")
)

// FlowState tracks one checkout flow through its single allowed transition
// chain: pending -> processing -> completed.
type FlowState int

const (
	FlowPending FlowState = iota
	FlowProcessing
	FlowCompleted
)

// Request describes one checkout outcome ready to be turned into an order.
type Request struct {
	// FlowID identifies the checkout flow; processing the same flow twice
	// returns the already-created order instead of creating another.
	FlowID string
	// Method is the payment method label stored on the order, e.g.
	// "razorpay" or "cod".
	Method string
	// PaymentID is the gateway payment id; empty for cash on delivery.
	PaymentID string
	// ShippingAddress is snapshotted onto the order when present.
	ShippingAddress *model.SavedAddress
	// ClaimedTotal is the caller's idea of the total. It is cross-checked
	// against the recomputed total and never trusted on its own.
	ClaimedTotal float64
}

// Processor turns a known payment outcome plus the current cart into exactly
// one immutable order, then clears the cart. Orders land in the session
// user's history, or in the guest order list when nobody is logged in.
type Processor struct {
	mu    sync.Mutex
	cart  *store.CartStore
	auth  *store.AuthStore
	local storage.LocalStore
	flows map[string]*flow
}

type flow struct {
	state FlowState
	order *model.OrderHistoryItem
}

func NewProcessor(cart *store.CartStore, auth *store.AuthStore, local storage.LocalStore) *Processor {
	return &Processor{
		cart:  cart,
		auth:  auth,
		local: local,
		flows: make(map[string]*flow),
	}
}

// FlowStateOf reports where a flow currently stands; unknown flows are pending.
func (p *Processor) FlowStateOf(flowID string) FlowState {
	p.mu.Lock()
	defer p.mu.Unlock()
	if f, ok := p.flows[flowID]; ok {
		return f.state
	}
	return FlowPending
}

// Process runs the one-shot order creation for a flow. Re-invoking a
// completed flow returns its order again without side effects; a failed run
// drops the flow back to pending so it can be retried.
func (p *Processor) Process(ctx context.Context, req Request) (*model.OrderHistoryItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, ok := p.flows[req.FlowID]
	if !ok {
		f = &flow{}
		p.flows[req.FlowID] = f
	}

	switch f.state {
	case FlowCompleted:
		return f.order, nil
	case FlowProcessing:
		return nil, ErrFlowInProgress
	}
	f.state = FlowProcessing

	order, err := p.createOrder(ctx, req)
	if err != nil {
		f.state = FlowPending
		return nil, err
	}

	f.state = FlowCompleted
	f.order = order
	return order, nil
}

func (p *Processor) createOrder(ctx context.Context, req Request) (*model.OrderHistoryItem, error) {
	cart := p.cart.State()
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]model.OrderLine, len(cart.Items))
	total := decimal.Zero
	savings := decimal.Zero
	for i, item := range cart.Items {
		lines[i] = snapshotLine(item)

		qty := decimal.NewFromInt(int64(lines[i].Quantity))
		price := decimal.NewFromFloat(lines[i].Price)
		total = total.Add(price.Mul(qty))

		if item.OriginalPrice > item.Price {
			diff := decimal.NewFromFloat(item.OriginalPrice).Sub(price)
			savings = savings.Add(diff.Mul(qty))
		}
	}

	if req.ClaimedTotal > 0 {
		claimed := decimal.NewFromFloat(req.ClaimedTotal)
		if !claimed.Sub(total).Abs().LessThanOrEqual(decimal.NewFromFloat(0.01)) {
			log.Printf("checkout: claimed total %s != recomputed %s, using recomputed",
				claimed.String(), total.String())
		}
	}

	order := &model.OrderHistoryItem{
		ID:      orderID(req.PaymentID),
		Date:    time.Now().UTC(),
		Total:   total.InexactFloat64(),
		Method:  req.Method,
		Items:   lines,
		Savings: savings.InexactFloat64(),
		Status:  "confirmed",
	}
	if req.ShippingAddress != nil {
		addr := *req.ShippingAddress
		order.ShippingAddress = &addr
	}

	if p.auth.CurrentUser() != nil {
		if err := p.auth.AddOrder(ctx, *order); err != nil {
			return nil, fmt.Errorf("append order to history: %w", err)
		}
	} else {
		if err := p.appendGuestOrder(ctx, *order); err != nil {
			return nil, err
		}
	}

	if err := p.cart.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear cart after order: %w", err)
	}

	return order, nil
}

// appendGuestOrder prepends to the guest order list. The Set underneath
// publishes the storage change event same-process listeners rely on.
func (p *Processor) appendGuestOrder(ctx context.Context, order model.OrderHistoryItem) error {
	var orders []model.OrderHistoryItem
	if _, err := p.local.Get(ctx, storage.KeyGuestOrders, &orders); err != nil {
		return fmt.Errorf("read guest orders: %w", err)
	}

	orders = append([]model.OrderHistoryItem{order}, orders...)
	if err := p.local.Set(ctx, storage.KeyGuestOrders, orders); err != nil {
		return fmt.Errorf("persist guest orders: %w", err)
	}
	return nil
}

// snapshotLine copies a cart line into an order line, defaulting anything
// missing to a safe placeholder.
func snapshotLine(item model.CartItem) model.OrderLine {
	line := model.OrderLine{
		Name:         item.Name,
		Quantity:     item.Quantity,
		Price:        item.Price,
		Image:        item.Image,
		PurchaseType: item.PurchaseType,
	}
	if line.Name == "" {
		line.Name = "Unknown item"
	}
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	if line.PurchaseType == "" {
		line.PurchaseType = model.PurchaseTypeBuy
	}
	return line
}

// orderID prefers the gateway payment id and falls back to a timestamp-based
// synthetic id for offline methods.
func orderID(paymentID string) string {
	if paymentID != "" {
		return paymentID
	}
	return fmt.Sprintf("ORD-%d", time.Now().UnixMilli())
}
