package service

import (
	"context"
	"errors"
	"fmt"

	"medieaze-storefront/internal/checkout"
	"medieaze-storefront/internal/client"
	"medieaze-storefront/internal/dto"
	"medieaze-storefront/internal/model"
	"medieaze-storefront/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrMissingAddress = errors.New("shipping address is required")

// CheckoutService drives the two checkout paths: hosted gateway payment
// (initiate, then confirm with the gateway outcome) and cash on delivery.
type CheckoutService interface {
	Initiate(ctx context.Context, flowID string) (*dto.InitiateCheckoutResponse, error)
	Confirm(ctx context.Context, req *dto.ConfirmCheckoutRequest) (*model.OrderHistoryItem, error)
	CashOnDelivery(ctx context.Context, req *dto.CashOnDeliveryRequest) (*model.OrderHistoryItem, error)
}

type checkoutServiceImpl struct {
	cart      *store.CartStore
	processor *checkout.Processor
	razorpay  client.RazorpayClient
	currency  string
	keyID     string
}

func NewCheckoutService(
	cart *store.CartStore,
	processor *checkout.Processor,
	razorpay client.RazorpayClient,
	currency string,
	keyID string,
) CheckoutService {
	return &checkoutServiceImpl{
		cart:      cart,
		processor: processor,
		razorpay:  razorpay,
		currency:  currency,
		keyID:     keyID,
	}
}

func (s *checkoutServiceImpl) Initiate(ctx context.Context, flowID string) (*dto.InitiateCheckoutResponse, error) {
	cart := s.cart.State()
	if len(cart.Items) == 0 {
		return nil, checkout.ErrEmptyCart
	}

	if flowID == "" {
		flowID = uuid.NewString()
	}

	total := decimal.Zero
	for _, item := range cart.Items {
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	amountMinor := total.Mul(decimal.NewFromInt(100)).IntPart()

	order, err := s.razorpay.CreateOrder(ctx, amountMinor, s.currency, flowID)
	if err != nil {
		return nil, fmt.Errorf("gateway create order: %w", err)
	}

	return &dto.InitiateCheckoutResponse{
		FlowID:         flowID,
		GatewayOrderID: order.ID,
		Amount:         order.Amount,
		Currency:       order.Currency,
		KeyID:          s.keyID,
	}, nil
}

func (s *checkoutServiceImpl) Confirm(ctx context.Context, req *dto.ConfirmCheckoutRequest) (*model.OrderHistoryItem, error) {
	if req.ShippingAddress == nil {
		return nil, ErrMissingAddress
	}

	if err := s.razorpay.VerifyPaymentSignature(req.GatewayOrderID, req.PaymentID, req.Signature); err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}

	return s.processor.Process(ctx, checkout.Request{
		FlowID:          req.FlowID,
		Method:          "razorpay",
		PaymentID:       req.PaymentID,
		ShippingAddress: req.ShippingAddress,
		ClaimedTotal:    req.Total,
	})
}

func (s *checkoutServiceImpl) CashOnDelivery(ctx context.Context, req *dto.CashOnDeliveryRequest) (*model.OrderHistoryItem, error) {
	if req.ShippingAddress == nil {
		return nil, ErrMissingAddress
	}

	flowID := req.FlowID
	if flowID == "" {
		flowID = uuid.NewString()
	}

	return s.processor.Process(ctx, checkout.Request{
		FlowID:          flowID,
		Method:          "cod",
		ShippingAddress: req.ShippingAddress,
		ClaimedTotal:    req.Total,
	})
}
