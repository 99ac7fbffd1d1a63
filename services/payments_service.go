package services

import (
	"context"

	"pay24/entity"
)

// CheckoutPage is what the HTTP layer needs to render the auto-submit
// payment form for an order.
type CheckoutPage struct {
	Request   *entity.PaymentRequest
	ActionURL string
	Gateways  []string
}

// Payments orchestrates the checkout flow: building signed requests for
// pending orders, applying validated gateway notifications to orders
// and refreshing the merchant's enabled gateway list.
type Payments interface {
	BeginCheckout(ctx context.Context, orderID int) (*CheckoutPage, error)
	Notify(ctx context.Context, rawXML string) (bool, error)
	RefreshAvailableGateways(ctx context.Context, token *entity.ValidationToken) ([]string, error)
}
