package entity

import "time"

// OrderStatus is the payment lifecycle state of a shop order.
type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderPaid    OrderStatus = "paid"
	OrderFailed  OrderStatus = "failed"
)

// Billing holds the customer contact and address fields forwarded to
// the gateway with a payment request.
type Billing struct {
	FirstName string `json:"first_name" bson:"first_name"`
	LastName  string `json:"last_name" bson:"last_name"`
	Email     string `json:"email" bson:"email"`
	Phone     string `json:"phone" bson:"phone"`
	Street    string `json:"street" bson:"street"`
	Street2   string `json:"street2,omitempty" bson:"street2,omitempty"`
	Zip       string `json:"zip" bson:"zip"`
	City      string `json:"city" bson:"city"`
	// Country is the ISO 3166-1 alpha-2 code used by the shop; the
	// request builder transcodes it to the alpha-3 form the gateway
	// requires.
	Country string `json:"country" bson:"country"`
}

// Order is the shop order record as persisted by the order store. The
// protocol layer consumes only its identifier, amounts, currency,
// locale and billing fields; order state transitions stay with the
// payments service.
type Order struct {
	ID               int         `json:"order_id" bson:"order_id"`
	Total            float64     `json:"total" bson:"total"`
	Tax              float64     `json:"tax" bson:"tax"`
	PricesIncludeTax bool        `json:"prices_include_tax" bson:"prices_include_tax"`
	Currency         string      `json:"currency" bson:"currency"`
	Locale           string      `json:"locale" bson:"locale"`
	Status           OrderStatus `json:"status" bson:"status"`
	StockReduced     bool        `json:"stock_reduced" bson:"stock_reduced"`
	PaymentError     string      `json:"payment_error,omitempty" bson:"payment_error,omitempty"`
	Billing          Billing     `json:"billing" bson:"billing"`
	TimeCreated      time.Time   `json:"time_created" bson:"time_created"`
	TimePaid         time.Time   `json:"time_paid,omitempty" bson:"time_paid,omitempty"`
}

// NeedsPayment reports whether the order still awaits a successful
// payment. A repeated notification for an already paid order is a
// no-op for the caller.
func (o *Order) NeedsPayment() bool {
	return o.Status == OrderPending || o.Status == OrderFailed
}

// CallbackURLs carries the merchant-side endpoints the gateway calls
// back: NotifyURL receives the authenticated XML notification, ResultURL
// receives the unauthenticated browser redirect.
type CallbackURLs struct {
	NotifyURL string
	ResultURL string
}
