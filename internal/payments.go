package internal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"pay24/config"
	"pay24/entity"
	"pay24/services"
)

// Payments orchestrates the checkout flow around the protocol layer:
// it builds signed requests for pending orders, applies validated
// gateway notifications to the order store and maintains the merchant's
// enabled gateway list. Fine-grained per-order locking lets different
// orders proceed concurrently while serializing work on the same order.
type Payments struct {
	conf     *config.Config
	creds    entity.Credentials
	gateway  *GatewayClient
	builder  *RequestBuilder
	parser   *NotificationParser
	urls     entity.CallbackURLs
	database services.Database
	logger   services.LogHandler
	locks    sync.Map // map[int]*sync.Mutex for per-order locking
}

func NewPayments(conf *config.Config, creds entity.Credentials, gateway *GatewayClient) *Payments {
	return &Payments{
		conf:    conf,
		creds:   creds,
		gateway: gateway,
		builder: NewRequestBuilder(creds),
		parser:  NewNotificationParser(creds),
		urls: entity.CallbackURLs{
			NotifyURL: conf.Shop.BaseURL + "/notification",
			ResultURL: conf.Shop.BaseURL + "/transaction-result",
		},
	}
}

func (p *Payments) SetDatabase(database services.Database) {
	p.database = database
}

func (p *Payments) SetLogger(logger services.LogHandler) {
	p.logger = logger
}

func (p *Payments) lockOrder(id int) *sync.Mutex {
	value, _ := p.locks.LoadOrStore(id, &sync.Mutex{})
	mutex := value.(*sync.Mutex)
	mutex.Lock()
	return mutex
}

// unlockOrder releases and discards the per-order mutex. Deleting the
// map entry keeps the map from growing without bound, at the cost of a
// small window where a goroutine still queued on the discarded mutex
// overlaps with one that created a fresh entry. Both re-check
// NeedsPayment against the store before mutating, so an overlapping
// duplicate notification settles the order once and no-ops after.
func (p *Payments) unlockOrder(id int, mutex *sync.Mutex) {
	mutex.Unlock()
	p.locks.Delete(id)
}

// BeginCheckout loads a pending order and builds the signed payment
// form for it.
func (p *Payments) BeginCheckout(ctx context.Context, orderID int) (*services.CheckoutPage, error) {
	mutex := p.lockOrder(orderID)
	defer p.unlockOrder(orderID, mutex)

	order, err := p.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.NeedsPayment() {
		return nil, fmt.Errorf("order %v does not need payment", orderID)
	}

	request, err := p.builder.Build(order, p.urls)
	if err != nil {
		p.logger.Error(fmt.Sprintf("build request for order %v", orderID), err)
		return nil, err
	}

	var gateways []string
	if p.database != nil {
		gateways, err = p.database.GetAvailableGateways(ctx)
		if err != nil {
			p.logger.Error("load available gateways", err)
			gateways = nil
		}
	}

	return &services.CheckoutPage{
		Request:   request,
		ActionURL: p.gateway.RequestURL(""),
		Gateways:  knownGateways(gateways),
	}, nil
}

// Notify processes an inbound XML notification from the gateway. The
// returned bool tells the HTTP layer whether to acknowledge with the
// literal "OK" body; only an authentic notification is acknowledged.
// An invalid one never touches order state.
func (p *Payments) Notify(ctx context.Context, rawXML string) (bool, error) {
	notification := p.parser.Parse(rawXML)

	p.auditNotification(ctx, notification)

	if !notification.Valid() {
		p.logger.Warn("rejected notification with invalid signature")
		return false, nil
	}

	orderID, err := strconv.Atoi(notification.OrderID())
	if err != nil {
		p.logger.Warn(fmt.Sprintf("notification %s carries no usable order id", secret(notification.MsTxnID())))
		return true, nil
	}

	mutex := p.lockOrder(orderID)
	defer p.unlockOrder(orderID, mutex)

	order, err := p.getOrder(ctx, orderID)
	if err != nil {
		p.logger.Error(fmt.Sprintf("notification for unknown order %v", orderID), err)
		return true, nil
	}
	if !order.NeedsPayment() {
		// repeated notification for a settled order
		return true, nil
	}

	if !p.transactionAsExpected(order, notification) {
		p.logger.Warn(fmt.Sprintf("notification %s does not match order %v (%s %s)",
			secret(notification.MsTxnID()), orderID, notification.Amount(), notification.CurrAlphaCode()))
		return true, nil
	}

	switch notification.Result() {
	case entity.ResultPending:
		order.Status = entity.OrderPending
	case entity.ResultOk:
		order.Status = entity.OrderPaid
		order.StockReduced = true
		order.TimePaid = time.Now()
		order.PaymentError = ""
	case entity.ResultFail:
		order.Status = entity.OrderFailed
		order.PaymentError = string(notification.Result())
	default:
		p.logger.Warn(fmt.Sprintf("unknown result code %q for order %v", notification.Result(), orderID))
		return true, nil
	}

	if err := p.database.UpdateOrder(ctx, order); err != nil {
		// withhold the "OK" ack so the gateway retries; the order is
		// still unsettled and reprocesses cleanly
		p.logger.Error(fmt.Sprintf("update order %v", orderID), err)
		return false, err
	}

	p.logger.Info(fmt.Sprintf("order %v: %s", orderID, order.Status))
	return true, nil
}

// RefreshAvailableGateways validates the configured credentials against
// the gateway server and stores the enabled gateway list. The token
// guards against running the remote validation twice within one request
// lifecycle. When the server's answer is unusable, an empty list is
// stored so the payment method goes dark instead of offering gateways
// it cannot honor.
func (p *Payments) RefreshAvailableGateways(ctx context.Context, token *entity.ValidationToken) ([]string, error) {
	return token.Do(func() ([]string, error) {
		ok, err := p.gateway.CheckSignature(ctx)
		if err != nil {
			p.logger.Error("signature check", err)
			return nil, err
		}
		if !ok {
			p.storeGateways(ctx, []string{})
			return nil, fmt.Errorf("gateway refused generated SIGN for mid %s", secret(p.creds.Mid()))
		}

		ids, err := p.gateway.ListAvailableGateways(ctx)
		if err != nil {
			p.storeGateways(ctx, []string{})
			if errors.Is(err, entity.ErrProtocol) {
				p.logger.Error("gateway discovery", err)
			}
			return nil, err
		}

		p.storeGateways(ctx, ids)
		p.logger.Info(fmt.Sprintf("available gateways: %v", ids))
		return ids, nil
	})
}

func (p *Payments) getOrder(ctx context.Context, orderID int) (*entity.Order, error) {
	if p.database == nil {
		return nil, fmt.Errorf("database not set")
	}
	order, err := p.database.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order %v: %w", orderID, err)
	}
	return order, nil
}

func (p *Payments) storeGateways(ctx context.Context, ids []string) {
	if p.database == nil {
		return
	}
	if err := p.database.SaveAvailableGateways(ctx, ids); err != nil {
		p.logger.Error("save available gateways", err)
	}
}

func (p *Payments) auditNotification(ctx context.Context, n *entity.Notification) {
	if p.database == nil {
		return
	}
	record := &entity.NotificationRecord{
		MsTxnID:      n.MsTxnID(),
		Amount:       n.Amount(),
		Currency:     n.CurrAlphaCode(),
		Result:       string(n.Result()),
		Valid:        n.Valid(),
		TimeReceived: time.Now(),
	}
	if err := p.database.SaveNotification(ctx, record); err != nil {
		p.logger.Error("save notification record", err)
	}
}

// transactionAsExpected cross-checks the notification against the local
// order record: amount and currency must match what the request builder
// sent, with tax counted once under the same price display mode.
func (p *Payments) transactionAsExpected(order *entity.Order, n *entity.Notification) bool {
	expected := order.Total
	if !order.PricesIncludeTax {
		expected += order.Tax
	}
	return n.Amount() == strconv.FormatFloat(expected, 'f', 2, 64) &&
		n.CurrAlphaCode() == order.Currency
}

// knownGateways drops IDs absent from the catalog so the checkout page
// never offers a method it cannot name.
func knownGateways(ids []string) []string {
	filtered := make([]string, 0, len(ids))
	for _, id := range ids {
		if entity.KnownGateway(id) {
			filtered = append(filtered, id)
		}
	}
	return filtered
}

func secret(some string) string {
	if len(some) > 5 {
		return fmt.Sprintf("%s***", some[0:5])
	}
	if some == "" {
		return "?"
	}
	return "***"
}
