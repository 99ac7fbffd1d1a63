package internal

import (
	"encoding/json"
	"fmt"
	"html"
	"net"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"pay24/config"
	"pay24/entity"
	"pay24/services"
)

const (
	notificationRoute    = "/notification"
	resultRoute          = "/transaction-result"
	checkoutRoute        = "/checkout/:order_id"
	gatewaysRefreshRoute = "/gateways/refresh"
)

// Server exposes the merchant-side HTTP surface: the authenticated
// notification listener, the unauthenticated result redirect, the
// checkout form page and the admin trigger for gateway discovery.
type Server struct {
	conf       *config.Config
	httpServer *http.Server
	payments   services.Payments
	logger     services.LogHandler
}

func NewServer(conf *config.Config) *Server {

	server := Server{
		conf: conf,
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.GET(notificationRoute, s.notification)
	router.GET(resultRoute, s.transactionResult)
	router.GET(checkoutRoute, s.checkout)
	router.POST(gatewaysRefreshRoute, s.gatewaysRefresh)
}

func (s *Server) SetPaymentsService(payments services.Payments) {
	s.payments = payments
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	return err
}

// notification receives the authenticated server-to-server XML
// notification, delivered in the "params" query parameter. The literal
// body "OK" is echoed only when the notification was authentic and
// accepted; on anything else the gateway gets an empty 200 and may
// retry.
func (s *Server) notification(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	params := r.URL.Query().Get("params")
	if params == "" {
		s.logger.Warn(fmt.Sprintf("[%s] notification without params", reqID))
		w.WriteHeader(http.StatusOK)
		return
	}

	ok, err := s.payments.Notify(ctx, params)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] process notification", reqID), err)
	}
	if ok {
		_, _ = w.Write([]byte("OK"))
		return
	}
	w.WriteHeader(http.StatusOK)
}

// transactionResult handles the browser redirect after payment. This
// path is informational only: it forwards the outcome to the shop's
// result page and never touches order state.
func (s *Server) transactionResult(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	redirect := entity.ResultRedirect{
		MsTxnID:  query.Get("MsTxnId"),
		Amount:   query.Get("Amount"),
		CurrCode: query.Get("CurrCode"),
		Result:   query.Get("Result"),
	}

	target := s.conf.Shop.ResultPageURL + "?" + redirect.QueryValues().Encode()
	http.Redirect(w, r, target, http.StatusFound)
}

// checkout renders the auto-submit payment form for a pending order.
func (s *Server) checkout(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	orderID, err := strconv.Atoi(ps.ByName("order_id"))
	if err != nil {
		s.logger.Warn(fmt.Sprintf("[%s] invalid order id: %s", reqID, ps.ByName("order_id")))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	page, err := s.payments.BeginCheckout(ctx, orderID)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] begin checkout for order %v", reqID, orderID), err)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(renderCheckoutPage(page)))
}

// gatewaysRefresh triggers the remote settings validation. A fresh
// validation token scopes the one-shot guard to this request.
func (s *Server) gatewaysRefresh(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	ids, err := s.payments.RefreshAvailableGateways(ctx, entity.NewValidationToken())
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] refresh gateways", reqID), err)
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ids)
}

// renderCheckoutPage wraps the signed form fields in an auto-submitting
// form posting to the universal gateway endpoint. The form is rendered
// only when the universal gate is among the merchant's enabled
// gateways; otherwise the customer gets a message instead of a payment
// path the merchant cannot honor.
func renderCheckoutPage(page *services.CheckoutPage) string {
	const formID = "gateway24pay"
	if !hasUniversalGateway(page.Gateways) {
		return `<div id="` + formID + `"><p>No payment methods are available</p></div>`
	}
	return `<div id="` + formID + `">` +
		`<form action="` + html.EscapeString(page.ActionURL) + `" method="post" id="` + formID + `_form">` +
		"\n" + page.Request.FormHTML() +
		`<button type="submit">Pay</button>` +
		`</form>` +
		`<script>document.getElementById("` + formID + `_form").submit();</script>` +
		`</div>`
}

func hasUniversalGateway(ids []string) bool {
	for _, id := range ids {
		if id == entity.UniversalGatewayID {
			return true
		}
	}
	return false
}
