package internal

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pay24/config"
	"pay24/entity"
	"pay24/services"
)

type stubPayments struct {
	notifyOK  bool
	notifyRaw string
	page      *services.CheckoutPage
	pageErr   error
}

func (s *stubPayments) BeginCheckout(_ context.Context, _ int) (*services.CheckoutPage, error) {
	return s.page, s.pageErr
}

func (s *stubPayments) Notify(_ context.Context, rawXML string) (bool, error) {
	s.notifyRaw = rawXML
	return s.notifyOK, nil
}

func (s *stubPayments) RefreshAvailableGateways(_ context.Context, _ *entity.ValidationToken) ([]string, error) {
	return []string{"3"}, nil
}

func testServer(t *testing.T, payments services.Payments) *httptest.Server {
	t.Helper()
	conf := &config.Config{}
	conf.Shop.ResultPageURL = "https://shop.example/payment-result"

	server := &Server{conf: conf}
	server.SetPaymentsService(payments)
	server.SetLogger(nopLogger{})

	router := httprouter.New()
	server.Register(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestNotificationRouteAcknowledged(t *testing.T) {
	payments := &stubPayments{notifyOK: true}
	srv := testServer(t, payments)

	resp, err := http.Get(srv.URL + "/notification?params=" + "%3CTrxNotification%3E%3C%2FTrxNotification%3E")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
	assert.Equal(t, "<TrxNotification></TrxNotification>", payments.notifyRaw)
}

func TestNotificationRouteRejected(t *testing.T) {
	srv := testServer(t, &stubPayments{notifyOK: false})

	resp, err := http.Get(srv.URL + "/notification?params=bogus")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, string(body))
}

func TestNotificationRouteWithoutParams(t *testing.T) {
	payments := &stubPayments{notifyOK: true}
	srv := testServer(t, payments)

	resp, err := http.Get(srv.URL + "/notification")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, string(body))
	assert.Empty(t, payments.notifyRaw)
}

func TestTransactionResultRedirect(t *testing.T) {
	srv := testServer(t, &stubPayments{})

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(srv.URL + "/transaction-result?MsTxnId=14300542&Amount=20.00&CurrCode=EUR&Result=OK")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	location := resp.Header.Get("Location")
	assert.True(t, strings.HasPrefix(location, "https://shop.example/payment-result?"))
	assert.Contains(t, location, "order_id=14300542")
	assert.Contains(t, location, "price=20.00")
	assert.Contains(t, location, "currency=EUR")
	assert.Contains(t, location, "result=OK")
}

func TestCheckoutRouteRendersForm(t *testing.T) {
	request := entity.NewPaymentRequest([]entity.FormField{
		{Name: entity.FieldAmount, Value: "20.00"},
		{Name: entity.FieldChecksum, Value: "ABCD"},
	})
	srv := testServer(t, &stubPayments{page: &services.CheckoutPage{
		Request:   request,
		ActionURL: "https://admin.24-pay.eu/pay_gate/paygt",
		Gateways:  []string{"3999"},
	}})

	resp, err := http.Get(srv.URL + "/checkout/42")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `action="https://admin.24-pay.eu/pay_gate/paygt"`)
	assert.Contains(t, string(body), `name="Amount" value="20.00"`)
	assert.Contains(t, string(body), "submit()")
}

func TestCheckoutRouteWithoutUniversalGateway(t *testing.T) {
	request := entity.NewPaymentRequest([]entity.FormField{
		{Name: entity.FieldAmount, Value: "20.00"},
	})
	srv := testServer(t, &stubPayments{page: &services.CheckoutPage{
		Request:   request,
		ActionURL: "https://admin.24-pay.eu/pay_gate/paygt",
		Gateways:  []string{"3", "1001"},
	}})

	resp, err := http.Get(srv.URL + "/checkout/42")
	require.NoError(t, err)
	defer resp.Body.Close()

	// the universal gate is not enabled for this merchant, so no form
	// and no auto-submit may be offered
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(body), "<form")
	assert.NotContains(t, string(body), "submit()")
}

func TestCheckoutRouteInvalidOrderID(t *testing.T) {
	srv := testServer(t, &stubPayments{})

	resp, err := http.Get(srv.URL + "/checkout/nonsense")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGatewaysRefreshRoute(t *testing.T) {
	srv := testServer(t, &stubPayments{})

	resp, err := http.Post(srv.URL+"/gateways/refresh", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `["3"]`, string(body))
}
