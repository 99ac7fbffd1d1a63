package entity

// TestGatewayID identifies the sandbox gateway; it is offered only to
// shop administrators, never to regular customers.
const TestGatewayID = "3005"

// UniversalGatewayID identifies the gateway-side method selection page;
// submitting to it lets the customer pick a payment method there.
const UniversalGatewayID = "3999"

// gatewayCatalog maps numeric gateway IDs to the payment methods the
// gateway operator offers. Static reference data; which subset is
// enabled for a given merchant is fetched from the server and owned by
// the caller.
var gatewayCatalog = map[string]string{
	"3":    "CardPay",
	"1001": "TatraPay",
	"1002": "SporoPay",
	"1003": "VUBePlatby",
	"1004": "SberbankWEBpay",
	"1005": "CSOBPayBtn",
	"1006": "UniPlatba",
	"1007": "PlatbaOnlinePostovaBanka",
	"1008": "OTP Banka",
	"1010": "Z pay",
	"2001": "CSOBBankTransfer",
	"2002": "PrimaBankTransfer",
	"2003": "SLSPBankTransfer",
	"2004": "TatraBankTransfer",
	"2005": "UniCreditBankTransfer",
	"2006": "VUBBankTransfer",
	"2007": "OTPBankTransfer",
	"2008": "PostovaBankTransfer",
	"2009": "SberBankTransfer",
	"3005": "Testovacia brána",
	"3006": "PayPal",
	"3008": "Viamo",
	"3998": "Offline gate",
	"3999": "Universal gate",
}

// GatewayName returns the human-readable name of a gateway ID, or the
// empty string for an unknown ID.
func GatewayName(id string) string {
	return gatewayCatalog[id]
}

// KnownGateway reports whether the ID appears in the catalog. IDs
// returned by the server but absent from the catalog are skipped when
// rendering payment method choices.
func KnownGateway(id string) bool {
	_, ok := gatewayCatalog[id]
	return ok
}
