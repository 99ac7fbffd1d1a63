package entity

import "net/url"

// ResultRedirect carries the query parameters of the browser-driven
// result redirect. This path is not authenticated: it exists only to
// show outcome UI to the customer and is deliberately a distinct type
// from Notification so it can never be wired into order-state logic.
type ResultRedirect struct {
	MsTxnID  string
	Amount   string
	CurrCode string
	Result   string
}

// QueryValues renders the redirect parameters for the shop's result
// page URL.
func (r ResultRedirect) QueryValues() url.Values {
	return url.Values{
		"order_id": {r.MsTxnID},
		"price":    {r.Amount},
		"currency": {r.CurrCode},
		"result":   {r.Result},
	}
}
