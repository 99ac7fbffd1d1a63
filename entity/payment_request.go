package entity

import (
	"html"
	"strings"
)

// Field names of the outbound payment request, in the order the gateway
// expects them. CHECKSUM is always last: it covers the finalized values
// of the fields before it.
const (
	FieldNURL          = "NURL"
	FieldRURL          = "RURL"
	FieldMsTxnID       = "MsTxnId"
	FieldCurrAlphaCode = "CurrAlphaCode"
	FieldAmount        = "Amount"
	FieldLangCode      = "LangCode"
	FieldClientID      = "ClientId"
	FieldFirstName     = "FirstName"
	FieldFamilyName    = "FamilyName"
	FieldEmail         = "Email"
	FieldPhone         = "Phone"
	FieldStreet        = "Street"
	FieldZip           = "Zip"
	FieldCity          = "City"
	FieldCountry       = "Country"
	FieldChecksum      = "CHECKSUM"
)

// FormField is a single (name, value) pair of the payment request form.
type FormField struct {
	Name  string
	Value string
}

// PaymentRequest is a finalized, signed payment request ready for form
// submission to the gateway. It is constructed by the request builder
// after the checksum has been computed and cannot be mutated afterwards,
// so the signature can never go stale.
type PaymentRequest struct {
	fields []FormField
}

// NewPaymentRequest builds an immutable request from an ordered field
// list. The field slice is copied; the caller keeps no handle on the
// request's state.
func NewPaymentRequest(fields []FormField) *PaymentRequest {
	r := &PaymentRequest{fields: make([]FormField, len(fields))}
	copy(r.fields, fields)
	return r
}

// Fields returns the ordered (name, value) pairs, suitable for hidden
// form inputs. The returned slice is a copy.
func (r *PaymentRequest) Fields() []FormField {
	fields := make([]FormField, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Get returns the value of the named field, or the empty string when
// the field is not present.
func (r *PaymentRequest) Get(name string) string {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Checksum returns the CHECKSUM field value.
func (r *PaymentRequest) Checksum() string {
	return r.Get(FieldChecksum)
}

// FormHTML renders the request as hidden form inputs. Values are HTML
// escaped; the caller wraps the inputs in a form pointing at the
// gateway submission URL.
func (r *PaymentRequest) FormHTML() string {
	var b strings.Builder
	for _, f := range r.fields {
		b.WriteString(`<input type="hidden" name="`)
		b.WriteString(html.EscapeString(f.Name))
		b.WriteString(`" value="`)
		b.WriteString(html.EscapeString(f.Value))
		b.WriteString("\" />\n")
	}
	return b.String()
}
