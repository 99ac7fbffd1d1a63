package internal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pay24/entity"
)

// RequestBuilder turns an order into a canonical signed payment request.
// The checksum is computed last, over the finalized field values, and
// the result is an immutable entity.PaymentRequest: nothing can change
// a field after it has been signed.
type RequestBuilder struct {
	creds  entity.Credentials
	signer *SignGenerator
	now    func() time.Time
}

func NewRequestBuilder(creds entity.Credentials) *RequestBuilder {
	return &RequestBuilder{
		creds:  creds,
		signer: NewSignGenerator(creds),
		now:    time.Now,
	}
}

// Build validates the order fields, canonicalizes them and signs the
// result. Missing required fields fail with ErrValidation before any
// signing happens.
//
// The amount is the order total plus tax, unless the shop's price
// display mode already includes tax; tax is added exactly once. The
// transaction ID is the time of day (HHMMSS, no separators) followed by
// the order ID, which keeps it unique per order within a day.
func (b *RequestBuilder) Build(order *entity.Order, urls entity.CallbackURLs) (*entity.PaymentRequest, error) {
	amount := order.Total
	if !order.PricesIncludeTax {
		amount += order.Tax
	}
	amountValue := strconv.FormatFloat(amount, 'f', 2, 64)

	msTxnID := b.now().Format("150405") + strconv.Itoa(order.ID)

	if err := validateRequest(msTxnID, amountValue, order.Currency, urls); err != nil {
		return nil, err
	}

	street := order.Billing.Street
	if order.Billing.Street2 != "" {
		street += ", " + order.Billing.Street2
	}

	fields := []entity.FormField{
		{Name: entity.FieldNURL, Value: urls.NotifyURL},
		{Name: entity.FieldRURL, Value: urls.ResultURL},
		{Name: entity.FieldMsTxnID, Value: msTxnID},
		{Name: entity.FieldCurrAlphaCode, Value: order.Currency},
		{Name: entity.FieldAmount, Value: amountValue},
		{Name: entity.FieldLangCode, Value: langCode(order.Locale)},
		{Name: entity.FieldClientID, Value: strconv.Itoa(order.ID)},
		{Name: entity.FieldFirstName, Value: order.Billing.FirstName},
		{Name: entity.FieldFamilyName, Value: order.Billing.LastName},
		{Name: entity.FieldEmail, Value: order.Billing.Email},
		{Name: entity.FieldPhone, Value: order.Billing.Phone},
		{Name: entity.FieldStreet, Value: street},
		{Name: entity.FieldZip, Value: order.Billing.Zip},
		{Name: entity.FieldCity, Value: order.Billing.City},
		{Name: entity.FieldCountry, Value: CountryAlpha3(order.Billing.Country)},
	}

	// checksum goes last, over the values above
	message := b.signer.RequestChecksumMessage(amountValue, order.Currency, msTxnID)
	checksum, err := b.signer.SignMessage(message)
	if err != nil {
		return nil, err
	}
	fields = append(fields, entity.FormField{Name: entity.FieldChecksum, Value: checksum})

	return entity.NewPaymentRequest(fields), nil
}

func validateRequest(msTxnID, amount, currency string, urls entity.CallbackURLs) error {
	required := []struct {
		name  string
		value string
	}{
		{entity.FieldMsTxnID, msTxnID},
		{entity.FieldAmount, amount},
		{entity.FieldCurrAlphaCode, currency},
		{entity.FieldNURL, urls.NotifyURL},
		{entity.FieldRURL, urls.ResultURL},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("%w: missing %s", entity.ErrValidation, field.name)
		}
	}
	return nil
}

// langCode derives the gateway language code from the shop locale,
// e.g. "sk_SK" becomes "SK".
func langCode(locale string) string {
	if len(locale) > 2 {
		locale = locale[:2]
	}
	return strings.ToUpper(locale)
}
