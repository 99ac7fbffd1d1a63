package internal

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pay24/entity"
)

var testCallbacks = entity.CallbackURLs{
	NotifyURL: "https://shop.example/notification",
	ResultURL: "https://shop.example/transaction-result",
}

func testOrder() *entity.Order {
	return &entity.Order{
		ID:       42,
		Total:    19.9,
		Tax:      0.1,
		Currency: "EUR",
		Locale:   "sk",
		Status:   entity.OrderPending,
		Billing: entity.Billing{
			FirstName: "Jan",
			LastName:  "Novak",
			Email:     "jan.novak@example.sk",
			Phone:     "+421900123456",
			Street:    "Hlavna 1",
			Zip:       "81101",
			City:      "Bratislava",
			Country:   "SK",
		},
	}
}

func fixedClockBuilder(t *testing.T) *RequestBuilder {
	t.Helper()
	builder := NewRequestBuilder(testCredentials(t))
	builder.now = func() time.Time {
		return time.Date(2024, 3, 1, 14, 30, 5, 0, time.UTC)
	}
	return builder
}

func TestBuildAmountTaxExclusive(t *testing.T) {
	builder := fixedClockBuilder(t)

	request, err := builder.Build(testOrder(), testCallbacks)
	require.NoError(t, err)

	assert.Equal(t, "20.00", request.Get(entity.FieldAmount))
}

func TestBuildAmountTaxInclusive(t *testing.T) {
	builder := fixedClockBuilder(t)
	order := testOrder()
	order.PricesIncludeTax = true

	request, err := builder.Build(order, testCallbacks)
	require.NoError(t, err)

	assert.Equal(t, "19.90", request.Get(entity.FieldAmount))
}

func TestBuildEndToEndScenario(t *testing.T) {
	builder := fixedClockBuilder(t)

	request, err := builder.Build(testOrder(), testCallbacks)
	require.NoError(t, err)

	assert.Equal(t, "EUR", request.Get(entity.FieldCurrAlphaCode))
	assert.Equal(t, "SK", request.Get(entity.FieldLangCode))
	assert.Equal(t, "20.00", request.Get(entity.FieldAmount))
	assert.Equal(t, "14300542", request.Get(entity.FieldMsTxnID))
	assert.Equal(t, "SVK", request.Get(entity.FieldCountry))
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{32}$`), request.Checksum())
}

func TestBuildFieldOrder(t *testing.T) {
	builder := fixedClockBuilder(t)

	request, err := builder.Build(testOrder(), testCallbacks)
	require.NoError(t, err)

	var names []string
	for _, field := range request.Fields() {
		names = append(names, field.Name)
	}
	assert.Equal(t, []string{
		"NURL", "RURL", "MsTxnId", "CurrAlphaCode", "Amount", "LangCode",
		"ClientId", "FirstName", "FamilyName", "Email", "Phone",
		"Street", "Zip", "City", "Country", "CHECKSUM",
	}, names)
}

func TestBuildStreetComposition(t *testing.T) {
	builder := fixedClockBuilder(t)
	order := testOrder()
	order.Billing.Street2 = "apt. 5"

	request, err := builder.Build(order, testCallbacks)
	require.NoError(t, err)

	assert.Equal(t, "Hlavna 1, apt. 5", request.Get(entity.FieldStreet))
}

func TestBuildMissingRequiredFields(t *testing.T) {
	builder := fixedClockBuilder(t)

	order := testOrder()
	order.Currency = ""
	_, err := builder.Build(order, testCallbacks)
	assert.True(t, errors.Is(err, entity.ErrValidation))

	_, err = builder.Build(testOrder(), entity.CallbackURLs{ResultURL: "https://shop.example/r"})
	assert.True(t, errors.Is(err, entity.ErrValidation))

	_, err = builder.Build(testOrder(), entity.CallbackURLs{NotifyURL: "https://shop.example/n"})
	assert.True(t, errors.Is(err, entity.ErrValidation))
}

func TestBuildChecksumCoversCanonicalFields(t *testing.T) {
	builder := fixedClockBuilder(t)
	signer := NewSignGenerator(testCredentials(t))

	request, err := builder.Build(testOrder(), testCallbacks)
	require.NoError(t, err)

	expected, err := signer.SignMessage(signer.RequestChecksumMessage("20.00", "EUR", "14300542"))
	require.NoError(t, err)
	assert.Equal(t, expected, request.Checksum())
}

func TestRequestImmutable(t *testing.T) {
	builder := fixedClockBuilder(t)

	request, err := builder.Build(testOrder(), testCallbacks)
	require.NoError(t, err)

	fields := request.Fields()
	fields[0].Value = "tampered"

	assert.Equal(t, testCallbacks.NotifyURL, request.Get(entity.FieldNURL))
}

func TestLangCode(t *testing.T) {
	assert.Equal(t, "SK", langCode("sk_SK"))
	assert.Equal(t, "SK", langCode("sk"))
	assert.Equal(t, "E", langCode("e"))
	assert.Equal(t, "", langCode(""))
}

func TestCountryAlpha3(t *testing.T) {
	assert.Equal(t, "SVK", CountryAlpha3("SK"))
	assert.Equal(t, "CZE", CountryAlpha3("cz"))
	assert.Equal(t, "DEU", CountryAlpha3("DE"))
	// unknown codes pass through unchanged
	assert.Equal(t, "XX", CountryAlpha3("XX"))
}
