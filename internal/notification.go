package internal

import (
	"encoding/xml"
	"regexp"
	"strings"

	"pay24/entity"
)

// xmlDeclaration matches the optional <?xml ...?> prefix some gateway
// deployments prepend to the notification document.
var xmlDeclaration = regexp.MustCompile(`<\?.*?\?>`)

// notificationXML is the wire shape of an inbound notification. The
// root element name is not checked; only the fields matter.
type notificationXML struct {
	MsTxnID       string `xml:"MsTxnId"`
	Amount        string `xml:"Amount"`
	CurrAlphaCode string `xml:"CurrAlphaCode"`
	Result        string `xml:"Result"`
	Sign          string `xml:"SIGN"`
}

// NotificationParser validates inbound gateway notifications. The
// gateway is an external, uncontrolled party: whatever it sends, the
// parser answers with a classified notification, never a panic and
// never an error escape. Anything unparseable or with a bad signature
// is Invalid, and an Invalid notification must never change an order.
type NotificationParser struct {
	signer *SignGenerator
}

func NewNotificationParser(creds entity.Credentials) *NotificationParser {
	return &NotificationParser{signer: NewSignGenerator(creds)}
}

// Parse decodes the raw XML payload, recomputes the checksum over the
// same canonical fields the request builder signs, and compares it
// case-insensitively against the checksum the gateway supplied.
func (p *NotificationParser) Parse(raw string) *entity.Notification {
	raw = strings.TrimSpace(xmlDeclaration.ReplaceAllString(raw, ""))

	var doc notificationXML
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		return entity.NewNotification("", "", "", "", "", false)
	}

	message := p.signer.RequestChecksumMessage(doc.Amount, doc.CurrAlphaCode, doc.MsTxnID)
	expected, err := p.signer.SignMessage(message)
	valid := err == nil && doc.Sign != "" && strings.EqualFold(expected, doc.Sign)

	return entity.NewNotification(
		doc.MsTxnID,
		doc.Amount,
		doc.CurrAlphaCode,
		entity.Result(doc.Result),
		doc.Sign,
		valid,
	)
}
