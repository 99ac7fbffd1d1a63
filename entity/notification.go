package entity

// Result is the transaction outcome carried in a gateway notification.
type Result string

const (
	ResultPending Result = "PENDING"
	ResultOk      Result = "OK"
	ResultFail    Result = "FAIL"
)

// Notification is a parsed inbound transaction notification. It is
// classified exactly once, at construction, by comparing the checksum
// supplied by the gateway against a freshly recomputed one; after that
// it is never mutated. An invalid notification must never trigger an
// order-state change.
type Notification struct {
	msTxnID  string
	amount   string
	currency string
	result   Result
	checksum string
	valid    bool
}

// NewNotification builds a classified notification. Called by the
// notification parser; valid reports whether the supplied checksum
// matched the recomputed one.
func NewNotification(msTxnID, amount, currency string, result Result, checksum string, valid bool) *Notification {
	return &Notification{
		msTxnID:  msTxnID,
		amount:   amount,
		currency: currency,
		result:   result,
		checksum: checksum,
		valid:    valid,
	}
}

// Valid reports whether the notification's signature was authentic.
func (n *Notification) Valid() bool { return n.valid }

// MsTxnID returns the merchant transaction identifier echoed by the
// gateway.
func (n *Notification) MsTxnID() string { return n.msTxnID }

// Amount returns the transaction amount as reported by the gateway,
// for reconciliation against the local order record.
func (n *Notification) Amount() string { return n.amount }

// CurrAlphaCode returns the transaction currency as reported by the
// gateway, for reconciliation against the local order record.
func (n *Notification) CurrAlphaCode() string { return n.currency }

// Result returns the transaction outcome. Callers switch on the typed
// constants; an unrecognized code keeps its raw value.
func (n *Notification) Result() Result { return n.result }

// Checksum returns the checksum claimed by the gateway.
func (n *Notification) Checksum() string { return n.checksum }

// OrderID extracts the local order identifier from the transaction ID
// by cutting off the 6-digit time-of-day prefix prepended at request
// build time. Empty for a transaction ID that is too short.
func (n *Notification) OrderID() string {
	if len(n.msTxnID) <= 6 {
		return ""
	}
	return n.msTxnID[6:]
}
