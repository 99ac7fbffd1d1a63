package entity

import "time"

// LogMessage is a log record persisted to the audit log collection.
type LogMessage struct {
	Time     time.Time `json:"time" bson:"time"`
	Level    string    `json:"level" bson:"level"`
	Module   string    `json:"module" bson:"module"`
	Text     string    `json:"text" bson:"text"`
	ErrorMsg string    `json:"error,omitempty" bson:"error,omitempty"`
}

func (l *LogMessage) DataType() string {
	return "log"
}

// NotificationRecord is the write-only audit trail of inbound gateway
// notifications, kept for support reconciliation. The protocol layer
// never reads it back.
type NotificationRecord struct {
	MsTxnID      string    `json:"ms_txn_id" bson:"ms_txn_id"`
	Amount       string    `json:"amount" bson:"amount"`
	Currency     string    `json:"currency" bson:"currency"`
	Result       string    `json:"result" bson:"result"`
	Valid        bool      `json:"valid" bson:"valid"`
	TimeReceived time.Time `json:"time_received" bson:"time_received"`
}

func (n *NotificationRecord) DataType() string {
	return "notification"
}
