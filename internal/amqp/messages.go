package amqp

import (
	"encoding/json"
	"time"

	"ledger/internal/budget"
)

// BudgetAlertMessage is the wire form of a budget alert event. The full
// alert rides along so consumers can notify without a database lookup.
type BudgetAlertMessage struct {
	Alert     budget.Alert `json:"alert"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewBudgetAlertMessage wraps an alert with the emission timestamp.
func NewBudgetAlertMessage(alert budget.Alert) *BudgetAlertMessage {
	return &BudgetAlertMessage{
		Alert:     alert,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BudgetAlertMessageFromJSON decodes a message from JSON bytes.
func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
