package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Expense event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ExpenseEventMessage notifies downstream consumers that an expense was
// mutated. It carries only the id and the action; consumers that need the
// record fetch it from the store themselves.
type ExpenseEventMessage struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEventMessage creates an event for the given action and id.
func NewExpenseEventMessage(action string, id int64) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

// Validate checks the action is one of the known values.
func (m *ExpenseEventMessage) Validate() error {
	switch m.Action {
	case ActionCreated, ActionUpdated, ActionDeleted:
		return nil
	default:
		return fmt.Errorf("unknown expense event action: %q", m.Action)
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventFromJSON decodes and validates a message from JSON bytes.
func ExpenseEventFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
