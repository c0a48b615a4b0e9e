package amqp

import (
	"encoding/json"
	"time"
)

// DataChangedMessage announces that a store mutation touched one entity.
// Consumers reload the persisted blob themselves; the message carries only
// enough to know what moved and which month to recompute.
type DataChangedMessage struct {
	Entity    string    `json:"entity"` // card | category | income | expense | goal | month
	Op        string    `json:"op"`     // add | update | delete | set
	EntityID  string    `json:"entityId"`
	Month     string    `json:"month"` // current month at mutation time, YYYY-MM
	Timestamp time.Time `json:"timestamp"`
}

// NewDataChangedMessage stamps a change event with the current time.
func NewDataChangedMessage(entity, op, entityID, month string) *DataChangedMessage {
	return &DataChangedMessage{
		Entity:    entity,
		Op:        op,
		EntityID:  entityID,
		Month:     month,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *DataChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DataChangedMessageFromJSON creates a message from JSON bytes.
func DataChangedMessageFromJSON(data []byte) (*DataChangedMessage, error) {
	var msg DataChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
