package feed

import (
	"encoding/json"
	"time"
)

// Actions carried by change messages.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EventChangeMessage announces an event mutation to external consumers.
// It carries identifiers only; consumers fetch whatever detail they need.
type EventChangeMessage struct {
	UserID    string    `json:"userId"`
	EventID   string    `json:"eventId"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEventChangeMessage(userID, eventID, action string) *EventChangeMessage {
	return &EventChangeMessage{
		UserID:    userID,
		EventID:   eventID,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (m *EventChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EventChangeMessageFromJSON(data []byte) (*EventChangeMessage, error) {
	var msg EventChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
