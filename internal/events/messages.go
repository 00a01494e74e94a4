package events

import (
	"encoding/json"
	"time"
)

// Activity event names published for the external analytics consumer.
const (
	EventQuestionAsked = "question_asked"
	EventSimulationRun = "simulation_run"
)

// ActivityMessage records one user interaction. It carries the request
// parameters, never computed results — simulations are not persisted.
type ActivityMessage struct {
	Event     string    `json:"event"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewActivityMessage(event, detail string) *ActivityMessage {
	return &ActivityMessage{
		Event:     event,
		Detail:    detail,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ActivityMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ActivityMessageFromJSON creates a message from JSON bytes.
func ActivityMessageFromJSON(data []byte) (*ActivityMessage, error) {
	var msg ActivityMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
