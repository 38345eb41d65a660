package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type tags an event envelope. Subscribers dispatch on it.
type Type string

const (
	TypeConnectionEstablished Type = "connection_established"
	TypeRaceStatus            Type = "race_status"
	TypeRaceProgression       Type = "race_progression"
	TypeCountdown             Type = "countdown"
	TypeLiveLapsUpdate        Type = "live_laps_update"
	TypePong                  Type = "pong"
)

// Envelope is the wire format for every message pushed to subscribers.
type Envelope struct {
	ID        string          `json:"id"`
	Type      Type            `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// New wraps a payload in a tagged envelope.
func New(eventType Type, payload any) (Envelope, error) {
	env := Envelope{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
	if payload == nil {
		return env, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	env.Data = data
	return env, nil
}

// Encode renders the envelope as it goes over the wire.
func (e Envelope) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", e.Type, err)
	}
	return data, nil
}
