package events

import (
	"encoding/json"
	"fmt"
)

// Pub/Sub channel prefix; one channel per profile.
const (
	ProfileChannelPrefix = "channel:profile:"
)

const (
	TypeProfileUpdated = "profile_updated"
)

// ProfileChannel returns the channel announcing writes to a profile.
func ProfileChannel(profileID string) string {
	return fmt.Sprintf("%s%s", ProfileChannelPrefix, profileID)
}

// Event represents a message published via Pub/Sub.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// ProfileUpdatedPayload is the payload for the "profile_updated" event.
type ProfileUpdatedPayload struct {
	ProfileID string   `json:"profile_id"`
	Keys      []string `json:"keys"`
}

// NewProfileUpdated encodes a "profile_updated" event.
func NewProfileUpdated(profileID string, keys []string) ([]byte, error) {
	payload, err := json.Marshal(ProfileUpdatedPayload{ProfileID: profileID, Keys: keys})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile_updated payload: %w", err)
	}
	return json.Marshal(Event{Type: TypeProfileUpdated, Payload: payload})
}

// DecodeProfileUpdated parses a published message; ok is false for other event types.
func DecodeProfileUpdated(data []byte) (payload ProfileUpdatedPayload, ok bool, err error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return payload, false, fmt.Errorf("could not unmarshal event: %w", err)
	}
	if event.Type != TypeProfileUpdated {
		return payload, false, nil
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return payload, false, fmt.Errorf("could not unmarshal profile_updated payload: %w", err)
	}
	return payload, true, nil
}
