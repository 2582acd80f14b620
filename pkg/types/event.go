package types

import (
	"time"

	"github.com/google/uuid"
)

// Event is a single occurrence delivered by an event source. Tag is the
// matchable text rules are tested against; Data is an opaque bag of
// payload fields the engine forwards to condition evaluation and template
// resolution without interpreting it.
type Event struct {
	// ID uniquely identifies this event delivery
	ID string `json:"id" koanf:"id"`

	// Tag is the matchable text, e.g. "minion/refresh"
	Tag string `json:"tag" koanf:"tag"`

	// Data carries the event payload
	Data map[string]interface{} `json:"data,omitempty" koanf:"data"`

	// Time is when the event was accepted into the engine
	Time time.Time `json:"time" koanf:"time"`
}

// NewEvent builds an Event with a fresh ID and the current time.
func NewEvent(tag string, data map[string]interface{}) Event {
	if data == nil {
		data = make(map[string]interface{})
	}
	return Event{
		ID:   uuid.NewString(),
		Tag:  tag,
		Data: data,
		Time: time.Now().UTC(),
	}
}

// MatchResult exposes the substructure extracted by a successful match,
// such as named regex capture groups. Boolean matcher kinds produce an
// empty (but non-nil) result so lookups never hit a nil map.
type MatchResult map[string]string
