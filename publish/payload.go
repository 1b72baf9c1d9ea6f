package publish

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "sbml",
		Category:    "entity",
		Version:     "v1",
		Description: "Model graph node with its outgoing triples",
		Factory:     func() any { return &EntityPayload{} },
	})
	if err != nil {
		panic("failed to register EntityPayload: " + err.Error())
	}
}

// EntityType is the message type for model entity payloads.
var EntityType = message.Type{Domain: "sbml", Category: "entity", Version: "v1"}

// EntityPayload carries one graph subject and every triple it heads.
type EntityPayload struct {
	EntityID_  string           `json:"id"`
	TripleData []message.Triple `json:"triples"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (e *EntityPayload) EntityID() string          { return e.EntityID_ }
func (e *EntityPayload) Triples() []message.Triple { return e.TripleData }
func (e *EntityPayload) Schema() message.Type      { return EntityType }

func (e *EntityPayload) Validate() error {
	if e.EntityID_ == "" {
		return errors.New("entity ID is required")
	}
	if len(e.TripleData) == 0 {
		return errors.New("entity has no triples")
	}
	for _, t := range e.TripleData {
		if t.Subject != e.EntityID_ {
			return errors.New("triple subject does not match entity ID")
		}
	}
	return nil
}

func (e *EntityPayload) MarshalJSON() ([]byte, error) {
	type Alias EntityPayload
	return json.Marshal((*Alias)(e))
}

func (e *EntityPayload) UnmarshalJSON(data []byte) error {
	type Alias EntityPayload
	return json.Unmarshal(data, (*Alias)(e))
}
