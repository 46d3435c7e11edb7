package manifest

// GameEvent is an observable occurrence within a tick. The verifier
// reads EventType, InvolvedEntities, and Reason.Detail (a free-form
// textual hint, e.g. "ball:brick", consumed by the entity-name
// matching heuristic in internal/compare).
type GameEvent struct {
	EventType        string       `json:"event_type"`
	Description      string       `json:"description"`
	InvolvedEntities []EntityId   `json:"involved_entities"`
	CausedBy         SystemId     `json:"caused_by"`
	Reason           CausalReason `json:"reason"`
	Tick             Tick         `json:"tick"`
}

// ReasonDetail returns the free-form textual hint on the event's
// causal reason.
func (e GameEvent) ReasonDetail() string { return e.Reason.Detail }
