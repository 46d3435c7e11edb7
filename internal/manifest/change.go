package manifest

// ComponentChange is a single mutation recorded within a tick.
//
// OldValue == nil means the change is an initial set (creation).
// NewValue == nil means the change is a removal (destruction).
// CommandIndex is stable within its tick and matches the ordering of
// accepted commands from the command buffer for that tick.
type ComponentChange struct {
	EntityId      EntityId     `json:"entity_id"`
	Component     string       `json:"component_name"`
	OldValue      any          `json:"old_value"`
	NewValue      any          `json:"new_value"`
	ChangedBy     SystemId     `json:"changed_by_system"`
	Reason        CausalReason `json:"reason"`
	CommandIndex  int          `json:"command_index"`
	Tick          Tick         `json:"tick"`
}

// IsCreation reports whether this change is an initial component set.
func (c ComponentChange) IsCreation() bool { return c.OldValue == nil }

// IsRemoval reports whether this change is a component destruction.
func (c ComponentChange) IsRemoval() bool { return c.NewValue == nil }

// ReasonDetail returns the free-form textual hint carried by the
// change's causal reason, used pervasively by the entity-name matcher
// and the trigger/expected evaluators.
func (c ComponentChange) ReasonDetail() string { return c.Reason.Detail }
