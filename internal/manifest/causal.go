package manifest

// CausalStep is one step of a CausalChain, ordered most-recent-first.
type CausalStep struct {
	Tick         Tick         `json:"tick"`
	CommandIndex int          `json:"command_index"`
	SystemId     SystemId     `json:"system_id"`
	Reason       CausalReason `json:"reason"`
	Description  string       `json:"description"`
}

// CausalChain is the reverse-time sequence of mutations that led to a
// given component's current value. It is generated on demand from
// manifest history; it is never persisted implicitly.
type CausalChain struct {
	EntityId  EntityId     `json:"entity_id"`
	Component string       `json:"component"`
	Steps     []CausalStep `json:"steps"`
}

// BuildCausalChain walks a manifest history backwards from (and
// including) the manifest at index upTo (the last manifest when upTo
// is negative) and assembles the most-recent-first chain of every
// change to (entityID, component) at or before that point.
func BuildCausalChain(history []TickManifest, upTo int, entityID EntityId, component string) CausalChain {
	chain := CausalChain{EntityId: entityID, Component: component}
	if upTo < 0 {
		upTo = len(history) - 1
	}
	for i := upTo; i >= 0; i-- {
		m := history[i]
		for j := len(m.ComponentChanges) - 1; j >= 0; j-- {
			c := m.ComponentChanges[j]
			if c.EntityId != entityID || c.Component != component {
				continue
			}
			chain.Steps = append(chain.Steps, CausalStep{
				Tick:         m.Tick,
				CommandIndex: c.CommandIndex,
				SystemId:     c.ChangedBy,
				Reason:       c.Reason,
				Description:  describeChange(c),
			})
		}
	}
	return chain
}

func describeChange(c ComponentChange) string {
	if c.IsCreation() {
		return c.Component + " created"
	}
	if c.IsRemoval() {
		return c.Component + " removed"
	}
	return c.Component + " changed"
}
