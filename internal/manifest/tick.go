package manifest

// TickManifest is the per-tick journal of everything observable: what
// changed, which entities were born or died, which events fired, and
// which aggregates now hold.
//
// Sequence invariant: across a run, Tick strictly increases by 1 per
// manifest. The verification engine does not itself enforce this on
// the sequence it is handed (that is a property tested against
// fixtures, per spec.md §8), but internal/feed rejects out-of-order
// frames arriving over the wire, since those indicate a transport bug
// rather than a simulator design choice.
type TickManifest struct {
	Tick               Tick               `json:"tick"`
	SimTime            float64            `json:"sim_time"`
	EntitySpawns       []EntityId         `json:"entity_spawns"`
	EntityDespawns     []EntityId         `json:"entity_despawns"`
	ComponentChanges   []ComponentChange  `json:"component_changes"`
	Events             []GameEvent        `json:"events"`
	Aggregates         Aggregates         `json:"aggregates"`
	SystemsExecuted    []SystemId         `json:"systems_executed"`
	CommandsProcessed  int                `json:"commands_processed"`
	CommandsSucceeded  int                `json:"commands_succeeded"`
}

// ChangesForComponent returns, in emission order, the component
// changes in this tick whose Component field matches name.
func (m TickManifest) ChangesForComponent(name string) []ComponentChange {
	var out []ComponentChange
	for _, c := range m.ComponentChanges {
		if c.Component == name {
			out = append(out, c)
		}
	}
	return out
}

// EventsOfType returns, in emission order, the events in this tick
// whose EventType matches t.
func (m TickManifest) EventsOfType(t string) []GameEvent {
	var out []GameEvent
	for _, e := range m.Events {
		if e.EventType == t {
			out = append(out, e)
		}
	}
	return out
}
