// Package manifest defines the typed records the simulator emits every
// tick and the bidirectional wire format for them. It is the contract
// between a simulation kernel and the verification engine.
package manifest

import "encoding/json"

// EntityId identifies an entity. It is stable across a run; newly
// allocated ids are never reused within the same run.
type EntityId uint64

// SystemId identifies the system that performed a mutation. Zero means
// "system unknown". Well-known systems reserve low numbers so the core
// and simulator agree on them without a lookup table.
type SystemId uint32

// SystemUnknown is the reserved SystemId for unattributed mutations.
const SystemUnknown SystemId = 0

// SystemGuestCodeLoader is the well-known id for the host-side loader
// that injects guest game-rule code.
const SystemGuestCodeLoader SystemId = 100

// Tick is a fixed-timestep step counter. It is monotonically
// non-decreasing across a manifest sequence; the initial tick is 0.
type Tick uint64

// MarshalJSON writes the bare-integer wire form.
func (e EntityId) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint64(e))
}

// UnmarshalJSON accepts either a bare integer or a single-keyed mapping
// whose value is an integer, because simulator encodings of newtypes
// vary in transparency.
func (e *EntityId) UnmarshalJSON(data []byte) error {
	n, err := unmarshalFlexibleID(data)
	if err != nil {
		return err
	}
	*e = EntityId(n)
	return nil
}

// MarshalJSON writes the bare-integer wire form.
func (s SystemId) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint64(s))
}

// UnmarshalJSON accepts either a bare integer or a single-keyed mapping
// whose value is an integer.
func (s *SystemId) UnmarshalJSON(data []byte) error {
	n, err := unmarshalFlexibleID(data)
	if err != nil {
		return err
	}
	*s = SystemId(n)
	return nil
}

// unmarshalFlexibleID decodes either `123` or `{"0": 123}` (the shape
// some simulator encodings use for a transparent newtype wrapper).
func unmarshalFlexibleID(data []byte) (uint64, error) {
	var n uint64
	if err := json.Unmarshal(data, &n); err == nil {
		return n, nil
	}

	var wrapped map[string]uint64
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return 0, err
	}
	for _, v := range wrapped {
		return v, nil
	}
	return 0, nil
}
