package manifest

import (
	"encoding/json"
	"fmt"
)

// ReasonType names a CausalReason variant.
type ReasonType string

const (
	ReasonGameRule          ReasonType = "GameRule"
	ReasonPlayerInput       ReasonType = "PlayerInput"
	ReasonCollisionResponse ReasonType = "CollisionResponse"
	ReasonStateTransition   ReasonType = "StateTransition"
	ReasonTimer             ReasonType = "Timer"
	ReasonSystemInternal    ReasonType = "SystemInternal"
)

var scalarReasonTypes = map[ReasonType]bool{
	ReasonGameRule:       true,
	ReasonPlayerInput:    true,
	ReasonTimer:          true,
	ReasonSystemInternal: true,
}

// CausalReason carries the semantics of why a mutation occurred. The
// wire form is externally tagged: a single-key mapping from variant
// name to payload. Scalar-payload variants carry a string detail;
// structured-payload variants (CollisionResponse, StateTransition)
// carry a pair, which the core normalizes to compact JSON text so that
// every reason can be read back as a single (type, detail) pair
// regardless of its original shape.
type CausalReason struct {
	Type   ReasonType
	Detail string
}

// GameRule builds a GameRule(detail) reason.
func GameRule(detail string) CausalReason { return CausalReason{ReasonGameRule, detail} }

// PlayerInput builds a PlayerInput(detail) reason.
func PlayerInput(detail string) CausalReason { return CausalReason{ReasonPlayerInput, detail} }

// Timer builds a Timer(name) reason.
func Timer(name string) CausalReason { return CausalReason{ReasonTimer, name} }

// SystemInternal builds a SystemInternal(detail) reason.
func SystemInternal(detail string) CausalReason { return CausalReason{ReasonSystemInternal, detail} }

// CollisionResponse builds a CollisionResponse(a, b) reason; the pair
// is normalized into compact JSON text for Detail.
func CollisionResponse(a, b string) CausalReason {
	return CausalReason{ReasonCollisionResponse, encodePair(a, b)}
}

// StateTransition builds a StateTransition(from, to) reason.
func StateTransition(from, to string) CausalReason {
	return CausalReason{ReasonStateTransition, encodePair(from, to)}
}

func encodePair(a, b string) string {
	data, err := json.Marshal([2]string{a, b})
	if err != nil {
		// [2]string always marshals; this is unreachable in practice.
		return fmt.Sprintf("[%q,%q]", a, b)
	}
	return string(data)
}

// Pair decodes a structured-payload reason's Detail back into its two
// elements. It is a no-op (returns ok=false) for scalar reasons.
func (r CausalReason) Pair() (a, b string, ok bool) {
	if scalarReasonTypes[r.Type] {
		return "", "", false
	}
	var parts [2]string
	if err := json.Unmarshal([]byte(r.Detail), &parts); err != nil {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// MarshalJSON writes the externally tagged wire form, reconstructing
// the original scalar or structured payload shape from (Type, Detail).
func (r CausalReason) MarshalJSON() ([]byte, error) {
	if scalarReasonTypes[r.Type] {
		return json.Marshal(map[string]string{string(r.Type): r.Detail})
	}
	a, b, ok := r.Pair()
	if !ok {
		// Detail wasn't a recognized pair encoding; fall back to scalar.
		return json.Marshal(map[string]string{string(r.Type): r.Detail})
	}
	return json.Marshal(map[string][2]string{string(r.Type): {a, b}})
}

// UnmarshalJSON reads the externally tagged wire form. Unknown variant
// names are preserved as-is (the reason type itself is never validated
// against a closed set at this layer; §4.2's "unknown variant fails
// loudly" rule applies to Trigger/Expected, not to CausalReason, which
// is free-form metadata attached to a ComponentChange or GameEvent).
func (r *CausalReason) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("manifest: causal reason must be a single-key object: %w", err)
	}
	if len(raw) != 1 {
		return fmt.Errorf("manifest: causal reason must have exactly one key, got %d", len(raw))
	}
	for k, v := range raw {
		rt := ReasonType(k)
		r.Type = rt

		var scalar string
		if err := json.Unmarshal(v, &scalar); err == nil {
			r.Detail = scalar
			return nil
		}

		var pair [2]string
		if err := json.Unmarshal(v, &pair); err == nil {
			r.Detail = encodePair(pair[0], pair[1])
			return nil
		}

		// Nested mapping payload: normalize by re-encoding compactly.
		var generic any
		if err := json.Unmarshal(v, &generic); err != nil {
			return fmt.Errorf("manifest: causal reason %q payload: %w", k, err)
		}
		compact, err := json.Marshal(generic)
		if err != nil {
			return err
		}
		r.Detail = string(compact)
	}
	return nil
}
