package intent

import (
	"encoding/json"
	"fmt"

	"github.com/lox/nomai-verify/internal/manifest"
)

// wireNode is the on-disk shape shared by Trigger and Expected:
// {"type": "<variant>", "params": {...}, "children": [...]}.
type wireNode struct {
	Type     string          `json:"type"`
	Params   json.RawMessage `json:"params,omitempty"`
	Children []wireNode      `json:"children,omitempty"`
}

// triggerParams and expectedParams are the flat parameter payloads
// written under "params"; fields are omitted when zero so round-
// tripped JSON stays compact and readable, matching the teacher's
// `,omitempty`-heavy wire structs (see protocol/messages.go).
type triggerParams struct {
	EntityA       string `json:"entity_a,omitempty"`
	EntityB       string `json:"entity_b,omitempty"`
	Entity        string `json:"entity,omitempty"`
	From          string `json:"from,omitempty"`
	To            string `json:"to,omitempty"`
	AggregateType string `json:"aggregate_type,omitempty"`
	Component     string `json:"component,omitempty"`
	Field         string `json:"field,omitempty"`
	Op            string `json:"op,omitempty"`
	Value         any    `json:"value,omitempty"`
	EventType     string `json:"event_type,omitempty"`
	Involving     []string `json:"involving,omitempty"`
	Tick          manifest.Tick `json:"tick,omitempty"`
	DelayTicks    int    `json:"delay_ticks,omitempty"`
}

type expectedParams struct {
	Entity        string   `json:"entity,omitempty"`
	Component     string   `json:"component,omitempty"`
	Field         string   `json:"field,omitempty"`
	HasValue      bool     `json:"has_value,omitempty"`
	Value         any      `json:"value,omitempty"`
	State         string   `json:"state,omitempty"`
	AggregateType string   `json:"aggregate_type,omitempty"`
	Op            string   `json:"op,omitempty"`
	EventType     string   `json:"event_type,omitempty"`
	Involving     []string `json:"involving,omitempty"`
	Relation      Relation `json:"relation,omitempty"`
	Tolerance     float64  `json:"tolerance,omitempty"`
}

// ToWire serializes a Trigger into its wire node.
func (t Trigger) ToWire() ([]byte, error) {
	node, err := t.toWireNode()
	if err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

func (t Trigger) toWireNode() (wireNode, error) {
	p := triggerParams{
		EntityA: t.EntityA, EntityB: t.EntityB, Entity: t.Entity,
		From: t.From, To: t.To, AggregateType: t.AggregateType,
		Component: t.Component, Field: t.Field, Op: t.Op, Value: t.Value,
		EventType: t.EventType, Involving: t.Involving, Tick: t.Tick,
		DelayTicks: t.DelayTicks,
	}
	params, err := json.Marshal(p)
	if err != nil {
		return wireNode{}, err
	}
	node := wireNode{Type: string(t.Kind), Params: params}
	for _, c := range t.Children {
		cn, err := c.toWireNode()
		if err != nil {
			return wireNode{}, err
		}
		node.Children = append(node.Children, cn)
	}
	return node, nil
}

// TriggerFromWire deserializes a Trigger from its wire form. Unknown
// variant names fail loudly (§4.2): a spec bug must not silently
// become a false pass.
func TriggerFromWire(data []byte) (Trigger, error) {
	var node wireNode
	if err := json.Unmarshal(data, &node); err != nil {
		return Trigger{}, err
	}
	return triggerFromNode(node)
}

func triggerFromNode(node wireNode) (Trigger, error) {
	kind := TriggerKind(node.Type)
	switch kind {
	case TriggerCollision, TriggerStateTransition, TriggerAggregateCondition,
		TriggerComponentCondition, TriggerEventOccurred, TriggerTickReached,
		TriggerAnd, TriggerOr, TriggerAfter:
	default:
		return Trigger{}, fmt.Errorf("intent: unknown trigger type %q", node.Type)
	}

	var p triggerParams
	if len(node.Params) > 0 {
		if err := json.Unmarshal(node.Params, &p); err != nil {
			return Trigger{}, fmt.Errorf("intent: trigger %q params: %w", node.Type, err)
		}
	}

	t := Trigger{
		Kind: kind, EntityA: p.EntityA, EntityB: p.EntityB, Entity: p.Entity,
		From: p.From, To: p.To, AggregateType: p.AggregateType,
		Component: p.Component, Field: p.Field, Op: p.Op, Value: p.Value,
		EventType: p.EventType, Involving: p.Involving, Tick: p.Tick,
		DelayTicks: p.DelayTicks,
	}
	for _, cn := range node.Children {
		c, err := triggerFromNode(cn)
		if err != nil {
			return Trigger{}, err
		}
		t.Children = append(t.Children, c)
	}
	return t, nil
}

// ToWire serializes an Expected into its wire node.
func (e Expected) ToWire() ([]byte, error) {
	node, err := e.toWireNode()
	if err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

func (e Expected) toWireNode() (wireNode, error) {
	p := expectedParams{
		Entity: e.Entity, Component: e.Component, Field: e.Field,
		HasValue: e.HasValue, Value: e.Value, State: e.State,
		AggregateType: e.AggregateType, Op: e.Op, EventType: e.EventType,
		Involving: e.Involving, Relation: e.Relation, Tolerance: e.Tolerance,
	}
	params, err := json.Marshal(p)
	if err != nil {
		return wireNode{}, err
	}
	node := wireNode{Type: string(e.Kind), Params: params}
	for _, c := range e.Children {
		cn, err := c.toWireNode()
		if err != nil {
			return wireNode{}, err
		}
		node.Children = append(node.Children, cn)
	}
	return node, nil
}

// ExpectedFromWire deserializes an Expected from its wire form.
// Unknown variant names fail loudly, matching TriggerFromWire.
func ExpectedFromWire(data []byte) (Expected, error) {
	var node wireNode
	if err := json.Unmarshal(data, &node); err != nil {
		return Expected{}, err
	}
	return expectedFromNode(node)
}

func expectedFromNode(node wireNode) (Expected, error) {
	kind := ExpectedKind(node.Type)
	switch kind {
	case ExpectedComponentChanged, ExpectedEntityDespawned, ExpectedAggregateChanged,
		ExpectedInState, ExpectedEventEmitted, ExpectedValueRelation, ExpectedAll, ExpectedAny:
	default:
		return Expected{}, fmt.Errorf("intent: unknown expected type %q", node.Type)
	}

	var p expectedParams
	if len(node.Params) > 0 {
		if err := json.Unmarshal(node.Params, &p); err != nil {
			return Expected{}, fmt.Errorf("intent: expected %q params: %w", node.Type, err)
		}
	}

	e := Expected{
		Kind: kind, Entity: p.Entity, Component: p.Component, Field: p.Field,
		HasValue: p.HasValue, Value: p.Value, State: p.State,
		AggregateType: p.AggregateType, Op: p.Op, EventType: p.EventType,
		Involving: p.Involving, Relation: p.Relation, Tolerance: p.Tolerance,
	}
	for _, cn := range node.Children {
		c, err := expectedFromNode(cn)
		if err != nil {
			return Expected{}, err
		}
		e.Children = append(e.Children, c)
	}
	return e, nil
}
