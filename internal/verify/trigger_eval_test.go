package verify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/nomai-verify/internal/intent"
	"github.com/lox/nomai-verify/internal/manifest"
)

func TestEvalTriggerTickReached(t *testing.T) {
	trig := intent.TickReached(5)
	require.False(t, evalTrigger(trig, manifest.TickManifest{Tick: 4}))
	require.True(t, evalTrigger(trig, manifest.TickManifest{Tick: 5}))
	require.True(t, evalTrigger(trig, manifest.TickManifest{Tick: 9}))
}

func TestEvalTriggerCollision(t *testing.T) {
	trig := intent.Collision("ball", "brick_3")
	m := manifest.TickManifest{Events: []manifest.GameEvent{
		{EventType: "collision", Reason: manifest.CollisionResponse("ball", "brick_3")},
	}}
	require.True(t, evalTrigger(trig, m))

	other := manifest.TickManifest{Events: []manifest.GameEvent{
		{EventType: "collision", Reason: manifest.CollisionResponse("ball", "wall")},
	}}
	require.False(t, evalTrigger(trig, other))
}

func TestEvalTriggerEventOccurredRequiresAllInvolved(t *testing.T) {
	trig := intent.EventOccurred("score", "player_1")
	hit := manifest.TickManifest{Events: []manifest.GameEvent{
		{EventType: "score", Description: "player_1 scored"},
	}}
	require.True(t, evalTrigger(trig, hit))

	miss := manifest.TickManifest{Events: []manifest.GameEvent{
		{EventType: "score", Description: "player_2 scored"},
	}}
	require.False(t, evalTrigger(trig, miss))
}

func TestEvalTriggerComponentCondition(t *testing.T) {
	trig := intent.ComponentCondition("", "health", "value", ">=", 100.0)
	m := manifest.TickManifest{ComponentChanges: []manifest.ComponentChange{
		{Component: "health", NewValue: map[string]any{"value": 120.0}},
	}}
	require.True(t, evalTrigger(trig, m))

	low := manifest.TickManifest{ComponentChanges: []manifest.ComponentChange{
		{Component: "health", NewValue: map[string]any{"value": 40.0}},
	}}
	require.False(t, evalTrigger(trig, low))
}

func TestEvalTriggerAggregateCondition(t *testing.T) {
	trig := intent.AggregateCondition("brick", "==", 0.0)
	m := manifest.TickManifest{Aggregates: manifest.Aggregates{
		EntityCountByType: map[string]int{"brick": 0},
	}}
	require.True(t, evalTrigger(trig, m))

	nonzero := manifest.TickManifest{Aggregates: manifest.Aggregates{
		EntityCountByType: map[string]int{"brick": 3},
	}}
	require.False(t, evalTrigger(trig, nonzero))
}

func TestEvalTriggerStateTransition(t *testing.T) {
	trig := intent.StateTransitionTrigger("door_1", "closed", "open")
	// evalTrigger matches on Contains(c.ReasonDetail(), entity), so the
	// entity name must appear in Detail directly.
	m := manifest.TickManifest{ComponentChanges: []manifest.ComponentChange{
		{OldValue: "closed", NewValue: "open", Reason: manifest.CausalReason{Type: manifest.ReasonStateTransition, Detail: "door_1"}},
	}}
	require.True(t, evalTrigger(trig, m))
}

func TestEvalTriggerAndRequiresAllChildren(t *testing.T) {
	trig := intent.And(intent.TickReached(2), intent.TickReached(5))
	require.False(t, evalTrigger(trig, manifest.TickManifest{Tick: 3}))
	require.True(t, evalTrigger(trig, manifest.TickManifest{Tick: 5}))
}

func TestEvalTriggerAndEmptyChildrenFails(t *testing.T) {
	trig := intent.Trigger{Kind: intent.TriggerAnd}
	require.False(t, evalTrigger(trig, manifest.TickManifest{Tick: 99}))
}

func TestEvalTriggerOrRequiresAnyChild(t *testing.T) {
	trig := intent.Or(intent.TickReached(100), intent.TickReached(2))
	require.True(t, evalTrigger(trig, manifest.TickManifest{Tick: 2}))
	require.False(t, evalTrigger(trig, manifest.TickManifest{Tick: 1}))
}

func TestEvalTriggerAfterIsFalseAtSingleTickLayer(t *testing.T) {
	trig := intent.After(intent.TickReached(1), 5)
	require.False(t, evalTrigger(trig, manifest.TickManifest{Tick: 999}))
}
