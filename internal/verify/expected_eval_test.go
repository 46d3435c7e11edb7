package verify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/nomai-verify/internal/intent"
	"github.com/lox/nomai-verify/internal/manifest"
)

func TestEvalExpectedComponentChangedDeltaCheck(t *testing.T) {
	exp := intent.ComponentChanged("ball", "velocity").WithField("dy")
	same := manifest.TickManifest{ComponentChanges: []manifest.ComponentChange{
		{EntityId: 1, Component: "velocity", OldValue: map[string]any{"dy": 2.0}, NewValue: map[string]any{"dy": 2.0}},
	}}
	ok, _ := evalExpected(exp, same)
	require.False(t, ok, "identical old/new field must not satisfy ComponentChanged")

	changed := manifest.TickManifest{ComponentChanges: []manifest.ComponentChange{
		{EntityId: 1, Component: "velocity", OldValue: map[string]any{"dy": 2.0}, NewValue: map[string]any{"dy": -2.0}},
	}}
	ok, evidence := evalExpected(exp, changed)
	require.True(t, ok)
	require.Len(t, evidence, 1)
}

func TestEvalExpectedComponentChangedWithExpectedValue(t *testing.T) {
	exp := intent.ComponentChanged("", "score").WithField("value").WithValue(10.0)
	m := manifest.TickManifest{ComponentChanges: []manifest.ComponentChange{
		{Component: "score", OldValue: map[string]any{"value": 0.0}, NewValue: map[string]any{"value": 10.0}},
	}}
	ok, _ := evalExpected(exp, m)
	require.True(t, ok)

	wrong := manifest.TickManifest{ComponentChanges: []manifest.ComponentChange{
		{Component: "score", OldValue: map[string]any{"value": 0.0}, NewValue: map[string]any{"value": 5.0}},
	}}
	ok, _ = evalExpected(exp, wrong)
	require.False(t, ok)
}

func TestEvalExpectedEntityDespawned(t *testing.T) {
	exp := intent.EntityDespawned("brick_12")
	m := manifest.TickManifest{
		EntityDespawns: []manifest.EntityId{7},
		ComponentChanges: []manifest.ComponentChange{
			{EntityId: 7, Component: "identity", OldValue: map[string]any{"role": "brick_12"}, NewValue: nil},
		},
	}
	ok, _ := evalExpected(exp, m)
	require.True(t, ok)

	noDespawn := manifest.TickManifest{}
	ok, _ = evalExpected(exp, noDespawn)
	require.False(t, ok)
}

func TestEvalExpectedAggregateChanged(t *testing.T) {
	exp := intent.AggregateChanged("brick", "==", 0.0)
	m := manifest.TickManifest{Aggregates: manifest.Aggregates{EntityCountByType: map[string]int{"brick": 0}}}
	ok, _ := evalExpected(exp, m)
	require.True(t, ok)
}

func TestEvalExpectedInState(t *testing.T) {
	exp := intent.InState("door_1", "door_state", "open")
	m := manifest.TickManifest{ComponentChanges: []manifest.ComponentChange{
		{EntityId: 1, Component: "door_state", NewValue: "open", Reason: manifest.CausalReason{Type: manifest.ReasonGameRule, Detail: "door_1"}},
	}}
	ok, _ := evalExpected(exp, m)
	require.True(t, ok)
}

func TestEvalExpectedInStateIgnoresEntityMismatch(t *testing.T) {
	// InState is entity-blind by spec: reason_detail mentioning an
	// unrelated role (and containing a colon) must not make
	// compare.MatchesEntity veto an otherwise-true state transition.
	exp := intent.InState("game", "game_state", "won")
	m := manifest.TickManifest{ComponentChanges: []manifest.ComponentChange{
		{EntityId: 1, Component: "game_state", NewValue: "won", Reason: manifest.CausalReason{Type: manifest.ReasonGameRule, Detail: "rules:win_condition"}},
	}}
	ok, _ := evalExpected(exp, m)
	require.True(t, ok)
}

func TestEvalExpectedEventEmitted(t *testing.T) {
	exp := intent.EventEmitted("explosion", "barrel_1")
	m := manifest.TickManifest{Events: []manifest.GameEvent{
		{EventType: "explosion", Description: "barrel_1 exploded"},
	}}
	ok, _ := evalExpected(exp, m)
	require.True(t, ok)
}

func TestEvalExpectedValueRelationSignFlipped(t *testing.T) {
	exp := intent.ValueRelation("ball", "velocity", "dy", intent.RelationSignFlipped, 0)
	m := manifest.TickManifest{ComponentChanges: []manifest.ComponentChange{
		{EntityId: 1, Component: "velocity", OldValue: map[string]any{"dy": 3.0}, NewValue: map[string]any{"dy": -3.0}},
	}}
	ok, evidence := evalExpected(exp, m)
	require.True(t, ok)
	require.Len(t, evidence, 1)
}

func TestEvalExpectedValueRelationMagnitudePreserved(t *testing.T) {
	exp := intent.ValueRelation("ball", "velocity", "dy", intent.RelationMagnitudePreserved, 0.05)
	m := manifest.TickManifest{ComponentChanges: []manifest.ComponentChange{
		{EntityId: 1, Component: "velocity", OldValue: map[string]any{"dy": 4.0}, NewValue: map[string]any{"dy": 4.02}},
	}}
	ok, _ := evalExpected(exp, m)
	require.True(t, ok)

	blown := manifest.TickManifest{ComponentChanges: []manifest.ComponentChange{
		{EntityId: 1, Component: "velocity", OldValue: map[string]any{"dy": 4.0}, NewValue: map[string]any{"dy": -9.0}},
	}}
	ok, _ = evalExpected(exp, blown)
	require.False(t, ok)
}

func TestEvalExpectedAllRequiresEveryChild(t *testing.T) {
	exp := intent.All(
		intent.AggregateChanged("brick", "==", 0.0),
		intent.EventEmitted("level_complete"),
	)
	m := manifest.TickManifest{
		Aggregates: manifest.Aggregates{EntityCountByType: map[string]int{"brick": 0}},
		Events:     []manifest.GameEvent{{EventType: "level_complete"}},
	}
	ok, _ := evalExpected(exp, m)
	require.True(t, ok)

	partial := manifest.TickManifest{Aggregates: manifest.Aggregates{EntityCountByType: map[string]int{"brick": 0}}}
	ok, _ = evalExpected(exp, partial)
	require.False(t, ok)
}

func TestEvalExpectedAnySatisfiedByOneChild(t *testing.T) {
	exp := intent.Any(
		intent.EventEmitted("never_happens"),
		intent.AggregateChanged("brick", "==", 0.0),
	)
	m := manifest.TickManifest{Aggregates: manifest.Aggregates{EntityCountByType: map[string]int{"brick": 0}}}
	ok, _ := evalExpected(exp, m)
	require.True(t, ok)
}
