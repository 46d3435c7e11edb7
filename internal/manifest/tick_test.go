package manifest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTickManifestRoundTrip(t *testing.T) {
	m := TickManifest{
		Tick:    3,
		SimTime: 0.05,
		EntitySpawns: []EntityId{1},
		ComponentChanges: []ComponentChange{
			{
				EntityId:     1,
				Component:    "velocity",
				OldValue:     map[string]any{"dx": -5.0, "dy": 3.0},
				NewValue:     map[string]any{"dx": 5.0, "dy": 3.0},
				ChangedBy:    SystemGuestCodeLoader,
				Reason:       CollisionResponse("ball", "wall"),
				CommandIndex: 0,
				Tick:         3,
			},
		},
		Events: []GameEvent{
			{EventType: "collision", Description: "ball hit wall", Reason: GameRule("ball:wall"), Tick: 3},
		},
		Aggregates: Aggregates{
			EntityCountByTier: map[string]int{"dynamic": 1},
			EntityCountByType: map[string]int{"ball": 1},
			TotalEntityCount:  1,
			Custom:            map[string]float64{"score": 10},
		},
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var got TickManifest
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, m.Tick, got.Tick)
	require.Equal(t, m.ComponentChanges[0].Reason, got.ComponentChanges[0].Reason)
	require.Equal(t, m.Aggregates, got.Aggregates)
}

func TestAggregatesInvariant(t *testing.T) {
	a := Aggregates{
		EntityCountByTier: map[string]int{"dynamic": 2, "static": 3},
		TotalEntityCount:  5,
	}
	require.Equal(t, a.TotalEntityCount, a.CountByTierSum())
}

func TestChangesForComponentPreservesOrder(t *testing.T) {
	m := TickManifest{ComponentChanges: []ComponentChange{
		{Component: "position", CommandIndex: 0},
		{Component: "velocity", CommandIndex: 1},
		{Component: "position", CommandIndex: 2},
	}}
	got := m.ChangesForComponent("position")
	require.Len(t, got, 2)
	require.Equal(t, 0, got[0].CommandIndex)
	require.Equal(t, 2, got[1].CommandIndex)
}
