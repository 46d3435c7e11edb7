package verify

import (
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/nomai-verify/internal/intent"
	"github.com/lox/nomai-verify/internal/manifest"
)

func ballSpawnManifest() manifest.TickManifest {
	return manifest.TickManifest{
		Tick: 0,
		ComponentChanges: []manifest.ComponentChange{
			{EntityId: 1, Component: "identity", OldValue: nil, NewValue: map[string]any{"role": "ball", "entity_type": "ball"}},
		},
	}
}

func TestEngineVerifyDispatchesEntityIntent(t *testing.T) {
	suite := intent.VerificationSuite{
		Name: "smoke",
		Intents: []intent.IntentSpec{
			{Name: "ball exists", Kind: intent.KindEntity, EntityRole: "ball"},
		},
	}
	engine := NewEngine()
	report := engine.Verify(suite, []manifest.TickManifest{ballSpawnManifest()}, nil, nil)

	require.Equal(t, 1, report.Total)
	require.Equal(t, 1, report.Passed)
	require.Equal(t, 0, report.Failed)
	require.Equal(t, 1, report.TicksExamined)
}

func TestEngineVerifyUnknownKindFails(t *testing.T) {
	suite := intent.VerificationSuite{
		Intents: []intent.IntentSpec{{Name: "mystery", Kind: intent.Kind("bogus")}},
	}
	engine := NewEngine()
	report := engine.Verify(suite, nil, nil, nil)

	require.Equal(t, 1, report.Failed)
	require.Contains(t, report.Results[0].FailureReason, "Unknown intent kind")
}

func TestEngineVerifyIsReentrant(t *testing.T) {
	suite := intent.VerificationSuite{
		Intents: []intent.IntentSpec{{Name: "ball exists", Kind: intent.KindEntity, EntityRole: "ball"}},
	}
	engine := NewEngine()
	manifests := []manifest.TickManifest{ballSpawnManifest()}

	first := engine.Verify(suite, manifests, nil, nil)
	second := engine.Verify(suite, manifests, nil, nil)
	require.Equal(t, first.Passed, second.Passed)
	require.Equal(t, first.Failed, second.Failed)
}

func TestEngineVerifyWallTimeMsIsExactUnderMockClock(t *testing.T) {
	suite := intent.VerificationSuite{
		Intents: []intent.IntentSpec{{Name: "ball exists", Kind: intent.KindEntity, EntityRole: "ball"}},
	}
	mockClock := quartz.NewMock(t)
	engine := NewEngineWithClock(mockClock)
	manifests := []manifest.TickManifest{ballSpawnManifest()}

	// The mock clock never advances on its own, so WallTimeMs must come
	// back exactly 0 every time — no flakiness from real wall-clock jitter.
	for i := 0; i < 3; i++ {
		report := engine.Verify(suite, manifests, nil, nil)
		require.Equal(t, int64(0), report.WallTimeMs)
	}
}
