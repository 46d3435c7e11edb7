package compare

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/nomai-verify/internal/manifest"
)

func TestNumericOperators(t *testing.T) {
	require.True(t, Numeric(5, "==", 5))
	require.True(t, Numeric(5, "!=", 6))
	require.True(t, Numeric(5, "<", 6))
	require.True(t, Numeric(5, "<=", 5))
	require.True(t, Numeric(6, ">", 5))
	require.True(t, Numeric(5, ">=", 5))
	require.False(t, Numeric(5, "~=", 5))
}

func TestNumericNaNAlwaysFalse(t *testing.T) {
	nan := math.NaN()
	for _, op := range []string{"==", "!=", "<", "<=", ">", ">="} {
		require.False(t, Numeric(nan, op, 1), "op %s", op)
		require.False(t, Numeric(1, op, nan), "op %s", op)
	}
}

func TestStringOperators(t *testing.T) {
	require.True(t, String("won", "==", "won"))
	require.True(t, String("won", "!=", "lost"))
	require.False(t, String("won", "<", "lost"))
}

func TestFieldExtraction(t *testing.T) {
	m := map[string]any{"dx": 5.0, "dy": 3.0}
	require.Equal(t, 5.0, Field(m, "dx"))
	require.Equal(t, m, Field(m, ""))
	require.Nil(t, Field(m, "missing"))
	require.Nil(t, Field(5.0, "dx"))
}

func TestAsFloat64(t *testing.T) {
	v, ok := AsFloat64(5)
	require.True(t, ok)
	require.Equal(t, 5.0, v)

	_, ok = AsFloat64("five")
	require.False(t, ok)
}

func TestMatchesEntityByID(t *testing.T) {
	change := manifest.ComponentChange{EntityId: 42}
	require.True(t, MatchesEntity(change, "42"))
	require.False(t, MatchesEntity(change, "43"))
}

func TestMatchesEntitySubstringHit(t *testing.T) {
	change := manifest.ComponentChange{Reason: manifest.GameRule("the Ball bounced")}
	require.True(t, MatchesEntity(change, "ball"))
}

func TestMatchesEntityColonNegative(t *testing.T) {
	change := manifest.ComponentChange{Reason: manifest.GameRule("ball:brick")}
	require.False(t, MatchesEntity(change, "paddle"))
}

func TestMatchesEntityPermissiveFallback(t *testing.T) {
	change := manifest.ComponentChange{Reason: manifest.GameRule("no identifying detail here")}
	require.True(t, MatchesEntity(change, "paddle"))
}
