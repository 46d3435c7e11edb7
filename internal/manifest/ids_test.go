package manifest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntityIdUnmarshalBareInteger(t *testing.T) {
	var id EntityId
	require.NoError(t, json.Unmarshal([]byte(`42`), &id))
	require.Equal(t, EntityId(42), id)
}

func TestEntityIdUnmarshalWrappedInteger(t *testing.T) {
	var id EntityId
	require.NoError(t, json.Unmarshal([]byte(`{"0":42}`), &id))
	require.Equal(t, EntityId(42), id)
}

func TestSystemIdRoundTrip(t *testing.T) {
	data, err := json.Marshal(SystemGuestCodeLoader)
	require.NoError(t, err)
	require.Equal(t, "100", string(data))

	var s SystemId
	require.NoError(t, json.Unmarshal(data, &s))
	require.Equal(t, SystemGuestCodeLoader, s)
}
