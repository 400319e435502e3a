package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileUpdatedRoundTrip(t *testing.T) {
	data, err := NewProfileUpdated("guest:42", []string{"playerXScore", "playerOScore"})
	require.NoError(t, err)

	payload, ok, err := DecodeProfileUpdated(data)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "guest:42", payload.ProfileID)
	assert.ElementsMatch(t, []string{"playerOScore", "playerXScore"}, payload.Keys)
}

func TestDecodeProfileUpdated_OtherEvent(t *testing.T) {
	_, ok, err := DecodeProfileUpdated([]byte(`{"event":"something_else","payload":{}}`))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodeProfileUpdated_Garbage(t *testing.T) {
	_, ok, err := DecodeProfileUpdated([]byte(`not json`))
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestProfileChannel(t *testing.T) {
	assert.Equal(t, "channel:profile:user:7", ProfileChannel("user:7"))
}
