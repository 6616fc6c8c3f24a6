package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	env, err := NewEnvelope("hotel-booking", EventBookingCreated, "b-1", map[string]any{"roomId": "r-1"})
	require.NoError(t, err)

	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, EventBookingCreated, env.EventType)
	assert.Equal(t, 1, env.EventVersion)
	assert.Equal(t, "b-1", env.CorrelationID)
	assert.False(t, env.OccurredAt.IsZero())

	var payload map[string]string
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "r-1", payload["roomId"])
}

func TestNewEnvelopeRejectsUnencodablePayload(t *testing.T) {
	_, err := NewEnvelope("hotel-booking", EventBookingCreated, "b-1", make(chan int))
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.Publish(context.Background(), EventBookingDeleted, "b-1", nil))
	assert.NoError(t, p.Close())
}
