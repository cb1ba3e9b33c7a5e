package eventbus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSearch/internal/models"
)

func TestSendToCoreDelivers(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	want := SubmitQueryEvent{Query: "who won euro 2024?", Effort: models.EffortHigh, Model: "gemini-2.5-pro"}
	require.NoError(t, eb.SendToCore(want))

	got := <-eb.UIToCore()
	assert.Equal(t, want, got)
}

func TestSendToUIDelivers(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	require.NoError(t, eb.SendToUI(StateUpdateEvent{IsProcessing: true}))

	got := (<-eb.CoreToUI()).(StateUpdateEvent)
	assert.True(t, got.IsProcessing)
}

func TestFullChannelOpensCircuit(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(e EventBusError) { reported = append(reported, e) })

	for i := 0; i < cap(eb.uiToCore); i++ {
		require.NoError(t, eb.SendToCore(CancelQueryEvent{}))
	}

	for i := 0; i < 5; i++ {
		err := eb.SendToCore(CancelQueryEvent{})
		assert.True(t, errors.Is(err, ErrChannelFull))
	}
	assert.Equal(t, CircuitOpen, eb.GetCircuitBreakerState())

	err := eb.SendToCore(CancelQueryEvent{})
	assert.True(t, errors.Is(err, ErrCircuitOpen))
	assert.Len(t, reported, 6)
	assert.Equal(t, "SendToCore", reported[0].Operation)
}

func TestCircuitBreakerHalfOpensAfterTimeout(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute)
	now := time.Now()
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	assert.False(t, cb.IsOpen())
	cb.RecordFailure()
	assert.True(t, cb.IsOpen())

	now = now.Add(2 * time.Minute)
	assert.False(t, cb.IsOpen())
	assert.Equal(t, CircuitHalfOpen, cb.State())

	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestSendAfterClose(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	eb.Close()

	assert.ErrorIs(t, eb.SendToCore(CancelQueryEvent{}), ErrBusClosed)
	assert.ErrorIs(t, eb.SendToUI(StateUpdateEvent{}), ErrBusClosed)
}
