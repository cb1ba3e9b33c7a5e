package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSearch/internal/models"
)

func TestStartQueryRejectsWhileProcessing(t *testing.T) {
	s := NewSessionState()

	id := s.StartQuery("first", models.EffortLow, "m")
	require.NotEmpty(t, id)
	assert.True(t, s.IsProcessing())
	assert.True(t, s.HasHistory())

	assert.Empty(t, s.StartQuery("second", models.EffortLow, "m"))
	assert.Len(t, s.GetChatHistory(), 1)
}

func TestFinishWithAnswerRequiresActiveRequest(t *testing.T) {
	s := NewSessionState()
	id := s.StartQuery("q", models.EffortMedium, "m")

	assert.False(t, s.FinishWithAnswer("someone-else", "nope"))
	assert.True(t, s.IsProcessing())

	assert.True(t, s.FinishWithAnswer(id, "answer"))
	assert.False(t, s.IsProcessing())

	msgs := s.GetMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, models.User, msgs[0].Type)
	assert.Equal(t, models.EffortMedium, msgs[0].Effort)
	assert.Equal(t, "m", msgs[0].Model)
	assert.Equal(t, models.Assistant, msgs[1].Type)
	assert.Equal(t, "answer", msgs[1].Content)
}

func TestCancelDropsLateCompletion(t *testing.T) {
	s := NewSessionState()
	id := s.StartQuery("q", models.EffortHigh, "m")

	cancelled, ok := s.Cancel()
	require.True(t, ok)
	assert.Equal(t, id, cancelled)
	assert.False(t, s.IsProcessing())

	assert.False(t, s.FinishWithAnswer(id, "too late"))
	assert.False(t, s.FinishWithError(id, errors.New("too late")))
	assert.NoError(t, s.GetLastError())

	_, ok = s.Cancel()
	assert.False(t, ok)
}

func TestFinishWithError(t *testing.T) {
	s := NewSessionState()
	id := s.StartQuery("q", models.EffortHigh, "m")

	boom := errors.New("boom")
	assert.True(t, s.FinishWithError(id, boom))
	assert.Equal(t, boom, s.GetLastError())
	assert.False(t, s.IsProcessing())
}
