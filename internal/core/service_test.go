package core

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSearch/internal/config"
	"github.com/Rorical/RoriSearch/internal/eventbus"
	"github.com/Rorical/RoriSearch/internal/models"
)

type capturedRequest struct {
	Model           string `json:"model"`
	ReasoningEffort string `json:"reasoning_effort"`
	Messages        []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func fakeOpenAI(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *config.Config {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)
	return config.NewConfig("test", config.Profile{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 0,
		"model":   "test",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	})
}

// waitForState drains state updates until one satisfies cond.
func waitForState(t *testing.T, eb *eventbus.EventBus, cond func(eventbus.StateUpdateEvent) bool) eventbus.StateUpdateEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-eb.CoreToUI():
			update, ok := ev.(eventbus.StateUpdateEvent)
			if ok && cond(update) {
				return update
			}
		case <-timeout:
			t.Fatal("timed out waiting for state update")
		}
	}
}

func TestSubmitQueryProducesAnswer(t *testing.T) {
	var mu sync.Mutex
	var got capturedRequest
	cfg := fakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		mu.Lock()
		json.NewDecoder(r.Body).Decode(&got)
		mu.Unlock()
		writeCompletion(w, "Spain won Euro 2024.")
	})

	eb := eventbus.NewEventBus()
	svc := NewResearchService(cfg, eb)
	require.True(t, svc.IsReady())
	svc.Start()
	defer svc.Stop()

	require.NoError(t, eb.SendToCore(eventbus.SubmitQueryEvent{
		Query:  "Who won the Euro 2024?",
		Effort: models.EffortHigh,
		Model:  "gemini-2.5-pro",
	}))

	busy := waitForState(t, eb, func(u eventbus.StateUpdateEvent) bool { return u.IsProcessing })
	assert.True(t, busy.HasHistory)

	done := waitForState(t, eb, func(u eventbus.StateUpdateEvent) bool { return !u.IsProcessing })
	require.NoError(t, done.Error)
	require.Len(t, done.Messages, 1)
	assert.Equal(t, models.Assistant, done.Messages[0].Type)
	assert.Equal(t, "Spain won Euro 2024.", done.Messages[0].Content)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "gemini-2.5-pro", got.Model)
	assert.Equal(t, "high", got.ReasoningEffort)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "Who won the Euro 2024?", got.Messages[1].Content)
}

func TestCancelQueryAbortsRequest(t *testing.T) {
	started := make(chan struct{})
	cfg := fakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		// the server only notices the client going away once the body is consumed
		io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	})

	eb := eventbus.NewEventBus()
	svc := NewResearchService(cfg, eb)
	svc.Start()
	defer svc.Stop()

	require.NoError(t, eb.SendToCore(eventbus.SubmitQueryEvent{Query: "slow", Effort: models.EffortLow, Model: "m"}))
	waitForState(t, eb, func(u eventbus.StateUpdateEvent) bool { return u.IsProcessing })

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached server")
	}

	require.NoError(t, eb.SendToCore(eventbus.CancelQueryEvent{}))
	done := waitForState(t, eb, func(u eventbus.StateUpdateEvent) bool { return !u.IsProcessing })

	assert.NoError(t, done.Error)
	require.Len(t, done.Messages, 1)
	assert.Equal(t, "Request cancelled", done.Messages[0].Content)
}

func TestSubmitWithoutAPIKeyReportsError(t *testing.T) {
	cfg := config.NewConfig("empty", config.Profile{})
	eb := eventbus.NewEventBus()
	svc := NewResearchService(cfg, eb)
	assert.False(t, svc.IsReady())
	svc.Start()
	defer svc.Stop()

	welcome := waitForState(t, eb, func(u eventbus.StateUpdateEvent) bool { return len(u.Messages) > 0 })
	assert.Contains(t, welcome.Messages[1].Content, "NOT CONFIGURED")

	require.NoError(t, eb.SendToCore(eventbus.SubmitQueryEvent{Query: "q", Effort: models.EffortMedium, Model: "m"}))
	done := waitForState(t, eb, func(u eventbus.StateUpdateEvent) bool { return !u.IsProcessing && u.Error != nil })
	assert.ErrorIs(t, done.Error, ErrNoClient)
}

func TestAPIErrorIsReported(t *testing.T) {
	cfg := fakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"unknown model","type":"invalid_request_error"}}`))
	})

	eb := eventbus.NewEventBus()
	svc := NewResearchService(cfg, eb)
	svc.Start()
	defer svc.Stop()

	require.NoError(t, eb.SendToCore(eventbus.SubmitQueryEvent{Query: "q", Effort: models.EffortMedium, Model: "nope"}))
	done := waitForState(t, eb, func(u eventbus.StateUpdateEvent) bool { return !u.IsProcessing && u.Error != nil })
	assert.Contains(t, done.Error.Error(), "OpenAI API error")
}
