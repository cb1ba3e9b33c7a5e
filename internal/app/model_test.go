package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSearch/internal/config"
	"github.com/Rorical/RoriSearch/internal/dispatcher"
	"github.com/Rorical/RoriSearch/internal/eventbus"
	"github.com/Rorical/RoriSearch/internal/llmconfig"
	"github.com/Rorical/RoriSearch/internal/models"
	"github.com/Rorical/RoriSearch/internal/update"
	"github.com/Rorical/RoriSearch/ui/components"
)

type staticFetcher struct{ cfg llmconfig.LLMConfig }

func (s staticFetcher) Fetch(ctx context.Context) (*llmconfig.LLMConfig, error) {
	cfg := s.cfg
	return &cfg, nil
}

func newTestModel(t *testing.T) (*AppModel, *eventbus.EventBus) {
	t.Helper()
	eb := eventbus.NewEventBus()
	t.Cleanup(eb.Close)
	disp := dispatcher.NewEventDispatcher(eb)
	t.Cleanup(disp.Stop)

	m := NewAppModel(models.AppModel{Status: "Ready"}, disp, staticFetcher{cfg: llmconfig.LLMConfig{
		LLMProvider:               "gemini",
		GeminiQueryGeneratorModel: "gemini-2.0-flash",
		GeminiReflectionModel:     "gemini-2.5-flash",
		GeminiAnswerModel:         "gemini-2.5-pro",
	}}, glamourstyles.NoTTYStyle)
	return m, eb
}

func TestSubmitFromFormReachesCore(t *testing.T) {
	m, eb := newTestModel(t)
	m.form.Init()

	m.form.SetValue("Who won the Euro 2024?")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	select {
	case ev := <-eb.UIToCore():
		submit, ok := ev.(eventbus.SubmitQueryEvent)
		require.True(t, ok)
		assert.Equal(t, "Who won the Euro 2024?", submit.Query)
		assert.Equal(t, models.EffortMedium, submit.Effort)
	default:
		t.Fatal("no event sent to core")
	}
}

func TestBackToBackSubmitsKeepSecondQuery(t *testing.T) {
	m, eb := newTestModel(t)
	m.form.Init()

	m.form.SetValue("first question")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.form.SetValue("second question")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, eb.UIToCore(), 1)
	ev := <-eb.UIToCore()
	assert.Equal(t, "first question", ev.(eventbus.SubmitQueryEvent).Query)
	assert.True(t, m.form.Loading())
	assert.Equal(t, "second question", m.form.Value())
	assert.Equal(t, "Searching", m.appModel.Status)
}

func TestSubmitFailureKeepsQuery(t *testing.T) {
	m, eb := newTestModel(t)
	m.form.Init()
	eb.Close()

	m.form.SetValue("Who won the Euro 2024?")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "Who won the Euro 2024?", m.form.Value())
	assert.False(t, m.form.Loading())
	assert.Contains(t, m.appModel.Status, "Error sending query")
}

func TestCoreStateDrivesFormProps(t *testing.T) {
	m, eb := newTestModel(t)

	m.Update(update.CoreEventMsg{Event: eventbus.StateUpdateEvent{
		Messages:     []models.Message{{Content: "q", Type: models.User}},
		IsProcessing: true,
		HasHistory:   true,
	}})
	assert.True(t, m.form.Loading())
	assert.True(t, m.form.HasHistory())
	assert.Contains(t, m.View(), "Stop")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	select {
	case ev := <-eb.UIToCore():
		assert.Equal(t, eventbus.CancelQueryEvent{}, ev)
	default:
		t.Fatal("cancel was not forwarded")
	}
}

func TestHardResetQuitsProgram(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(components.HardResetMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.ResetRequested())
}

func TestCtrlCQuitsWithoutReset(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.ResetRequested())
}

func TestNewApplicationBuildsFreshSessions(t *testing.T) {
	cfg := config.NewConfig("test", config.Profile{ConfigURL: "http://127.0.0.1:1/api/llm-config"})
	a := NewApplication(cfg)
	first := a.model.appModel.SessionID
	require.NotEmpty(t, first)

	a.Stop()
	a.buildSession()
	defer a.Stop()

	assert.NotEqual(t, first, a.model.appModel.SessionID)
	assert.False(t, a.model.appModel.ChatServiceReady)
}
