package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriSearch/internal/dispatcher"
	"github.com/Rorical/RoriSearch/internal/eventbus"
	"github.com/Rorical/RoriSearch/internal/llmconfig"
	"github.com/Rorical/RoriSearch/internal/models"
	"github.com/Rorical/RoriSearch/internal/update"
	"github.com/Rorical/RoriSearch/ui/components"
)

type AppModel struct {
	appModel       models.AppModel
	dispatcher     *dispatcher.EventDispatcher
	form           *components.InputForm
	markdown       *components.MarkdownRenderer
	resetRequested bool
}

func NewAppModel(state models.AppModel, disp *dispatcher.EventDispatcher, fetcher llmconfig.Fetcher, markdownStyle string) *AppModel {
	m := &AppModel{
		appModel:   state,
		dispatcher: disp,
		markdown:   components.NewMarkdownRenderer(markdownStyle),
	}
	m.form = components.NewInputForm(fetcher, m.submitQuery, m.cancelQuery)
	return m
}

// submitQuery marks the request in flight right away so a second submit is
// rejected before core answers.
func (m *AppModel) submitQuery(query string, effort models.Effort, model string) bool {
	err := m.dispatcher.GetEventBus().SendToCore(eventbus.SubmitQueryEvent{
		Query:  query,
		Effort: effort,
		Model:  model,
	})
	if err != nil {
		m.appModel.Status = "Error sending query: " + err.Error()
		return false
	}
	m.appModel.Loading = true
	m.appModel.Status = "Searching"
	m.form.SetLoading(true)
	return true
}

func (m *AppModel) cancelQuery() {
	if err := m.dispatcher.GetEventBus().SendToCore(eventbus.CancelQueryEvent{}); err != nil {
		m.appModel.Status = "Error cancelling query: " + err.Error()
	}
}

// ResetRequested reports whether the program ended because of a hard reset.
func (m *AppModel) ResetRequested() bool {
	return m.resetRequested
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.dispatcher.ListenForCoreEvents(),
		m.form.Init(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case update.CoreEventMsg:
		update.HandleCoreEvent(&m.appModel, msg)
		m.form.SetLoading(m.appModel.Loading)
		m.form.SetHasHistory(m.appModel.HasHistory)
		return m, m.dispatcher.ListenForCoreEvents()
	case components.HardResetMsg:
		m.resetRequested = true
		m.form.Unmount()
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.form.Unmount()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		update.HandleWindowSizeMsg(&m.appModel, msg)
		m.form.SetWidth(msg.Width)
		return m, nil
	case update.TickMsg:
		return m, update.HandleTickMsg(&m.appModel)
	}

	return m, m.form.Update(msg)
}

func (m *AppModel) View() string {
	var b strings.Builder

	b.WriteString(components.RenderMessages(m.appModel.Messages, m.markdown, m.appModel.Width))
	b.WriteString(m.form.View())
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(m.appModel.Status, m.appModel.Loading, m.appModel.LoadingDots, m.appModel.Width))

	return b.String()
}
