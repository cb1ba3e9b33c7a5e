package app

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriSearch/internal/config"
	"github.com/Rorical/RoriSearch/internal/core"
	"github.com/Rorical/RoriSearch/internal/dispatcher"
	"github.com/Rorical/RoriSearch/internal/eventbus"
	"github.com/Rorical/RoriSearch/internal/llmconfig"
	"github.com/Rorical/RoriSearch/internal/models"
	"github.com/Rorical/RoriSearch/ui/components"
)

const configFetchTimeout = 10 * time.Second

// Application manages the complete application lifecycle
type Application struct {
	config      *config.Config
	fetcher     llmconfig.Fetcher
	eventBus    *eventbus.EventBus
	dispatcher  *dispatcher.EventDispatcher
	service     *core.ResearchService
	model       *AppModel
	programOpts []tea.ProgramOption

	// detected once, while the terminal is still ours
	markdownStyle string
}

func NewApplication(cfg *config.Config, opts ...tea.ProgramOption) *Application {
	a := &Application{
		config:      cfg,
		fetcher:     llmconfig.NewHTTPFetcher(cfg.GetConfigURL(), configFetchTimeout),
		programOpts: opts,

		markdownStyle: components.MarkdownStyle(),
	}
	a.buildSession()
	return a
}

// buildSession creates every piece of per-session state from scratch.
func (a *Application) buildSession() {
	a.eventBus = eventbus.NewEventBus()
	a.eventBus.SetErrorCallback(func(e eventbus.EventBusError) {
		log.Printf("Event bus error: %v", e)
	})
	a.dispatcher = dispatcher.NewEventDispatcher(a.eventBus)
	a.service = core.NewResearchService(a.config, a.eventBus)
	a.model = NewAppModel(models.AppModel{
		SessionID:        a.service.SessionID(),
		Messages:         make([]models.Message, 0),
		Status:           "Ready",
		ChatServiceReady: a.service.IsReady(),
	}, a.dispatcher, a.fetcher, a.markdownStyle)
}

// Start runs the UI until the user quits. A hard reset tears the whole
// session down and starts a fresh program.
func (a *Application) Start() error {
	for {
		a.service.Start()
		log.Printf("Session %s started", a.model.appModel.SessionID)

		p := tea.NewProgram(a.model, a.programOpts...)
		final, err := p.Run()
		if err != nil {
			return err
		}

		m, ok := final.(*AppModel)
		if !ok || !m.ResetRequested() {
			return nil
		}

		log.Printf("Hard reset of session %s", a.model.appModel.SessionID)
		a.Stop()
		a.buildSession()
	}
}

func (a *Application) Stop() {
	a.service.Stop()
	a.dispatcher.Stop()
	a.eventBus.Close()
}
