package components

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/Rorical/RoriSearch/internal/llmconfig"
	"github.com/Rorical/RoriSearch/internal/models"
	"github.com/Rorical/RoriSearch/ui/styles"
)

const (
	inputPlaceholder   = "Who won the Euro 2024 and scored the most goals?"
	noModelsText       = "No models available. Check config."
	loadingModelsText  = "Loading models..."
	submitLabel        = "Search ➤"
	stopLabel          = "■ Stop"
	newSessionLabel    = "✎ New Search"
	actionColumnWidth  = 12
	defaultInputWidth  = 80
	textareaMinWidth   = 10
	textareaInputLines = 3
)

// SubmitFunc receives the raw query text, the chosen effort and model id.
// It reports whether the query was accepted; a rejected query stays in the field.
type SubmitFunc func(query string, effort models.Effort, model string) bool

// CancelFunc aborts the in-flight request.
type CancelFunc func()

// HardResetMsg asks the host to discard every piece of client state and
// start over from scratch.
type HardResetMsg struct{}

type configLoadedMsg struct {
	mountID string
	config  *llmconfig.LLMConfig
	err     error
}

// InputForm is the query box: free text, effort and model selectors,
// search/stop control and the new-search control.
type InputForm struct {
	textarea textarea.Model
	spinner  spinner.Model
	help     help.Model
	keys     FormKeyMap

	fetcher  llmconfig.Fetcher
	onSubmit SubmitFunc
	onCancel CancelFunc

	effort   models.Effort
	model    string
	provider string
	options  []llmconfig.ModelOption

	// configLoaded is set once the configuration fetch has finished,
	// successfully or not.
	configLoaded bool
	// loading mirrors the caller's "request in flight" flag.
	loading    bool
	hasHistory bool

	mountID string
	mounted bool
	ctx     context.Context
	stop    context.CancelFunc
	width   int
}

func NewInputForm(fetcher llmconfig.Fetcher, onSubmit SubmitFunc, onCancel CancelFunc) *InputForm {
	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.Prompt = "┃ "
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetHeight(textareaInputLines)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	keys := DefaultFormKeyMap()
	ta.KeyMap.InsertNewline = keys.Newline
	ta.Focus()

	f := &InputForm{
		textarea: ta,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:     help.New(),
		keys:     keys,
		fetcher:  fetcher,
		onSubmit: onSubmit,
		onCancel: onCancel,
		effort:   models.DefaultEffort,
	}
	f.SetWidth(defaultInputWidth)
	f.syncKeys()
	return f
}

// Init mounts the form and starts the one configuration fetch of this mount.
func (f *InputForm) Init() tea.Cmd {
	if f.stop != nil {
		f.stop()
	}
	f.ctx, f.stop = context.WithCancel(context.Background())
	f.mountID = uuid.NewString()
	f.mounted = true
	f.configLoaded = false
	f.provider = ""
	f.options = nil
	f.model = ""
	f.syncKeys()

	return tea.Batch(textarea.Blink, f.spinner.Tick, f.loadConfig())
}

// Unmount cancels a pending configuration fetch; its result is dropped.
func (f *InputForm) Unmount() {
	if f.stop != nil {
		f.stop()
		f.stop = nil
	}
	f.mounted = false
	f.textarea.Blur()
}

func (f *InputForm) loadConfig() tea.Cmd {
	ctx, mountID, fetcher := f.ctx, f.mountID, f.fetcher
	return func() tea.Msg {
		if fetcher == nil {
			return configLoadedMsg{mountID: mountID, err: fmt.Errorf("no configuration source")}
		}
		cfg, err := fetcher.Fetch(ctx)
		return configLoadedMsg{mountID: mountID, config: cfg, err: err}
	}
}

func (f *InputForm) applyConfig(msg configLoadedMsg) {
	if !f.mounted || msg.mountID != f.mountID {
		return
	}
	f.configLoaded = true
	defer f.syncKeys()

	if msg.err != nil {
		log.Printf("Failed to fetch LLM configuration: %v", msg.err)
		return
	}
	if msg.config == nil {
		return
	}

	f.provider = msg.config.LLMProvider
	f.options = llmconfig.ModelOptions(*msg.config)
	if len(f.options) > 0 {
		f.model = f.options[0].Value
	}
}

func (f *InputForm) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case configLoadedMsg:
		f.applyConfig(msg)
		return nil
	case spinner.TickMsg:
		if f.configLoaded {
			return nil
		}
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, f.keys.Submit):
			return f.Submit()
		case key.Matches(msg, f.keys.Cancel):
			f.Cancel()
			return nil
		case key.Matches(msg, f.keys.NextEffort):
			f.SetEffort(f.effort.Next())
			return nil
		case key.Matches(msg, f.keys.NextModel):
			f.CycleModel()
			return nil
		case key.Matches(msg, f.keys.NewSession):
			return f.HardReset()
		}
	}

	var cmd tea.Cmd
	f.textarea, cmd = f.textarea.Update(msg)
	f.syncKeys()
	return cmd
}

// Submit hands the query to the submit callback and clears the field once
// accepted. It is a no-op for blank text or while a request is in flight.
func (f *InputForm) Submit() tea.Cmd {
	value := f.textarea.Value()
	if strings.TrimSpace(value) == "" || f.loading {
		return nil
	}
	if f.onSubmit != nil && !f.onSubmit(value, f.effort, f.model) {
		return nil
	}
	f.textarea.Reset()
	f.syncKeys()
	return nil
}

// Cancel invokes the cancel callback while a request is in flight.
func (f *InputForm) Cancel() {
	if !f.loading {
		return
	}
	if f.onCancel != nil {
		f.onCancel()
	}
}

// HardReset emits HardResetMsg. Only available once there is history.
func (f *InputForm) HardReset() tea.Cmd {
	if !f.hasHistory {
		return nil
	}
	return func() tea.Msg { return HardResetMsg{} }
}

func (f *InputForm) SetEffort(effort models.Effort) bool {
	if _, err := models.ParseEffort(string(effort)); err != nil {
		return false
	}
	f.effort = effort
	return true
}

// SelectModel accepts only one of the loaded options.
func (f *InputForm) SelectModel(value string) bool {
	if !f.modelSelectable() {
		return false
	}
	for _, opt := range f.options {
		if opt.Value == value {
			f.model = value
			return true
		}
	}
	return false
}

func (f *InputForm) CycleModel() {
	if !f.modelSelectable() {
		return
	}
	next := 0
	for i, opt := range f.options {
		if opt.Value == f.model {
			next = (i + 1) % len(f.options)
			break
		}
	}
	f.model = f.options[next].Value
}

func (f *InputForm) modelSelectable() bool {
	return f.configLoaded && len(f.options) > 0
}

func (f *InputForm) SetLoading(loading bool) {
	f.loading = loading
	f.syncKeys()
}

func (f *InputForm) SetHasHistory(hasHistory bool) {
	f.hasHistory = hasHistory
	f.syncKeys()
}

func (f *InputForm) SetWidth(width int) {
	f.width = width
	f.help.Width = width
	// border and padding take 6 columns, the action button the rest
	f.textarea.SetWidth(max(textareaMinWidth, width-6-actionColumnWidth))
}

func (f *InputForm) SetValue(value string) {
	f.textarea.SetValue(value)
	f.syncKeys()
}

func (f *InputForm) Value() string { return f.textarea.Value() }
func (f *InputForm) Effort() models.Effort { return f.effort }
func (f *InputForm) Model() string { return f.model }
func (f *InputForm) Provider() string { return f.provider }
func (f *InputForm) ConfigLoaded() bool { return f.configLoaded }
func (f *InputForm) Loading() bool { return f.loading }
func (f *InputForm) HasHistory() bool { return f.hasHistory }
func (f *InputForm) ShowsCancel() bool { return f.loading }
func (f *InputForm) KeyMap() FormKeyMap { return f.keys }
func (f *InputForm) Options() []llmconfig.ModelOption {
	out := make([]llmconfig.ModelOption, len(f.options))
	copy(out, f.options)
	return out
}

func (f *InputForm) submitEnabled() bool {
	return !f.loading && strings.TrimSpace(f.textarea.Value()) != ""
}

// syncKeys keeps binding availability, and therefore the help line, in step with state.
func (f *InputForm) syncKeys() {
	f.keys.Submit.SetEnabled(!f.loading)
	f.keys.Cancel.SetEnabled(f.loading)
	f.keys.NextModel.SetEnabled(f.modelSelectable())
	f.keys.NewSession.SetEnabled(f.hasHistory)
}

func (f *InputForm) View() string {
	var b strings.Builder

	var action string
	if f.loading {
		action = styles.StopStyle().Render(stopLabel)
	} else {
		action = styles.SubmitStyle(f.submitEnabled()).Render(submitLabel)
	}
	box := lipgloss.JoinHorizontal(lipgloss.Top, f.textarea.View(), " ", action)
	b.WriteString(styles.InputStyle(f.width).Render(box))
	b.WriteString("\n")

	selectors := lipgloss.JoinHorizontal(lipgloss.Top, f.effortView(), f.modelView())
	if f.hasHistory {
		reset := styles.NewSessionStyle().Render(newSessionLabel)
		gap := f.width - lipgloss.Width(selectors) - lipgloss.Width(reset)
		if gap < 1 {
			gap = 1
		}
		selectors += strings.Repeat(" ", gap) + reset
	}
	b.WriteString(selectors)
	b.WriteString("\n")
	b.WriteString(f.help.View(f.keys))

	return b.String()
}

func (f *InputForm) effortView() string {
	label := styles.SelectorLabelStyle().Render("Effort ")
	value := styles.EffortValueStyle().Render(f.effort.Title())
	return styles.SelectorStyle().Render(label + value)
}

func (f *InputForm) modelView() string {
	title := "Model"
	if f.provider != "" {
		title += " (" + llmconfig.ProviderTitle(f.provider) + ")"
	}
	label := styles.SelectorLabelStyle().Render(title + " ")

	var value string
	switch {
	case !f.configLoaded:
		value = styles.DisabledStyle().Render(f.spinner.View() + " " + loadingModelsText)
	case len(f.options) == 0:
		value = styles.DisabledStyle().Render(noModelsText)
	default:
		labels := make([]string, 0, len(f.options))
		for _, opt := range f.options {
			if opt.Value == f.model {
				labels = append(labels, styles.ModelValueStyle().Render("● "+opt.Label))
			} else {
				labels = append(labels, styles.SelectorLabelStyle().Render("○ "+opt.Label))
			}
		}
		value = strings.Join(labels, styles.SelectorLabelStyle().Render("  "))
	}
	return styles.SelectorStyle().Render(label + value)
}
