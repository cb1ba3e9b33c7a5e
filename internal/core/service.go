package core

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/RoriSearch/internal/config"
	"github.com/Rorical/RoriSearch/internal/eventbus"
	"github.com/Rorical/RoriSearch/internal/models"
)

// ErrNoClient is reported when the active profile has no API key.
var ErrNoClient = fmt.Errorf("OpenAI integration not available")

var effortPrompts = map[models.Effort]string{
	models.EffortLow:    "Answer briefly from what you already know. One short paragraph is enough.",
	models.EffortMedium: "Answer the question thoroughly, citing the facts you rely on.",
	models.EffortHigh:   "Research the question in depth: break it into sub-questions, reflect on gaps in your knowledge, then give a complete, well-structured answer.",
}

// ResearchService answers queries submitted through the input form.
type ResearchService struct {
	client   *openai.Client
	config   *config.Config
	state    *SessionState
	eventBus *eventbus.EventBus
	ctx      context.Context
	cancel   context.CancelFunc

	mu            sync.Mutex
	inflight      context.CancelFunc
	lastSentCount int // Track how many messages we've sent to UI
	wg            sync.WaitGroup
}

// NewResearchService creates a service regardless of config validity so the
// UI always has something to talk to.
func NewResearchService(cfg *config.Config, eb *eventbus.EventBus) *ResearchService {
	var client *openai.Client
	if cfg.IsValid() {
		clientConfig := openai.DefaultConfig(cfg.GetAPIKey())
		if cfg.GetBaseURL() != "" {
			clientConfig.BaseURL = cfg.GetBaseURL()
		}
		client = openai.NewClientWithConfig(clientConfig)
	}

	ctx, cancel := context.WithCancel(context.Background())
	service := &ResearchService{
		client:   client,
		config:   cfg,
		state:    NewSessionState(),
		eventBus: eb,
		ctx:      ctx,
		cancel:   cancel,
	}
	service.addWelcomeMessages()
	return service
}

func (rs *ResearchService) SessionID() string {
	return rs.state.SessionID()
}

func (rs *ResearchService) IsReady() bool {
	return rs.client != nil
}

// Start pushes the welcome state and begins consuming UI events.
func (rs *ResearchService) Start() {
	rs.pushStateToUI()
	rs.wg.Add(1)
	go rs.eventLoop()
}

// Stop aborts any in-flight query and waits for background work to end.
func (rs *ResearchService) Stop() {
	rs.cancel()
	rs.wg.Wait()
}

func (rs *ResearchService) eventLoop() {
	defer rs.wg.Done()
	for {
		select {
		case <-rs.ctx.Done():
			return
		case event, ok := <-rs.eventBus.UIToCore():
			if !ok {
				return
			}
			rs.handleUIEvent(event)
		}
	}
}

func (rs *ResearchService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SubmitQueryEvent:
		rs.submit(e)
	case eventbus.CancelQueryEvent:
		rs.cancelInflight()
	}
}

func (rs *ResearchService) submit(e eventbus.SubmitQueryEvent) {
	requestID := rs.state.StartQuery(e.Query, e.Effort, e.Model)
	if requestID == "" {
		log.Printf("Ignoring query while another is in flight")
		return
	}
	rs.pushStateToUI()

	reqCtx, cancel := context.WithCancel(rs.ctx)
	rs.mu.Lock()
	rs.inflight = cancel
	rs.mu.Unlock()

	rs.wg.Add(1)
	go func() {
		defer rs.wg.Done()
		defer cancel()
		rs.runQuery(reqCtx, requestID, e)
	}()
}

func (rs *ResearchService) runQuery(ctx context.Context, requestID string, e eventbus.SubmitQueryEvent) {
	if rs.client == nil {
		if rs.state.FinishWithError(requestID, ErrNoClient) {
			rs.pushStateToUI()
		}
		return
	}

	req := openai.ChatCompletionRequest{
		Model:           e.Model,
		Messages:        rs.buildMessages(e.Effort),
		ReasoningEffort: string(e.Effort),
	}

	resp, err := rs.client.CreateChatCompletion(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			// Cancelled: Cancel already finished the request.
			return
		}
		log.Printf("Chat completion failed for model %s: %v", e.Model, err)
		if rs.state.FinishWithError(requestID, fmt.Errorf("OpenAI API error: %w", err)) {
			rs.pushStateToUI()
		}
		return
	}

	answer := ""
	if len(resp.Choices) > 0 {
		answer = resp.Choices[0].Message.Content
	}
	if answer == "" {
		answer = "(no answer returned)"
	}
	if rs.state.FinishWithAnswer(requestID, answer) {
		rs.pushStateToUI()
	}
}

func (rs *ResearchService) buildMessages(effort models.Effort) []openai.ChatCompletionMessage {
	prompt, ok := effortPrompts[effort]
	if !ok {
		prompt = effortPrompts[models.DefaultEffort]
	}
	history := rs.state.GetChatHistory()
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: "You are a research assistant. " + prompt,
	})
	return append(messages, history...)
}

func (rs *ResearchService) cancelInflight() {
	if _, ok := rs.state.Cancel(); !ok {
		return
	}
	rs.mu.Lock()
	if rs.inflight != nil {
		rs.inflight()
		rs.inflight = nil
	}
	rs.mu.Unlock()
	rs.pushStateToUI()
}

func (rs *ResearchService) pushStateToUI() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	allMessages := rs.state.GetMessages()
	newMessages := allMessages[rs.lastSentCount:]
	rs.lastSentCount = len(allMessages)

	if err := rs.eventBus.SendToUI(eventbus.StateUpdateEvent{
		Messages:     newMessages,
		IsProcessing: rs.state.IsProcessing(),
		HasHistory:   rs.state.HasHistory(),
		Error:        rs.state.GetLastError(),
	}); err != nil {
		log.Printf("Error sending state to UI: %v", err)
	}
}

func (rs *ResearchService) addWelcomeMessages() {
	rs.state.AddProgramMessage("-- RORISEARCH --")

	if rs.config.IsValid() {
		rs.state.AddProgramMessage(fmt.Sprintf("Active Profile: %s [OK]", rs.config.ActiveProfile))
		rs.state.AddProgramMessage("Type a question, pick an effort and a model, then press Enter")
	} else {
		rs.state.AddProgramMessage(fmt.Sprintf("Active Profile: %s [NOT CONFIGURED]", rs.config.ActiveProfile))
		rs.state.AddProgramMessage("Configure your profile to start searching:")
		rs.state.AddProgramMessage("• Run: rorisearch profile add <name>")
		rs.state.AddProgramMessage("• Or edit: ~/.rorisearch/config.json")
	}
	rs.state.AddProgramMessage("")
}
