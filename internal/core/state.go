package core

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/RoriSearch/internal/models"
)

// SessionState holds one research session. A hard reset replaces it wholesale.
type SessionState struct {
	mu              sync.RWMutex
	sessionID       string
	chatHistory     []openai.ChatCompletionMessage
	messages        []models.Message // display order, including program messages
	isProcessing    bool
	activeRequestID string
	lastError       error
}

func NewSessionState() *SessionState {
	return &SessionState{
		sessionID:   uuid.NewString(),
		chatHistory: make([]openai.ChatCompletionMessage, 0),
		messages:    make([]models.Message, 0),
	}
}

func (s *SessionState) SessionID() string {
	return s.sessionID
}

func (s *SessionState) GetChatHistory() []openai.ChatCompletionMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]openai.ChatCompletionMessage, len(s.chatHistory))
	copy(result, s.chatHistory)
	return result
}

func (s *SessionState) GetMessages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.Message, len(s.messages))
	copy(result, s.messages)
	return result
}

// HasHistory reports whether any query has been submitted in this session.
func (s *SessionState) HasHistory() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chatHistory) > 0
}

func (s *SessionState) IsProcessing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isProcessing
}

func (s *SessionState) GetLastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

func (s *SessionState) AddProgramMessage(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, models.Message{Content: content, Type: models.Program})
}

// StartQuery records the user query and marks the session busy. It returns
// the request id that must accompany the matching Finish call, or "" when a
// query is already in flight.
func (s *SessionState) StartQuery(query string, effort models.Effort, model string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isProcessing {
		return ""
	}

	s.isProcessing = true
	s.lastError = nil
	s.activeRequestID = uuid.NewString()

	s.chatHistory = append(s.chatHistory, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: query,
	})
	s.messages = append(s.messages, models.Message{
		Content: query,
		Type:    models.User,
		Effort:  effort,
		Model:   model,
	})
	return s.activeRequestID
}

// FinishWithAnswer is ignored unless requestID is still the active request.
func (s *SessionState) FinishWithAnswer(requestID, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isActive(requestID) {
		return false
	}

	s.isProcessing = false
	s.activeRequestID = ""
	s.chatHistory = append(s.chatHistory, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: content,
	})
	s.messages = append(s.messages, models.Message{Content: content, Type: models.Assistant})
	return true
}

func (s *SessionState) FinishWithError(requestID string, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isActive(requestID) {
		return false
	}

	s.isProcessing = false
	s.activeRequestID = ""
	s.lastError = err
	return true
}

// Cancel ends the active request, if any, and returns its id.
func (s *SessionState) Cancel() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isProcessing {
		return "", false
	}

	id := s.activeRequestID
	s.isProcessing = false
	s.activeRequestID = ""
	s.lastError = nil
	s.messages = append(s.messages, models.Message{Content: "Request cancelled", Type: models.Program})
	return id, true
}

func (s *SessionState) isActive(requestID string) bool {
	return s.isProcessing && requestID != "" && requestID == s.activeRequestID
}
