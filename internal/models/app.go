package models

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	SessionID        string    // Regenerated on every hard reset
	Messages         []Message // Messages received from core so far
	Status           string    // Status bar text
	Loading          bool      // A query is in flight in core
	LoadingDots      int       // Animation counter for loading dots
	Width            int       // Terminal width
	Height           int       // Terminal height
	ChatServiceReady bool      // Whether research service can reach an LLM
	HasHistory       bool      // At least one query has been submitted this session
}
