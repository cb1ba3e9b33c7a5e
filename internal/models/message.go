package models

type MessageType int

const (
	User MessageType = iota
	Assistant
	Program
)

type Message struct {
	Content string
	Type    MessageType
	// Effort and Model are set on User messages.
	Effort Effort
	Model  string
}
