package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriSearch/internal/models"
	"github.com/Rorical/RoriSearch/ui/styles"
)

// MarkdownStyle picks the glamour style from the terminal background. It
// queries the terminal, so call it before the program takes over stdin.
func MarkdownStyle() string {
	if lipgloss.HasDarkBackground() {
		return glamourstyles.DarkStyle
	}
	return glamourstyles.LightStyle
}

// MarkdownRenderer renders answers with a fixed style, keeping one glamour
// renderer for the current width.
type MarkdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

func NewMarkdownRenderer(style string) *MarkdownRenderer {
	return &MarkdownRenderer{style: style}
}

func (r *MarkdownRenderer) Render(content string, width int) string {
	wrap := width - 6
	if wrap < 20 {
		wrap = 80
	}
	if r.renderer == nil || r.width != wrap {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return content
		}
		r.renderer, r.width = renderer, wrap
	}
	out, err := r.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

// RenderMessages draws the session transcript. Answers are markdown.
func RenderMessages(messages []models.Message, md *MarkdownRenderer, width int) string {
	var b strings.Builder

	userStyle := styles.UserStyle()
	metaStyle := styles.UserMetaStyle()
	assistantStyle := styles.AssistantStyle()
	programStyle := styles.ProgramStyle()

	for _, msg := range messages {
		switch msg.Type {
		case models.User:
			b.WriteString(userStyle.Render("You: "+msg.Content) + "\n")
			b.WriteString(metaStyle.Render(userMeta(msg)) + "\n\n")
		case models.Assistant:
			b.WriteString(assistantStyle.Render(md.Render(msg.Content, width)) + "\n\n")
		case models.Program:
			b.WriteString(programStyle.Render(msg.Content) + "\n")
		}
	}

	return b.String()
}

func userMeta(msg models.Message) string {
	model := msg.Model
	if model == "" {
		model = "default model"
	}
	return fmt.Sprintf("effort %s · %s", msg.Effort.Title(), model)
}
