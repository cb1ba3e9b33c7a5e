package components

import (
	"testing"

	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSearch/internal/models"
)

func TestRenderMessages(t *testing.T) {
	out := RenderMessages([]models.Message{
		{Content: "-- RORISEARCH --", Type: models.Program},
		{Content: "Who won?", Type: models.User, Effort: models.EffortHigh, Model: "gemini-2.5-pro"},
		{Content: "**Spain** won.", Type: models.Assistant},
	}, NewMarkdownRenderer(glamourstyles.NoTTYStyle), 80)

	assert.Contains(t, out, "-- RORISEARCH --")
	assert.Contains(t, out, "You: Who won?")
	assert.Contains(t, out, "effort High · gemini-2.5-pro")
	assert.Contains(t, out, "Spain")
}

func TestMarkdownRendererReusedPerWidth(t *testing.T) {
	md := NewMarkdownRenderer(glamourstyles.NoTTYStyle)

	assert.Contains(t, md.Render("# Title", 80), "Title")
	first := md.renderer
	require.NotNil(t, first)

	md.Render("again", 80)
	assert.Same(t, first, md.renderer)

	md.Render("narrow", 50)
	assert.NotSame(t, first, md.renderer)
	assert.Equal(t, 44, md.width)
}

func TestRenderStatus(t *testing.T) {
	assert.Contains(t, RenderStatus("Searching", true, 3, 40), "Searching...")
	assert.NotContains(t, RenderStatus("Ready", false, 3, 40), "Ready...")
}
