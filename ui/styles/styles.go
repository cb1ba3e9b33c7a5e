package styles

import "github.com/charmbracelet/lipgloss"

var (
	colorPanel   = lipgloss.Color("238")
	colorBorder  = lipgloss.Color("240")
	colorText    = lipgloss.Color("252")
	colorMuted   = lipgloss.Color("244")
	colorAccent  = lipgloss.Color("39")
	colorDanger  = lipgloss.Color("203")
	colorEffort  = lipgloss.Color("213")
	colorModel   = lipgloss.Color("141")
	colorProgram = lipgloss.Color("141")
)

func InputStyle(width int) lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)
	if width > 4 {
		style = style.Width(width - 4)
	}
	return style
}

func SubmitStyle(enabled bool) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	if enabled {
		return style.Foreground(colorAccent)
	}
	return style.Foreground(colorMuted)
}

func StopStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorDanger).
		Padding(0, 1).
		Bold(true)
}

// SelectorStyle is the pill around the effort and model selectors.
func SelectorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorText).
		Background(colorPanel).
		Padding(0, 1).
		MarginRight(1)
}

func SelectorLabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorMuted).
		Background(colorPanel)
}

func EffortValueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorEffort).Background(colorPanel).Bold(true)
}

func ModelValueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorModel).Background(colorPanel).Bold(true)
}

func DisabledStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted).Background(colorPanel).Italic(true)
}

func NewSessionStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorText).
		Background(colorPanel).
		Padding(0, 1)
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func UserStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorAccent).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(colorAccent).
		Padding(0, 1).
		MarginLeft(2)
}

func UserMetaStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted).MarginLeft(4)
}

func AssistantStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("214")).
		MarginLeft(2)
}

func ProgramStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorProgram).
		Bold(true).
		Padding(0, 2).
		Align(lipgloss.Center)
}
