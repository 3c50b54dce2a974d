package display

import "github.com/charmbracelet/lipgloss"

// Panel colors: amber text on black, like the hardware display
var (
	PanelForeground = lipgloss.Color("#FFB000")
	PanelBackground = lipgloss.Color("#000000")
	BorderColor     = lipgloss.Color("#7D56F4") // Purple
)

var (
	// RowStyle is a normal text row
	RowStyle = lipgloss.NewStyle().
			Foreground(PanelForeground).
			Background(PanelBackground)

	// HighlightRowStyle is the inverted selection row
	HighlightRowStyle = lipgloss.NewStyle().
				Foreground(PanelBackground).
				Background(PanelForeground).
				Bold(true)

	// ScreenBorderStyle frames the display
	ScreenBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderColor)
)
