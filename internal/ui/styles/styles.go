package styles

import "github.com/charmbracelet/lipgloss"

// Color constants used throughout the UI
var (
	// Primary colors
	Accent    = lipgloss.Color("205") // Pink/Magenta - primary accent
	AccentAlt = lipgloss.Color("141") // Purple - category labels
	Success   = lipgloss.Color("118") // Green - copied
	Warning   = lipgloss.Color("214") // Orange - warnings
	Error     = lipgloss.Color("196") // Red - errors

	// Neutral colors
	TextNormal   = lipgloss.Color("252") // Light gray - normal text
	TextMuted    = lipgloss.Color("250") // Lighter gray - descriptions
	TextFaint    = lipgloss.Color("244") // Gray - faint/disabled text
	TextOnAccent = lipgloss.Color("0")   // Black - text on accent background
	CellHover    = lipgloss.Color("237") // Dark gray - hovered cell

	// Border colors
	BorderActive   = lipgloss.Color("205") // Pink - focused search box
	BorderInactive = lipgloss.Color("240") // Dark gray
)

// SkinColors are the swatch colors for tones 1..6, index 0 unused
var SkinColors = [...]lipgloss.Color{
	"",
	"#ffc93a",
	"#fadcbc",
	"#e0bb95",
	"#bf8f68",
	"#9b643d",
	"#594539",
}

// Common style components
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)

	CategoryLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentAlt)

	Normal = lipgloss.NewStyle().
		Foreground(TextNormal)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Faint = lipgloss.NewStyle().
		Faint(true)

	// Anchor bar
	Anchor = lipgloss.NewStyle().
		Foreground(TextFaint).
		Padding(0, 1)

	AnchorSelected = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	// Strip cells
	Cell = lipgloss.NewStyle()

	CellHovered = lipgloss.NewStyle().
			Background(CellHover)

	// Status indicators
	StatusSuccess = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning)

	StatusError = lipgloss.NewStyle().
			Foreground(Error)

	// Keys in help text
	Key = lipgloss.NewStyle().
		Foreground(lipgloss.Color("226"))
)

// Swatch renders the skin tone selector dot
func Swatch(tone int, selected bool) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(SkinColors[tone])
	if selected {
		s = s.Bold(true).Underline(true)
	}
	return s
}

// SearchPrompt styles the search box prompt
func SearchPrompt(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().Foreground(BorderActive).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(BorderInactive)
}

// OverlayBorder frames the help and inspector overlays
func OverlayBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BorderActive).
		Padding(0, 1)
}
