package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color scheme for the terminal views
type Theme struct {
	Name string

	// Base colors
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Name: "Tokyo Night",

	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary:   lipgloss.Color("#7aa2f7"),
	Secondary: lipgloss.Color("#bb9af7"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#7aa2f7"),
}

// Current holds the active theme
var Current = TokyoNight

// MaxWidth is the maximum content width (classic terminal width)
const MaxWidth = 80

// ContentWidth returns the content width to use (min of terminal width and MaxWidth).
// A zero width means the terminal size is not known yet.
func ContentWidth(terminalWidth int) int {
	if terminalWidth <= 0 || terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// Styles holds all the pre-computed styles for the views
type Styles struct {
	// Headings
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	// Task lines
	TaskOpen    lipgloss.Style
	TaskDone    lipgloss.Style
	TaskID      lipgloss.Style
	Percent     lipgloss.Style
	BarFilled   lipgloss.Style
	BarEmpty    lipgloss.Style
	Placeholder lipgloss.Style

	// Session transcript
	Prompt   lipgloss.Style
	Response lipgloss.Style
	Warning  lipgloss.Style

	// Input field
	InputFocused lipgloss.Style

	// Help text
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Panel around the roadmap
	Panel lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		TaskOpen: lipgloss.NewStyle().
			Foreground(t.Foreground),

		TaskDone: lipgloss.NewStyle().
			Foreground(t.Success).
			Strikethrough(true),

		TaskID: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Percent: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),

		BarFilled: lipgloss.NewStyle().
			Foreground(t.Success),

		BarEmpty: lipgloss.NewStyle().
			Foreground(t.Border),

		Placeholder: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Italic(true),

		Prompt: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Response: lipgloss.NewStyle().
			Foreground(t.Foreground),

		Warning: lipgloss.NewStyle().
			Foreground(t.Warning),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 0, 0, 0),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
	}
}
