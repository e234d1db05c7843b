package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines colors for the browser.
type Theme struct {
	Name string

	Background string
	Surface    string
	SurfaceAlt string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)),
		FocusPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header     lipgloss.Style
	Footer     lipgloss.Style
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	Selected   lipgloss.Style
	Panel      lipgloss.Style
	FocusPanel lipgloss.Style
}

// WithAccent returns a copy of t using hex as the accent and focus color.
// Invalid colors leave the theme unchanged.
func (t Theme) WithAccent(hex string) Theme {
	c, err := colorful.Hex(hex)
	if err != nil {
		return t
	}
	t.Accent = c.Hex()
	t.BorderFocus = c.Hex()
	return t
}

// Swatch renders a block of text on the poster accent color. The text color
// is picked by lightness so it stays readable.
func (t Theme) Swatch(c colorful.Color, text string) string {
	fg := "#f5f5f5"
	if l, _, _ := c.Lab(); l > 0.6 {
		fg = "#111111"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(fg)).
		Padding(0, 1).
		Render(text)
}

// Tint mixes the poster accent into the theme surface for a header bar.
func (t Theme) Tint(c colorful.Color) string {
	surface, err := colorful.Hex(t.Surface)
	if err != nil {
		return c.Hex()
	}
	return surface.BlendLab(c, 0.35).Clamped().Hex()
}

const (
	themeDark   = "dark"
	themeLight  = "light"
	themeSystem = "system"
)

// ResolveTheme maps a settings theme name to a palette. The system theme
// follows the terminal background.
func ResolveTheme(name string, hasDarkBackground func() bool) Theme {
	switch name {
	case themeLight:
		return lightTheme()
	case themeSystem:
		if hasDarkBackground != nil && !hasDarkBackground() {
			t := lightTheme()
			t.Name = themeSystem
			return t
		}
		t := darkTheme()
		t.Name = themeSystem
		return t
	default:
		return darkTheme()
	}
}

func darkTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: themeDark,

		Background: "#131a24",
		Surface:    "#192330",
		SurfaceAlt: "#212e3f",

		SelectionBg:   "#2b3b51",
		SelectionText: "#cdcecf",

		Border:      "#39506d",
		BorderFocus: "#719cd6",

		Text:    "#cdcecf",
		Muted:   "#738091",
		Faint:   "#71839b",
		Accent:  "#719cd6",
		Success: "#81b29a",
		Warning: "#dbc074",
		Danger:  "#c94f6d",
	}
}

func lightTheme() Theme {
	// Dayfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: themeLight,

		Background: "#f6f2ee",
		Surface:    "#e4dcd4",
		SurfaceAlt: "#dbd1dd",

		SelectionBg:   "#e7d2be",
		SelectionText: "#3d2b5a",

		Border:      "#aab0ad",
		BorderFocus: "#2848a9",

		Text:    "#3d2b5a",
		Muted:   "#837a72",
		Faint:   "#824d5b",
		Accent:  "#2848a9",
		Success: "#396847",
		Warning: "#ac5402",
		Danger:  "#a5222f",
	}
}
