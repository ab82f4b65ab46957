package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the terminal colour scheme.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Highlight lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeMars = Theme{
		Name:      "mars",
		Primary:   lipgloss.Color("#10b981"),
		Accent:    lipgloss.Color("#fde047"),
		Highlight: lipgloss.Color("#e11d48"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#4b5563"),
		Error:     lipgloss.Color("#e11d48"),
	}

	ThemeEvergreen = Theme{
		Name:      "evergreen",
		Primary:   lipgloss.Color("#059669"),
		Accent:    lipgloss.Color("#fbbf24"),
		Highlight: lipgloss.Color("#fde047"),
		Text:      lipgloss.Color("#d1fae5"),
		Muted:     lipgloss.Color("#1f513f"),
		Error:     lipgloss.Color("#f87171"),
	}

	ThemeFrost = Theme{
		Name:      "frost",
		Primary:   lipgloss.Color("#93c5fd"),
		Accent:    lipgloss.Color("#ffffff"),
		Highlight: lipgloss.Color("#fbbf24"),
		Text:      lipgloss.Color("#e0f2fe"),
		Muted:     lipgloss.Color("#334155"),
		Error:     lipgloss.Color("#fb7185"),
	}

	Themes = []Theme{ThemeMars, ThemeEvergreen, ThemeFrost}
)

// GetTheme returns a theme by name, falling back to mars.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMars
}

// Next returns the theme after t in Themes, wrapping around.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
