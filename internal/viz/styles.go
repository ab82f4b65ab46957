package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#1f513f")).
		Padding(0, 1)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6b7280"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6b7280")).
		Italic(true)

	Badge = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#010103")).
		Background(lipgloss.Color("#fde047")).
		Padding(0, 1)
)

// GradientText colours each rune of text along a blend from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, err := colorful.Hex(string(start))
	if err != nil {
		return text
	}
	b, err := colorful.Hex(string(end))
	if err != nil {
		return text
	}

	var out strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		col := lipgloss.Color(a.BlendRgb(b, t).Hex())
		out.WriteString(lipgloss.NewStyle().Foreground(col).Render(string(r)))
	}
	return out.String()
}

func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// Separator draws a rule with an ornament in the middle.
func Separator(width int) string {
	return Subtle.Render(rule(width))
}

func rule(width int) string {
	if width < 8 {
		return strings.Repeat("─", max(width, 0))
	}
	mid := width / 2
	return strings.Repeat("─", mid-2) + " ✦ " + strings.Repeat("─", width-mid-1)
}
