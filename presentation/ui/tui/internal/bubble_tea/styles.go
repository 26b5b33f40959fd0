package bubble_tea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	minCardWidth    = 36
	maxCardWidth    = 110
	sideInsetCols   = 4
	topBottomInsets = 2
)

type uiStyles struct {
	screenFrame lipgloss.Style
	headerTitle lipgloss.Style
	headerRule  lipgloss.Style
	subtitle    lipgloss.Style
	section     lipgloss.Style
	label       lipgloss.Style
	option      lipgloss.Style
	active      lipgloss.Style
	good        lipgloss.Style
	warn        lipgloss.Style
	bad         lipgloss.Style
	meta        lipgloss.Style
}

type palette struct {
	textLight  string
	textDark   string
	mutedLight string
	mutedDark  string
	accent     string
	activeText string
	good       string
	warn       string
	bad        string
}

func defaultPalette() palette {
	return palette{
		textLight:  "#000000",
		textDark:   "#e5e7eb",
		mutedLight: "#4b5563",
		mutedDark:  "#9ca3af",
		accent:     "#00ADD8",
		activeText: "#ffffff",
		good:       "#16a34a",
		warn:       "#d97706",
		bad:        "#dc2626",
	}
}

func adaptive(light, dark string) lipgloss.TerminalColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func resolveUIStyles() uiStyles {
	p := defaultPalette()
	text := adaptive(p.textLight, p.textDark)
	muted := adaptive(p.mutedLight, p.mutedDark)
	accent := lipgloss.Color(p.accent)

	return uiStyles{
		screenFrame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Foreground(text).
			Padding(0, 1),
		headerTitle: lipgloss.NewStyle().Bold(true).Foreground(accent),
		headerRule:  lipgloss.NewStyle().Foreground(accent),
		subtitle:    lipgloss.NewStyle().Foreground(muted),
		section:     lipgloss.NewStyle().Bold(true).Foreground(text),
		label:       lipgloss.NewStyle().Foreground(muted),
		option:      lipgloss.NewStyle().Foreground(text),
		active: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.activeText)).
			Background(accent),
		good: lipgloss.NewStyle().Foreground(lipgloss.Color(p.good)),
		warn: lipgloss.NewStyle().Foreground(lipgloss.Color(p.warn)),
		bad:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.bad)),
		meta: lipgloss.NewStyle().Foreground(muted),
	}
}

// renderScreen draws the bordered card centered in the terminal. Zero sizes
// render the bare card, which is what tests look at.
func renderScreen(width, height int, title, subtitle string, body []string, hint string) string {
	styles := resolveUIStyles()
	frame := styles.screenFrame

	contentWidth := 0
	contentHeight := 0
	if width > 0 {
		contentWidth = max(1, computeCardWidth(width)-frame.GetHorizontalFrameSize())
	}
	if height > 0 {
		contentHeight = max(1, height-topBottomInsets-frame.GetVerticalFrameSize())
	}

	rule := styles.headerRule.Render(strings.Repeat("─", max(1, contentWidth)))
	lines := make([]string, 0, len(body)+8)
	lines = append(lines, styles.headerTitle.Render(title))
	if strings.TrimSpace(subtitle) != "" {
		lines = append(lines, styles.subtitle.Render(truncateWithEllipsis(subtitle, contentWidth)))
	}
	lines = append(lines, rule)
	lines = append(lines, body...)

	footer := []string{rule}
	if hint != "" {
		footer = append(footer, strings.Split(hint, "\n")...)
	}

	if contentHeight > 0 {
		room := contentHeight - len(footer)
		switch {
		case len(lines) > room:
			lines = lines[:max(0, room)]
		case len(lines) < room:
			lines = append(lines, make([]string, room-len(lines))...)
		}
	}
	lines = append(lines, footer...)

	card := frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
	}
	return card + "\n"
}

func computeCardWidth(terminalWidth int) int {
	if terminalWidth <= 0 {
		return 0
	}
	available := terminalWidth - sideInsetCols
	if available < minCardWidth {
		available = terminalWidth - 2
	}
	return min(maxCardWidth, max(1, available))
}

func contentWidthForTerminal(terminalWidth int) int {
	if terminalWidth <= 0 {
		return 0
	}
	return max(1, computeCardWidth(terminalWidth)-resolveUIStyles().screenFrame.GetHorizontalFrameSize())
}
