package bubble_tea

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"linkwatch/presentation/ui/view"

	"github.com/charmbracelet/lipgloss"
)

const labelWidth = 8

func renderRows(rows []view.Row, width int, styles uiStyles) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		label := fmt.Sprintf("  %-*s ", labelWidth, r.Label)
		value := truncateWithEllipsis(r.Value, width-utf8.RuneCountInString(label))
		out = append(out, styles.label.Render(label)+valueStyle(r.Value, styles).Render(value))
	}
	return out
}

func valueStyle(v string, styles uiStyles) lipgloss.Style {
	switch v {
	case view.Unknown:
		return styles.warn
	case view.None:
		return styles.meta
	default:
		return styles.option
	}
}

func renderLogs(lines []string, width int, styles uiStyles) []string {
	if len(lines) == 0 {
		return []string{styles.meta.Render("  No logs yet")}
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, styles.meta.Render(truncateWithEllipsis("  "+line, width)))
	}
	return out
}

func truncateWithEllipsis(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func wrapText(s string, width int) []string {
	if s == "" {
		return nil
	}
	if width <= 0 {
		return strings.Split(s, "\n")
	}
	var out []string
	for _, part := range strings.Split(s, "\n") {
		out = append(out, wrapLine(part, width)...)
	}
	return out
}

func wrapLine(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}
	var out []string
	current := ""
	for _, word := range words {
		for utf8.RuneCountInString(word) > width {
			if current != "" {
				out = append(out, current)
				current = ""
			}
			runes := []rune(word)
			out = append(out, string(runes[:width]))
			word = string(runes[width:])
		}
		switch {
		case current == "":
			current = word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width:
			current += " " + word
		default:
			out = append(out, current)
			current = word
		}
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

// logTailLimit is the number of log lines shown for a terminal height.
func logTailLimit(height int) int {
	if height <= 0 {
		return 6
	}
	return max(3, min(10, height/5))
}
