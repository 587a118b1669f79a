package layout

import (
	"strings"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/canvas"
)

// Ellipsis marks truncated cell text.
const Ellipsis = "…"

// Truncate cuts s to budget-2 runes plus an ellipsis when it is longer than
// budget runes. A budget below 3 disables truncation.
func Truncate(s string, budget int) string {
	if budget < 3 {
		return s
	}
	r := []rune(s)
	if len(r) <= budget {
		return s
	}
	return string(r[:budget-2]) + Ellipsis
}

// Fit shortens s until it measures at most maxWidth in the canvas's current font.
func Fit(c canvas.Canvas, s string, maxWidth float64) string {
	if maxWidth <= 0 || c.StringWidth(s) <= maxWidth {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		cand := strings.TrimRight(string(r), " ") + Ellipsis
		if c.StringWidth(cand) <= maxWidth {
			return cand
		}
	}
	return ""
}

// Wrap splits s into at most maxLines lines no wider than maxWidth. Words
// that still overflow on the last line are fitted with an ellipsis.
func Wrap(c canvas.Canvas, s string, maxWidth float64, maxLines int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if c.StringWidth(line+" "+w) <= maxWidth {
			line += " " + w
			continue
		}
		lines = append(lines, line)
		line = w
	}
	lines = append(lines, line)

	if maxLines > 0 && len(lines) > maxLines {
		last := strings.Join(lines[maxLines-1:], " ")
		lines = append(lines[:maxLines-1], last)
	}
	for i := range lines {
		lines[i] = Fit(c, lines[i], maxWidth)
	}
	return lines
}
