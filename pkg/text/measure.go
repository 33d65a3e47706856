package text

import (
	"strings"

	"github.com/fogleman/gg"
)

const ellipsis = "..."

// Measure returns the advance width of s in dc's current font face.
func Measure(dc *gg.Context, s string) float64 {
	w, _ := dc.MeasureString(s)
	return w
}

// Ellipsize shortens s until it fits in maxWidth, marking the cut with "...".
func Ellipsize(dc *gg.Context, s string, maxWidth float64) string {
	if Measure(dc, s) <= maxWidth {
		return s
	}
	r := []rune(s)
	for n := len(r) - 1; n > 0; n-- {
		cut := strings.TrimRight(string(r[:n]), " ") + ellipsis
		if Measure(dc, cut) <= maxWidth {
			return cut
		}
	}
	if Measure(dc, ellipsis) <= maxWidth {
		return ellipsis
	}
	return ""
}

// BreakIntoLines wraps text at word boundaries into lines no wider than
// maxWidth. A word wider than maxWidth gets a line of its own and is
// ellipsized. With maxLines > 0 the last kept line is ellipsized when text
// was dropped.
func BreakIntoLines(dc *gg.Context, text string, maxWidth float64, maxLines int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0)
	currentLine := ""
	for _, word := range words {
		testLine := currentLine
		if testLine != "" {
			testLine += " "
		}
		testLine += word

		if Measure(dc, testLine) <= maxWidth {
			currentLine = testLine
			continue
		}
		// Word doesn't fit, start new line
		if currentLine != "" {
			lines = append(lines, currentLine)
		}
		currentLine = Ellipsize(dc, word, maxWidth)
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = Ellipsize(dc, lines[maxLines-1]+ellipsis, maxWidth)
	}
	return lines
}
