package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pixgrid/pkg/view"
)

// Swatcher is implemented by view holders that can be shown as a single
// coloured terminal cell.
type Swatcher interface {
	Swatch() (label string, c color.Color)
}

// TermRenderer draws the attached children as coloured blocks of terminal
// cells. CellWidth and CellHeight are the pixels one terminal column and row
// stand for.
type TermRenderer struct {
	CellWidth  int
	CellHeight int
}

// Render returns rv's viewport as Height/CellHeight lines of text.
func (t TermRenderer) Render(rv *view.RecyclerView) string {
	cw, ch := max(t.CellWidth, 1), max(t.CellHeight, 1)
	rows := rv.Height() / ch
	cols := rv.Width() / cw

	var blocks []string
	line := 0
	children := rv.Children()
	for i := 0; i < len(children); {
		// children sharing a top edge form one row
		top := children[i].Bounds().Min.Y
		j := i
		for j < len(children) && children[j].Bounds().Min.Y == top {
			j++
		}
		row := children[i:j]
		i = j

		bottom := row[0].Bounds().Max.Y
		startLine := max(top, 0) / ch
		endLine := min(bottom, rv.Height()) / ch
		if endLine <= startLine || endLine <= line {
			continue
		}
		startLine = max(startLine, line)
		if startLine > line {
			blocks = append(blocks, strings.Repeat("\n", startLine-line-1))
		}
		blocks = append(blocks, t.renderRow(row, endLine-startLine, cw))
		line = endLine
	}
	out := lipgloss.JoinVertical(lipgloss.Left, blocks...)
	return lipgloss.NewStyle().Width(cols).Height(rows).MaxHeight(rows).MaxWidth(cols).Render(out)
}

func (t TermRenderer) renderRow(row []*view.View, height, cw int) string {
	cells := make([]string, 0, len(row))
	col := 0
	for _, v := range row {
		b := v.Bounds()
		left, right := max(b.Min.X/cw, col), b.Max.X/cw
		width := right - left
		if width <= 0 {
			continue
		}
		label, bg := swatch(v)
		style := lipgloss.NewStyle().
			Width(width).
			Height(height).
			MarginLeft(left-col).
			Align(lipgloss.Center, lipgloss.Center).
			Background(lipgloss.Color(hex(bg))).
			Foreground(lipgloss.Color(hex(contrast(bg))))
		cells = append(cells, style.Render(truncate(label, width)))
		col = right
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func swatch(v *view.View) (string, color.Color) {
	if s, ok := v.Holder.(Swatcher); ok {
		return s.Swatch()
	}
	return fmt.Sprint(v.Position()), color.Gray{Y: 0xe6}
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// contrast returns black or white, whichever reads better on c.
func contrast(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	// Rec. 601 luma on 16-bit channels
	if (299*r+587*g+114*b)/1000 > 0x8000 {
		return color.Black
	}
	return color.White
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
