package view

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

var (
	DefaultStyle = tcell.StyleDefault
	LightStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	StatusStyle  = tcell.StyleDefault.Reverse(true)
)

// graphemeWidth is the number of cells a cluster takes. Control characters
// get one cell so that every rune of a row stays visible and addressable.
func graphemeWidth(width int) int {
	if width < 1 {
		return 1
	}
	return width
}

// drawText draws text starting at (x, y), never past maxX, and returns the
// column after the last cell drawn.
func drawText(s tcell.Screen, x, y, maxX int, style tcell.Style, text string) int {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		w := graphemeWidth(g.Width())
		if x+w > maxX {
			break
		}
		if unicode.IsControl(runes[0]) {
			s.SetContent(x, y, ' ', nil, style)
		} else {
			s.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += w
	}
	return x
}

// textWidth is the number of cells drawText uses for text.
func textWidth(text string) int {
	width := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		width += graphemeWidth(g.Width())
	}
	return width
}

// columnAt maps a cell offset within a drawn row back to a rune column.
func columnAt(text string, cell int) int {
	col, width := 0, 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		w := graphemeWidth(g.Width())
		if cell < width+w {
			return col
		}
		width += w
		col += len(runes)
	}
	return col
}

func fill(s tcell.Screen, x, y, maxX int, style tcell.Style) {
	for ; x < maxX; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}
