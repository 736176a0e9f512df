package view

import (
	"fmt"
	"goditor/buffer"
	"goditor/config"
	"goditor/editor"
	"goditor/layout"
	"log"
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// View paints an editing session onto a screen: a line-number gutter, the
// rows of the document and a status line. It keeps the cursor row in sight
// by scrolling vertically.
type View struct {
	screen tcell.Screen
	banner string
	top    int               // first document row on screen
	text   layout.Dimensions // where the rows were drawn last

	log *log.Logger
}

func New(screen tcell.Screen, banner string, log *log.Logger) *View {
	return &View{screen: screen, banner: banner, log: log}
}

// Top is the first document row on screen.
func (v *View) Top() int {
	return v.top
}

func (v *View) Draw(ed *editor.Editor) {
	s := v.screen
	s.Clear()
	width, height := s.Size()

	v.scroll(ed, height-1)

	flex := layout.Column(
		layout.FlexItemBox(layout.EmptyBox, layout.Max(layout.Rel(1)), layout.Row(
			layout.FlexItemBox(func(dim layout.Dimensions) { v.lineNumberBox(ed, dim) }, layout.Exact(layout.Abs(gutterWidth(ed))), nil),
			layout.FlexItemBox(func(dim layout.Dimensions) { v.bufferBox(ed, dim) }, layout.Max(layout.Rel(1)), nil),
		)),
		layout.FlexItemBox(func(dim layout.Dimensions) { v.statusLineBox(ed, dim) }, layout.Exact(layout.Abs(1)), nil),
	)
	flex.StartLayouting(width, height)

	s.SetCursorStyle(ed.CursorStyle())
	s.Show()
}

// Sync redraws the whole screen, after a resize or when asked to.
func (v *View) Sync(ed *editor.Editor) {
	v.screen.Sync()
	v.Draw(ed)
}

// PositionAt maps a screen cell inside the text area to a document position.
func (v *View) PositionAt(ed *editor.Editor, x, y int) (buffer.Position, bool) {
	t := v.text
	if x < t.Origin.X || x >= t.Origin.X+t.Width || y < t.Origin.Y || y >= t.Origin.Y+t.Height {
		return buffer.Position{}, false
	}

	buf := ed.Buffer()
	row := min(v.top+y-t.Origin.Y, buf.Len()-1)
	return buffer.NewPosition(columnAt(buf.Line(row), x-t.Origin.X), row), true
}

func (v *View) scroll(ed *editor.Editor, rows int) {
	if rows <= 0 {
		return
	}

	y := ed.Cursor().Y
	off := min(ed.Config().ScrollOff, (rows-1)/2)
	if y < v.top+off {
		v.top = max(0, y-off)
	}
	if y >= v.top+rows-off {
		v.top = y - rows + off + 1
	}
	v.top = max(0, min(v.top, ed.Buffer().Len()-1))
}

func gutterWidth(ed *editor.Editor) int {
	if ed.Config().LineNumbers == config.LineNumbersOff {
		return 0
	}
	return max(len(strconv.Itoa(ed.Buffer().Len())), 3) + 1
}

func (v *View) lineNumberBox(ed *editor.Editor, dim layout.Dimensions) {
	if dim.Width == 0 {
		return
	}

	s := v.screen
	relative := ed.Config().LineNumbers == config.LineNumbersRelative
	cursorY := ed.Cursor().Y
	for i := 0; i < dim.Height; i++ {
		row := v.top + i
		if row >= ed.Buffer().Len() {
			break
		}

		n, style := row+1, DefaultStyle
		if relative && row != cursorY {
			n, style = abs(row-cursorY), LightStyle
		}
		drawText(s, dim.Origin.X, dim.Origin.Y+i, dim.Origin.X+dim.Width, style, fmt.Sprintf("%*d ", dim.Width-1, n))
	}
}

func (v *View) bufferBox(ed *editor.Editor, dim layout.Dimensions) {
	s := v.screen
	buf := ed.Buffer()
	xmax := dim.Origin.X + dim.Width
	v.text = dim

	for i := 0; i < dim.Height; i++ {
		row := v.top + i
		if row >= buf.Len() {
			drawText(s, dim.Origin.X, dim.Origin.Y+i, xmax, LightStyle, "~")
			continue
		}
		drawText(s, dim.Origin.X, dim.Origin.Y+i, xmax, DefaultStyle, buf.Line(row))
	}

	if buf.Blank() && ed.Config().Welcome && dim.Height > 0 {
		x := dim.Origin.X + max(0, (dim.Width-textWidth(v.banner))/2)
		drawText(s, x, dim.Origin.Y+dim.Height/3, xmax, DefaultStyle, v.banner)
	}

	if ed.Mode() == editor.Command || dim.Width == 0 {
		return
	}
	pos := ed.Cursor()
	line := []rune(buf.Line(pos.Y))
	x := dim.Origin.X + textWidth(string(line[:min(pos.X, len(line))]))
	s.ShowCursor(min(x, xmax-1), dim.Origin.Y+pos.Y-v.top)
}

func (v *View) statusLineBox(ed *editor.Editor, dim layout.Dimensions) {
	s := v.screen
	xmax := dim.Origin.X + dim.Width
	y := dim.Origin.Y
	fill(s, dim.Origin.X, y, xmax, StatusStyle)

	if ed.Mode() == editor.Command {
		x := drawText(s, dim.Origin.X, y, xmax, StatusStyle, ":"+ed.CommandLine())
		s.ShowCursor(min(x, xmax-1), y)
		return
	}

	file := ed.Buffer().File()
	if file == "" {
		file = "[No Name]"
	}
	left := fmt.Sprintf(" %s  %s", ed.Mode(), file)
	if ed.Status() != "" {
		left += "  " + ed.Status()
	}
	pos := ed.Cursor()
	right := fmt.Sprintf("%d:%d ", pos.Y+1, pos.X+1)

	end := drawText(s, dim.Origin.X, y, xmax, StatusStyle, left)
	if x := xmax - textWidth(right); x > end {
		drawText(s, x, y, xmax, StatusStyle, right)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
