package cursor

import "goditor/buffer"

// Lines is what a cursor needs to know about the document to stay inside it.
type Lines interface {
	Len() int
	LineLength(row int) int
}

// Cursor is a position that remembers the column it was last moved to
// horizontally, so vertical moves across short rows can return to it.
type Cursor struct {
	pos       buffer.Position
	previousX int
}

func New(pos buffer.Position) *Cursor {
	return &Cursor{pos: pos, previousX: pos.X}
}

func (c *Cursor) Position() buffer.Position {
	return c.pos
}

// PreviousX is the remembered column.
func (c *Cursor) PreviousX() int {
	return c.previousX
}

// Set moves the cursor to pos, clamped to the document, and remembers its
// column.
func (c *Cursor) Set(pos buffer.Position, lines Lines) {
	c.pos = pos
	c.Clamp(lines)
	c.update()
}

// Clamp pulls the cursor back inside the document: onto an existing row and
// at most one column past its last character.
func (c *Cursor) Clamp(lines Lines) {
	c.pos.Y = max(0, min(c.pos.Y, lines.Len()-1))
	c.pos.X = max(0, min(c.pos.X, lines.LineLength(c.pos.Y)))
}

func (c *Cursor) Left() {
	if c.pos.X > 0 {
		c.pos.X--
		c.update()
	}
}

func (c *Cursor) Right(lines Lines) {
	if c.pos.X < lines.LineLength(c.pos.Y) {
		c.pos.X++
		c.update()
	}
}

// Advance moves one column right without looking at the row, for use right
// after a character was written under the cursor.
func (c *Cursor) Advance() {
	c.pos.X++
	c.update()
}

// Home moves to column 0.
func (c *Cursor) Home() {
	c.pos.X = 0
	c.update()
}

// End moves just past the last character of the row.
func (c *Cursor) End(lines Lines) {
	c.pos.X = lines.LineLength(c.pos.Y)
	c.update()
}

func (c *Cursor) Up(lines Lines) {
	if c.pos.Y > 0 {
		c.pos.Y--
	}
	c.recall(lines)
}

func (c *Cursor) Down(lines Lines) {
	if c.pos.Y < lines.Len()-1 {
		c.pos.Y++
	}
	c.recall(lines)
}

// recall fits the column to the current row after a vertical move, then
// returns to the remembered column if the row is long enough for it.
func (c *Cursor) recall(lines Lines) {
	length := lines.LineLength(c.pos.Y)
	if c.pos.X > length {
		c.pos.X = length
	}
	if c.pos.X < c.previousX {
		c.pos.X = c.previousX
	}
	if length < c.previousX {
		c.pos.X = length
	}
}

func (c *Cursor) update() {
	if c.pos.X != c.previousX {
		c.previousX = c.pos.X
	}
}
