package buffer

import "fmt"

// Position is a column (X) and row (Y) in the buffer. It is not bounds
// checked: callers keep it inside the document before editing.
type Position struct {
	X, Y int
}

func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Y, p.X)
}
