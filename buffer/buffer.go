package buffer

import (
	"errors"
	"fmt"
	"goditor/files"
	"io/fs"
	"slices"
	"unicode/utf8"
)

// Backspace reports what a backspace did to the row structure.
type Backspace int

const (
	// SameLine: a character was removed from the row, or nothing happened.
	SameLine Backspace = iota
	// WrapLines: the row was joined onto (or removed in favour of) the row above.
	WrapLines
)

// Buffer is an ordered list of rows plus the file it is persisted to.
// Columns are rune offsets into a row.
type Buffer struct {
	lines []string
	file  string
}

// New returns a buffer bound to file. A buffer always holds at least one row.
func New(lines []string, file string) *Buffer {
	if len(lines) == 0 {
		lines = []string{""}
	}
	return &Buffer{lines: slices.Clone(lines), file: file}
}

// Open reads path into a new buffer. A missing file yields an empty buffer
// bound to path, so that the first save creates it.
func Open(path string) (*Buffer, error) {
	lines, err := files.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(nil, path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return New(lines, path), nil
}

func (b *Buffer) File() string {
	return b.file
}

// Len is the number of rows.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Blank reports whether the document is a single empty row.
func (b *Buffer) Blank() bool {
	return len(b.lines) == 1 && b.lines[0] == ""
}

// Line returns the content of row, or "" if the row does not exist.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row]
}

// LineLength returns the rune count of row, or 0 if the row does not exist.
func (b *Buffer) LineLength(row int) int {
	return utf8.RuneCountInString(b.Line(row))
}

// Write inserts c at pos. Writing below the last row grows the document:
// empty rows pad the gap and c starts a new row, ignoring pos.X.
func (b *Buffer) Write(pos Position, c rune) {
	if pos.Y < len(b.lines) {
		line := []rune(b.lines[pos.Y])
		b.lines[pos.Y] = string(line[:pos.X]) + string(c) + string(line[pos.X:])
		return
	}

	for len(b.lines) < pos.Y {
		b.lines = append(b.lines, "")
	}
	b.lines = append(b.lines, string(c))
}

// Backspace deletes the character before pos. At the start of a row other
// than the first, the row is merged into the one above (or dropped when
// empty) and the returned position is the join seam. For SameLine the
// returned position is pos.
func (b *Buffer) Backspace(pos Position) (Backspace, Position) {
	if pos.Y < len(b.lines) && pos.X > 0 {
		line := []rune(b.lines[pos.Y])
		b.lines[pos.Y] = string(line[:pos.X-1]) + string(line[pos.X:])
		return SameLine, pos
	}

	if pos.X <= 1 && pos.Y > 0 && pos.Y < len(b.lines) {
		// the seam is the end of the row above before anything is appended
		seam := NewPosition(b.LineLength(pos.Y-1), pos.Y-1)
		if b.lines[pos.Y] != "" {
			b.lines[pos.Y-1] += b.lines[pos.Y]
		}
		b.lines = slices.Delete(b.lines, pos.Y, pos.Y+1)
		return WrapLines, seam
	}

	return SameLine, pos
}

// NewLine inserts an empty row at pos.Y. Past the end it pads the document
// so that pos.Y becomes its last row.
func (b *Buffer) NewLine(pos Position) {
	if pos.Y < len(b.lines) {
		b.lines = slices.Insert(b.lines, pos.Y, "")
		return
	}

	for len(b.lines) <= pos.Y {
		b.lines = append(b.lines, "")
	}
}

// Enter splits row pos.Y at pos.X; the text from pos.X onward becomes the
// next row. At or past the end of a row the new row is empty.
func (b *Buffer) Enter(pos Position) {
	if pos.Y >= len(b.lines) {
		b.NewLine(pos)
		return
	}

	line := []rune(b.lines[pos.Y])
	x := min(pos.X, len(line))
	b.lines[pos.Y] = string(line[:x])
	b.lines = slices.Insert(b.lines, pos.Y+1, string(line[x:]))
}

// Save truncates the backing file and writes every row followed by '\n'.
func (b *Buffer) Save() error {
	if err := files.Write(b.file, b.lines); err != nil {
		return fmt.Errorf("save %s: %w", b.file, err)
	}
	return nil
}

// Snapshot returns a copy of the rows. Row strings are shared, they are
// immutable.
func (b *Buffer) Snapshot() []string {
	return slices.Clone(b.lines)
}

// Restore replaces the rows wholesale.
func (b *Buffer) Restore(rows []string) {
	if len(rows) == 0 {
		rows = []string{""}
	}
	b.lines = slices.Clone(rows)
}
