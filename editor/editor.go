// Package editor is the editing session: it owns the buffer, its history and
// the cursor, and turns key events into edits and moves.
//
// Edits only happen in insert mode. Leaving insert mode records a snapshot of
// the buffer in the history, so one undo reverts one insert session.
package editor

import (
	"errors"
	"fmt"
	"goditor/buffer"
	"goditor/commands"
	"goditor/config"
	"goditor/cursor"
	"goditor/history"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ErrQuit is returned by HandleEvent when the session should end.
var ErrQuit = errors.New("quit")

type Mode int

const (
	Normal Mode = iota
	Insert
	Command
)

func (m Mode) String() string {
	switch m {
	case Insert:
		return "INSERT"
	case Command:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}

type Editor struct {
	buf      *buffer.Buffer
	history  *history.History
	cursor   *cursor.Cursor
	commands *commands.Commands
	config   *config.EditorConfig

	mode    Mode
	dirty   bool // edited since the last history record
	status  string
	cmdline []rune

	log *log.Logger
}

func New(buf *buffer.Buffer, cfg *config.EditorConfig, log *log.Logger) *Editor {
	origin := buffer.NewPosition(0, 0)
	e := &Editor{
		buf:      buf,
		history:  history.New(buf.Snapshot(), origin),
		cursor:   cursor.New(origin),
		commands: commands.NewCommands(log),
		config:   cfg,
		log:      log,
	}
	e.registerCommands()
	return e
}

func (e *Editor) registerCommands() {
	e.commands.Register("w", func() error {
		e.save()
		return nil
	})
	e.commands.Register("q", func() error {
		return ErrQuit
	})
	e.commands.Register("wq", func() error {
		if err := e.save(); err != nil {
			return nil
		}
		return ErrQuit
	})
	e.commands.Register("u", func() error {
		e.undo()
		return nil
	})
	e.commands.Register("redo", func() error {
		e.redo()
		return nil
	})
}

func (e *Editor) Buffer() *buffer.Buffer {
	return e.buf
}

func (e *Editor) History() *history.History {
	return e.history
}

func (e *Editor) Cursor() buffer.Position {
	return e.cursor.Position()
}

func (e *Editor) Mode() Mode {
	return e.mode
}

func (e *Editor) Status() string {
	return e.status
}

// CommandLine is the command typed so far in command mode.
func (e *Editor) CommandLine() string {
	return string(e.cmdline)
}

func (e *Editor) Config() *config.EditorConfig {
	return e.config
}

func (e *Editor) SetConfig(cfg *config.EditorConfig) {
	e.config = cfg
	e.log.Printf("Applied config %+v", *cfg)
}

func (e *Editor) CursorStyle() tcell.CursorStyle {
	if e.mode == Insert {
		return tcell.CursorStyleBlinkingBar
	}
	return tcell.CursorStyleSteadyBlock
}

// MoveTo places the cursor at pos, clamped to the document.
func (e *Editor) MoveTo(pos buffer.Position) {
	e.cursor.Set(pos, e.buf)
}

// HandleEvent applies one input event. It returns ErrQuit when the session
// should end; every other outcome is reported through Status.
func (e *Editor) HandleEvent(ev tcell.Event) error {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return nil
	}

	switch key.Key() {
	case tcell.KeyCtrlQ:
		return ErrQuit
	case tcell.KeyCtrlS:
		e.save()
		return nil
	}

	// history and undo may have left the cursor outside the rows
	e.cursor.Clamp(e.buf)

	switch e.mode {
	case Insert:
		e.handleInsert(key)
	case Command:
		return e.handleCommand(key)
	default:
		e.handleNormal(key)
	}
	return nil
}

func (e *Editor) handleNormal(key *tcell.EventKey) {
	if e.handleArrows(key) {
		return
	}
	if key.Key() != tcell.KeyRune {
		return
	}

	switch key.Rune() {
	case 'h':
		e.cursor.Left()
	case 'j':
		e.cursor.Down(e.buf)
	case 'k':
		e.cursor.Up(e.buf)
	case 'l':
		e.cursor.Right(e.buf)
	case 'u':
		e.undo()
	case 'U':
		e.redo()
	case 'i':
		e.setMode(Insert)
	case 'a':
		e.setMode(Insert)
		e.cursor.Right(e.buf)
	case 'I':
		e.cursor.Home()
		e.setMode(Insert)
	case 'A':
		e.cursor.End(e.buf)
		e.setMode(Insert)
	case 'o':
		below := buffer.NewPosition(0, e.cursor.Position().Y+1)
		e.buf.NewLine(below)
		e.dirty = true
		e.cursor.Set(below, e.buf)
		e.setMode(Insert)
	case ':':
		e.cmdline = e.cmdline[:0]
		e.setMode(Command)
	}
}

func (e *Editor) handleInsert(key *tcell.EventKey) {
	if e.handleArrows(key) {
		return
	}

	pos := e.cursor.Position()
	switch key.Key() {
	case tcell.KeyEscape:
		e.setMode(Normal)
		e.record()
	case tcell.KeyEnter:
		e.log.Printf("Splitting row at %v", pos)
		e.buf.Enter(pos)
		e.dirty = true
		e.cursor.Set(buffer.NewPosition(0, pos.Y+1), e.buf)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		kind, seam := e.buf.Backspace(pos)
		e.dirty = true
		if kind == buffer.WrapLines {
			e.log.Printf("Joined row %d onto row %d", pos.Y, seam.Y)
			e.cursor.Set(seam, e.buf)
		} else {
			e.cursor.Left()
		}
	case tcell.KeyTab:
		for i := 0; i < e.config.TabWidth; i++ {
			e.write(' ')
		}
	case tcell.KeyRune:
		e.write(key.Rune())
		e.status = ""
	}
}

func (e *Editor) handleCommand(key *tcell.EventKey) error {
	switch key.Key() {
	case tcell.KeyEscape:
		e.cmdline = e.cmdline[:0]
		e.setMode(Normal)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.cmdline) == 0 {
			e.setMode(Normal)
			return nil
		}
		e.cmdline = e.cmdline[:len(e.cmdline)-1]
	case tcell.KeyEnter:
		name := strings.TrimSpace(string(e.cmdline))
		e.cmdline = e.cmdline[:0]
		e.setMode(Normal)
		return e.exec(name)
	case tcell.KeyRune:
		e.cmdline = append(e.cmdline, key.Rune())
	}
	return nil
}

func (e *Editor) handleArrows(key *tcell.EventKey) bool {
	switch key.Key() {
	case tcell.KeyLeft:
		e.cursor.Left()
	case tcell.KeyRight:
		e.cursor.Right(e.buf)
	case tcell.KeyUp:
		e.cursor.Up(e.buf)
	case tcell.KeyDown:
		e.cursor.Down(e.buf)
	default:
		return false
	}
	return true
}

func (e *Editor) exec(name string) error {
	err := e.commands.Exec(name)
	switch {
	case errors.Is(err, ErrQuit):
		return ErrQuit
	case errors.Is(err, commands.ErrNotFound):
		e.status = fmt.Sprintf("Not a command: %s", name)
	case err != nil:
		e.status = err.Error()
	}
	return nil
}

func (e *Editor) setMode(mode Mode) {
	e.mode = mode
}

func (e *Editor) write(c rune) {
	pos := e.cursor.Position()
	e.log.Printf("Inserting '%c' at %v", c, pos)
	e.buf.Write(pos, c)
	e.dirty = true
	e.cursor.Advance()
}

// record snapshots the buffer if anything changed since the last snapshot.
func (e *Editor) record() {
	if !e.dirty {
		return
	}
	e.history.Record(e.buf.Snapshot(), e.cursor.Position())
	e.dirty = false
	e.log.Printf("Recorded history entry %d of %d", e.history.Index()+1, e.history.Len())
}

func (e *Editor) undo() {
	entry, ok := e.history.Undo()
	if !ok {
		e.status = "Already at oldest change"
		return
	}
	e.restore(entry)
}

func (e *Editor) redo() {
	entry, ok := e.history.Redo()
	if !ok {
		e.status = "Already at newest change"
		return
	}
	e.restore(entry)
}

func (e *Editor) restore(entry history.Entry) {
	e.buf.Restore(entry.Lines)
	e.cursor.Set(entry.Cursor, e.buf)
	e.log.Printf("History moved to entry %d of %d", e.history.Index()+1, e.history.Len())
}

func (e *Editor) save() error {
	if err := e.buf.Save(); err != nil {
		e.log.Printf("Save failed: %v", err)
		e.status = fmt.Sprintf("Could not save %s: %v", e.buf.File(), err)
		return err
	}
	e.log.Printf("Wrote %d rows to %v", e.buf.Len(), e.buf.File())
	e.status = fmt.Sprintf("Successfully saved to %s.", e.buf.File())
	return nil
}
