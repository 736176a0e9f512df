package main

import (
	"errors"
	"flag"
	"fmt"
	"goditor/buffer"
	"goditor/config"
	"goditor/editor"
	"goditor/view"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
)

var version = "dev"

var (
	configFlag  = flag.String("config", "", "path to the config file (default $XDG_CONFIG_HOME/goditor/config.json)")
	logFlag     = flag.String("log", "goditor.log", "file to write the debug log to, empty to disable")
	versionFlag = flag.Bool("version", false, "print the version and exit")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [file]\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *versionFlag {
		fmt.Printf("goditor %s\n", version)
		return 0
	}

	log, closeLog, err := NewLogger(*logFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	cfg := config.NewConfig(log)
	if err := cfg.Init(*configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer cfg.Cleanup()

	buf, err := openBuffer(flag.Arg(0), cfg.EditorConfig, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	s, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := s.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	s.SetStyle(view.DefaultStyle)
	s.EnableMouse()
	s.EnablePaste()
	s.Clear()

	// You have to catch panics in a defer, clean up, and
	// re-raise them - otherwise your application can
	// die without leaving any diagnostic trace.
	defer func() {
		maybePanic := recover()
		s.Fini()
		if maybePanic != nil {
			panic(maybePanic)
		}
	}()

	ed := editor.New(buf, cfg.EditorConfig, log)
	v := view.New(s, "GODITOR "+version, log)

	// config changes arrive on the watcher goroutine, the event loop applies them
	err = cfg.Watch(func(ec *config.EditorConfig) {
		if err := s.PostEvent(tcell.NewEventInterrupt(ec)); err != nil {
			log.Printf("Dropped config change: %v", err)
		}
	})
	if err != nil {
		log.Printf("Config hot reload disabled: %v", err)
	}

	if err := Run(s, ed, v); err != nil {
		log.Printf("Editor stopped: %v", err)
		return 1
	}
	log.Print("Goodbye.")
	return 0
}

// NewLogger opens path for appending and returns a logger writing to it
// together with a function closing the file. An empty path discards all
// output.
func NewLogger(path string) (*log.Logger, func() error, error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() error { return nil }, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log file: %w", err)
	}
	return log.New(file, "", log.LstdFlags|log.Lshortfile), file.Close, nil
}

// openBuffer loads the file named on the command line. Without one the
// session edits the configured default file, which is only created on save.
func openBuffer(file string, ec *config.EditorConfig, log *log.Logger) (*buffer.Buffer, error) {
	if file == "" {
		log.Printf("Started without a file, editing %v", ec.DefaultFile)
		return buffer.New(nil, ec.DefaultFile), nil
	}

	buf, err := buffer.Open(file)
	if err != nil {
		return nil, err
	}
	log.Printf("Read %d rows from %v", buf.Len(), file)
	return buf, nil
}

// Run is the event loop. It draws, waits for the next event and hands it to
// the editor until the editor asks to quit or the screen is finalized.
func Run(s tcell.Screen, ed *editor.Editor, v *view.View) error {
	for {
		v.Draw(ed)

		switch ev := s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.Sync(ed)
		case *tcell.EventInterrupt:
			if ec, ok := ev.Data().(*config.EditorConfig); ok {
				ed.SetConfig(ec)
			}
		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 == 0 {
				continue
			}
			x, y := ev.Position()
			if pos, ok := v.PositionAt(ed, x, y); ok {
				ed.MoveTo(pos)
			}
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlL {
				v.Sync(ed)
				continue
			}
			if err := ed.HandleEvent(ev); err != nil {
				if errors.Is(err, editor.ErrQuit) {
					return nil
				}
				return err
			}
		}
	}
}
