package commands

import (
	"errors"
	"io"
	"log"
	"testing"
)

func newTestCommands(ran *string) *Commands {
	c := NewCommands(log.New(io.Discard, "", 0))
	for _, name := range []string{"w", "wq", "q", "redo", "reload"} {
		c.Register(name, func() error {
			*ran = name
			return nil
		})
	}
	return c
}

func TestExec(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"w", "w"},
		{"wq", "wq"},
		{" q ", "q"},
		{"re", "redo"},
		{"red", "redo"},
		{"rel", "reload"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var ran string
			c := newTestCommands(&ran)
			if err := c.Exec(tt.input); err != nil {
				t.Fatal(err)
			}
			if ran != tt.expected {
				t.Fatalf("expected %q to run %q, ran %q", tt.input, tt.expected, ran)
			}
		})
	}
}

func TestExecUnknown(t *testing.T) {
	var ran string
	c := newTestCommands(&ran)

	for _, input := range []string{"x", "", "wqa"} {
		if err := c.Exec(input); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound for %q, got %v", input, err)
		}
	}
	if ran != "" {
		t.Fatalf("expected nothing to run, ran %q", ran)
	}
}

func TestExecReturnsCommandError(t *testing.T) {
	c := NewCommands(log.New(io.Discard, "", 0))
	boom := errors.New("boom")
	c.Register("fail", func() error { return boom })

	if err := c.Exec("fail"); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
