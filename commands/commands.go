package commands

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

var ErrNotFound = errors.New("not a command")

type Command func() error

type Commands struct {
	log      *log.Logger
	commands map[string]Command
}

func NewCommands(log *log.Logger) *Commands {
	return &Commands{log: log, commands: make(map[string]Command)}
}

// Exec runs the command named by name, or by the shortest registered name
// that starts with it.
func (c *Commands) Exec(name string) error {
	name = strings.TrimSpace(name)
	cmd := c.findCommandByPrefix(name)
	if cmd == nil {
		c.log.Printf("Command %s not found\n", name)
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return cmd()
}

func (c *Commands) findCommandByPrefix(prefix string) Command {
	if prefix == "" {
		return nil
	}
	if cmd, ok := c.commands[prefix]; ok {
		return cmd
	}

	best := ""
	var bestCmd Command
	for name, cmd := range c.commands {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if bestCmd == nil || len(name) < len(best) || (len(name) == len(best) && name < best) {
			best = name
			bestCmd = cmd
		}
	}
	return bestCmd
}

func (c *Commands) Register(name string, command Command) {
	c.commands[name] = command
}
