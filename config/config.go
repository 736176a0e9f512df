package config

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

//go:embed config.json
var config embed.FS
var confName string = "config.json"

var ErrInvalid = errors.New("invalid config")

const (
	LineNumbersAbsolute = "absolute"
	LineNumbersRelative = "relative"
	LineNumbersOff      = "off"
)

type EditorConfig struct {
	LineNumbers string `json:"lineNumbers"`
	TabWidth    int    `json:"tabWidth"`
	DefaultFile string `json:"defaultFile"`
	ScrollOff   int    `json:"scrollOff"`
	Welcome     bool   `json:"welcome"`
}

func (ec *EditorConfig) Validate() error {
	switch ec.LineNumbers {
	case LineNumbersAbsolute, LineNumbersRelative, LineNumbersOff:
	default:
		return fmt.Errorf("%w: lineNumbers %q", ErrInvalid, ec.LineNumbers)
	}
	if ec.TabWidth < 1 || ec.TabWidth > 16 {
		return fmt.Errorf("%w: tabWidth %d not in 1..16", ErrInvalid, ec.TabWidth)
	}
	if ec.DefaultFile == "" {
		return fmt.Errorf("%w: empty defaultFile", ErrInvalid)
	}
	if ec.ScrollOff < 0 {
		return fmt.Errorf("%w: negative scrollOff", ErrInvalid)
	}
	return nil
}

// Default returns the embedded configuration.
func Default() *EditorConfig {
	content, err := fs.ReadFile(config, confName)
	if err != nil {
		panic(err)
	}
	ec, err := parse(&EditorConfig{}, content)
	if err != nil {
		panic(err)
	}
	return ec
}

// parse overlays content onto a copy of base, so absent keys keep base's values.
func parse(base *EditorConfig, content []byte) (*EditorConfig, error) {
	ec := *base
	if err := json.Unmarshal(content, &ec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := ec.Validate(); err != nil {
		return nil, err
	}
	return &ec, nil
}

type Config struct {
	log          *log.Logger
	watcher      *fsnotify.Watcher
	confDir      string
	confFile     string
	EditorConfig *EditorConfig
}

func NewConfig(log *log.Logger) *Config {
	return &Config{log: log, EditorConfig: Default()}
}

// Init locates the config file, writes the embedded defaults there if it is
// missing and reads it. An empty path means the XDG location.
func (cfg *Config) Init(path string) error {
	if path == "" {
		path = defaultPath()
	}
	cfg.confFile = filepath.Clean(path)
	cfg.confDir = filepath.Dir(cfg.confFile)

	if err := cfg.writeConfigIfMissing(); err != nil {
		return err
	}

	ec, err := cfg.readConfig()
	if err != nil {
		return err
	}
	cfg.EditorConfig = ec
	return nil
}

func defaultPath() string {
	if os.Getenv("XDG_CONFIG_HOME") == "" {
		return filepath.Join(os.Getenv("HOME"), ".goditor", confName)
	}
	return filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "goditor", confName)
}

// File is the path of the config file in use.
func (cfg *Config) File() string {
	return cfg.confFile
}

func (cfg *Config) writeConfigIfMissing() error {
	if _, err := os.Stat(cfg.confFile); err == nil {
		return nil
	}

	content, err := fs.ReadFile(config, confName)
	if err != nil {
		return fmt.Errorf("could not read embedded config file: %w", err)
	}
	if err := os.MkdirAll(cfg.confDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	if err := os.WriteFile(cfg.confFile, content, 0664); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}
	cfg.log.Printf("Wrote default config to %v", cfg.confFile)
	return nil
}

func (cfg *Config) readConfig() (*EditorConfig, error) {
	content, err := os.ReadFile(cfg.confFile)
	if err != nil {
		return nil, fmt.Errorf("could not read config file into memory: %w", err)
	}
	return parse(Default(), content)
}

// Watch rereads the config file whenever it is written and hands the new
// values to onChange. onChange runs on the watcher's goroutine. Invalid
// contents are logged and skipped.
func (cfg *Config) Watch(onChange func(*EditorConfig)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	if err := watcher.Add(cfg.confDir); err != nil {
		watcher.Close()
		return fmt.Errorf("could not watch config file: %w", err)
	}
	cfg.watcher = watcher

	go cfg.rereadConfigOnFileChange(watcher, onChange)
	return nil
}

func (cfg *Config) rereadConfigOnFileChange(watcher *fsnotify.Watcher, onChange func(*EditorConfig)) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cfg.confFile {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			ec, err := cfg.readConfig()
			if err != nil {
				cfg.log.Printf("Ignoring config change: %v", err)
				continue
			}
			cfg.log.Printf("Reloaded config: %+v", *ec)
			onChange(ec)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			cfg.log.Printf("Config watcher error: %v", err)
		}
	}
}

func (cfg *Config) Cleanup() {
	if cfg.watcher != nil {
		cfg.watcher.Close()
	}
}
