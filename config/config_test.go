package config

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestConfig() *Config {
	return NewConfig(log.New(io.Discard, "", 0))
}

func TestDefault(t *testing.T) {
	ec := Default()
	if ec.LineNumbers != LineNumbersAbsolute || ec.TabWidth != 4 || ec.DefaultFile != "new.txt" || !ec.Welcome {
		t.Fatalf("unexpected defaults %+v", *ec)
	}
}

func TestInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goditor", "config.json")
	cfg := newTestConfig()

	if err := cfg.Init(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}
	if *cfg.EditorConfig != *Default() {
		t.Fatalf("expected defaults, got %+v", *cfg.EditorConfig)
	}
}

func TestInitUsesXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := newTestConfig()
	if err := cfg.Init(""); err != nil {
		t.Fatal(err)
	}
	if expected := filepath.Join(dir, "goditor", "config.json"); cfg.File() != expected {
		t.Fatalf("expected %v, got %v", expected, cfg.File())
	}
}

func TestInitReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"tabWidth": 2, "lineNumbers": "relative"}`), 0664); err != nil {
		t.Fatal(err)
	}

	cfg := newTestConfig()
	if err := cfg.Init(path); err != nil {
		t.Fatal(err)
	}
	if cfg.EditorConfig.TabWidth != 2 || cfg.EditorConfig.LineNumbers != LineNumbersRelative {
		t.Fatalf("unexpected config %+v", *cfg.EditorConfig)
	}
	if cfg.EditorConfig.DefaultFile != "new.txt" {
		t.Fatalf("expected absent keys to keep defaults, got %+v", *cfg.EditorConfig)
	}
}

func TestInitRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad json", `{"tabWidth": `},
		{"tab width", `{"tabWidth": 0}`},
		{"line numbers", `{"lineNumbers": "roman"}`},
		{"default file", `{"defaultFile": ""}`},
		{"scroll off", `{"scrollOff": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.content), 0664); err != nil {
				t.Fatal(err)
			}
			err := newTestConfig().Init(path)
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestWatchDeliversReloadedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := newTestConfig()
	if err := cfg.Init(path); err != nil {
		t.Fatal(err)
	}

	changes := make(chan *EditorConfig, 8)
	if err := cfg.Watch(func(ec *EditorConfig) { changes <- ec }); err != nil {
		t.Fatal(err)
	}
	defer cfg.Cleanup()

	if err := os.WriteFile(path, []byte(`{"tabWidth": 8}`), 0664); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case ec := <-changes:
			if ec.TabWidth == 8 {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for config reload")
		}
	}
}
