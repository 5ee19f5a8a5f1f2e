// Package rc loads the user configuration file of frdlisp.
//
// The file lives at $XDG_CONFIG_HOME/frdlisp/rc.yaml, or
// ~/.config/frdlisp/rc.yaml when XDG_CONFIG_HOME is not set. All keys are
// optional:
//
//	prompt: "λ "
//	color: false
//	max-depth: 2000
//	history:
//	  db: ~/lisp-history.db
//	  disable: false
//	preload:
//	  - ~/lib/prelude.flp
package rc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"src.frdlisp.dev/pkg/env"
	"src.frdlisp.dev/pkg/fsutil"
	"src.frdlisp.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[rc] ")

// DefaultPrompt is the prompt used when the rc file doesn't set one.
const DefaultPrompt = "~> "

// Config is the content of the rc file.
type Config struct {
	Prompt string `yaml:"prompt"`
	// Nil means colors are used when the output is a terminal.
	Color    *bool    `yaml:"color"`
	MaxDepth int      `yaml:"max-depth"`
	History  History  `yaml:"history"`
	Preload  []string `yaml:"preload"`
}

// History configures the REPL history.
type History struct {
	DB      string `yaml:"db"`
	Disable bool   `yaml:"disable"`
}

// Default returns the configuration used when there is no rc file.
func Default() *Config {
	return &Config{Prompt: DefaultPrompt}
}

// Path returns the path of the rc file.
func Path() (string, error) {
	dir, err := xdgDir(env.XDG_CONFIG_HOME, ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rc.yaml"), nil
}

// DefaultDBPath returns the path of the history database used when the rc
// file doesn't set one.
func DefaultDBPath() (string, error) {
	dir, err := xdgDir(env.XDG_DATA_HOME, filepath.Join(".local", "share"))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

func xdgDir(envName, underHome string) (string, error) {
	if base := os.Getenv(envName); base != "" {
		return filepath.Join(base, "frdlisp"), nil
	}
	home, err := fsutil.GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, underHome, "frdlisp"), nil
}

// Load reads the rc file at path. A missing file yields the default
// configuration and no error. Unknown keys are errors.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	} else if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file, path)
}

// LoadOrWarn loads the rc file for a subprogram. If skip is true, it returns
// the default configuration without reading anything. An empty path means
// the one from Path. Problems are written to w as warnings and yield the
// default configuration.
func LoadOrWarn(w io.Writer, path string, skip bool) *Config {
	if skip {
		return Default()
	}
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			fmt.Fprintln(w, "Warning:", err)
			return Default()
		}
	}
	cfg, err := Load(path)
	if err != nil {
		fmt.Fprintln(w, "Warning: ignoring rc file:", err)
		return Default()
	}
	logger.Printf("loaded rc file %s", path)
	return cfg
}

// Parse parses the content of an rc file. The name is used in error messages.
func Parse(r io.Reader, name string) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%s: %w", fsutil.TildeAbbr(name), err)
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("%s: max-depth must be positive, got %d",
			fsutil.TildeAbbr(name), cfg.MaxDepth)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	cfg.History.DB = expandTilde(cfg.History.DB)
	for i, p := range cfg.Preload {
		cfg.Preload[i] = expandTilde(p)
	}
	return cfg, nil
}

// ResolveMaxDepth returns flagValue if it is positive, and the max-depth
// setting otherwise. Command-line flags take precedence over the rc file.
func (cfg *Config) ResolveMaxDepth(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return cfg.MaxDepth
}

// UseColor resolves the color setting, using isTerminal when the rc file
// leaves it unset.
func (cfg *Config) UseColor(isTerminal bool) bool {
	if cfg.Color != nil {
		return *cfg.Color
	}
	if _, noColor := os.LookupEnv(env.NO_COLOR); noColor {
		return false
	}
	return isTerminal
}

func expandTilde(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := fsutil.GetHome()
	if err != nil {
		return p
	}
	return home + p[1:]
}
