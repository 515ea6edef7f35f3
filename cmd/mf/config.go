package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional REPL preferences file read from
// $MELLIFERA_HOME/.mellifera.yaml (falling back to $HOME), grounded on
// hemanta212-scaf/config.go's yaml-tagged struct-plus-loader pattern.
// File mode never reads this — there is no REPL prompt to color and no
// history to size.
type Config struct {
	PromptColor string   `yaml:"prompt_color"`
	HistorySize int      `yaml:"history_size"`
	SearchPath  []string `yaml:"search_path"`
}

// defaultConfig mirrors the schema documented for the REPL: a cyan
// prompt, a generous history, and no extra search roots.
func defaultConfig() Config {
	return Config{PromptColor: "cyan", HistorySize: 1000}
}

// loadConfig reads home/.mellifera.yaml. A missing file is not an
// error — it just means "use the defaults". A malformed file is
// reported to stderr and the defaults are used in its place, matching
// the "missing is fine, malformed is a warning" discipline the rest of
// this driver applies to optional configuration.
func loadConfig(home string) Config {
	cfg := defaultConfig()
	path := filepath.Join(home, ".mellifera.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		redColor.Fprintf(os.Stderr, "[CONFIG ERROR] %s: %v\n", path, err)
		return defaultConfig()
	}
	return cfg
}
