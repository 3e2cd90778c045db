package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"github.com/tailscale/hujson"

	"github.com/ayn2op/poolscroll"
	"github.com/ayn2op/poolscroll/pool"
)

var (
	errConfigRead    = errors.New("cannot read config file")
	errConfigInvalid = errors.New("invalid config")
)

// Config holds the demo's options. Every field can be set in a JSONC file
// and overridden by the flag of the same name.
type Config struct {
	Items       int    `json:"items"`
	File        string `json:"file,omitempty"`
	Orientation string `json:"orientation"`
	ItemExtent  int    `json:"item_extent"` //nolint:tagliatelle // snake_case for config file
	Spacing     int    `json:"spacing"`
	Padding     int    `json:"padding"`
	Seek        int    `json:"seek"`
	Border      string `json:"border,omitempty"`
	Numbered    bool   `json:"numbered"`
	ScrollBar   bool   `json:"scroll_bar"` //nolint:tagliatelle // snake_case for config file
	Log         string `json:"log,omitempty"`
	Verbose     bool   `json:"verbose"`

	// Keys rebinds actions, e.g. {"next": ["down", "n"]}. File only.
	Keys map[string][]string `json:"keys,omitempty"`
}

// DefaultConfig returns the configuration used when neither a file nor flags
// say otherwise.
func DefaultConfig() Config {
	return Config{
		Items:       1000,
		Orientation: "vertical",
		ItemExtent:  1,
		Seek:        -1,
		Border:      "round",
		ScrollBar:   true,
	}
}

// options are the parsed command line: the flag set, so callers can ask
// which flags were set, plus the flags that are not part of Config.
type options struct {
	flags      *flag.FlagSet
	configPath string
	dump       bool
	dumpWidth  int
	dumpHeight int
	output     string
	help       bool
}

// parseFlags parses args into cfg, which must hold the defaults. Values of
// flags the user did not set are later replaced by the config file.
func parseFlags(args []string, cfg *Config) (options, error) {
	flagSet := flag.NewFlagSet("poolscroll", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	opts := options{flags: flagSet}

	flagSet.StringVarP(&opts.configPath, "config", "c", "", "JSONC config `file`")
	flagSet.IntVarP(&cfg.Items, "items", "n", cfg.Items, "number of generated items")
	flagSet.StringVarP(&cfg.File, "file", "f", cfg.File, "read items from `file`, one per line (- for stdin)")
	flagSet.StringVarP(&cfg.Orientation, "orientation", "o", cfg.Orientation, "scroll axis: vertical or horizontal")
	flagSet.IntVar(&cfg.ItemExtent, "item-extent", cfg.ItemExtent, "cells per item along the scroll axis")
	flagSet.IntVar(&cfg.Spacing, "spacing", cfg.Spacing, "cells between items")
	flagSet.IntVar(&cfg.Padding, "padding", cfg.Padding, "cells before the first and after the last item")
	flagSet.IntVar(&cfg.Seek, "seek", cfg.Seek, "start with this item at the top (-1 for none)")
	flagSet.StringVar(&cfg.Border, "border", cfg.Border, "border set: none, plain, round or thick")
	flagSet.BoolVar(&cfg.Numbered, "numbered", cfg.Numbered, "prefix items with their number")
	flagSet.BoolVar(&cfg.ScrollBar, "scroll-bar", cfg.ScrollBar, "show a scroll bar")
	flagSet.StringVar(&cfg.Log, "log", cfg.Log, "write logs to `file`")
	flagSet.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log engine debug records")
	flagSet.BoolVar(&opts.dump, "dump", false, "print one frame to stdout instead of running interactively")
	flagSet.IntVar(&opts.dumpWidth, "width", 80, "frame width for --dump")
	flagSet.IntVar(&opts.dumpHeight, "height", 24, "frame height for --dump")
	flagSet.StringVarP(&opts.output, "output", "O", "", "write the --dump frame to `file` instead of stdout")
	flagSet.BoolVarP(&opts.help, "help", "h", false, "show this help")

	if err := flagSet.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

// LoadConfig layers defaults, the config file at path (if any) and the
// flags the user set, in that order, and validates the result.
func LoadConfig(path string, flagged Config, changed func(name string) bool) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
		if err != nil {
			return Config{}, fmt.Errorf("%w %s: %w", errConfigRead, path, err)
		}
		fileCfg, err := parseConfig(data, cfg)
		if err != nil {
			return Config{}, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
		}
		cfg = fileCfg
	}

	cfg = overrideConfig(cfg, flagged, changed)
	if err := validateConfig(cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errConfigInvalid, err)
	}
	return cfg, nil
}

// parseConfig decodes JSONC data on top of base, so fields missing from the
// file keep their value.
func parseConfig(data []byte, base Config) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}
	cfg := base
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, nil
}

// overrideConfig copies every field whose flag was set from flagged to cfg.
func overrideConfig(cfg, flagged Config, changed func(name string) bool) Config {
	if changed == nil {
		return cfg
	}
	overrides := []struct {
		name  string
		apply func()
	}{
		{"items", func() { cfg.Items = flagged.Items }},
		{"file", func() { cfg.File = flagged.File }},
		{"orientation", func() { cfg.Orientation = flagged.Orientation }},
		{"item-extent", func() { cfg.ItemExtent = flagged.ItemExtent }},
		{"spacing", func() { cfg.Spacing = flagged.Spacing }},
		{"padding", func() { cfg.Padding = flagged.Padding }},
		{"seek", func() { cfg.Seek = flagged.Seek }},
		{"border", func() { cfg.Border = flagged.Border }},
		{"numbered", func() { cfg.Numbered = flagged.Numbered }},
		{"scroll-bar", func() { cfg.ScrollBar = flagged.ScrollBar }},
		{"log", func() { cfg.Log = flagged.Log }},
		{"verbose", func() { cfg.Verbose = flagged.Verbose }},
	}
	for _, o := range overrides {
		if changed(o.name) {
			o.apply()
		}
	}
	return cfg
}

func validateConfig(cfg Config) error {
	if cfg.Items < 0 {
		return fmt.Errorf("items must be non-negative, got %d", cfg.Items)
	}
	orientation, err := pool.ParseOrientation(cfg.Orientation)
	if err != nil {
		return err
	}
	if cfg.ItemExtent <= 0 {
		return fmt.Errorf("item_extent must be positive, got %d", cfg.ItemExtent)
	}
	if cfg.Spacing < 0 {
		return fmt.Errorf("spacing must be non-negative, got %d", cfg.Spacing)
	}
	if cfg.Padding < 0 {
		return fmt.Errorf("padding must be non-negative, got %d", cfg.Padding)
	}
	if cfg.Border != "none" {
		if _, ok := poolscroll.BorderSetByName(cfg.Border); !ok {
			return fmt.Errorf("unknown border %q", cfg.Border)
		}
	}
	listKeys, appKeys := poolscroll.DefaultListKeyMap(orientation), defaultKeyMap()
	return rebind(cfg.Keys, &listKeys, &appKeys)
}
