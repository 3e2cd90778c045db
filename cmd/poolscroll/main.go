// Command poolscroll scrolls through a large list of lines while keeping only
// a screenful of views alive.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/ayn2op/poolscroll"
	"github.com/ayn2op/poolscroll/pool"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	flagged := DefaultConfig()
	opts, err := parseFlags(args, &flagged)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(errOut, "error:", err)
		return 2
	}
	if opts.help {
		fmt.Fprintln(out, "Usage: poolscroll [options]")
		fmt.Fprint(out, opts.flags.FlagUsages())
		return 0
	}

	cfg, err := LoadConfig(opts.configPath, flagged, opts.flags.Changed)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	logger, closeLog, err := newLogger(cfg, opts.dump, errOut)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	defer closeLog()
	pool.SetLogger(logger)
	pool.SetVerbose(cfg.Verbose)

	items, err := loadItems(cfg, in)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	u := newUI(cfg, items, logger)

	if opts.dump {
		screen := poolscroll.NewCaptureScreen(opts.dumpWidth, opts.dumpHeight)
		u.drawOnce(screen)
		if err := writeFrame(opts.output, screen.String()+"\n", out); err != nil {
			fmt.Fprintln(errOut, "error:", err)
			return 1
		}
		return 0
	}

	if err := u.run(); err != nil {
		logger.Error("poolscroll: application stopped", "err", err)
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	return 0
}

// writeFrame writes frame to path, replacing any previous frame in one step,
// or to out when path is empty.
func writeFrame(path, frame string, out io.Writer) error {
	if path == "" {
		_, err := io.WriteString(out, frame)
		return err
	}
	if err := atomic.WriteFile(path, strings.NewReader(frame)); err != nil {
		return fmt.Errorf("write frame %s: %w", path, err)
	}
	return nil
}

// newLogger returns a text logger at the engine's shared level. Records go
// to the --log file when set. Without one they go to stderr for --dump and
// are dropped otherwise, since the terminal belongs to the UI.
func newLogger(cfg Config, dump bool, errOut io.Writer) (*slog.Logger, func(), error) {
	var (
		w       = io.Discard
		closeFn = func() {}
	)
	switch {
	case cfg.Log != "":
		f, err := os.OpenFile(cfg.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		w, closeFn = f, func() { _ = f.Close() }
	case dump:
		w = errOut
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: pool.LogLevel()})
	return slog.New(handler), closeFn, nil
}

// loadItems reads the lines of cfg.File, or generates cfg.Items lines.
func loadItems(cfg Config, in io.Reader) ([]string, error) {
	if cfg.File == "" {
		items := make([]string, cfg.Items)
		for i := range items {
			items[i] = "Item " + strconv.Itoa(i)
		}
		return items, nil
	}

	r := in
	if cfg.File != "-" {
		f, err := os.Open(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("open items: %w", err)
		}
		defer f.Close()
		r = f
	}

	var items []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		items = append(items, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	return items, nil
}
