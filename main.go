package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aryanA101a/ptsim-go/vm"
	"golang.org/x/term"
)

const usage = "usage: ptsim [-config file] [-log-level level] [-f script | -i] commands..."

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("ptsim", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "JSON file with page_size, page_count, ptp_offset and log_level")
	logLevel := flags.String("log-level", "", "debug, info, warn or error")
	script := flags.String("f", "", "read commands from `file` (- for stdin)")
	interactive := flags.Bool("i", false, "start an interactive shell")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg := vm.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = vm.LoadConfig(*configPath); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	level, _ := vm.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var tty *os.File
	if *interactive {
		if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			tty = f
		} else if *script == "" {
			*script = "-"
		}
	}
	if tty != nil && *script == "-" {
		fmt.Fprintln(stderr, "-f - cannot be combined with -i on a terminal")
		fmt.Fprintln(stderr, usage)
		return 1
	}

	var tokens []string
	if *script != "" {
		var err error
		if tokens, err = readScript(*script, stdin); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	tokens = append(tokens, flags.Args()...)

	if tty != nil {
		sh := newShell(tty, stdout, logger)
		machine := vm.NewVM(cfg, vm.WithOutput(sh.terminal, sh.terminal), vm.WithLogger(logger))
		if err := sh.run(machine, tokens); err != nil {
			logger.Error("shell failed", "error", err)
			return 1
		}
		return 0
	}
	if len(tokens) == 0 {
		fmt.Fprintln(stderr, usage)
		return 1
	}

	machine := vm.NewVM(cfg, vm.WithOutput(stdout, stderr), vm.WithLogger(logger))
	if failures := machine.Run(tokens); failures > 0 {
		logger.Info("commands failed", "count", failures)
	}
	return 0
}

// readScript splits a command file into tokens. Everything after a '#'
// on a line is a comment.
func readScript(path string, stdin io.Reader) ([]string, error) {
	r := stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening script: %w", err)
		}
		defer file.Close()
		r = file
	}

	var tokens []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line, _, _ := strings.Cut(scanner.Text(), "#")
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return tokens, nil
}
