package main

import (
	"fmt"
	"log/slog"
	"os"

	"ferrum/runtime-go/pkg/driver"
	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/mem"
)

const cliToolVersion = "ferrumrt 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) (code int) {
	configPath, remaining, err := parseConfigFlag(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(remaining) == 0 {
		printUsage()
		return 1
	}
	cfg, err := driver.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := newLogger(cfg)

	defer func() {
		if r := recover(); r != nil {
			ferr, ok := r.(*fatal.Error)
			if !ok {
				panic(r)
			}
			fatal.Report(os.Stderr, ferr)
			code = 1
		}
		if cfg.Diagnostics {
			mem.WriteDiagnostics(os.Stderr)
		}
	}()

	switch remaining[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "fmt":
		return runFmt(remaining[1:])
	case "eq":
		return runCompare(remaining[1:], false)
	case "compare":
		return runCompare(remaining[1:], true)
	case "prims":
		return runPrims(cfg)
	case "io":
		return runIO(remaining[1:], cfg, logger)
	case "proxy":
		return runProxy(remaining[1:], logger)
	case "config":
		return runConfig(remaining[1:], cfg)
	case "repl":
		return runRepl(remaining[1:], cfg)
	default:
		fmt.Fprintf(os.Stderr, "ferrumrt: unknown command %q\n", remaining[0])
		printUsage()
		return 1
	}
}

func newLogger(cfg *driver.Config) *slog.Logger {
	level := cfg.Level()
	if cfg.TraceIO && level > slog.LevelDebug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
