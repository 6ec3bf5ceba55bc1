package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"

	"ferrum/runtime-go/pkg/bridge"
	"ferrum/runtime-go/pkg/collections"
	"ferrum/runtime-go/pkg/driver"
	"ferrum/runtime-go/pkg/prims"
	"ferrum/runtime-go/pkg/reader"
	"ferrum/runtime-go/pkg/runtime"
)

// runFmt reads values in wire notation and prints them canonically, one
// per line. With --check it reports each non-canonical file with a diff.
func runFmt(args []string) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	check := fs.Bool("check", false, "report non-canonical input; exit 1 if any")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	files := fs.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	status := 0
	for _, name := range files {
		src, err := readInput(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fmt: %v\n", err)
			return 1
		}
		values, err := reader.ParseAll(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", name, err)
			return 1
		}
		var out strings.Builder
		for _, v := range values {
			out.WriteString(runtime.Show(v))
			out.WriteByte('\n')
		}
		if *check {
			if out.String() != src {
				fmt.Fprintln(os.Stdout, name)
				fmt.Fprint(os.Stdout, lineDiff(src, out.String()))
				status = 1
			}
			continue
		}
		fmt.Fprint(os.Stdout, out.String())
	}
	return status
}

func readInput(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func parseArgs(cmd string, args []string, n int) ([]runtime.Any, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s expects %d values, got %d", cmd, n, len(args))
	}
	values := make([]runtime.Any, n)
	for i, a := range args {
		v, err := reader.Parse(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cmd, err)
		}
		values[i] = v
	}
	return values, nil
}

// runCompare prints eq or compare of two values. Incomparable values are
// fatal.
func runCompare(args []string, ordered bool) int {
	cmd := "eq"
	if ordered {
		cmd = "compare"
	}
	values, err := parseArgs(cmd, args, 2)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if ordered {
		fmt.Fprintln(os.Stdout, runtime.Compare(values[0], values[1]))
	} else {
		fmt.Fprintln(os.Stdout, runtime.Eq(values[0], values[1]))
	}
	return 0
}

func runPrims(cfg *driver.Config) int {
	table := prims.NewTable(os.Stderr, collections.NewFactory(cfg.SafetyChecks))
	table.BindIO(driver.New(cfg, os.Stdout, nil).Primitive(nil))
	for _, name := range table.Names() {
		fmt.Fprintln(os.Stdout, name)
	}
	return 0
}

// runIO serves one request per stdin line through the driver and prints
// each result. A done or exit request ends the session.
func runIO(args []string, cfg *driver.Config, logger *slog.Logger) int {
	d := driver.New(cfg, os.Stdout, logger)
	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		req, err := reader.Parse(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "io: %v\n", err)
			return 1
		}
		name := runtime.ToStr(runtime.Head(req)).Data
		finish := bridge.Function1(func(result runtime.Any) runtime.Any {
			return runtime.MkList(runtime.MkList(runtime.FromStatic("done"), result), runtime.Nil())
		})
		result := d.Run(args, runtime.MkList(req, finish))
		fmt.Fprintln(os.Stdout, runtime.Show(result))
		if name == "done" || name == "exit" {
			return 0
		}
	}
	if err := in.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "io: %v\n", err)
		return 1
	}
	return 0
}

// runProxy forwards a single request to the process on the other end of
// stdin/stdout, or to a response file, and prints nothing else.
func runProxy(args []string, logger *slog.Logger) int {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "proxy expects <request> [response-file]")
		return 1
	}
	req, err := reader.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "proxy: %v\n", err)
		return 1
	}
	var in io.Reader = os.Stdin
	if len(args) == 2 {
		f, err := os.Open(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "proxy: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}
	k := bridge.Function1(func(resp runtime.Any) runtime.Any {
		return runtime.MkList(runtime.MkList(runtime.FromStatic("done"), resp), runtime.Nil())
	})
	if _, err := driver.NewProxy(in, os.Stdout, logger).Run(runtime.MkList(req, k)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// runConfig writes a default ferrumrt.yml (init) or prints the settings in
// effect (show).
func runConfig(args []string, cfg *driver.Config) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "config expects init or show")
		return 1
	}
	switch args[0] {
	case "init":
		fs := flag.NewFlagSet("config init", flag.ContinueOnError)
		force := fs.Bool("force", false, "replace an existing config file")
		fs.SetOutput(os.Stderr)
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() > 1 {
			fmt.Fprintln(os.Stderr, "config init expects at most one path")
			return 1
		}
		out := driver.DefaultConfig()
		if err := driver.WriteConfig(osfs.Default, fs.Arg(0), out, *force); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", out.Path)
		return 0
	case "show":
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		_, _ = os.Stdout.Write(data)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "config: unknown subcommand %q\n", args[0])
		return 1
	}
}
