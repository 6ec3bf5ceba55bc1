package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"ferrum/runtime-go/pkg/bridge"
	"ferrum/runtime-go/pkg/collections"
	"ferrum/runtime-go/pkg/driver"
	"ferrum/runtime-go/pkg/prims"
	"ferrum/runtime-go/pkg/reader"
	"ferrum/runtime-go/pkg/runtime"
)

const (
	historyFile = ".ferrumrt_history"
	promptMain  = "fe> "
)

// evaluator applies primitives to values typed at the prompt. A line of the
// form ["name", args...] whose name is a primitive is a call; any other
// value is printed back in canonical form.
type evaluator struct {
	table     prims.Table
	factory   *collections.Factory
	arrays    map[string]runtime.Any
	lastValue runtime.Any
}

func newEvaluator(cfg *driver.Config, traceOut io.Writer) *evaluator {
	factory := collections.NewFactory(cfg.SafetyChecks)
	table := prims.NewTable(traceOut, factory)
	table.BindIO(driver.New(cfg, os.Stdout, nil).Primitive(nil))
	return &evaluator{
		table:   table,
		factory: factory,
		arrays:  map[string]runtime.Any{},
	}
}

func (e *evaluator) eval(line string) (string, error) {
	v, err := reader.Parse(line)
	if err != nil {
		return "", err
	}
	result, err := bridge.Guard(func() runtime.Any { return e.apply(v) })
	if err != nil {
		return "", err
	}
	e.lastValue = result
	return runtime.Show(result), nil
}

func (e *evaluator) apply(v runtime.Any) runtime.Any {
	if !runtime.IsPair(v) || !runtime.IsStr(runtime.Head(v)) {
		return v
	}
	name := runtime.ToStr(runtime.Head(v)).Data
	fn, ok := e.table[name]
	if !ok {
		return v
	}
	args := runtime.Tail(v)
	if runtime.IsNil(args) {
		return fn
	}
	var argv []runtime.Any
	for a := range runtime.Elems(args) {
		argv = append(argv, a)
	}
	return runtime.CallN(fn, argv...)
}

// command handles ":" directives. It reports false for :quit.
func (e *evaluator) command(line string, out io.Writer) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return false
	case ":prims":
		fmt.Fprintln(out, strings.Join(e.table.Names(), " "))
	case ":array":
		// :array name  builds an ephemeral array from the last value
		if len(fields) != 2 {
			fmt.Fprintln(out, "usage: :array <name>")
			break
		}
		e.arrays[fields[1]] = e.factory.ArrayFastAccess(e.lastValue)
		fmt.Fprintf(out, "array %s created\n", fields[1])
	case ":send":
		// :send name request  sends a request to a named array
		if len(fields) < 3 {
			fmt.Fprintln(out, "usage: :send <name> <request>")
			break
		}
		obj, ok := e.arrays[fields[1]]
		if !ok {
			fmt.Fprintf(out, "no array named %s\n", fields[1])
			break
		}
		req, err := reader.Parse(strings.Join(fields[2:], " "))
		if err != nil {
			fmt.Fprintln(out, err)
			break
		}
		reply, err := bridge.Guard(func() runtime.Any { return runtime.Call(obj, req) })
		if err != nil {
			fmt.Fprintln(out, err)
			break
		}
		next, result := runtime.MatchTuple2(reply)
		e.arrays[fields[1]] = next
		e.lastValue = result
		fmt.Fprintln(out, runtime.Show(result))
	default:
		fmt.Fprintln(out, "unknown command. Type :quit to exit.")
	}
	return true
}

func runRepl(_ []string, cfg *driver.Config) int {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	ev := newEvaluator(cfg, os.Stderr)
	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.HasPrefix(line, ":") {
			if !ev.command(line, os.Stdout) {
				return 0
			}
			continue
		}
		out, err := ev.eval(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(out)
	}
}
