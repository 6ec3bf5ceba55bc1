package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  ferrumrt [--config=ferrumrt.yml] fmt [--check] [files...]")
	fmt.Fprintln(os.Stderr, "  ferrumrt [--config=ferrumrt.yml] eq <value> <value>")
	fmt.Fprintln(os.Stderr, "  ferrumrt [--config=ferrumrt.yml] compare <value> <value>")
	fmt.Fprintln(os.Stderr, "  ferrumrt [--config=ferrumrt.yml] prims")
	fmt.Fprintln(os.Stderr, "  ferrumrt [--config=ferrumrt.yml] io [program args...]")
	fmt.Fprintln(os.Stderr, "  ferrumrt [--config=ferrumrt.yml] proxy <request> [response-file]")
	fmt.Fprintln(os.Stderr, "  ferrumrt [--config=ferrumrt.yml] repl")
	fmt.Fprintln(os.Stderr, "  ferrumrt config init [--force] [path]")
	fmt.Fprintln(os.Stderr, "  ferrumrt [--config=ferrumrt.yml] config show")
	fmt.Fprintln(os.Stderr, "  ferrumrt version")
}
