// lodstat runs the planet triangulator without a window and reports what it
// produces.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "gen":
		err = cmdGen(os.Stdout, args)
	case "lut":
		err = cmdLUT(os.Stdout, args)
	case "grid":
		err = cmdGrid(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `lodstat - geodesic LOD inspection tool

Usage:
  lodstat <command> [options]

Commands:
  gen   [options]      Triangulate for one camera and print a level histogram
  lut   [options]      Print the dot, height multiplier and distance tables
  grid  -levels N      Print patch template statistics

Examples:
  lodstat gen -altitude 500 -max-level 12
  lodstat gen -altitude 20 -tilt 70 -workers 4 -runs 10
  lodstat lut -max-level 8 -width 1920
  lodstat grid -levels 5`)
}

// newFlagSet returns a flag set that reports parse errors instead of exiting.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
