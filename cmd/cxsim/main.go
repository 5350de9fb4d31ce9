// Copyright 2026 The cxsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Command cxsim verifies a circuit design against a level's waveforms and
// prints the resulting trace.
//
//	cxsim -design adder.cxd -level adder.json [-plot trace.png] [-v]
//
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cxsim/cxsim"
	"github.com/cxsim/cxsim/cxlib"
	"github.com/cxsim/cxsim/cxplot"
	"github.com/cxsim/cxsim/internal/design"
	"github.com/cxsim/cxsim/wave"
)

func main() {
	var (
		designPath = flag.String("design", "", "design file to verify")
		levelPath  = flag.String("level", "", "level file with pins and waveforms")
		plotPath   = flag.String("plot", "", "write the trace as a PNG to this file")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	lvlLog := slog.LevelInfo
	if *verbose {
		lvlLog = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvlLog,
	})))

	if *designPath == "" || *levelPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	passed, err := run(os.Stdout, *designPath, *levelPath, *plotPath)
	if err != nil {
		slog.Error("verification aborted", "error", err)
		os.Exit(1)
	}
	if !passed {
		os.Exit(1)
	}
}

func run(out io.Writer, designPath, levelPath, plotPath string) (bool, error) {
	d, err := design.Load(designPath)
	if err != nil {
		return false, err
	}
	lvl, err := wave.Load(levelPath)
	if err != nil {
		return false, err
	}
	slog.Info("loaded", "design", d.Name, "level", lvl.Name, "cycles", lvl.Cycles())

	if err := cxlib.StandardPins(d.Grid, lvl.Pins); err != nil {
		return false, err
	}
	nl, disc := cxsim.Build(d.Grid)
	for _, e := range disc {
		slog.Warn("pin not connected", "pin", e.Pin.Name, "anchor", e.Anchor)
	}
	slog.Debug("netlist built", "nodes", len(nl.Nodes), "transistors", len(nl.Transistors))

	spec := lvl.Spec()
	rep, err := cxsim.Verify(nl, spec)
	if err != nil {
		return false, err
	}
	printTrace(out, lvl, rep)
	fmt.Fprintf(out, "accuracy %.1f%% (threshold %.1f%%)\n", rep.Accuracy*100, spec.Threshold*100)
	if rep.Passed {
		fmt.Fprintln(out, "PASS")
	} else {
		fmt.Fprintln(out, "FAIL")
	}

	if plotPath != "" {
		if err := cxplot.WritePNG(rep, shownPins(lvl), plotPath); err != nil {
			return false, err
		}
		slog.Info("trace plot written", "file", plotPath)
	}
	return rep.Passed, nil
}

// printTrace writes one row per displayed waveform pin, with the pin's
// resolved signal per cycle: '0', '1', or '~' for unresolved.
func printTrace(out io.Writer, lvl *wave.Level, rep *cxsim.Report) {
	width := 0
	pins := shownPins(lvl)
	for _, name := range pins {
		if len(name) > width {
			width = len(name)
		}
	}
	for _, name := range pins {
		fmt.Fprintf(out, "%-*s ", width, name)
		for t := range rep.Cycles {
			switch rep.Cycles[t].Outputs[name] {
			case cxsim.High:
				fmt.Fprint(out, "1")
			case cxsim.Low:
				fmt.Fprint(out, "0")
			default:
				fmt.Fprint(out, "~")
			}
		}
		fmt.Fprintln(out)
	}
	for t := range rep.Cycles {
		c := &rep.Cycles[t]
		if !c.Converged {
			slog.Warn("cycle did not settle", "cycle", t, "oscillating", len(c.Oscillating))
		}
		if len(c.Conflicts) > 0 {
			slog.Warn("short circuit", "cycle", t, "nodes", len(c.Conflicts))
		}
	}
}

// shownPins returns the labels of displayed waveform pins in waveform
// order, without duplicates.
func shownPins(lvl *wave.Level) []string {
	seen := make(map[string]bool)
	var pins []string
	for i := range lvl.Waveforms {
		w := &lvl.Waveforms[i]
		if !w.Shown() {
			continue
		}
		name := lvl.Pins[w.PinIndex]
		if !seen[name] {
			seen[name] = true
			pins = append(pins, name)
		}
	}
	return pins
}
