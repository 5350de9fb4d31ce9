// Copyright 2026 The cxsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package wave loads verification levels: named bundles of pin labels,
// stimulus and expectation waveforms, and an accuracy threshold, stored as
// JSON.
//
// A waveform is a string of '0' and '1' characters, one per cycle. For
// expectation waveforms an optional test mask of the same shape marks
// cycles to skip with 'x'; a missing or short mask checks everything it
// does not cover.
//
package wave

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/cxsim/cxsim"
)

// DefaultThreshold is the accuracy a level requires when it does not set
// its own.
const DefaultThreshold = 0.98

// A Waveform is one pin's column of a level: driven values for an input
// pin, expected values for an output pin.
//
type Waveform struct {
	PinIndex int    `json:"pin_index"`
	IsInput  bool   `json:"is_input"`
	Values   string `json:"values"`
	Test     string `json:"test"`
	Display  *bool  `json:"display"`
}

// Shown reports whether the waveform should appear in trace output.
// It defaults to true when the level does not say.
//
func (w *Waveform) Shown() bool {
	return w.Display == nil || *w.Display
}

// A Level is a named verification challenge: twelve pin labels, the
// waveforms over them, and the accuracy threshold to pass.
//
type Level struct {
	Name          string     `json:"name"`
	Order         int        `json:"order"`
	Pins          []string   `json:"pins"`
	Waveforms     []Waveform `json:"waveforms"`
	Specification []string   `json:"specification"`
	Threshold     float64    `json:"accuracy_threshold"`
}

// Parse decodes a level and validates it. A missing threshold takes
// DefaultThreshold.
//
func Parse(r io.Reader) (*Level, error) {
	lvl := &Level{}
	if err := json.NewDecoder(r).Decode(lvl); err != nil {
		return nil, errors.Wrap(err, "decode level")
	}
	if lvl.Name == "" {
		return nil, errors.New("level has no name")
	}
	if lvl.Threshold == 0 {
		lvl.Threshold = DefaultThreshold
	}
	if lvl.Threshold < 0 || lvl.Threshold > 1 {
		return nil, errors.Errorf("level %q: accuracy threshold %v out of range", lvl.Name, lvl.Threshold)
	}
	for i := range lvl.Waveforms {
		w := &lvl.Waveforms[i]
		if w.PinIndex < 0 || w.PinIndex >= len(lvl.Pins) {
			return nil, errors.Errorf("level %q: waveform %d: pin index %d out of range", lvl.Name, i, w.PinIndex)
		}
		for _, c := range w.Values {
			if c != '0' && c != '1' {
				return nil, errors.Errorf("level %q: waveform %d: bad value char %q", lvl.Name, i, c)
			}
		}
	}
	return lvl, nil
}

// Load reads and parses a level file.
//
func Load(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open level")
	}
	defer f.Close()
	lvl, err := Parse(f)
	return lvl, errors.Wrapf(err, "level file %s", path)
}

// Cycles returns the length of the level's longest waveform.
//
func (lvl *Level) Cycles() int {
	n := 0
	for i := range lvl.Waveforms {
		if l := len(lvl.Waveforms[i].Values); l > n {
			n = l
		}
	}
	return n
}

// Spec compiles the level into a waveform spec over its pin labels. An
// input waveform shorter than the run drives LOW for its missing cycles; an
// expectation waveform shorter than the run checks nothing past its end.
//
func (lvl *Level) Spec() *cxsim.WaveformSpec {
	n := lvl.Cycles()
	spec := &cxsim.WaveformSpec{
		Cycles:    make([]cxsim.Cycle, n),
		Threshold: lvl.Threshold,
	}
	for t := 0; t < n; t++ {
		spec.Cycles[t] = cxsim.Cycle{
			Inputs:   make(map[string]cxsim.Signal),
			Expected: make(map[string]cxsim.Expect),
		}
	}
	for i := range lvl.Waveforms {
		w := &lvl.Waveforms[i]
		name := lvl.Pins[w.PinIndex]
		if w.IsInput {
			for t := 0; t < n; t++ {
				v := cxsim.Low
				if t < len(w.Values) && w.Values[t] == '1' {
					v = cxsim.High
				}
				spec.Cycles[t].Inputs[name] = v
			}
			continue
		}
		for t := 0; t < len(w.Values); t++ {
			if t < len(w.Test) && w.Test[t] == 'x' {
				spec.Cycles[t].Expected[name] = cxsim.ExpectAny
				continue
			}
			e := cxsim.ExpectLow
			if w.Values[t] == '1' {
				e = cxsim.ExpectHigh
			}
			spec.Cycles[t].Expected[name] = e
		}
	}
	return spec
}
