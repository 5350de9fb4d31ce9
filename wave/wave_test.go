// Copyright 2026 The cxsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package wave_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cxsim/cxsim"
	"github.com/cxsim/cxsim/wave"
)

const sampleLevel = `{
	"name": "inverter",
	"order": 3,
	"pins": ["VCC", "IN", "GND", "", "", "", "OUT", "", "", "", "", ""],
	"waveforms": [
		{"pin_index": 0, "is_input": true,  "values": "1111"},
		{"pin_index": 2, "is_input": true,  "values": "0000"},
		{"pin_index": 1, "is_input": true,  "values": "0101"},
		{"pin_index": 6, "is_input": false, "values": "1010", "test": "?x??"}
	],
	"specification": ["OUT must be the complement of IN."]
}`

func Test_parse_level(t *testing.T) {
	lvl, err := wave.Parse(strings.NewReader(sampleLevel))
	if err != nil {
		t.Fatal(err)
	}
	if lvl.Name != "inverter" || lvl.Order != 3 {
		t.Errorf("name=%q order=%d", lvl.Name, lvl.Order)
	}
	if lvl.Threshold != wave.DefaultThreshold {
		t.Errorf("threshold %v, want default %v", lvl.Threshold, wave.DefaultThreshold)
	}
	if n := lvl.Cycles(); n != 4 {
		t.Errorf("cycles %d, want 4", n)
	}
	for i := range lvl.Waveforms {
		if !lvl.Waveforms[i].Shown() {
			t.Errorf("waveform %d hidden by default", i)
		}
	}
}

func Test_parse_level_errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "nope"},
		{"no name", `{"pins": [], "waveforms": []}`},
		{"pin index out of range", `{"name": "x", "pins": ["A"], "waveforms": [
			{"pin_index": 1, "is_input": true, "values": "0"}]}`},
		{"negative pin index", `{"name": "x", "pins": ["A"], "waveforms": [
			{"pin_index": -1, "is_input": true, "values": "0"}]}`},
		{"bad value char", `{"name": "x", "pins": ["A"], "waveforms": [
			{"pin_index": 0, "is_input": true, "values": "01z"}]}`},
		{"threshold out of range", `{"name": "x", "pins": [], "waveforms": [],
			"accuracy_threshold": 1.5}`},
	}
	for _, test := range tests {
		if _, err := wave.Parse(strings.NewReader(test.in)); err == nil {
			t.Errorf("%s: no error", test.name)
		}
	}
}

func Test_level_spec(t *testing.T) {
	lvl, err := wave.Parse(strings.NewReader(sampleLevel))
	if err != nil {
		t.Fatal(err)
	}
	spec := lvl.Spec()
	if len(spec.Cycles) != 4 {
		t.Fatalf("got %d cycles, want 4", len(spec.Cycles))
	}
	if spec.Threshold != wave.DefaultThreshold {
		t.Errorf("threshold %v, want %v", spec.Threshold, wave.DefaultThreshold)
	}
	wantIn := map[string]cxsim.Signal{"VCC": cxsim.High, "GND": cxsim.Low, "IN": cxsim.High}
	if diff := cmp.Diff(wantIn, spec.Cycles[1].Inputs); diff != "" {
		t.Errorf("cycle 1 inputs mismatch (-want +got):\n%s", diff)
	}
	// masked cycle is don't-care, unmasked ones carry the expectation
	if got := spec.Cycles[0].Expected["OUT"]; got != cxsim.ExpectHigh {
		t.Errorf("cycle 0 OUT = %v, want HIGH", got)
	}
	if got := spec.Cycles[1].Expected["OUT"]; got != cxsim.ExpectAny {
		t.Errorf("cycle 1 OUT = %v, want any", got)
	}
	if got := spec.Cycles[3].Expected["OUT"]; got != cxsim.ExpectLow {
		t.Errorf("cycle 3 OUT = %v, want LOW", got)
	}
}

func Test_level_spec_short_waveforms(t *testing.T) {
	const in = `{
		"name": "short",
		"pins": ["A", "B"],
		"waveforms": [
			{"pin_index": 0, "is_input": true,  "values": "11"},
			{"pin_index": 1, "is_input": false, "values": "1111"}
		]
	}`
	lvl, err := wave.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	spec := lvl.Spec()
	if len(spec.Cycles) != 4 {
		t.Fatalf("got %d cycles, want 4", len(spec.Cycles))
	}
	// a short input waveform drives LOW past its end
	if got := spec.Cycles[3].Inputs["A"]; got != cxsim.Low {
		t.Errorf("cycle 3 A = %v, want LOW", got)
	}
	if got := spec.Cycles[1].Inputs["A"]; got != cxsim.High {
		t.Errorf("cycle 1 A = %v, want HIGH", got)
	}
}

func Test_level_spec_short_expectation(t *testing.T) {
	const in = `{
		"name": "short",
		"pins": ["A", "B"],
		"waveforms": [
			{"pin_index": 0, "is_input": true,  "values": "1111"},
			{"pin_index": 1, "is_input": false, "values": "11"}
		]
	}`
	lvl, err := wave.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	spec := lvl.Spec()
	// a short expectation checks nothing past its end
	if _, ok := spec.Cycles[2].Expected["B"]; ok {
		t.Error("cycle 2 carries an expectation past the waveform end")
	}
	if got := spec.Cycles[1].Expected["B"]; got != cxsim.ExpectHigh {
		t.Errorf("cycle 1 B = %v, want HIGH", got)
	}
}
