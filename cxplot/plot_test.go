// Copyright 2026 The cxsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package cxplot_test

import (
	"path/filepath"
	"testing"

	"github.com/cxsim/cxsim"
	"github.com/cxsim/cxsim/cxlib"
	"github.com/cxsim/cxsim/cxplot"
	"github.com/cxsim/cxsim/cxtest"
)

func inverterReport(t *testing.T) *cxsim.Report {
	t.Helper()
	nl, disc := cxsim.Build(cxlib.InverterGrid())
	if len(disc) != 0 {
		t.Fatal(disc)
	}
	rails := cxtest.Merge(cxtest.High("VCC"), cxtest.Low("GND"))
	w := &cxsim.WaveformSpec{
		Cycles: []cxsim.Cycle{
			{Inputs: cxtest.Merge(rails, cxtest.Low("IN"))},
			{Inputs: cxtest.Merge(rails, cxtest.High("IN"))},
			{Inputs: cxtest.Merge(rails, cxtest.Low("IN"))},
		},
	}
	rep, err := cxsim.Verify(nl, w)
	if err != nil {
		t.Fatal(err)
	}
	return rep
}

func Test_render(t *testing.T) {
	rep := inverterReport(t)
	p, err := cxplot.Render(rep, []string{"IN", "OUT"})
	if err != nil {
		t.Fatal(err)
	}
	if p == nil {
		t.Fatal("nil plot")
	}
}

func Test_render_empty_report(t *testing.T) {
	if _, err := cxplot.Render(&cxsim.Report{}, []string{"A"}); err == nil {
		t.Fatal("no error for empty report")
	}
}

func Test_write_png(t *testing.T) {
	rep := inverterReport(t)
	path := filepath.Join(t.TempDir(), "trace.png")
	if err := cxplot.WritePNG(rep, []string{"VCC", "IN", "OUT", "GND"}, path); err != nil {
		t.Fatal(err)
	}
}
