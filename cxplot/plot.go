// Copyright 2026 The cxsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cxplot renders verification reports as waveform trace plots.
//
package cxplot

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/cxsim/cxsim"
)

// vertical room per trace; traces swing 0..1 within their lane
const laneHeight = 1.5

// level returns the plotted height of a signal within its lane. Unresolved
// draws at mid level so gaps in the trace stand out.
func level(s cxsim.Signal) float64 {
	switch s {
	case cxsim.High:
		return 1
	case cxsim.Low:
		return 0
	}
	return 0.5
}

// Render draws one step trace per named pin from the report's cycle
// outputs, stacked top to bottom in the given order.
//
func Render(rep *cxsim.Report, pins []string) (*plot.Plot, error) {
	if len(rep.Cycles) == 0 {
		return nil, errors.New("report has no cycles")
	}
	p := plot.New()
	p.Title.Text = "verification trace"
	p.X.Label.Text = "cycle"
	p.Y.Min = -0.5
	p.Y.Max = float64(len(pins)-1)*laneHeight + 1.5

	ticks := make([]plot.Tick, len(pins))
	for i, name := range pins {
		lane := float64(len(pins)-1-i) * laneHeight
		ticks[i] = plot.Tick{Value: lane + 0.5, Label: name}

		xys := make(plotter.XYs, 0, 2*len(rep.Cycles))
		for t := range rep.Cycles {
			v := lane + level(rep.Cycles[t].Outputs[name])
			xys = append(xys,
				plotter.XY{X: float64(t), Y: v},
				plotter.XY{X: float64(t + 1), Y: v})
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, errors.Wrapf(err, "trace for pin %q", name)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
	}
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Padding = 0
	return p, nil
}

// WritePNG renders the traces and writes them to a PNG file. The image
// widens with the cycle count.
//
func WritePNG(rep *cxsim.Report, pins []string, path string) error {
	p, err := Render(rep, pins)
	if err != nil {
		return err
	}
	w := vg.Length(len(rep.Cycles)) * vg.Centimeter
	if w < 12*vg.Centimeter {
		w = 12 * vg.Centimeter
	}
	h := vg.Length(len(pins)) * vg.Centimeter
	if h < 6*vg.Centimeter {
		h = 6 * vg.Centimeter
	}
	return errors.Wrap(p.Save(w, h, path), "save plot")
}
