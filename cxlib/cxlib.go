// Copyright 2026 The cxsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cxlib provides grid painting helpers and a small library of
// reference circuits for cxsim.
//
// The reference circuits are the calibration suite for the netlist builder
// and the propagation engine: a plain wire, a single pass transistor, an
// inverter, a cross-coupled latch with drive taps, and an undriven
// cross-coupled pair for oscillation. Tests and embedding applications use
// them as known-good designs.
//
package cxlib

import (
	"github.com/pkg/errors"

	"github.com/cxsim/cxsim"
)

// SiliconLine paints a straight horizontal or vertical silicon strand from
// one position to the other, inclusive. Painting over silicon of the
// opposite kind is refused: crossings are built by flanking a strand of one
// kind with the other, not by overwriting.
//
func SiliconLine(g *cxsim.Grid, k cxsim.SiliconKind, from, to cxsim.Pos) error {
	if k == cxsim.SiliconNone {
		return errors.New("cannot paint silicon of kind none")
	}
	if from.X != to.X && from.Y != to.Y {
		return errors.Errorf("silicon line %v-%v is not axis aligned", from, to)
	}
	for _, p := range linePoints(from, to) {
		c, err := g.Cell(p)
		if err != nil {
			return err
		}
		if c.Silicon != cxsim.SiliconNone && c.Silicon != k {
			return errors.Errorf("%v silicon already at %v", c.Silicon, p)
		}
		if err := g.SetSilicon(p, k); err != nil {
			return err
		}
	}
	return nil
}

// MetalLine paints a straight metal strand from one position to the other,
// inclusive. Metal freely crosses over silicon; only a via joins the two
// layers.
//
func MetalLine(g *cxsim.Grid, from, to cxsim.Pos) error {
	if from.X != to.X && from.Y != to.Y {
		return errors.Errorf("metal line %v-%v is not axis aligned", from, to)
	}
	for _, p := range linePoints(from, to) {
		if err := g.SetMetal(p, true); err != nil {
			return err
		}
	}
	return nil
}

// Via places a via at p, painting the metal layer there first if absent.
//
func Via(g *cxsim.Grid, p cxsim.Pos) error {
	if err := g.SetMetal(p, true); err != nil {
		return err
	}
	return g.SetVia(p, true)
}

// Pad paints a 3x3 metal pad with its top-left corner at p.
//
func Pad(g *cxsim.Grid, p cxsim.Pos) error {
	for dy := 0; dy < 3; dy++ {
		for dx := 0; dx < 3; dx++ {
			if err := g.SetMetal(cxsim.Pos{X: p.X + dx, Y: p.Y + dy}, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// standard pin rows: six per side at a stride of four.
var stdPinRows = [6]int{3, 7, 11, 15, 19, 23}

// StandardPins declares the twelve standard pins on a reference-size grid
// and paints their metal pads: labels[0..5] on the left side, labels[6..11]
// on the right, top to bottom. The pad covers the three columns nearest the
// edge, centered on the pin row.
//
func StandardPins(g *cxsim.Grid, labels []string) error {
	if len(labels) != 12 {
		return errors.Errorf("want 12 pin labels, got %d", len(labels))
	}
	for i, name := range labels {
		side, x := cxsim.SideLeft, 0
		if i >= 6 {
			side, x = cxsim.SideRight, g.Width()-3
		}
		row := stdPinRows[i%6]
		if err := g.AddPin(cxsim.Pin{Name: name, Side: side, Row: row}); err != nil {
			return err
		}
		if err := Pad(g, cxsim.Pos{X: x, Y: row - 1}); err != nil {
			return errors.Wrapf(err, "pad for pin %q", name)
		}
	}
	return nil
}

func linePoints(from, to cxsim.Pos) []cxsim.Pos {
	step := cxsim.Pos{X: sign(to.X - from.X), Y: sign(to.Y - from.Y)}
	pts := []cxsim.Pos{from}
	for p := from; p != to; {
		p = cxsim.Pos{X: p.X + step.X, Y: p.Y + step.Y}
		pts = append(pts, p)
	}
	return pts
}

func sign(d int) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}
