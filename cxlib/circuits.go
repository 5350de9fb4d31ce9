// Copyright 2026 The cxsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package cxlib

import "github.com/cxsim/cxsim"

// painter wraps a grid with panicking paint methods. The reference layouts
// are fixed, so a paint error is a bug in this package.
type painter struct {
	g *cxsim.Grid
}

func (pt painter) silicon(k cxsim.SiliconKind, x0, y0, x1, y1 int) {
	pt.check(SiliconLine(pt.g, k, cxsim.Pos{X: x0, Y: y0}, cxsim.Pos{X: x1, Y: y1}))
}

func (pt painter) metal(x0, y0, x1, y1 int) {
	pt.check(MetalLine(pt.g, cxsim.Pos{X: x0, Y: y0}, cxsim.Pos{X: x1, Y: y1}))
}

func (pt painter) via(x, y int) {
	pt.check(Via(pt.g, cxsim.Pos{X: x, Y: y}))
}

func (pt painter) pin(name string, side cxsim.Side, row int) {
	pt.check(pt.g.AddPin(cxsim.Pin{Name: name, Side: side, Row: row}))
}

func (pt painter) check(err error) {
	if err != nil {
		panic("cxlib: " + err.Error())
	}
}

// WireGrid returns a reference-size grid with a single N silicon strand
// joining pin A (left) to pin B (right).
//
func WireGrid() *cxsim.Grid {
	g := cxsim.NewGrid(cxsim.DefaultWidth, cxsim.DefaultHeight)
	pt := painter{g}
	pt.pin("A", cxsim.SideLeft, 13)
	pt.pin("B", cxsim.SideRight, 13)
	pt.silicon(cxsim.SiliconN, 0, 13, g.Width()-1, 13)
	return g
}

// TransistorGrid returns a single N-channel pass transistor: pin G drives
// the gate, and A connects to B while G is HIGH.
//
func TransistorGrid() *cxsim.Grid {
	g := cxsim.NewGrid(12, 9)
	pt := painter{g}
	pt.pin("A", cxsim.SideLeft, 3)
	pt.pin("G", cxsim.SideLeft, 7)
	pt.pin("B", cxsim.SideRight, 3)

	// N channel split by the P gate strand crossing at (6,3)
	pt.silicon(cxsim.SiliconN, 0, 3, 5, 3)
	pt.silicon(cxsim.SiliconN, 7, 3, 11, 3)
	pt.silicon(cxsim.SiliconP, 0, 7, 6, 7)
	pt.silicon(cxsim.SiliconP, 6, 3, 6, 6)
	return g
}

// InverterGrid returns a two-transistor CMOS inverter. Drive VCC HIGH and
// GND LOW; OUT is then the complement of IN.
//
func InverterGrid() *cxsim.Grid {
	g := cxsim.NewGrid(16, 11)
	pt := painter{g}
	pt.pin("VCC", cxsim.SideLeft, 1)
	pt.pin("IN", cxsim.SideLeft, 5)
	pt.pin("GND", cxsim.SideLeft, 9)
	pt.pin("OUT", cxsim.SideRight, 5)

	// pull-up: VCC rail into the P source, gate crossing at (8,3)
	pt.silicon(cxsim.SiliconP, 0, 1, 8, 1)
	pt.silicon(cxsim.SiliconP, 8, 2, 8, 2)
	pt.silicon(cxsim.SiliconP, 8, 4, 8, 4)

	// pull-down: GND rail into the N source, gate crossing at (8,7)
	pt.silicon(cxsim.SiliconN, 0, 9, 8, 9)
	pt.silicon(cxsim.SiliconN, 8, 8, 8, 8)
	pt.silicon(cxsim.SiliconN, 8, 6, 8, 6)

	// IN reaches the N gate strand directly and the P gate strand through a
	// metal riser
	pt.silicon(cxsim.SiliconN, 0, 5, 4, 5)
	pt.silicon(cxsim.SiliconN, 4, 3, 4, 4)
	pt.silicon(cxsim.SiliconN, 5, 3, 8, 3)
	pt.silicon(cxsim.SiliconP, 4, 7, 8, 7)
	pt.metal(4, 5, 4, 7)
	pt.via(4, 5)
	pt.via(4, 7)

	// output: both drains onto one metal net out to OUT
	pt.metal(8, 4, 8, 6)
	pt.via(8, 4)
	pt.via(8, 6)
	pt.metal(8, 5, g.Width()-1, 5)
	return g
}

// LatchGrid returns two cross-coupled inverters. QD and QBD are drive taps
// on the two inverter outputs: pulse them to opposite levels to set the
// latch, then leave them undriven and the latch holds. Q reads the output
// of the second inverter.
//
func LatchGrid() *cxsim.Grid {
	g := cxsim.NewGrid(20, 11)
	pt := painter{g}
	pt.pin("VCC", cxsim.SideLeft, 1)
	pt.pin("GND", cxsim.SideLeft, 9)
	pt.pin("QD", cxsim.SideLeft, 10)
	pt.pin("Q", cxsim.SideRight, 5)
	pt.pin("QBD", cxsim.SideRight, 10)

	pt.silicon(cxsim.SiliconP, 0, 1, 14, 1)
	pt.silicon(cxsim.SiliconN, 0, 9, 14, 9)

	// inverter stacks in columns 6 and 14
	for _, c := range []int{6, 14} {
		pt.silicon(cxsim.SiliconP, c, 2, c, 2)
		pt.silicon(cxsim.SiliconP, c, 4, c, 4)
		pt.silicon(cxsim.SiliconN, c, 6, c, 6)
		pt.silicon(cxsim.SiliconN, c, 8, c, 8)
		pt.via(c, 4)
		pt.metal(c, 4, c, 6)
		pt.via(c, 6)
	}

	// gate strands: N above, P below, crossing each stack
	pt.silicon(cxsim.SiliconN, 3, 3, 6, 3)
	pt.silicon(cxsim.SiliconP, 3, 7, 6, 7)
	pt.silicon(cxsim.SiliconN, 11, 3, 14, 3)
	pt.silicon(cxsim.SiliconP, 11, 7, 14, 7)

	// first gate driven by the second output, routed over the top edge
	pt.metal(3, 0, 3, 7)
	pt.via(3, 3)
	pt.via(3, 7)
	pt.metal(3, 0, 17, 0)
	pt.metal(17, 0, 17, 5)

	// first output into the second gate
	pt.metal(6, 5, 11, 5)
	pt.metal(11, 3, 11, 7)
	pt.via(11, 3)
	pt.via(11, 7)

	// second output out to Q and back around
	pt.metal(14, 5, g.Width()-1, 5)

	// drive taps
	pt.metal(0, 10, 8, 10)
	pt.metal(8, 5, 8, 10)
	pt.metal(16, 10, g.Width()-1, 10)
	pt.metal(16, 5, 16, 10)
	return g
}

// OscillatorGrid returns two cross-coupled inverters with no drive taps:
// each output is the other's gate, so gate and drain nets stay distinct.
// A cold start settles unresolved. Released from the symmetric state, with
// both outputs carrying the same level, the solver flips both every round
// and never settles.
//
// A single inverter feeding its own gates would not do: its feedback metal
// merges gate and drain into one net and the crossings degenerate away.
//
func OscillatorGrid() *cxsim.Grid {
	g := cxsim.NewGrid(20, 11)
	pt := painter{g}
	pt.pin("VCC", cxsim.SideLeft, 1)
	pt.pin("GND", cxsim.SideLeft, 9)
	pt.pin("OUT", cxsim.SideRight, 5)

	pt.silicon(cxsim.SiliconP, 0, 1, 14, 1)
	pt.silicon(cxsim.SiliconN, 0, 9, 14, 9)

	// inverter stacks in columns 6 and 14
	for _, c := range []int{6, 14} {
		pt.silicon(cxsim.SiliconP, c, 2, c, 2)
		pt.silicon(cxsim.SiliconP, c, 4, c, 4)
		pt.silicon(cxsim.SiliconN, c, 6, c, 6)
		pt.silicon(cxsim.SiliconN, c, 8, c, 8)
		pt.via(c, 4)
		pt.metal(c, 4, c, 6)
		pt.via(c, 6)
	}

	// gate strands: N above, P below, crossing each stack
	pt.silicon(cxsim.SiliconN, 3, 3, 6, 3)
	pt.silicon(cxsim.SiliconP, 3, 7, 6, 7)
	pt.silicon(cxsim.SiliconN, 11, 3, 14, 3)
	pt.silicon(cxsim.SiliconP, 11, 7, 14, 7)

	// first gate driven by the second output, routed over the top edge
	pt.metal(3, 0, 3, 7)
	pt.via(3, 3)
	pt.via(3, 7)
	pt.metal(3, 0, 17, 0)
	pt.metal(17, 0, 17, 5)

	// first output into the second gate
	pt.metal(6, 5, 11, 5)
	pt.metal(11, 3, 11, 7)
	pt.via(11, 3)
	pt.via(11, 7)

	// second output out to OUT
	pt.metal(14, 5, g.Width()-1, 5)
	return g
}
