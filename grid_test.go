// Copyright 2026 The cxsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package cxsim_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cxsim/cxsim"
)

func Test_grid_bounds(t *testing.T) {
	g := cxsim.NewGrid(4, 3)
	for _, p := range []cxsim.Pos{{X: -1, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 3}} {
		if _, err := g.Cell(p); err == nil {
			t.Errorf("Cell(%v): no error", p)
		} else if _, ok := err.(*cxsim.BoundsError); !ok {
			t.Errorf("Cell(%v): error %T, want *BoundsError", p, err)
		}
		if err := g.SetSilicon(p, cxsim.SiliconN); err == nil {
			t.Errorf("SetSilicon(%v): no error", p)
		}
	}
	if _, err := g.Cell(cxsim.Pos{X: 3, Y: 2}); err != nil {
		t.Errorf("Cell(3,2): %v", err)
	}
}

func Test_grid_new_panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewGrid(0, 5) did not panic")
		}
	}()
	cxsim.NewGrid(0, 5)
}

func Test_grid_via_requires_metal(t *testing.T) {
	g := cxsim.NewGrid(2, 2)
	p := cxsim.Pos{X: 1, Y: 1}
	if err := g.SetVia(p, true); err == nil {
		t.Fatal("SetVia on bare cell: no error")
	}
	if err := g.SetMetal(p, true); err != nil {
		t.Fatal(err)
	}
	if err := g.SetVia(p, true); err != nil {
		t.Fatal(err)
	}
	// clearing metal must take the via with it
	if err := g.SetMetal(p, false); err != nil {
		t.Fatal(err)
	}
	c, err := g.Cell(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.Via || c.Metal {
		t.Errorf("after clearing metal: %+v", c)
	}
}

func Test_grid_pin_rules(t *testing.T) {
	g := cxsim.NewGrid(8, 8)
	if err := g.AddPin(cxsim.Pin{Name: "A", Side: cxsim.SideLeft, Row: 2}); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		pin  cxsim.Pin
	}{
		{"empty name", cxsim.Pin{Side: cxsim.SideLeft, Row: 3}},
		{"duplicate name", cxsim.Pin{Name: "A", Side: cxsim.SideRight, Row: 2}},
		{"duplicate row", cxsim.Pin{Name: "B", Side: cxsim.SideLeft, Row: 2}},
		{"row out of range", cxsim.Pin{Name: "C", Side: cxsim.SideLeft, Row: 8}},
		{"negative row", cxsim.Pin{Name: "D", Side: cxsim.SideRight, Row: -1}},
	}
	for _, test := range tests {
		if err := g.AddPin(test.pin); err == nil {
			t.Errorf("%s: no error", test.name)
		}
	}
	// same row on the other side is fine
	if err := g.AddPin(cxsim.Pin{Name: "E", Side: cxsim.SideRight, Row: 2}); err != nil {
		t.Fatal(err)
	}
	if n := len(g.Pins()); n != 2 {
		t.Errorf("got %d pins, want 2", n)
	}
}

func Test_grid_pin_anchor(t *testing.T) {
	g := cxsim.NewGrid(10, 5)
	l := g.PinAnchor(cxsim.Pin{Name: "L", Side: cxsim.SideLeft, Row: 3})
	r := g.PinAnchor(cxsim.Pin{Name: "R", Side: cxsim.SideRight, Row: 1})
	if want := (cxsim.Pos{X: 0, Y: 3}); l != want {
		t.Errorf("left anchor %v, want %v", l, want)
	}
	if want := (cxsim.Pos{X: 9, Y: 1}); r != want {
		t.Errorf("right anchor %v, want %v", r, want)
	}
}

func Test_grid_neighbors(t *testing.T) {
	g := cxsim.NewGrid(3, 3)
	tests := []struct {
		p    cxsim.Pos
		want []cxsim.Pos
	}{
		{cxsim.Pos{X: 1, Y: 1}, []cxsim.Pos{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}}},
		{cxsim.Pos{X: 0, Y: 0}, []cxsim.Pos{{X: 1, Y: 0}, {X: 0, Y: 1}}},
		{cxsim.Pos{X: 2, Y: 1}, []cxsim.Pos{{X: 2, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}},
	}
	for _, test := range tests {
		if diff := cmp.Diff(test.want, g.Neighbors4(test.p)); diff != "" {
			t.Errorf("Neighbors4(%v) mismatch (-want +got):\n%s", test.p, diff)
		}
	}
}

func Test_grid_clear_region(t *testing.T) {
	g := cxsim.NewGrid(6, 6)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if err := g.SetSilicon(cxsim.Pos{X: x, Y: y}, cxsim.SiliconN); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := g.ClearRegion(cxsim.Pos{X: 1, Y: 1}, cxsim.Pos{X: 3, Y: 2}); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			c, err := g.Cell(cxsim.Pos{X: x, Y: y})
			if err != nil {
				t.Fatal(err)
			}
			in := x >= 1 && x <= 3 && y >= 1 && y <= 2
			if in && !c.Empty() {
				t.Errorf("(%d,%d) not cleared", x, y)
			}
			if !in && c.Empty() {
				t.Errorf("(%d,%d) cleared outside region", x, y)
			}
		}
	}
}

func Test_grid_clone(t *testing.T) {
	g := cxsim.NewGrid(4, 4)
	p := cxsim.Pos{X: 2, Y: 2}
	if err := g.SetSilicon(p, cxsim.SiliconP); err != nil {
		t.Fatal(err)
	}
	if err := g.AddPin(cxsim.Pin{Name: "A", Side: cxsim.SideLeft, Row: 0}); err != nil {
		t.Fatal(err)
	}
	c := g.Clone()
	if err := c.Clear(p); err != nil {
		t.Fatal(err)
	}
	if err := c.AddPin(cxsim.Pin{Name: "B", Side: cxsim.SideRight, Row: 0}); err != nil {
		t.Fatal(err)
	}
	orig, err := g.Cell(p)
	if err != nil {
		t.Fatal(err)
	}
	if orig.Silicon != cxsim.SiliconP {
		t.Error("clearing the clone modified the original")
	}
	if n := len(g.Pins()); n != 1 {
		t.Errorf("original has %d pins, want 1", n)
	}
}
