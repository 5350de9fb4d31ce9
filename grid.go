// Copyright 2026 The cxsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package cxsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// Reference grid dimensions: 1 blank + 3 pad + 36 playable + 3 pad + 1 blank
// columns, and 2 blank + 6 pin rows at a 4 row stride + 1 blank rows.
const (
	DefaultWidth  = 44
	DefaultHeight = 27
)

// A Pos is a grid position. X grows rightwards, Y downwards.
//
type Pos struct {
	X, Y int
}

func (p Pos) String() string {
	return "(" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + ")"
}

// SiliconKind is the doping of the silicon layer of a cell.
//
type SiliconKind uint8

// Silicon kinds.
const (
	SiliconNone SiliconKind = iota
	SiliconN
	SiliconP
)

func (k SiliconKind) String() string {
	switch k {
	case SiliconN:
		return "N"
	case SiliconP:
		return "P"
	default:
		return "none"
	}
}

// Opposite returns P for N and N for P, and SiliconNone for SiliconNone.
//
func (k SiliconKind) Opposite() SiliconKind {
	switch k {
	case SiliconN:
		return SiliconP
	case SiliconP:
		return SiliconN
	}
	return SiliconNone
}

// A Cell is one grid position. Silicon and metal are separate conductive
// layers; a via joins them. Invariant: Via implies Metal.
//
type Cell struct {
	Silicon SiliconKind
	Metal   bool
	Via     bool
}

// Empty reports whether the cell carries no material at all.
//
func (c Cell) Empty() bool {
	return c.Silicon == SiliconNone && !c.Metal
}

// Side is the grid edge a pin is anchored to.
//
type Side uint8

// Pin sides.
const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// A Pin is a named connection point anchored to a cell on the left or right
// edge column of the grid. Pin rows are unique per side.
//
type Pin struct {
	Name string
	Side Side
	Row  int
}

// A Grid is a fixed-size rectangular array of cells plus the declared pins.
// It carries no simulation semantics; the netlist builder reads it as an
// immutable snapshot.
//
type Grid struct {
	width, height int
	cells         []Cell
	pins          []Pin
}

// NewGrid returns an empty grid of the given dimensions.
// It panics if either dimension is not positive.
//
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic("cxsim: non-positive grid dimensions")
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

func (g *Grid) inBounds(p Pos) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *Grid) boundsErr(p Pos) error {
	return &BoundsError{Pos: p, Width: g.width, Height: g.height}
}

// at returns the cell at p. The caller guarantees p is in bounds.
func (g *Grid) at(p Pos) Cell {
	return g.cells[p.Y*g.width+p.X]
}

// Cell returns the cell at p, or a *BoundsError.
//
func (g *Grid) Cell(p Pos) (Cell, error) {
	if !g.inBounds(p) {
		return Cell{}, g.boundsErr(p)
	}
	return g.at(p), nil
}

// SetSilicon sets the silicon kind of the cell at p.
//
func (g *Grid) SetSilicon(p Pos, k SiliconKind) error {
	if !g.inBounds(p) {
		return g.boundsErr(p)
	}
	g.cells[p.Y*g.width+p.X].Silicon = k
	return nil
}

// SetMetal sets or clears metal at p. Clearing metal clears the via with it,
// keeping the via-implies-metal invariant.
//
func (g *Grid) SetMetal(p Pos, present bool) error {
	if !g.inBounds(p) {
		return g.boundsErr(p)
	}
	c := &g.cells[p.Y*g.width+p.X]
	c.Metal = present
	if !present {
		c.Via = false
	}
	return nil
}

// SetVia sets or clears a via at p. A via may only be placed where metal is
// present.
//
func (g *Grid) SetVia(p Pos, present bool) error {
	if !g.inBounds(p) {
		return g.boundsErr(p)
	}
	c := &g.cells[p.Y*g.width+p.X]
	if present && !c.Metal {
		return errors.Errorf("via without metal at %v", p)
	}
	c.Via = present
	return nil
}

// Clear removes all material at p.
//
func (g *Grid) Clear(p Pos) error {
	if !g.inBounds(p) {
		return g.boundsErr(p)
	}
	g.cells[p.Y*g.width+p.X] = Cell{}
	return nil
}

// ClearRegion removes all material in the rectangle spanned by min and max,
// inclusive.
//
func (g *Grid) ClearRegion(min, max Pos) error {
	if !g.inBounds(min) {
		return g.boundsErr(min)
	}
	if !g.inBounds(max) {
		return g.boundsErr(max)
	}
	for y := min.Y; y <= max.Y; y++ {
		for x := min.X; x <= max.X; x++ {
			g.cells[y*g.width+x] = Cell{}
		}
	}
	return nil
}

// Neighbors4 returns the up to four edge-adjacent positions of p that lie
// within the grid.
//
func (g *Grid) Neighbors4(p Pos) []Pos {
	out := make([]Pos, 0, 4)
	for _, q := range [4]Pos{{p.X, p.Y - 1}, {p.X - 1, p.Y}, {p.X + 1, p.Y}, {p.X, p.Y + 1}} {
		if g.inBounds(q) {
			out = append(out, q)
		}
	}
	return out
}

// AddPin declares a pin. The row must be within the grid and unused on that
// side, and the name must be unique.
//
func (g *Grid) AddPin(pin Pin) error {
	if pin.Name == "" {
		return errors.New("empty pin name")
	}
	if pin.Row < 0 || pin.Row >= g.height {
		return g.boundsErr(g.PinAnchor(pin))
	}
	for _, p := range g.pins {
		if p.Name == pin.Name {
			return errors.Errorf("duplicate pin name %q", pin.Name)
		}
		if p.Side == pin.Side && p.Row == pin.Row {
			return errors.Errorf("pin %q: row %d already used on %v side by %q",
				pin.Name, pin.Row, pin.Side, p.Name)
		}
	}
	g.pins = append(g.pins, pin)
	return nil
}

// Pins returns the declared pins in declaration order.
//
func (g *Grid) Pins() []Pin {
	out := make([]Pin, len(g.pins))
	copy(out, g.pins)
	return out
}

// PinAnchor returns the cell position a pin is anchored to: its row on the
// leftmost or rightmost column.
//
func (g *Grid) PinAnchor(pin Pin) Pos {
	x := 0
	if pin.Side == SideRight {
		x = g.width - 1
	}
	return Pos{X: x, Y: pin.Row}
}

// Clone returns a deep copy of the grid.
//
func (g *Grid) Clone() *Grid {
	c := &Grid{
		width:  g.width,
		height: g.height,
		cells:  make([]Cell, len(g.cells)),
		pins:   make([]Pin, len(g.pins)),
	}
	copy(c.cells, g.cells)
	copy(c.pins, g.pins)
	return c
}
