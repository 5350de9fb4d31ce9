// Copyright 2026 The cxsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package design reads and writes circuit designs in a line-oriented text
// format:
//
//	CXSIM_DESIGN
//	name:half adder
//	size:44x27
//	cells:
//	...,nvm,..m,...
//
// One comma-separated triple per cell, row by row: silicon rune, via rune,
// metal rune. Silicon is '.' (none), 'n', 'p', or a gate marker naming the
// channel kind the gate strand crosses: 'N' is a gate over an N channel
// (the strand cell is P), 'G' a gate over a P channel (the strand cell is
// N). Via is 'v' or '.', metal is 'm' or '.'.
//
package design

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/cxsim/cxsim"
)

// Magic is the first line of a design file.
const Magic = "CXSIM_DESIGN"

// A Design is a named grid layout.
//
type Design struct {
	Name string
	Grid *cxsim.Grid
}

// Parse reads a design. Sections following the cell rows are ignored.
//
func Parse(r io.Reader) (*Design, error) {
	sc := bufio.NewScanner(r)

	line, err := nextLine(sc)
	if err != nil {
		return nil, err
	}
	if line != Magic {
		return nil, errors.Errorf("bad magic %q", line)
	}

	line, err = nextLine(sc)
	if err != nil {
		return nil, err
	}
	name, ok := strings.CutPrefix(line, "name:")
	if !ok {
		return nil, errors.Errorf("want name line, got %q", line)
	}

	line, err = nextLine(sc)
	if err != nil {
		return nil, err
	}
	dims, ok := strings.CutPrefix(line, "size:")
	if !ok {
		return nil, errors.Errorf("want size line, got %q", line)
	}
	var w, h int
	if _, err := fmt.Sscanf(dims, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return nil, errors.Errorf("bad size %q", dims)
	}

	line, err = nextLine(sc)
	if err != nil {
		return nil, err
	}
	if line != "cells:" {
		return nil, errors.Errorf("want cells section, got %q", line)
	}

	g := cxsim.NewGrid(w, h)
	for y := 0; y < h; y++ {
		line, err = nextLine(sc)
		if err != nil {
			return nil, errors.Wrapf(err, "cell row %d", y)
		}
		cells := strings.Split(line, ",")
		if len(cells) != w {
			return nil, errors.Errorf("cell row %d: want %d cells, got %d", y, w, len(cells))
		}
		for x, s := range cells {
			if err := setCell(g, cxsim.Pos{X: x, Y: y}, s); err != nil {
				return nil, errors.Wrapf(err, "cell row %d", y)
			}
		}
	}
	return &Design{Name: name, Grid: g}, nil
}

// Load reads and parses a design file.
//
func Load(path string) (*Design, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open design")
	}
	defer f.Close()
	d, err := Parse(f)
	return d, errors.Wrapf(err, "design file %s", path)
}

// Encode writes a design. Gate cells are written as their plain silicon
// kind: which cells act as gates is derived from the layout, not stored.
//
func Encode(w io.Writer, d *Design) error {
	g := d.Grid
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, Magic)
	fmt.Fprintf(bw, "name:%s\n", d.Name)
	fmt.Fprintf(bw, "size:%dx%d\n", g.Width(), g.Height())
	fmt.Fprintln(bw, "cells:")
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if x > 0 {
				bw.WriteByte(',')
			}
			c, err := g.Cell(cxsim.Pos{X: x, Y: y})
			if err != nil {
				return err
			}
			bw.WriteString(cellString(c))
		}
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "encode design")
}

func cellString(c cxsim.Cell) string {
	b := [3]byte{'.', '.', '.'}
	switch c.Silicon {
	case cxsim.SiliconN:
		b[0] = 'n'
	case cxsim.SiliconP:
		b[0] = 'p'
	}
	if c.Via {
		b[1] = 'v'
	}
	if c.Metal {
		b[2] = 'm'
	}
	return string(b[:])
}

func setCell(g *cxsim.Grid, p cxsim.Pos, s string) error {
	if len(s) != 3 {
		return errors.Errorf("bad cell %q at %v", s, p)
	}
	var k cxsim.SiliconKind
	switch s[0] {
	case '.':
		k = cxsim.SiliconNone
	case 'n':
		k = cxsim.SiliconN
	case 'p':
		k = cxsim.SiliconP
	case 'N':
		// gate over an N channel: the strand is P
		k = cxsim.SiliconP
	case 'G':
		// gate over a P channel: the strand is N
		k = cxsim.SiliconN
	default:
		return errors.Errorf("bad silicon rune %q at %v", s[0], p)
	}
	if err := g.SetSilicon(p, k); err != nil {
		return err
	}
	if s[2] == 'm' {
		if err := g.SetMetal(p, true); err != nil {
			return err
		}
	} else if s[2] != '.' {
		return errors.Errorf("bad metal rune %q at %v", s[2], p)
	}
	if s[1] == 'v' {
		if err := g.SetVia(p, true); err != nil {
			return err
		}
	} else if s[1] != '.' {
		return errors.Errorf("bad via rune %q at %v", s[1], p)
	}
	return nil
}

func nextLine(sc *bufio.Scanner) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errors.New("unexpected end of file")
	}
	return strings.TrimRight(sc.Text(), "\r"), nil
}
