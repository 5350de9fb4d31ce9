// Copyright 2026 The cxsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cxtest provides utility functions for testing circuit designs.
//
package cxtest

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cxsim/cxsim"
)

// nodeKey builds a canonical, id-independent key for a node: its cell layer
// refs, sorted and joined. Two builds of electrically identical grids
// produce identical keys whatever ids they assigned.
func nodeKey(nl *cxsim.Netlist, id cxsim.NodeID) string {
	cells := nl.NodeCells(id)
	keys := make([]string, len(cells))
	for i, c := range cells {
		keys[i] = fmt.Sprintf("%v:%v", c.Layer, c.Pos)
	}
	sort.Strings(keys)
	return strings.Join(keys, "+")
}

// Partition returns the netlist's node partition in canonical form: one key
// per node, sorted.
//
func Partition(nl *cxsim.Netlist) []string {
	keys := make([]string, len(nl.Nodes))
	for i := range nl.Nodes {
		keys[i] = nodeKey(nl, nl.Nodes[i].ID)
	}
	sort.Strings(keys)
	return keys
}

// Junctions returns the netlist's transistors in canonical form, with node
// ids replaced by node keys and the two terminals order-normalized.
//
func Junctions(nl *cxsim.Netlist) []string {
	keys := make([]string, len(nl.Transistors))
	for i := range nl.Transistors {
		t := &nl.Transistors[i]
		a, b := nodeKey(nl, t.TermA), nodeKey(nl, t.TermB)
		if b < a {
			a, b = b, a
		}
		keys[i] = fmt.Sprintf("%v@%v gate=%s termA=%s termB=%s",
			t.Polarity, t.At, nodeKey(nl, t.Gate), a, b)
	}
	sort.Strings(keys)
	return keys
}

// CompareNetlists fails the test if the two netlists differ electrically:
// in node partition, transistors, or pin anchoring. Node ids are ignored.
//
func CompareNetlists(t *testing.T, a, b *cxsim.Netlist) {
	t.Helper()
	if diff := cmp.Diff(Partition(a), Partition(b)); diff != "" {
		t.Errorf("node partition mismatch (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(Junctions(a), Junctions(b)); diff != "" {
		t.Errorf("transistor mismatch (-a +b):\n%s", diff)
	}
	pa := make(map[string]string, len(a.PinNode))
	for name, id := range a.PinNode {
		pa[name] = nodeKey(a, id)
	}
	pb := make(map[string]string, len(b.PinNode))
	for name, id := range b.PinNode {
		pb[name] = nodeKey(b, id)
	}
	if diff := cmp.Diff(pa, pb); diff != "" {
		t.Errorf("pin anchoring mismatch (-a +b):\n%s", diff)
	}
}

// CheckPins fails the test if any pin listed in want resolved to a
// different signal. Pins absent from want are not checked.
//
func CheckPins(t *testing.T, res *cxsim.Result, want map[string]cxsim.Signal) {
	t.Helper()
	got := make(map[string]cxsim.Signal, len(want))
	for name := range want {
		got[name] = res.Pins[name]
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pin values mismatch (-want +got):\n%s", diff)
	}
}

// High builds an input map driving every named pin HIGH.
//
func High(names ...string) map[string]cxsim.Signal {
	return drive(cxsim.High, names)
}

// Low builds an input map driving every named pin LOW.
//
func Low(names ...string) map[string]cxsim.Signal {
	return drive(cxsim.Low, names)
}

// Merge combines input maps into one. Later maps win on duplicate pins.
//
func Merge(ms ...map[string]cxsim.Signal) map[string]cxsim.Signal {
	out := make(map[string]cxsim.Signal)
	for _, m := range ms {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

func drive(v cxsim.Signal, names []string) map[string]cxsim.Signal {
	m := make(map[string]cxsim.Signal, len(names))
	for _, n := range names {
		m[n] = v
	}
	return m
}
