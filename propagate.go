// Copyright 2026 The cxsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package cxsim

import (
	"github.com/pkg/errors"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// extra rounds past the acyclic settling bound, so that an oscillation has
// room to show as a change instead of a truncated settle.
const oscillationMargin = 8

// A Result holds the settled state of one propagation: a signal per node and
// per declared pin, and the conditions met while solving.
//
// Conflicts lists nodes reached by two differing driven values in one round
// (a short circuit); Oscillating lists nodes still changing when the round
// budget ran out. Both are legitimate, reportable circuit conditions, not
// failures of the engine.
//
type Result struct {
	Nodes       []Signal // indexed by NodeID
	Pins        map[string]Signal
	Converged   bool
	Conflicts   []NodeID
	Oscillating []NodeID
	Rounds      int
}

// Propagate computes the settled signal of every node for the given driven
// input values, starting from a cold state: every node unresolved, every
// transistor open. Pin names must be declared on the grid the netlist was
// built from; a declared but disconnected pin is accepted and has no effect.
//
// Propagate is a pure function of (netlist, inputs): it never mutates the
// netlist and repeated calls yield identical results.
//
func (nl *Netlist) Propagate(inputs map[string]Signal) (*Result, error) {
	return nl.run(inputs, nil)
}

// PropagateFrom is Propagate warm-started from a previous result: the first
// round's transistor conduction is derived from prev's node values instead
// of the all-open cold state. This is what lets feedback circuits (latches)
// hold a state from one cycle to the next while each call remains a pure
// function of its arguments. A nil prev is a cold start.
//
func (nl *Netlist) PropagateFrom(prev *Result, inputs map[string]Signal) (*Result, error) {
	return nl.run(inputs, prev)
}

func (nl *Netlist) run(inputs map[string]Signal, prev *Result) (*Result, error) {
	declared := make(map[string]bool, len(nl.pins))
	for _, p := range nl.pins {
		declared[p.Name] = true
	}

	conflicted := make([]bool, len(nl.Nodes))

	// Seed driven nodes. Two pins driving one node with differing values is
	// a short circuit on that node before any propagation happens.
	seeds := make(map[NodeID]Signal)
	names := maps.Keys(inputs)
	slices.Sort(names)
	for _, name := range names {
		if !declared[name] {
			return nil, errors.Errorf("unknown input pin %q", name)
		}
		v := inputs[name]
		if v == Unresolved {
			continue // an undriven input drives nothing
		}
		id, ok := nl.PinNode[name]
		if !ok {
			continue // disconnected pin: the value cannot reach any net
		}
		if cur, ok := seeds[id]; ok && cur != v {
			conflicted[id] = true
			continue
		}
		seeds[id] = v
	}
	seedIDs := maps.Keys(seeds)
	slices.Sort(seedIDs)

	values := make([]Signal, len(nl.Nodes))
	if prev != nil && len(prev.Nodes) == len(values) {
		copy(values, prev.Nodes)
	}
	conduct := make([]bool, len(nl.Transistors))

	limit := len(nl.Nodes) + len(nl.Transistors) + oscillationMargin
	res := &Result{}
	var prevValues []Signal
	for res.Rounds < limit {
		res.Rounds++
		// conduction for this round, from the previous round's values
		next := make([]bool, len(nl.Transistors))
		for i := range nl.Transistors {
			t := &nl.Transistors[i]
			next[i] = t.Conducts(values[t.Gate])
		}
		nv := nl.solveRound(seedIDs, seeds, next, conflicted)
		settled := prevValues != nil && slices.Equal(nv, values) && slices.Equal(next, conduct)
		conduct = next
		prevValues = values
		values = nv
		if settled {
			res.Converged = true
			break
		}
	}

	if !res.Converged {
		for id := range values {
			if values[id] != prevValues[id] {
				values[id] = Unresolved
				res.Oscillating = append(res.Oscillating, NodeID(id))
			}
		}
	}
	for id, c := range conflicted {
		if c {
			res.Conflicts = append(res.Conflicts, NodeID(id))
		}
	}

	res.Nodes = values
	res.Pins = make(map[string]Signal, len(nl.pins))
	for _, p := range nl.pins {
		if id, ok := nl.PinNode[p.Name]; ok {
			res.Pins[p.Name] = values[id]
		} else {
			res.Pins[p.Name] = Unresolved
		}
	}
	return res, nil
}

// solveRound runs one breadth-first traversal from the driven nodes across
// the links closed by the round's conduction states. Static wiring is
// already collapsed into the nodes themselves, so the only dynamic links are
// transistor channels. A node reached from two sources with differing
// values is marked conflicted; once conflicted it stays Unresolved for the
// rest of the propagation and stops relaying either value.
func (nl *Netlist) solveRound(seedIDs []NodeID, seeds map[NodeID]Signal, conduct []bool, conflicted []bool) []Signal {
	adj := make([][]NodeID, len(nl.Nodes))
	for i := range nl.Transistors {
		if !conduct[i] {
			continue
		}
		t := &nl.Transistors[i]
		adj[t.TermA] = append(adj[t.TermA], t.TermB)
		adj[t.TermB] = append(adj[t.TermB], t.TermA)
	}

	next := make([]Signal, len(nl.Nodes))
	queue := make([]NodeID, 0, len(seedIDs))
	for _, id := range seedIDs {
		if conflicted[id] {
			continue
		}
		next[id] = seeds[id]
		queue = append(queue, id)
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if conflicted[u] {
			// conflicted after being queued; relays nothing
			continue
		}
		v := next[u]
		for _, w := range adj[u] {
			if conflicted[w] {
				continue
			}
			switch next[w] {
			case Unresolved:
				next[w] = v
				queue = append(queue, w)
			case v:
			default:
				conflicted[w] = true
				next[w] = Unresolved
			}
		}
	}
	for id, c := range conflicted {
		if c {
			next[id] = Unresolved
		}
	}
	return next
}
