package cxsim

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// An Expect is the expected level of an output pin for one cycle.
//
// The zero value is ExpectAny ("don't care"): it never causes a
// verification failure, whatever the resolved value turns out to be.
//
type Expect uint8

// Expectations.
const (
	ExpectAny Expect = iota
	ExpectLow
	ExpectHigh
)

// Matches reports whether a resolved signal satisfies the expectation.
// Unresolved never satisfies a concrete expectation.
//
func (e Expect) Matches(s Signal) bool {
	switch e {
	case ExpectLow:
		return s == Low
	case ExpectHigh:
		return s == High
	}
	return true
}

func (e Expect) String() string {
	switch e {
	case ExpectLow:
		return "LOW"
	case ExpectHigh:
		return "HIGH"
	}
	return "any"
}

// A Cycle is one step of a stimulus sequence: the values driven on input
// pins and the levels expected on output pins.
//
type Cycle struct {
	Inputs   map[string]Signal
	Expected map[string]Expect
}

// A WaveformSpec is an ordered sequence of cycles, with the accuracy
// threshold a run must reach to pass. A zero Threshold means every checked
// expectation must match.
//
type WaveformSpec struct {
	Cycles    []Cycle
	Threshold float64
}

// A CycleResult records one verified cycle. Pass requires the engine to
// have converged without conflicts and every checked expectation to match.
//
type CycleResult struct {
	Outputs     map[string]Signal
	Pass        bool
	Converged   bool
	Conflicts   []NodeID
	Oscillating []NodeID
}

// A Report aggregates a whole verification run. All cycles are always run,
// so the full trace is available even after an early mismatch.
//
// Accuracy is the fraction of checked (non-don't-care) expectations that
// matched over the whole run.
//
type Report struct {
	RunID    uuid.UUID
	Spec     *WaveformSpec
	Cycles   []CycleResult
	Accuracy float64
	Passed   bool
}

// Verify drives the propagation engine once per cycle of w and
// compares the resolved outputs with the expected ones. Cycles are chained:
// each propagation warm-starts from the previous cycle's result, so latched
// state carries across cycles. An error is returned only for expectations
// or inputs naming pins the grid never declared.
//
func Verify(nl *Netlist, w *WaveformSpec) (*Report, error) {
	declared := make(map[string]bool, len(nl.pins))
	for _, p := range nl.pins {
		declared[p.Name] = true
	}

	rep := &Report{RunID: uuid.New(), Spec: w}
	matched, total := 0, 0
	clean := true
	var prev *Result
	for i := range w.Cycles {
		cyc := &w.Cycles[i]
		res, err := nl.PropagateFrom(prev, cyc.Inputs)
		if err != nil {
			return nil, errors.Wrapf(err, "cycle %d", i)
		}
		cr := CycleResult{
			Outputs:     res.Pins,
			Converged:   res.Converged,
			Conflicts:   res.Conflicts,
			Oscillating: res.Oscillating,
		}
		pass := res.Converged && len(res.Conflicts) == 0
		if !pass {
			clean = false
		}
		names := maps.Keys(cyc.Expected)
		slices.Sort(names)
		for _, name := range names {
			if !declared[name] {
				return nil, errors.Errorf("cycle %d: expectation for unknown pin %q", i, name)
			}
			exp := cyc.Expected[name]
			if exp == ExpectAny {
				continue
			}
			total++
			if exp.Matches(res.Pins[name]) {
				matched++
			} else {
				pass = false
			}
		}
		cr.Pass = pass
		rep.Cycles = append(rep.Cycles, cr)
		prev = res
	}

	rep.Accuracy = 1
	if total > 0 {
		rep.Accuracy = float64(matched) / float64(total)
	}
	thr := w.Threshold
	if thr <= 0 || thr > 1 {
		thr = 1
	}
	rep.Passed = clean && rep.Accuracy >= thr
	return rep, nil
}
