package cxsim

// A Signal is the resolved electrical level of a node or pin.
//
// The zero value is Unresolved: a floating net, a short-circuit conflict or
// an oscillating node. It is never silently coerced to Low or High.
//
type Signal uint8

// Signal levels.
const (
	Unresolved Signal = iota
	Low
	High
)

func (s Signal) String() string {
	switch s {
	case Low:
		return "LOW"
	case High:
		return "HIGH"
	default:
		return "UNRESOLVED"
	}
}
