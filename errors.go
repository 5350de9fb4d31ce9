package cxsim

import "strconv"

// A BoundsError reports access to a grid position outside the grid extents.
// It signals a programming or content error upstream and aborts the calling
// operation.
//
type BoundsError struct {
	Pos           Pos
	Width, Height int
}

func (e *BoundsError) Error() string {
	return "position " + e.Pos.String() + " outside grid " +
		strconv.Itoa(e.Width) + "x" + strconv.Itoa(e.Height)
}

// A DisconnectedPinError reports a declared pin whose anchor cell holds no
// conductive material. The netlist build carries on; callers decide whether
// a floating pin is fatal.
//
type DisconnectedPinError struct {
	Pin    Pin
	Anchor Pos
}

func (e DisconnectedPinError) Error() string {
	return "pin " + e.Pin.Name + " has no conductive node at " + e.Anchor.String()
}
