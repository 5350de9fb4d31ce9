package cxsim

// A Layer distinguishes the two conductive layers of a cell.
//
type Layer uint8

// Layers.
const (
	LayerMetal Layer = iota
	LayerSilicon
)

func (l Layer) String() string {
	if l == LayerSilicon {
		return "silicon"
	}
	return "metal"
}

// A CellRef identifies one conductive layer of one cell.
//
type CellRef struct {
	Pos   Pos
	Layer Layer
}

// A NodeID indexes a node in a Netlist. Ids are dense and deterministic for
// a given grid: rebuilding an unchanged grid yields the same partition with
// the same ids.
//
type NodeID int

// NoNode marks the absence of a node.
const NoNode NodeID = -1

// A Node is a maximal set of cell layers joined by same-layer, same-kind
// adjacency and by vias. Nodes are derived data: they are rebuilt from the
// grid, never mutated.
//
type Node struct {
	ID    NodeID
	Cells []CellRef
}

// A Transistor is a gate-controlled junction formed where a silicon strand
// of one kind crosses a strand of the opposite kind. The channel strand is
// split at the crossing into the two terminal nodes; the crossing cell
// itself belongs to the gate node. An N-channel transistor joins its
// terminals while the gate signal is HIGH, a P-channel one while it is LOW;
// otherwise it is an open circuit.
//
type Transistor struct {
	At       Pos         // first gate cell of the crossing
	Polarity SiliconKind // kind of the channel strand
	Gate     NodeID
	TermA    NodeID
	TermB    NodeID
}

// Conducts reports whether the transistor joins its terminals when its gate
// node carries the given signal. An Unresolved gate never conducts.
//
func (t *Transistor) Conducts(gate Signal) bool {
	switch t.Polarity {
	case SiliconN:
		return gate == High
	case SiliconP:
		return gate == Low
	}
	return false
}

// A Netlist is the electrical network compiled from a grid snapshot. It is
// immutable once built and safe to share between concurrent propagation
// runs.
//
type Netlist struct {
	Nodes       []Node
	Transistors []Transistor
	// PinNode maps connected pin names to the node occupying the pin's
	// anchor cell. Disconnected pins are absent.
	PinNode map[string]NodeID

	pins    []Pin
	refNode map[CellRef]NodeID
}

// disjoint-set over cell layer refs, used only during Build.
type unionFind struct {
	parent []int32
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{parent: make([]int32, n)}
	for i := range u.parent {
		u.parent[i] = int32(i)
	}
	return u
}

func (u *unionFind) find(i int32) int32 {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]] // path halving
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(a, b int32) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[rb] = ra
	}
}

// Build compiles a grid snapshot into a netlist. Declared pins anchored to
// an empty cell are reported as DisconnectedPinError values; the build
// itself always completes.
//
func Build(g *Grid) (*Netlist, []DisconnectedPinError) {
	w, h := g.Width(), g.Height()
	uf := newUnionFind(w * h * 2)

	ref := func(p Pos, l Layer) int32 {
		return int32((p.Y*w+p.X)*2 + int(l))
	}

	// Flood-fill connectivity per layer: same-kind silicon and metal merge
	// across shared edges, vias merge the two layers of one cell.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := Pos{x, y}
			c := g.at(p)
			right, down := Pos{x + 1, y}, Pos{x, y + 1}
			if c.Silicon != SiliconNone {
				if x+1 < w && g.at(right).Silicon == c.Silicon {
					uf.union(ref(p, LayerSilicon), ref(right, LayerSilicon))
				}
				if y+1 < h && g.at(down).Silicon == c.Silicon {
					uf.union(ref(p, LayerSilicon), ref(down, LayerSilicon))
				}
			}
			if c.Metal {
				if x+1 < w && g.at(right).Metal {
					uf.union(ref(p, LayerMetal), ref(right, LayerMetal))
				}
				if y+1 < h && g.at(down).Metal {
					uf.union(ref(p, LayerMetal), ref(down, LayerMetal))
				}
			}
			if c.Via && c.Silicon != SiliconNone {
				uf.union(ref(p, LayerMetal), ref(p, LayerSilicon))
			}
		}
	}

	// Assign dense node ids in row-major first-touch order, metal before
	// silicon, so that ids are stable across rebuilds of the same grid.
	nl := &Netlist{
		PinNode: make(map[string]NodeID),
		pins:    g.Pins(),
		refNode: make(map[CellRef]NodeID),
	}
	rootNode := make(map[int32]NodeID)
	touch := func(p Pos, l Layer) {
		root := uf.find(ref(p, l))
		id, ok := rootNode[root]
		if !ok {
			id = NodeID(len(nl.Nodes))
			rootNode[root] = id
			nl.Nodes = append(nl.Nodes, Node{ID: id})
		}
		cr := CellRef{Pos: p, Layer: l}
		nl.Nodes[id].Cells = append(nl.Nodes[id].Cells, cr)
		nl.refNode[cr] = id
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := Pos{x, y}
			c := g.at(p)
			if c.Metal {
				touch(p, LayerMetal)
			}
			if c.Silicon != SiliconNone {
				touch(p, LayerSilicon)
			}
		}
	}

	nl.scanTransistors(g)

	// Anchor pins. A pin drives and reads the metal layer of its anchor
	// cell when present, else the silicon layer.
	var disc []DisconnectedPinError
	for _, pin := range nl.pins {
		a := g.PinAnchor(pin)
		c := g.at(a)
		switch {
		case c.Metal:
			nl.PinNode[pin.Name] = nl.refNode[CellRef{a, LayerMetal}]
		case c.Silicon != SiliconNone:
			nl.PinNode[pin.Name] = nl.refNode[CellRef{a, LayerSilicon}]
		default:
			disc = append(disc, DisconnectedPinError{Pin: pin, Anchor: a})
		}
	}
	return nl, disc
}

// gateRun is a candidate crossing: a maximal straight run of same-kind
// silicon flanked on both ends by the opposite kind. The flanking cells are
// the channel terminals.
type gateRun struct {
	cells    []Pos
	termA    Pos
	termB    Pos
	polarity SiliconKind
}

// scanTransistors finds every crossing of N over P or P over N. A run
// qualifying along both axes is ambiguous and forms no transistor; the
// strands stay split as plain silicon.
func (nl *Netlist) scanTransistors(g *Grid) {
	w, h := g.Width(), g.Height()

	kind := func(x, y int) SiliconKind {
		if x < 0 || x >= w || y < 0 || y >= h {
			return SiliconNone
		}
		return g.at(Pos{x, y}).Silicon
	}

	var hRuns, vRuns []gateRun
	// horizontal runs: channel passes left to right under the gate cells
	for y := 0; y < h; y++ {
		for x := 0; x < w; {
			k := kind(x, y)
			if k == SiliconNone {
				x++
				continue
			}
			x1 := x
			for x1+1 < w && kind(x1+1, y) == k {
				x1++
			}
			opp := k.Opposite()
			if kind(x-1, y) == opp && kind(x1+1, y) == opp {
				run := gateRun{termA: Pos{x - 1, y}, termB: Pos{x1 + 1, y}, polarity: opp}
				for i := x; i <= x1; i++ {
					run.cells = append(run.cells, Pos{i, y})
				}
				hRuns = append(hRuns, run)
			}
			x = x1 + 1
		}
	}
	// vertical runs
	for x := 0; x < w; x++ {
		for y := 0; y < h; {
			k := kind(x, y)
			if k == SiliconNone {
				y++
				continue
			}
			y1 := y
			for y1+1 < h && kind(x, y1+1) == k {
				y1++
			}
			opp := k.Opposite()
			if kind(x, y-1) == opp && kind(x, y1+1) == opp {
				run := gateRun{termA: Pos{x, y - 1}, termB: Pos{x, y1 + 1}, polarity: opp}
				for i := y; i <= y1; i++ {
					run.cells = append(run.cells, Pos{x, i})
				}
				vRuns = append(vRuns, run)
			}
			y = y1 + 1
		}
	}

	// drop runs whose gate cells overlap a qualifying run on the other axis
	inH := make(map[Pos]bool)
	inV := make(map[Pos]bool)
	for _, r := range hRuns {
		for _, p := range r.cells {
			inH[p] = true
		}
	}
	for _, r := range vRuns {
		for _, p := range r.cells {
			inV[p] = true
		}
	}
	emit := func(runs []gateRun, other map[Pos]bool) {
		for _, r := range runs {
			ambiguous := false
			for _, p := range r.cells {
				if other[p] {
					ambiguous = true
					break
				}
			}
			if ambiguous {
				continue
			}
			gate := nl.refNode[CellRef{r.cells[0], LayerSilicon}]
			a := nl.refNode[CellRef{r.termA, LayerSilicon}]
			b := nl.refNode[CellRef{r.termB, LayerSilicon}]
			if gate == a || gate == b {
				// the gate net loops onto its own channel; no junction
				continue
			}
			nl.Transistors = append(nl.Transistors, Transistor{
				At:       r.cells[0],
				Polarity: r.polarity,
				Gate:     gate,
				TermA:    a,
				TermB:    b,
			})
		}
	}
	emit(hRuns, inV)
	emit(vRuns, inH)
}

// Pins returns the declared pins of the grid the netlist was built from.
//
func (nl *Netlist) Pins() []Pin {
	out := make([]Pin, len(nl.pins))
	copy(out, nl.pins)
	return out
}

// NodeAt returns the node occupying the given layer of the cell at p, or
// NoNode.
//
func (nl *Netlist) NodeAt(p Pos, l Layer) NodeID {
	if id, ok := nl.refNode[CellRef{p, l}]; ok {
		return id
	}
	return NoNode
}

// NodeCells returns the cell layers belonging to a node, for mapping
// diagnostics back to grid positions. The returned slice is shared; callers
// must not modify it.
//
func (nl *Netlist) NodeCells(id NodeID) []CellRef {
	if id < 0 || int(id) >= len(nl.Nodes) {
		return nil
	}
	return nl.Nodes[id].Cells
}
