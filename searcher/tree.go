package searcher

import (
	"thud/game"

	"lukechampine.com/frand"
)

// NodeID indexes a node in a Tree's arena.
type NodeID int32

const NoNode NodeID = -1

type phase uint8

const (
	planned  phase = iota // action known, state not derived yet
	realized              // state derived from the parent
	listed                // legal actions generated
)

type node struct {
	parent   NodeID
	action   game.Action
	phase    phase
	state    *game.GameState
	hash     game.StateHash
	actions  []game.Action // legal actions not expanded yet
	children []NodeID
	depth    int
	visits   int
	dwarf    float64 // accumulated dwarf scores of playouts through this node
	troll    float64
}

// Tree is a search tree held in a flat arena. Nodes refer to each other by
// index, so the whole tree is released at once and can be compacted when the
// root moves.
type Tree struct {
	nodes     []node
	shuffle   bool
	bestDepth int
}

type TreeOption func(*Tree)

// WithShuffledExpansion makes ExpandOne pick among the remaining actions in random order.
func WithShuffledExpansion() TreeOption {
	return func(t *Tree) {
		t.shuffle = true
	}
}

func NewTree(state *game.GameState, options ...TreeOption) *Tree {
	t := &Tree{}
	for _, option := range options {
		option(t)
	}
	t.nodes = append(t.nodes, node{
		parent: NoNode,
		phase:  realized,
		state:  state,
		hash:   state.Hash(),
	})
	return t
}

func (t *Tree) Root() NodeID { return 0 }

func (t *Tree) Size() int { return len(t.nodes) }

// BestDepth is the depth of the deepest node ever created below the current root.
func (t *Tree) BestDepth() int { return t.bestDepth }

func (t *Tree) Parent(id NodeID) NodeID { return t.nodes[id].parent }

func (t *Tree) Children(id NodeID) []NodeID { return t.nodes[id].children }

func (t *Tree) Depth(id NodeID) int { return t.nodes[id].depth }

func (t *Tree) Visits(id NodeID) int { return t.nodes[id].visits }

// Action is the action leading from the parent to id. The root has none.
func (t *Tree) Action(id NodeID) (game.Action, bool) {
	if t.nodes[id].parent == NoNode {
		return game.Action{}, false
	}
	return t.nodes[id].action, true
}

// State returns the state of id, deriving it first if necessary.
func (t *Tree) State(id NodeID) *game.GameState {
	t.realize(id)
	return t.nodes[id].state
}

func (t *Tree) realize(id NodeID) {
	if t.nodes[id].phase != planned {
		return
	}
	parent := t.State(t.nodes[id].parent)
	state := parent.Apply(t.nodes[id].action)
	n := &t.nodes[id]
	n.state = state
	n.hash = state.Hash()
	n.phase = realized
}

func (t *Tree) list(id NodeID) {
	t.realize(id)
	n := &t.nodes[id]
	if n.phase == listed {
		return
	}
	n.actions = n.state.ValidActions()
	if t.shuffle {
		frand.Shuffle(len(n.actions), func(i, j int) {
			n.actions[i], n.actions[j] = n.actions[j], n.actions[i]
		})
	}
	n.phase = listed
}

func (t *Tree) IsTerminal(id NodeID) bool {
	return t.State(id).IsTerminal()
}

// IsFullyExpanded is true once every legal action of id has a child.
func (t *Tree) IsFullyExpanded(id NodeID) bool {
	t.list(id)
	return len(t.nodes[id].actions) == 0
}

// ExpandOne creates the child for the next unexpanded action of id and
// returns it with its state derived.
func (t *Tree) ExpandOne(id NodeID) NodeID {
	t.list(id)
	if len(t.nodes[id].actions) == 0 {
		panic("expanding a fully expanded node")
	}
	parent := &t.nodes[id]
	action := parent.actions[0]
	parent.actions = parent.actions[1:]
	depth := parent.depth + 1

	child := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{parent: id, action: action, phase: planned, depth: depth})
	t.nodes[id].children = append(t.nodes[id].children, child)
	t.bestDepth = max(t.bestDepth, depth)

	t.realize(child)
	return child
}

// Record adds one playout outcome to id alone.
func (t *Tree) Record(id NodeID, dwarf, troll float64) {
	n := &t.nodes[id]
	n.visits++
	n.dwarf += dwarf
	n.troll += troll
}

// Backpropagate records a playout outcome on id and every ancestor.
func (t *Tree) Backpropagate(id NodeID, dwarf, troll float64) {
	for ; id != NoNode; id = t.nodes[id].parent {
		t.Record(id, dwarf, troll)
	}
}

// MeanValue is the average playout margin through id from side's point of
// view, zero for an unvisited node.
func (t *Tree) MeanValue(id NodeID, side game.Piece) float64 {
	n := &t.nodes[id]
	if n.visits == 0 {
		return 0
	}
	return side.Sign() * (n.dwarf - n.troll) / float64(n.visits)
}

// Discard forgets every node created after id and the children of id. In a
// depth-first search these are exactly the descendants of id.
func (t *Tree) Discard(id NodeID) {
	clear(t.nodes[id+1:])
	t.nodes = t.nodes[:id+1]
	n := &t.nodes[id]
	n.children = nil
	n.actions = nil
	if n.phase == listed {
		n.phase = realized
	}
}

// Find looks for a node holding state within maxDepth plies of the root.
// Nodes whose state was never derived are not considered.
func (t *Tree) Find(state *game.GameState, maxDepth int) (NodeID, bool) {
	hash := state.Hash()
	frontier := []NodeID{t.Root()}
	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]
		n := &t.nodes[id]
		if n.phase == planned {
			continue
		}
		if n.hash == hash && n.state.Equal(state) {
			return id, true
		}
		if n.depth < maxDepth {
			frontier = append(frontier, n.children...)
		}
	}
	return NoNode, false
}

// Reroot makes id the root and drops everything not below it. Statistics of
// the kept subtree are preserved.
func (t *Tree) Reroot(id NodeID) {
	if id == t.Root() {
		return
	}
	t.realize(id)
	base := t.nodes[id].depth

	remap := map[NodeID]NodeID{id: 0}
	order := []NodeID{id}
	for i := 0; i < len(order); i++ {
		for _, c := range t.nodes[order[i]].children {
			remap[c] = NodeID(len(order))
			order = append(order, c)
		}
	}

	nodes := make([]node, len(order))
	t.bestDepth = 0
	for i, old := range order {
		n := t.nodes[old]
		n.depth -= base
		if i == 0 {
			n.parent = NoNode
			n.action = game.Action{}
		} else {
			n.parent = remap[n.parent]
		}
		children := make([]NodeID, len(n.children))
		for j, c := range n.children {
			children[j] = remap[c]
		}
		n.children = children
		nodes[i] = n
		t.bestDepth = max(t.bestDepth, n.depth)
	}
	t.nodes = nodes
}
