package alder

// nodeIDCounter is a plain counter (no atomic — alder is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is an element of the renderable tree the physics core operates on.
// A single flat struct is used for containers and leaves alike to avoid
// interface dispatch on the hot path. Renderers own the visual side of a
// node; alder only cares about its position, extent, and flags.
//
// A node with an attached Body is that body's "ancestor": the body writes
// position deltas back into it and the detector uses its world bounds for
// candidate retrieval.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Local position and extent
	X, Y          float64
	Width, Height float64

	// Ordering (consumed by retrieval comparators, e.g. ByZIndex)
	ZIndex int

	// Flags
	Visible          bool // invisible subtrees are skipped by InsertContainer
	Collidable       bool // broadphase-eligible
	AlwaysUpdate     bool // body updates even outside the world viewport
	UpdateWhenPaused bool // body updates even while the world is paused

	// Metadata
	UserData any

	// OnCollision is invoked for each resolved contact involving this
	// node. Returning false makes the contact pass-through (no positional
	// response); a nil callback counts as solid.
	OnCollision func(CollisionContext) bool

	// Internal
	body          *Body
	worldX        float64 // cached, refreshed at the top of each tick
	worldY        float64
	dirty         bool
	retrieveStamp uint64 // quadtree dedup marker
	disposed      bool
}

// NewNode creates a collidable leaf node at (x, y) with the given extent.
func NewNode(name string, x, y, w, h float64) *Node {
	return &Node{
		ID:         nextNodeID(),
		Name:       name,
		X:          x,
		Y:          y,
		Width:      w,
		Height:     h,
		Visible:    true,
		Collidable: true,
	}
}

// NewContainer creates a grouping node with no extent of its own.
// Containers are traversed by InsertContainer but never inserted.
func NewContainer(name string) *Node {
	return &Node{
		ID:      nextNodeID(),
		Name:    name,
		Visible: true,
	}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("alder: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("alder: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("alder: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("alder: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("alder: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("alder: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated
// by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Body attachment ---

// SetBody attaches a physics body to this node, making the node the body's
// ancestor. Passing nil detaches the current body. Panics if the body is
// already attached to a different node.
func (n *Node) SetBody(b *Body) {
	if b == nil {
		if n.body != nil {
			n.body.ancestor = nil
			n.body = nil
		}
		return
	}
	if b.ancestor != nil && b.ancestor != n {
		panic("alder: body is already attached to another node")
	}
	b.ancestor = n
	n.body = b
}

// Body returns the attached physics body, or nil.
func (n *Node) Body() *Body {
	return n.body
}

// --- World position ---

// WorldPosition returns the node's cached world-space position. The cache
// is refreshed at the top of each World.Update and kept current by body
// integration and collision response within the tick.
func (n *Node) WorldPosition() (x, y float64) {
	return n.worldX, n.worldY
}

// WorldBounds returns the node's axis-aligned bounds in world space.
func (n *Node) WorldBounds() Bounds {
	return Bounds{
		MinX: n.worldX,
		MinY: n.worldY,
		MaxX: n.worldX + n.Width,
		MaxY: n.worldY + n.Height,
	}
}

// updateWorldPositions refreshes the cached world position of n and all its
// descendants. The hierarchy contributes translation only: a child's world
// position is its local position offset by the parent's.
func updateWorldPositions(n *Node, parentX, parentY float64) {
	n.worldX = parentX + n.X
	n.worldY = parentY + n.Y
	for _, child := range n.children {
		updateWorldPositions(child, n.worldX, n.worldY)
	}
}

// translate shifts the node in place, keeping the world-position cache
// coherent mid-tick, and marks it dirty. Used by body integration,
// collision response, and tween-driven motion. Descendants pick up the new
// offset at the next tick's refresh.
func (n *Node) translate(dx, dy float64) {
	n.X += dx
	n.Y += dy
	n.worldX += dx
	n.worldY += dy
	n.dirty = true
}

// --- Dirty flag ---

// MarkDirty flags the node as having moved this tick.
func (n *Node) MarkDirty() {
	n.dirty = true
}

// ConsumeDirty reports whether the node moved meaningfully since the last
// call and clears the flag. Renderers use this to skip redrawing static
// subtrees.
func (n *Node) ConsumeDirty() bool {
	d := n.dirty
	n.dirty = false
	return d
}

// --- Disposal ---

// Dispose detaches this node from its parent and recursively releases all
// descendants. Disposed nodes are skipped by the world update loop.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	if n.body != nil {
		n.body.ancestor = nil
		n.body = nil
	}
	n.UserData = nil
	n.OnCollision = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Retrieval comparators ---

// ByZIndex orders retrieval results topmost-first (higher ZIndex before
// lower). Input layers use this to prioritize hit-testing.
func ByZIndex(a, b *Node) bool {
	return a.ZIndex > b.ZIndex
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing
// child.Parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
