package alder

import (
	"fmt"
	"sort"
)

// Default split tuning for worlds that don't specify their own.
const (
	DefaultMaxChildren = 8
	DefaultMaxDepth    = 4
)

// QuadTree is a spatial index over axis-aligned bounds, used as the
// collision broadphase and as a general-purpose range query structure for
// input hit-testing and AI perception.
//
// The tree is rebuilt from scratch every frame: Clear once, bulk-insert,
// then Retrieve any number of times. Nodes split at their region midpoint
// into four fixed quadrants when they exceed maxChildren (up to maxDepth)
// and never merge back — a deliberate simplicity/speed tradeoff since the
// rebuild is O(items) per frame anyway.
//
// An item is stored in every leaf whose region it overlaps. Items spanning
// a split boundary are duplicated across quadrants, not clipped; Retrieve
// de-duplicates. This favors false positives over missed pairs, which is
// the broadphase contract: callers must run their own exact overlap test
// on every candidate.
type QuadTree struct {
	bounds      Bounds
	maxChildren int
	maxDepth    int
	depth       int
	items       []*Node
	itemBounds  []Bounds
	children    [4]*QuadTree // nil entries when this node is a leaf
	split       bool

	// Root-only state. Items whose bounds escape the tree region are kept
	// in a stray list so queries near the world edge never miss them.
	pool        *Pool
	strays      []*Node
	strayBounds []Bounds
	primed      bool
}

// retrieveStampCounter issues the de-duplication stamps for Retrieve. A
// single counter shared by every tree keeps stamps unique even when the
// same nodes are indexed by more than one tree (no atomic — alder is
// single-threaded).
var retrieveStampCounter uint64

// NewQuadTree creates a quadtree over the given region. maxChildren is the
// per-leaf capacity before a split, maxDepth the deepest allowed level
// (0 = the root never splits). Panics on maxChildren < 1, maxDepth < 0, or
// a non-finite or inverted region — configuration errors fail fast at
// construction, never mid-tick. If pool is nil a private pool is created.
//
// Call Clear (or ClearBounds) before the first population; a Retrieve
// before any clear is flagged as a programmer error in debug mode.
func NewQuadTree(bounds Bounds, maxChildren, maxDepth int, pool *Pool) *QuadTree {
	if maxChildren < 1 {
		panic(fmt.Sprintf("alder: quadtree maxChildren must be >= 1, got %d", maxChildren))
	}
	if maxDepth < 0 {
		panic(fmt.Sprintf("alder: quadtree maxDepth must be >= 0, got %d", maxDepth))
	}
	validateRegion(bounds)
	if pool == nil {
		pool = NewPool()
	}
	return &QuadTree{
		bounds:      bounds,
		maxChildren: maxChildren,
		maxDepth:    maxDepth,
		pool:        pool,
	}
}

// validateRegion panics on a region the quadtree cannot subdivide.
func validateRegion(b Bounds) {
	if !b.isFinite() {
		panic(fmt.Sprintf("alder: quadtree region must be finite, got %+v", b))
	}
	if !b.isOrdered() {
		panic(fmt.Sprintf("alder: quadtree region min exceeds max: %+v", b))
	}
}

// Bounds returns the tree's current region.
func (q *QuadTree) Bounds() Bounds {
	return q.bounds
}

// Clear resets the tree to a single empty leaf over its current region.
// Must be called once per frame before repopulation: stale entries are a
// correctness bug, not merely a performance one.
func (q *QuadTree) Clear() {
	q.ClearBounds(q.bounds)
}

// ClearBounds resets the tree and resizes its region, e.g. on level load.
// Panics on an invalid region.
func (q *QuadTree) ClearBounds(bounds Bounds) {
	validateRegion(bounds)
	for i, c := range q.children {
		q.pool.putQuad(c)
		q.children[i] = nil
	}
	q.split = false
	for i := range q.items {
		q.items[i] = nil
	}
	q.items = q.items[:0]
	q.itemBounds = q.itemBounds[:0]
	for i := range q.strays {
		q.strays[i] = nil
	}
	q.strays = q.strays[:0]
	q.strayBounds = q.strayBounds[:0]
	q.bounds = bounds
	q.primed = true
}

// Insert places item into every leaf whose region overlaps itemBounds,
// splitting full leaves along the way. Degenerate (zero-area) bounds are
// fine: the item lands in whichever quadrant(s) its corner touches.
// Items extending past the tree region are additionally tracked in the
// root's stray list so they remain retrievable.
func (q *QuadTree) Insert(item *Node, itemBounds Bounds) {
	if !q.bounds.ContainsBounds(itemBounds) {
		q.strays = append(q.strays, item)
		q.strayBounds = append(q.strayBounds, itemBounds)
	}
	if q.bounds.Overlaps(itemBounds) {
		q.insert(item, itemBounds)
	}
}

func (q *QuadTree) insert(item *Node, itemBounds Bounds) {
	if q.split {
		for _, c := range q.children {
			if c.bounds.Overlaps(itemBounds) {
				c.insert(item, itemBounds)
			}
		}
		return
	}
	q.items = append(q.items, item)
	q.itemBounds = append(q.itemBounds, itemBounds)
	if len(q.items) > q.maxChildren && q.depth < q.maxDepth {
		q.subdivide()
	}
}

// subdivide splits a leaf into four equal quadrants at the region midpoint
// and re-inserts the leaf's items into every overlapping child.
func (q *QuadTree) subdivide() {
	midX := q.bounds.CenterX()
	midY := q.bounds.CenterY()
	regions := [4]Bounds{
		{q.bounds.MinX, q.bounds.MinY, midX, midY}, // NW
		{midX, q.bounds.MinY, q.bounds.MaxX, midY}, // NE
		{q.bounds.MinX, midY, midX, q.bounds.MaxY}, // SW
		{midX, midY, q.bounds.MaxX, q.bounds.MaxY}, // SE
	}
	for i, r := range regions {
		c := q.pool.getQuad()
		c.bounds = r
		c.maxChildren = q.maxChildren
		c.maxDepth = q.maxDepth
		c.depth = q.depth + 1
		c.pool = q.pool
		q.children[i] = c
	}
	q.split = true
	for i, item := range q.items {
		b := q.itemBounds[i]
		for _, c := range q.children {
			if c.bounds.Overlaps(b) {
				c.insert(item, b)
			}
		}
		q.items[i] = nil
	}
	q.items = q.items[:0]
	q.itemBounds = q.itemBounds[:0]
}

// InsertContainer walks a renderable tree and flattens it into individual
// inserts: every visible, collidable node with a nonzero extent is inserted
// with its world bounds. Invisible or disposed subtrees are skipped
// entirely; containers recurse without being inserted themselves.
//
// World positions must be current — World.Update refreshes them before
// repopulating the tree.
func (q *QuadTree) InsertContainer(root *Node) {
	if root == nil || root.disposed || !root.Visible {
		return
	}
	if root.Collidable && (root.Width > 0 || root.Height > 0) {
		q.Insert(root, root.WorldBounds())
	}
	for _, child := range root.children {
		q.InsertContainer(child)
	}
}

// Retrieve appends to buf every item stored in a leaf overlapping
// queryBounds, de-duplicated: an item spanning several quadrants appears
// exactly once. If less is non-nil the result is sorted with it (stable),
// e.g. ByZIndex for input hit-testing; otherwise order is
// implementation-defined and not stable across frames.
//
// This is a broadphase result. False positives at quadrant boundaries are
// expected; callers MUST perform their own exact overlap test before
// treating a candidate as a true collision.
func (q *QuadTree) Retrieve(queryBounds Bounds, buf []*Node, less func(a, b *Node) bool) []*Node {
	if globalDebug && !q.primed {
		panic("alder debug: Retrieve before any Clear — quadtree holds no frame snapshot")
	}
	retrieveStampCounter++
	stamp := retrieveStampCounter
	start := len(buf)
	buf = q.collect(queryBounds, stamp, buf)
	for i, item := range q.strays {
		if item.retrieveStamp != stamp && q.strayBounds[i].Overlaps(queryBounds) {
			item.retrieveStamp = stamp
			buf = append(buf, item)
		}
	}
	if less != nil {
		// Sort only what this call appended; earlier buffer contents are
		// the caller's.
		res := buf[start:]
		sort.SliceStable(res, func(i, j int) bool { return less(res[i], res[j]) })
	}
	return buf
}

// collect gathers items from every leaf overlapping b, marking each item
// with the retrieval stamp so duplicates across quadrants appear once.
func (q *QuadTree) collect(b Bounds, stamp uint64, buf []*Node) []*Node {
	if !q.bounds.Overlaps(b) {
		return buf
	}
	if q.split {
		for _, c := range q.children {
			buf = c.collect(b, stamp, buf)
		}
		return buf
	}
	for _, item := range q.items {
		if item.retrieveStamp != stamp {
			item.retrieveStamp = stamp
			buf = append(buf, item)
		}
	}
	return buf
}

// Len returns the number of stored entries, counting an item once per leaf
// it occupies plus once per stray-list entry. Diagnostic only.
func (q *QuadTree) Len() int {
	return q.storedLen() + len(q.strays)
}

func (q *QuadTree) storedLen() int {
	if !q.split {
		return len(q.items)
	}
	total := 0
	for _, c := range q.children {
		total += c.storedLen()
	}
	return total
}

// Depth returns the deepest level currently present (root = 0).
func (q *QuadTree) Depth() int {
	if !q.split {
		return q.depth
	}
	deepest := q.depth
	for _, c := range q.children {
		if d := c.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Walk visits every node in the tree, root first. fn receives the node's
// region, whether it is a leaf, and its direct item count. Used by the
// debug overlay.
func (q *QuadTree) Walk(fn func(region Bounds, leaf bool, items int)) {
	fn(q.bounds, !q.split, len(q.items))
	if q.split {
		for _, c := range q.children {
			c.Walk(fn)
		}
	}
}
