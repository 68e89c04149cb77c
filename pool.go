package alder

// Pool is a frame-scoped reuse pool for the transient objects the hot loop
// would otherwise allocate every tick: scratch Bounds, quadtree candidate
// buffers, and recycled quadtree nodes.
//
// The borrowing contract is strict: a caller that takes an object must
// return it before the end of the same tick, must not retain it past that
// point, and must not assume its contents survive a later Get/Put cycle.
// In debug mode the World asserts the pool is fully drained at the end of
// every Update.
//
// A Pool is passed explicitly into NewWorld and NewQuadTree rather than
// living as package state, so its lifecycle is tied to the world that owns
// it. A single Pool must only be shared by collaborators on the same
// logical thread.
type Pool struct {
	bounds      []*Bounds
	nodeBufs    [][]*Node
	quads       []*QuadTree
	outstanding int
}

const defaultNodeBufCap = 64

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// GetBounds borrows a scratch Bounds. The returned value is zeroed.
func (p *Pool) GetBounds() *Bounds {
	p.outstanding++
	if n := len(p.bounds); n > 0 {
		b := p.bounds[n-1]
		p.bounds[n-1] = nil
		p.bounds = p.bounds[:n-1]
		*b = Bounds{}
		return b
	}
	return &Bounds{}
}

// PutBounds returns a scratch Bounds to the pool.
func (p *Pool) PutBounds(b *Bounds) {
	if b == nil {
		return
	}
	p.outstanding--
	p.bounds = append(p.bounds, b)
}

// GetNodeBuffer borrows an empty candidate buffer for quadtree retrieval.
func (p *Pool) GetNodeBuffer() []*Node {
	p.outstanding++
	if n := len(p.nodeBufs); n > 0 {
		buf := p.nodeBufs[n-1]
		p.nodeBufs[n-1] = nil
		p.nodeBufs = p.nodeBufs[:n-1]
		return buf[:0]
	}
	return make([]*Node, 0, defaultNodeBufCap)
}

// PutNodeBuffer returns a candidate buffer to the pool. The buffer's
// backing array is reused as-is; entries are not cleared because the pool
// turns over every frame.
func (p *Pool) PutNodeBuffer(buf []*Node) {
	if buf == nil {
		return
	}
	p.outstanding--
	p.nodeBufs = append(p.nodeBufs, buf[:0])
}

// Outstanding returns the number of borrowed objects not yet returned.
// Zero at the end of a tick means every borrower honored the scoped
// borrowing contract.
func (p *Pool) Outstanding() int {
	return p.outstanding
}

// getQuad borrows a recycled quadtree node, or allocates a fresh one.
// Quadtree nodes are not counted as outstanding: they live exactly from
// one Clear to the next and are recycled wholesale.
func (p *Pool) getQuad() *QuadTree {
	if n := len(p.quads); n > 0 {
		q := p.quads[n-1]
		p.quads[n-1] = nil
		p.quads = p.quads[:n-1]
		return q
	}
	return &QuadTree{}
}

// putQuad recycles a quadtree subtree into the pool.
func (p *Pool) putQuad(q *QuadTree) {
	if q == nil {
		return
	}
	for i, c := range q.children {
		p.putQuad(c)
		q.children[i] = nil
	}
	q.split = false
	q.items = q.items[:0]
	q.itemBounds = q.itemBounds[:0]
	p.quads = append(p.quads, q)
}
