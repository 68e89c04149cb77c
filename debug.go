package alder

import (
	"fmt"
	"os"
	"time"
)

// globalDebug mirrors the most recently set World debug flag so that node
// and quadtree operations (which lack a World pointer) can check it
// cheaply. Only valid with a single World; multiple Worlds with differing
// debug modes will reflect whichever called SetDebugMode last.
var globalDebug bool

// worldStats holds per-tick timing and work metrics.
// Only populated when World.debug is true.
type worldStats struct {
	broadphaseTime time.Duration
	solveTime      time.Duration
	inserted       int
	bodies         int
	updated        int
	contacts       int
}

// debugLog prints per-tick stats to stderr.
func (w *World) debugLog(stats worldStats) {
	if !w.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[alder] broadphase: %v (%d entries) | solve: %v | bodies: %d updated: %d contacts: %d\n",
		stats.broadphaseTime, stats.inserted, stats.solveTime,
		stats.bodies, stats.updated, stats.contacts)
}

// debugCheckDisposed panics with a descriptive message when a disposed
// node is used in a tree operation. Only called when debug mode is on; in
// release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("alder debug: %s on disposed node %q", op, n.Name))
	}
}
