// Package scheduler builds and executes the per-phase task graph described
// in §4.6: submission-order conflict edges, a ready-queue worker pool, and
// the four pinning variants (any, main, specific, synchronous).
package scheduler

import (
	"fmt"
	"strings"

	"github.com/tristanschneider/syx-sub002/internal/task"
)

// node is one placed task plus the edges computed against earlier-submitted
// tasks. Edges only ever point backward in submission order (to, per §4.6
// step 2, "previously placed tasks"), which is what keeps graph
// construction a single linear pass.
type node struct {
	task *task.AppTask
	deps []int // indices into Graph.nodes this node must wait on
}

// Graph is the dependency graph for one phase's worth of submitted tasks,
// built once and then executed to completion.
type Graph struct {
	nodes  []node
	lookup task.TableLookup
}

// Build constructs a Graph from tasks in their submission order, wiring an
// edge from task i to every earlier task j<i whose fingerprint conflicts
// with it, per §4.6's algorithm. lookup resolves a table id to its row
// schema, needed only to evaluate structural-vs-row conflicts.
func Build(tasks []*task.AppTask, lookup task.TableLookup) *Graph {
	g := &Graph{lookup: lookup}
	for i, t := range tasks {
		n := node{task: t}
		for j := 0; j < i; j++ {
			if task.Conflicts(t.Fingerprint, g.nodes[j].task.Fingerprint, lookup) {
				n.deps = append(n.deps, j)
			}
		}
		g.nodes = append(g.nodes, n)
	}
	return g
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int { return len(g.nodes) }

// DOT renders the graph as a Graphviz dot document, a devtool for
// inspecting why two tasks did or didn't serialize.
func (g *Graph) DOT() string {
	var b strings.Builder
	b.WriteString("digraph schedule {\n")
	for i, n := range g.nodes {
		label := n.task.Name
		if label == "" {
			label = fmt.Sprintf("task%d", i)
		}
		fmt.Fprintf(&b, "  n%d [label=%q];\n", i, label)
	}
	for i, n := range g.nodes {
		for _, dep := range n.deps {
			fmt.Fprintf(&b, "  n%d -> n%d;\n", dep, i)
		}
	}
	b.WriteString("}\n")
	return b.String()
}
