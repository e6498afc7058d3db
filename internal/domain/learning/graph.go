package learning

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	defaultNodeHours      = 10.0
	repairEdgeStrength    = 0.5
	coreDependentsMinimum = 3
)

// workGraph is the mutable form used between Validate and Order. index holds
// each node's declared position and is the tie-break everywhere.
type workGraph struct {
	nodes    []Node
	edges    []Edge
	index    map[string]int
	pairs    map[[2]string]struct{}
	warnings []string
	report   IntegrityReport
}

func newWorkGraph(data GraphData) *workGraph {
	g := &workGraph{
		index: make(map[string]int, len(data.Nodes)),
		pairs: make(map[[2]string]struct{}, len(data.Edges)),
	}
	for _, n := range data.Nodes {
		n.ID = strings.TrimSpace(n.ID)
		if n.ID == "" {
			g.warnings = append(g.warnings, "dropped node without id")
			continue
		}
		if _, dup := g.index[n.ID]; dup {
			g.warnings = append(g.warnings, fmt.Sprintf("dropped duplicate node %s", n.ID))
			continue
		}
		n.Difficulty = DifficultyFromLevel(n.Difficulty.Level())
		if n.EstimatedHours <= 0 || math.IsNaN(n.EstimatedHours) {
			n.EstimatedHours = defaultNodeHours
		}
		n.Connections = append([]string(nil), n.Connections...)
		g.index[n.ID] = len(g.nodes)
		g.nodes = append(g.nodes, n)
	}
	return g
}

// validate records dangling references from edges, connections and the
// declared skill path, then prunes them so later stages see a closed graph.
func (g *workGraph) validate(data GraphData) {
	seen := make(map[[3]string]struct{}, len(data.Edges))
	for _, e := range data.Edges {
		missing := false
		for _, id := range []string{e.From, e.To} {
			if _, ok := g.index[id]; !ok {
				g.report.Dangling = append(g.report.Dangling, DanglingRef{Where: "edge", From: e.From, ID: id})
				missing = true
			}
		}
		if missing {
			continue
		}
		if e.Type != EdgeRelated {
			e.Type = EdgePrerequisite
		}
		// A prerequisite self-loop is kept so order reports it as a cycle.
		if e.From == e.To && e.Type == EdgeRelated {
			g.warnings = append(g.warnings, fmt.Sprintf("dropped related self-loop on %s", e.From))
			continue
		}
		if e.Strength <= 0 || math.IsNaN(e.Strength) {
			e.Strength = 1
		}
		if e.Strength > 1 {
			e.Strength = 1
		}
		k := [3]string{e.From, e.To, string(e.Type)}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		g.addEdge(e)
	}

	for i := range g.nodes {
		n := &g.nodes[i]
		kept := n.Connections[:0]
		for _, c := range n.Connections {
			if _, ok := g.index[c]; !ok {
				g.report.Dangling = append(g.report.Dangling, DanglingRef{Where: "connection", From: n.ID, ID: c})
				continue
			}
			if c == n.ID {
				continue
			}
			kept = append(kept, c)
		}
		n.Connections = kept
	}

	for _, id := range data.SkillPath {
		if _, ok := g.index[id]; !ok {
			g.report.Dangling = append(g.report.Dangling, DanglingRef{Where: "skill_path", ID: id})
		}
	}

	for _, d := range g.report.Dangling {
		if d.From != "" {
			g.warnings = append(g.warnings, fmt.Sprintf("dangling %s reference %s -> %s", d.Where, d.From, d.ID))
			continue
		}
		g.warnings = append(g.warnings, fmt.Sprintf("dangling %s reference %s", d.Where, d.ID))
	}
}

func (g *workGraph) addEdge(e Edge) {
	g.edges = append(g.edges, e)
	g.pairs[pairKey(e.From, e.To)] = struct{}{}
}

// synthesizeConnections adds an edge for every declared connection with no
// edge between the pair yet. It is a prerequisite unless that would close a
// cycle, in which case it is recorded as related.
func (g *workGraph) synthesizeConnections() {
	for _, n := range g.nodes {
		for _, c := range n.Connections {
			if _, ok := g.pairs[pairKey(n.ID, c)]; ok {
				continue
			}
			typ := EdgePrerequisite
			if g.reaches(c, n.ID) {
				typ = EdgeRelated
			}
			g.addEdge(Edge{From: n.ID, To: c, Type: typ, Strength: 1})
			g.report.AddedEdges++
		}
	}
}

// attachIsolated links every node without edges to the nearest earlier
// attached node, or failing that the nearest later one.
func (g *workGraph) attachIsolated() {
	if len(g.nodes) < 2 {
		return
	}
	attached := make([]bool, len(g.nodes))
	for _, e := range g.edges {
		attached[g.index[e.From]] = true
		attached[g.index[e.To]] = true
	}
	anyAttached := false
	for _, a := range attached {
		anyAttached = anyAttached || a
	}
	if !anyAttached {
		attached[0] = true
	}

	for i, n := range g.nodes {
		if attached[i] {
			continue
		}
		g.report.IsolatedNodes = append(g.report.IsolatedNodes, n.ID)
		if j := nearestAttached(attached, i, -1); j >= 0 {
			g.addEdge(Edge{From: g.nodes[j].ID, To: n.ID, Type: EdgePrerequisite, Strength: repairEdgeStrength})
		} else if j := nearestAttached(attached, i, 1); j >= 0 {
			g.addEdge(Edge{From: n.ID, To: g.nodes[j].ID, Type: EdgePrerequisite, Strength: repairEdgeStrength})
		} else {
			continue
		}
		attached[i] = true
		g.report.AddedEdges++
		g.warnings = append(g.warnings, fmt.Sprintf("isolated node %s attached", n.ID))
	}
	if !anyAttached {
		g.report.IsolatedNodes = append([]string{g.nodes[0].ID}, g.report.IsolatedNodes...)
	}
}

func nearestAttached(attached []bool, from, step int) int {
	for j := from + step; j >= 0 && j < len(attached); j += step {
		if attached[j] {
			return j
		}
	}
	return -1
}

// reaches reports whether to is reachable from from over prerequisite edges.
func (g *workGraph) reaches(from, to string) bool {
	adj := g.prerequisiteAdjacency()
	stack := []string{from}
	seen := map[string]bool{from: true}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == to {
			return true
		}
		for _, nb := range adj[cur] {
			if !seen[nb] {
				seen[nb] = true
				stack = append(stack, nb)
			}
		}
	}
	return false
}

func (g *workGraph) prerequisiteAdjacency() map[string][]string {
	adj := make(map[string][]string, len(g.nodes))
	for _, e := range g.edges {
		if e.Type == EdgePrerequisite {
			adj[e.From] = append(adj[e.From], e.To)
		}
	}
	return adj
}

// order is Kahn's algorithm over prerequisite edges only. Among ready nodes
// the lowest declared index goes first.
func (g *workGraph) order(skill string) ([]string, error) {
	indeg := make([]int, len(g.nodes))
	adj := make([][]int, len(g.nodes))
	for _, e := range g.edges {
		if e.Type != EdgePrerequisite {
			continue
		}
		from, to := g.index[e.From], g.index[e.To]
		adj[from] = append(adj[from], to)
		indeg[to]++
	}

	ready := make([]int, 0, len(g.nodes))
	for i, d := range indeg {
		if d == 0 {
			ready = append(ready, i)
		}
	}

	path := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		sort.Ints(ready)
		cur := ready[0]
		ready = ready[1:]
		path = append(path, g.nodes[cur].ID)
		for _, nb := range adj[cur] {
			indeg[nb]--
			if indeg[nb] == 0 {
				ready = append(ready, nb)
			}
		}
	}

	if len(path) < len(g.nodes) {
		stuck := make([]string, 0, len(g.nodes)-len(path))
		for i, d := range indeg {
			if d > 0 {
				stuck = append(stuck, g.nodes[i].ID)
			}
		}
		return nil, &CycleError{Skill: skill, Nodes: stuck}
	}
	return path, nil
}

// categorize assigns categories from prerequisite fan-in and fan-out.
// Declared project nodes keep their category.
func (g *workGraph) categorize() {
	in := make([]int, len(g.nodes))
	out := make([]int, len(g.nodes))
	for _, e := range g.edges {
		if e.Type != EdgePrerequisite {
			continue
		}
		out[g.index[e.From]]++
		in[g.index[e.To]]++
	}
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.Category == CategoryProject {
			continue
		}
		switch {
		case in[i] == 0:
			n.Category = CategoryFoundation
		case out[i] >= coreDependentsMinimum:
			n.Category = CategoryCore
		case n.Difficulty == DifficultyAdvanced:
			n.Category = CategoryAdvanced
		default:
			n.Category = CategorySpecialization
		}
	}
}

// components counts weakly connected components over all edges.
func (g *workGraph) components() int {
	adj := make(map[string][]string, len(g.nodes))
	for _, e := range g.edges {
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}
	seen := make(map[string]bool, len(g.nodes))
	count := 0
	for _, n := range g.nodes {
		if seen[n.ID] {
			continue
		}
		count++
		stack := []string{n.ID}
		seen[n.ID] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range adj[cur] {
				if !seen[nb] {
					seen[nb] = true
					stack = append(stack, nb)
				}
			}
		}
	}
	return count
}

func (g *workGraph) totals() (float64, Difficulty) {
	if len(g.nodes) == 0 {
		return 0, DifficultyBeginner
	}
	hours := 0.0
	levels := 0
	for _, n := range g.nodes {
		hours += n.EstimatedHours
		levels += n.Difficulty.Level()
	}
	mean := float64(levels) / float64(len(g.nodes))
	return hours, DifficultyFromLevel(int(math.Round(mean)))
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}
