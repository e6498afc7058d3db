package relationship

import (
	"sort"

	"skill-graph/internal/domain/job"
	"skill-graph/internal/domain/skill"
)

const (
	// StrongEdgeThreshold is the minimum strength joining two untaxonomized
	// skills into one derived cluster.
	StrongEdgeThreshold = 0.5
	bridgeFactor        = 0.5
	derivedPrefix       = "derived:"
)

// Edge is an unordered skill pair with A < B.
type Edge struct {
	A        string  `json:"a"`
	B        string  `json:"b"`
	Strength float64 `json:"strength"`
}

// Graph is a skill co-occurrence graph. It is immutable after Build; rebuild
// it whenever the corpus changes.
type Graph struct {
	adj        map[string]map[string]float64
	cluster    map[string]string
	centrality map[string]float64
	edges      []Edge
}

func Build(corpus []job.Posting, n *skill.Normalizer, tax Taxonomy) *Graph {
	sets := make([][]string, 0, len(corpus))
	for _, p := range corpus {
		if n == nil {
			sets = append(sets, p.RequiredSkills)
			continue
		}
		sets = append(sets, n.ParseAndNormalize(p.RequiredSkills...))
	}
	return BuildFromSkillSets(sets, tax)
}

// BuildFromSkillSets builds the graph from already canonical per-posting skill sets.
func BuildFromSkillSets(sets [][]string, tax Taxonomy) *Graph {
	if tax == nil {
		tax = DefaultTaxonomy()
	}
	g := &Graph{
		adj:        make(map[string]map[string]float64),
		cluster:    make(map[string]string),
		centrality: make(map[string]float64),
	}

	counts := make(map[[2]string]int)
	maxCount := 0
	for _, set := range sets {
		uniq := dedupe(set)
		for _, s := range uniq {
			if _, ok := g.adj[s]; !ok {
				g.adj[s] = make(map[string]float64)
			}
		}
		for i := 0; i < len(uniq); i++ {
			for j := i + 1; j < len(uniq); j++ {
				k := [2]string{uniq[i], uniq[j]}
				counts[k]++
				if counts[k] > maxCount {
					maxCount = counts[k]
				}
			}
		}
	}

	for k, c := range counts {
		strength := float64(c) / float64(maxCount)
		g.adj[k[0]][k[1]] = strength
		g.adj[k[1]][k[0]] = strength
		g.edges = append(g.edges, Edge{A: k[0], B: k[1], Strength: strength})
	}
	sort.Slice(g.edges, func(i, j int) bool {
		if g.edges[i].A != g.edges[j].A {
			return g.edges[i].A < g.edges[j].A
		}
		return g.edges[i].B < g.edges[j].B
	})

	g.assignClusters(tax)
	g.computeCentrality()
	return g
}

func (g *Graph) assignClusters(tax Taxonomy) {
	var untaxed []string
	for s := range g.adj {
		if c, ok := tax[s]; ok {
			g.cluster[s] = c
			continue
		}
		untaxed = append(untaxed, s)
	}
	if len(untaxed) == 0 {
		return
	}

	uf := newUnionFind(untaxed)
	for _, e := range g.edges {
		if e.Strength < StrongEdgeThreshold {
			continue
		}
		_, aTaxed := tax[e.A]
		_, bTaxed := tax[e.B]
		if !aTaxed && !bTaxed {
			uf.union(e.A, e.B)
		}
	}
	for _, members := range uf.components() {
		sort.Strings(members)
		id := derivedPrefix + members[0]
		for _, m := range members {
			g.cluster[m] = id
		}
	}
}

// computeCentrality sums same-cluster edge strengths plus a discounted bridge
// term for cross-cluster edges, then scales by the maximum into [0,1].
func (g *Graph) computeCentrality() {
	maxRaw := 0.0
	for s, nbrs := range g.adj {
		raw := 0.0
		for nb, strength := range nbrs {
			if g.cluster[nb] == g.cluster[s] {
				raw += strength
			} else {
				raw += bridgeFactor * strength
			}
		}
		g.centrality[s] = raw
		if raw > maxRaw {
			maxRaw = raw
		}
	}
	if maxRaw == 0 {
		return
	}
	for s, raw := range g.centrality {
		g.centrality[s] = raw / maxRaw
	}
}

func (g *Graph) Centrality(skill string) float64 {
	if g == nil {
		return 0
	}
	return g.centrality[skill]
}

// Neighbors returns the co-occurring skills, strongest first.
func (g *Graph) Neighbors(skill string) []string {
	if g == nil {
		return nil
	}
	nbrs := g.adj[skill]
	out := make([]string, 0, len(nbrs))
	for nb := range nbrs {
		out = append(out, nb)
	}
	sort.Slice(out, func(i, j int) bool {
		if nbrs[out[i]] != nbrs[out[j]] {
			return nbrs[out[i]] > nbrs[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

func (g *Graph) Strength(a, b string) float64 {
	if g == nil {
		return 0
	}
	return g.adj[a][b]
}

func (g *Graph) Cluster(skill string) string {
	if g == nil {
		return ""
	}
	return g.cluster[skill]
}

func (g *Graph) Edges() []Edge {
	if g == nil {
		return nil
	}
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.adj)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
