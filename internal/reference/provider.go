// Package reference loads hand-authored learning graphs from a JSON document
// of the form {"<skill>": {"nodes": [...], "edges": [...]}, ...}.
package reference

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"skill-graph/internal/domain/learning"
	"skill-graph/internal/domain/skill"
)

// LoadFile reads a reference document from path. An empty path yields an
// empty provider.
func LoadFile(path string, n *skill.Normalizer) (learning.MapProvider, error) {
	if path == "" {
		return learning.MapProvider{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference graphs: %w", err)
	}
	defer f.Close()
	return Parse(f, n)
}

// Parse decodes a reference document and keys every graph by its canonical
// skill. Entries without nodes are dropped; when two keys resolve to the
// same skill the alphabetically first key wins.
func Parse(r io.Reader, n *skill.Normalizer) (learning.MapProvider, error) {
	var raw map[string]learning.GraphData
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode reference graphs: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(learning.MapProvider, len(raw))
	for _, k := range keys {
		g := raw[k]
		if len(g.Nodes) == 0 {
			continue
		}
		id := k
		if n != nil {
			id = n.Normalize(k)
		}
		if id == "" {
			continue
		}
		if _, exists := out[id]; exists {
			continue
		}
		out[id] = g
	}
	return out, nil
}
