package skill

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultMatchThreshold is the highest normalized edit distance accepted as a match.
const DefaultMatchThreshold = 0.3

type Match struct {
	Skill      string  `json:"skill"`
	Confidence float64 `json:"confidence"`
}

// Matcher resolves near-miss spellings against the normalizer's vocabulary.
type Matcher struct {
	normalizer *Normalizer
	threshold  float64
}

func NewMatcher(n *Normalizer, threshold float64) *Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultMatchThreshold
	}
	return &Matcher{normalizer: n, threshold: threshold}
}

// FindBestMatch returns the canonical skill closest to raw. An exact
// vocabulary hit has confidence 1; otherwise confidence is 1 - score where
// score is the edit distance divided by the longer key length.
func (m *Matcher) FindBestMatch(raw string) (Match, bool) {
	if m == nil || m.normalizer == nil {
		return Match{}, false
	}
	cleaned := clean(raw)
	if cleaned == "" {
		return Match{}, false
	}
	c, known := m.normalizer.resolve(cleaned)
	if c == "" {
		return Match{}, false
	}
	if known {
		return Match{Skill: c, Confidence: 1}, true
	}

	key := compact(cleaned)
	keyLen := utf8.RuneCountInString(key)
	bestScore := 1.0
	bestKey := ""
	for _, k := range m.normalizer.keys {
		l := utf8.RuneCountInString(k)
		if l < keyLen {
			l = keyLen
		}
		if l == 0 {
			continue
		}
		score := float64(levenshtein.ComputeDistance(key, k)) / float64(l)
		if score < bestScore {
			bestScore = score
			bestKey = k
		}
	}
	if bestKey == "" || bestScore >= m.threshold {
		return Match{}, false
	}
	return Match{Skill: m.normalizer.index[bestKey], Confidence: 1 - bestScore}, true
}

// ResolveAll canonicalizes a list of raw mentions, falling back to fuzzy
// matching for entries the vocabulary does not know. Unresolvable entries
// keep their normalized spelling.
func (m *Matcher) ResolveAll(raws []string) []string {
	if m == nil || m.normalizer == nil {
		return []string{}
	}
	seen := make(map[string]struct{}, len(raws))
	out := make([]string, 0, len(raws))
	for _, s := range m.normalizer.ParseAndNormalize(raws...) {
		resolved := s
		if !m.normalizer.IsKnown(s) {
			if match, ok := m.FindBestMatch(s); ok {
				resolved = match.Skill
			}
		}
		if _, ok := seen[resolved]; ok {
			continue
		}
		seen[resolved] = struct{}{}
		out = append(out, resolved)
	}
	return out
}

// CalculateSimilarity is the Jaccard similarity of the two normalized skill sets.
func (m *Matcher) CalculateSimilarity(a, b []string) float64 {
	if m == nil || m.normalizer == nil {
		return 0
	}
	setA := toSet(m.normalizer.ParseAndNormalize(a...))
	setB := toSet(m.normalizer.ParseAndNormalize(b...))
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}
	inter := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		out[it] = struct{}{}
	}
	return out
}
