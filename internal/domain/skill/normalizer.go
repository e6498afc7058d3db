package skill

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxPhraseTokens = 3
	minGreedyKeyLen = 2
)

var listDelimiters = ",;|\n\t"

var stopwords = map[string]struct{}{
	"and": {}, "or": {}, "with": {}, "of": {}, "in": {}, "the": {}, "a": {}, "an": {},
	"to": {}, "for": {}, "on": {}, "using": {}, "plus": {}, "experience": {},
	"knowledge": {}, "skills": {}, "skill": {}, "years": {}, "year": {}, "etc": {},
}

// Normalizer canonicalizes free-text skill mentions against a vocabulary.
// It is safe for concurrent use once constructed.
type Normalizer struct {
	index     map[string]string
	canonical map[string]struct{}
	excluded  map[string]struct{}
	keys      []string
	maxKeyLen int
}

func NewNormalizer(v Vocabulary) *Normalizer {
	n := &Normalizer{
		index:     make(map[string]string, len(v.Entries)*3),
		canonical: make(map[string]struct{}, len(v.Entries)),
		excluded:  make(map[string]struct{}, len(v.Excluded)),
	}

	for _, ex := range v.Excluded {
		key := compact(clean(ex))
		if key == "" {
			continue
		}
		n.excluded[key] = struct{}{}
	}

	for _, e := range v.Entries {
		c := clean(e.Canonical)
		if c == "" {
			continue
		}
		n.canonical[c] = struct{}{}
		n.register(compact(c), c)
		for _, a := range e.Aliases {
			n.register(compact(clean(a)), c)
		}
	}

	n.keys = make([]string, 0, len(n.index))
	for k := range n.index {
		n.keys = append(n.keys, k)
		if l := utf8.RuneCountInString(k); l > n.maxKeyLen {
			n.maxKeyLen = l
		}
	}
	sort.Strings(n.keys)
	return n
}

func (n *Normalizer) register(key, canonical string) {
	if key == "" {
		return
	}
	if _, ok := n.excluded[key]; ok {
		return
	}
	if _, exists := n.index[key]; exists {
		return
	}
	n.index[key] = canonical
}

// Normalize returns the canonical id for raw, the cleaned form when raw is
// not in the vocabulary, or "" when raw is empty or an excluded tool.
func (n *Normalizer) Normalize(raw string) string {
	c, _ := n.resolve(clean(raw))
	return c
}

func (n *Normalizer) resolve(cleaned string) (string, bool) {
	if cleaned == "" {
		return "", false
	}
	key := compact(cleaned)
	if _, ok := n.excluded[key]; ok {
		return "", false
	}
	if c, ok := n.index[key]; ok {
		return c, true
	}
	return cleaned, false
}

func (n *Normalizer) IsKnown(skill string) bool {
	_, ok := n.canonical[skill]
	return ok
}

func (n *Normalizer) IsExcluded(raw string) bool {
	key := compact(clean(raw))
	if key == "" {
		return false
	}
	_, ok := n.excluded[key]
	return ok
}

func (n *Normalizer) Canonicals() []string {
	out := make([]string, 0, len(n.canonical))
	for c := range n.canonical {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ParseAndNormalize accepts single skills, delimited lists, space separated
// lists and concatenated runs, and returns the sorted set of canonical skills.
func (n *Normalizer) ParseAndNormalize(inputs ...string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(inputs))
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, in := range inputs {
		parts := strings.FieldsFunc(in, func(r rune) bool {
			return strings.ContainsRune(listDelimiters, r)
		})
		for _, p := range parts {
			n.parsePart(p, add)
		}
	}

	sort.Strings(out)
	return out
}

func (n *Normalizer) parsePart(part string, add func(string)) {
	cleaned := clean(part)
	if cleaned == "" {
		return
	}
	tokens := strings.Fields(cleaned)
	if len(tokens) >= maxPhraseTokens {
		n.parseTokens(tokens, add)
		return
	}

	key := compact(cleaned)
	if _, ok := n.excluded[key]; ok {
		return
	}
	if c, ok := n.index[key]; ok {
		add(c)
		return
	}

	if len(tokens) == 2 {
		a, okA := n.index[compact(tokens[0])]
		b, okB := n.index[compact(tokens[1])]
		if okA && okB {
			add(a)
			add(b)
			return
		}
		add(cleaned)
		return
	}

	if found := n.splitConcatenated(key); len(found) >= 2 {
		for _, f := range found {
			add(f)
		}
		return
	}
	add(cleaned)
}

func (n *Normalizer) parseTokens(tokens []string, add func(string)) {
	for i := 0; i < len(tokens); {
		matched := false
		width := maxPhraseTokens
		if rest := len(tokens) - i; rest < width {
			width = rest
		}
		for w := width; w >= 1; w-- {
			key := compact(strings.Join(tokens[i:i+w], " "))
			if _, ok := n.excluded[key]; ok {
				i += w
				matched = true
				break
			}
			if c, ok := n.index[key]; ok {
				add(c)
				i += w
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		t := tokens[i]
		i++
		if found := n.splitConcatenated(t); len(found) >= 2 {
			for _, f := range found {
				add(f)
			}
			continue
		}
		if keepToken(t) {
			add(t)
		}
	}
}

// splitConcatenated walks s with greedy longest-prefix matching against the
// vocabulary keys, skipping one rune whenever nothing matches.
func (n *Normalizer) splitConcatenated(s string) []string {
	rs := []rune(s)
	out := make([]string, 0, 4)
	for i := 0; i < len(rs); {
		longest := n.maxKeyLen
		if rest := len(rs) - i; rest < longest {
			longest = rest
		}
		advanced := false
		for l := longest; l >= minGreedyKeyLen; l-- {
			sub := string(rs[i : i+l])
			if _, ok := n.excluded[sub]; ok {
				i += l
				advanced = true
				break
			}
			if c, ok := n.index[sub]; ok {
				out = append(out, c)
				i += l
				advanced = true
				break
			}
		}
		if !advanced {
			i++
		}
	}
	return out
}

func keepToken(t string) bool {
	if utf8.RuneCountInString(t) < 2 {
		return false
	}
	if _, ok := stopwords[t]; ok {
		return false
	}
	for _, r := range t {
		if !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// clean lower-cases, folds accents and compatibility forms, drops dots,
// turns other punctuation into spaces and collapses whitespace. It keeps
// '+' and '#' so that c++ and c# survive.
func clean(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), raw)
	if err != nil {
		folded = raw
	}
	folded = strings.ToLower(folded)

	b := strings.Builder{}
	b.Grow(len(folded))
	lastWasSpace := true
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '+' || r == '#':
			b.WriteRune(r)
			lastWasSpace = false
		case r == '.':
			// dropped: react.js -> reactjs
		default:
			if !lastWasSpace {
				b.WriteByte(' ')
				lastWasSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func compact(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
