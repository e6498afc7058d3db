package usecase

import (
	"sort"
	"strings"

	"skill-graph/internal/domain/skill"
)

type SkillMatch struct {
	Skill      string  `json:"skill"`
	Confidence float64 `json:"confidence"`
	Found      bool    `json:"found"`
}

type SkillUsecase interface {
	Normalize(raw []string) []string
	Match(raw string) (SkillMatch, error)
	Similarity(a, b []string) float64
}

type Skill struct {
	normalizer *skill.Normalizer
	matcher    *skill.Matcher
}

func NewSkillUsecase(n *skill.Normalizer, m *skill.Matcher) *Skill {
	return &Skill{normalizer: n, matcher: m}
}

// Normalize resolves raw mentions to a sorted, de-duplicated canonical list,
// using fuzzy matching for spellings the vocabulary does not know.
func (u *Skill) Normalize(raw []string) []string {
	out := u.matcher.ResolveAll(raw)
	sort.Strings(out)
	return out
}

func (u *Skill) Match(raw string) (SkillMatch, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SkillMatch{}, ErrInvalidInput
	}
	m, ok := u.matcher.FindBestMatch(raw)
	if !ok {
		return SkillMatch{Skill: u.normalizer.Normalize(raw)}, nil
	}
	return SkillMatch{Skill: m.Skill, Confidence: m.Confidence, Found: true}, nil
}

func (u *Skill) Similarity(a, b []string) float64 {
	return u.matcher.CalculateSimilarity(a, b)
}
