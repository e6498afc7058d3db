package matching

import (
	"skill-graph/internal/domain/job"
	"skill-graph/internal/domain/market"
	"skill-graph/internal/domain/skill"
)

const (
	marketMax     = 50.0
	centralityMax = 20.0
	coverageMax   = 15.0
	relatedMax    = 15.0

	neighborBonus       = 0.3
	centralityBonusRate = 0.2
)

// Graph is the part of the relationship graph the scorer reads.
type Graph interface {
	Centrality(skill string) float64
	Neighbors(skill string) []string
}

type Breakdown struct {
	Market     float64 `json:"market"`
	Centrality float64 `json:"centrality"`
	Coverage   float64 `json:"coverage"`
	Related    float64 `json:"related"`
}

type ScoredJob struct {
	Job                     job.Posting `json:"job"`
	Score                   float64     `json:"score"`
	Breakdown               Breakdown   `json:"breakdown"`
	MatchedSkills           []string    `json:"matched_skills"`
	MissingSkills           []string    `json:"missing_skills"`
	MatchCount              int         `json:"match_count"`
	AvgMatchedWeight        float64     `json:"avg_matched_weight"`
	RequiredYears           *float64    `json:"required_years,omitempty"`
	ExperienceCompatibility *float64    `json:"experience_compatibility,omitempty"`
}

type Scorer struct {
	normalizer *skill.Normalizer
}

func NewScorer(n *skill.Normalizer) *Scorer {
	return &Scorer{normalizer: n}
}

// Score rates one posting against the user's skills. Postings with no
// recognizable required skills score 0.
func (s *Scorer) Score(userSkills []string, p job.Posting, weights map[string]market.SkillWeight, g Graph) ScoredJob {
	user := s.canonical(userSkills)
	required := s.canonical(p.RequiredSkills)

	out := ScoredJob{Job: p, MatchedSkills: []string{}, MissingSkills: []string{}}
	if len(required) == 0 {
		return out
	}

	userSet := make(map[string]struct{}, len(user))
	for _, u := range user {
		userSet[u] = struct{}{}
	}
	requiredSet := make(map[string]struct{}, len(required))
	for _, r := range required {
		requiredSet[r] = struct{}{}
	}

	for _, r := range required {
		if _, ok := userSet[r]; ok {
			out.MatchedSkills = append(out.MatchedSkills, r)
		} else {
			out.MissingSkills = append(out.MissingSkills, r)
		}
	}
	out.MatchCount = len(out.MatchedSkills)

	var userWeight, matchedWeight float64
	for _, u := range user {
		userWeight += weights[u].Weight
	}
	var centralitySum, relatedSum float64
	for _, m := range out.MatchedSkills {
		matchedWeight += weights[m].Weight
		c := centrality(g, m)
		centralitySum += c
		relatedSum += relatedBonus(g, m, c, requiredSet)
	}

	if userWeight > 0 {
		out.Breakdown.Market = matchedWeight / userWeight * marketMax
	}
	if out.MatchCount > 0 {
		out.Breakdown.Centrality = centralitySum / float64(out.MatchCount) * centralityMax
		out.AvgMatchedWeight = matchedWeight / float64(out.MatchCount)
	}
	out.Breakdown.Coverage = float64(out.MatchCount) / float64(len(required)) * coverageMax
	out.Breakdown.Related = minFloat(relatedSum, 1) * relatedMax

	out.Score = composeRelevance(out.Breakdown)
	return out
}

// ScoreAll scores every posting and returns them ranked.
func (s *Scorer) ScoreAll(userSkills []string, postings []job.Posting, weights map[string]market.SkillWeight, g Graph) []ScoredJob {
	out := make([]ScoredJob, 0, len(postings))
	for _, p := range postings {
		out = append(out, s.Score(userSkills, p, weights, g))
	}
	Rank(out)
	return out
}

func (s *Scorer) canonical(raw []string) []string {
	if s.normalizer == nil {
		return dedupe(raw)
	}
	return s.normalizer.ParseAndNormalize(raw...)
}

func composeRelevance(b Breakdown) float64 {
	return clampFloat(b.Market+b.Centrality+b.Coverage+b.Related, 0, 100)
}

func relatedBonus(g Graph, s string, c float64, required map[string]struct{}) float64 {
	bonus := centralityBonusRate * c
	if g == nil {
		return bonus
	}
	for _, nb := range g.Neighbors(s) {
		if _, ok := required[nb]; ok {
			return bonus + neighborBonus
		}
	}
	return bonus
}

func centrality(g Graph, s string) float64 {
	if g == nil {
		return 0
	}
	return clampFloat(g.Centrality(s), 0, 1)
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
	return out
}

func clampFloat(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
