package market

import (
	"math"
	"time"

	"skill-graph/internal/domain/job"
	"skill-graph/internal/domain/skill"
)

// Coefficients blend the four components into the composite weight. The
// defaults weight demand and salary highest and sum to 1.
type Coefficients struct {
	Demand        float64
	SalaryPremium float64
	Tier          float64
	Penetration   float64
}

func DefaultCoefficients() Coefficients {
	return Coefficients{Demand: 0.40, SalaryPremium: 0.35, Tier: 0.15, Penetration: 0.10}
}

func (c Coefficients) isZero() bool {
	return c.Demand == 0 && c.SalaryPremium == 0 && c.Tier == 0 && c.Penetration == 0
}

const maxSalaryRatio = 2.0

type SkillWeight struct {
	Skill         string    `json:"skill"`
	Demand        float64   `json:"demand"`
	SalaryPremium float64   `json:"salary_premium"`
	Tier          float64   `json:"tier"`
	Penetration   float64   `json:"penetration"`
	Weight        float64   `json:"weight"`
	CorpusSize    int       `json:"corpus_size"`
	ComputedAt    time.Time `json:"computed_at"`
}

type Engine struct {
	normalizer *skill.Normalizer
	tiers      *TierClassifier
	cache      *WeightCache
	coeffs     Coefficients
	now        func() time.Time
}

func NewEngine(n *skill.Normalizer, cache *WeightCache, tiers *TierClassifier, coeffs Coefficients) *Engine {
	if coeffs.isZero() {
		coeffs = DefaultCoefficients()
	}
	if tiers == nil {
		tiers = NewTierClassifier(DefaultTierTable())
	}
	return &Engine{normalizer: n, tiers: tiers, cache: cache, coeffs: coeffs, now: time.Now}
}

// Stats indexes a corpus with the engine's normalizer and tier table.
func (e *Engine) Stats(corpus []job.Posting) *CorpusStats {
	return NewCorpusStats(corpus, e.normalizer, e.tiers)
}

func (e *Engine) ComputeWeight(skillName string, corpus []job.Posting) SkillWeight {
	return e.Weigh(skillName, e.Stats(corpus))
}

// Weigh computes the weight of one skill against pre-indexed corpus stats,
// consulting the cache first.
func (e *Engine) Weigh(skillName string, st *CorpusStats) SkillWeight {
	id := skillName
	if e.normalizer != nil {
		id = e.normalizer.Normalize(skillName)
	}
	if id == "" {
		return SkillWeight{}
	}
	if st == nil || st.TotalJobs == 0 {
		return SkillWeight{Skill: id}
	}

	if w, ok := e.cache.Get(id, st.TotalJobs); ok {
		return w
	}

	freq := st.Frequency(id)
	w := SkillWeight{
		Skill:         id,
		Demand:        Demand(freq, st.TotalJobs),
		SalaryPremium: SalaryPremium(st.AverageSalary(id), st.MarketAverageSalary()),
		Tier:          TierScore(st.MaxTier(id)),
		Penetration:   Penetration(freq, st.TopEmployers()),
		CorpusSize:    st.TotalJobs,
		ComputedAt:    e.now().UTC(),
	}
	w.Weight = e.coeffs.Composite(w.Demand, w.SalaryPremium, w.Tier, w.Penetration)

	e.cache.Set(id, w, st.TotalJobs)
	return w
}

func (e *Engine) WeighAll(skills []string, st *CorpusStats) map[string]SkillWeight {
	out := make(map[string]SkillWeight, len(skills))
	for _, s := range skills {
		w := e.Weigh(s, st)
		if w.Skill == "" {
			continue
		}
		out[w.Skill] = w
	}
	return out
}

// Demand is log(freq+1) / log(totalJobs+1).
func Demand(freq, totalJobs int) float64 {
	if freq <= 0 || totalJobs <= 0 {
		return 0
	}
	if freq > totalJobs {
		freq = totalJobs
	}
	return clamp01(math.Log(float64(freq)+1) / math.Log(float64(totalJobs)+1))
}

// SalaryPremium is min(avg/market, 2) / 2. Missing salary data yields 0.
func SalaryPremium(avgSalary, marketAvgSalary float64) float64 {
	if avgSalary <= 0 || marketAvgSalary <= 0 {
		return 0
	}
	return clamp01(math.Min(avgSalary/marketAvgSalary, maxSalaryRatio) / maxSalaryRatio)
}

func TierScore(maxTier int) float64 {
	if maxTier <= 0 {
		return 0
	}
	return clamp01(float64(maxTier) / MaxEmployerTier)
}

// Penetration is min(freq / topEmployers, 1); a corpus without top employers yields 0.
func Penetration(freq, topEmployers int) float64 {
	if freq <= 0 || topEmployers <= 0 {
		return 0
	}
	return math.Min(float64(freq)/float64(topEmployers), 1)
}

func (c Coefficients) Composite(d, s, t, p float64) float64 {
	return clamp01(c.Demand*d + c.SalaryPremium*s + c.Tier*t + c.Penetration*p)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
