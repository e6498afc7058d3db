package market

import (
	"skill-graph/internal/domain/job"
	"skill-graph/internal/domain/skill"
)

// CorpusStats is a single pass over a job corpus, reused for every skill
// weighed against that corpus.
type CorpusStats struct {
	TotalJobs int

	freq        map[string]int
	salarySum   map[string]float64
	salaryCount map[string]int
	maxTier     map[string]int

	marketSalarySum   float64
	marketSalaryCount int
	topEmployers      int

	postingSkills [][]string
}

func NewCorpusStats(corpus []job.Posting, n *skill.Normalizer, tiers *TierClassifier) *CorpusStats {
	st := &CorpusStats{
		TotalJobs:     len(corpus),
		freq:          make(map[string]int),
		salarySum:     make(map[string]float64),
		salaryCount:   make(map[string]int),
		maxTier:       make(map[string]int),
		postingSkills: make([][]string, 0, len(corpus)),
	}

	topCompanies := make(map[string]struct{})
	for _, p := range corpus {
		var skills []string
		if n != nil {
			skills = n.ParseAndNormalize(p.RequiredSkills...)
		}
		st.postingSkills = append(st.postingSkills, skills)

		tier := tiers.Resolve(p)
		if tier >= TopTierThreshold {
			if key := companyKey(p.Company); key != "" {
				topCompanies[key] = struct{}{}
			}
		}
		if p.HasSalary() {
			st.marketSalarySum += *p.Salary
			st.marketSalaryCount++
		}

		for _, s := range skills {
			st.freq[s]++
			if p.HasSalary() {
				st.salarySum[s] += *p.Salary
				st.salaryCount[s]++
			}
			if tier > st.maxTier[s] {
				st.maxTier[s] = tier
			}
		}
	}
	st.topEmployers = len(topCompanies)
	return st
}

func (st *CorpusStats) Frequency(skill string) int {
	if st == nil {
		return 0
	}
	return st.freq[skill]
}

// AverageSalary returns the mean salary of postings requiring skill, or 0.
func (st *CorpusStats) AverageSalary(skill string) float64 {
	if st == nil || st.salaryCount[skill] == 0 {
		return 0
	}
	return st.salarySum[skill] / float64(st.salaryCount[skill])
}

func (st *CorpusStats) MarketAverageSalary() float64 {
	if st == nil || st.marketSalaryCount == 0 {
		return 0
	}
	return st.marketSalarySum / float64(st.marketSalaryCount)
}

func (st *CorpusStats) MaxTier(skill string) int {
	if st == nil {
		return 0
	}
	return st.maxTier[skill]
}

func (st *CorpusStats) TopEmployers() int {
	if st == nil {
		return 0
	}
	return st.topEmployers
}

// Skills returns every distinct canonical skill seen in the corpus.
func (st *CorpusStats) Skills() []string {
	if st == nil {
		return []string{}
	}
	out := make([]string, 0, len(st.freq))
	for s := range st.freq {
		out = append(out, s)
	}
	return out
}

// PostingSkills returns the canonical skill set of each posting, in corpus order.
func (st *CorpusStats) PostingSkills() [][]string {
	if st == nil {
		return nil
	}
	return st.postingSkills
}
