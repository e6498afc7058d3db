package market

import (
	"strings"

	"skill-graph/internal/domain/job"
)

const (
	MaxEmployerTier = 5
	// TopTierThreshold is the lowest tier counted as a top employer.
	TopTierThreshold = 4
)

// TierClassifier resolves a posting's employer tier. An explicit tier on the
// posting wins; otherwise the company name is looked up in the table. Zero
// means unknown.
type TierClassifier struct {
	byCompany map[string]int
}

func NewTierClassifier(table map[string]int) *TierClassifier {
	tc := &TierClassifier{byCompany: make(map[string]int, len(table))}
	for name, tier := range table {
		key := companyKey(name)
		if key == "" || tier < 1 || tier > MaxEmployerTier {
			continue
		}
		tc.byCompany[key] = tier
	}
	return tc
}

func DefaultTierTable() map[string]int {
	return map[string]int{
		"Google": 5, "Alphabet": 5, "Meta": 5, "Apple": 5, "Amazon": 5, "Microsoft": 5, "Netflix": 5,
		"Stripe": 4, "Airbnb": 4, "Uber": 4, "Shopify": 4, "Spotify": 4, "Salesforce": 4,
		"Atlassian": 4, "Datadog": 4, "Snowflake": 4, "Nvidia": 4, "Oracle": 4, "IBM": 3,
		"Accenture": 3, "Tokopedia": 3, "Gojek": 3, "Grab": 3,
	}
}

func (tc *TierClassifier) Resolve(p job.Posting) int {
	if p.EmployerTier != nil {
		t := *p.EmployerTier
		if t >= 1 && t <= MaxEmployerTier {
			return t
		}
	}
	if tc == nil {
		return 0
	}
	return tc.byCompany[companyKey(p.Company)]
}

func companyKey(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, suffix := range []string{" inc.", " inc", " llc", " ltd", " corp.", " corporation", " corp"} {
		name = strings.TrimSuffix(name, suffix)
	}
	return strings.Join(strings.Fields(name), " ")
}
