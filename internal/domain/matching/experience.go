package matching

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

type ExperienceMode string

const (
	ExperienceOff      ExperienceMode = "off"
	ExperienceGate     ExperienceMode = "gate"
	ExperienceReweight ExperienceMode = "reweight"

	DefaultMinCompatibility = 0.5
	experienceFloorYears    = 10.0
)

func ParseExperienceMode(s string) ExperienceMode {
	switch ExperienceMode(strings.ToLower(strings.TrimSpace(s))) {
	case ExperienceGate:
		return ExperienceGate
	case ExperienceReweight:
		return ExperienceReweight
	default:
		return ExperienceOff
	}
}

// ExperienceFilter is the optional stage run after scoring. It only touches
// jobs whose required experience can be estimated.
type ExperienceFilter struct {
	Mode             ExperienceMode
	MinCompatibility float64
	UserYears        *float64
}

func (f ExperienceFilter) Apply(jobs []ScoredJob) []ScoredJob {
	if f.Mode == "" || f.Mode == ExperienceOff || f.UserYears == nil {
		return jobs
	}
	minCompat := f.MinCompatibility
	if minCompat <= 0 {
		minCompat = DefaultMinCompatibility
	}

	out := make([]ScoredJob, 0, len(jobs))
	for _, j := range jobs {
		years, ok := EstimateRequiredYears(j.Job.Title + "\n" + j.Job.Description)
		if !ok {
			out = append(out, j)
			continue
		}
		e := Compatibility(*f.UserYears, years)
		j.RequiredYears = &years
		j.ExperienceCompatibility = &e

		switch f.Mode {
		case ExperienceGate:
			if e < minCompat {
				continue
			}
		case ExperienceReweight:
			j.Score = clampFloat(j.Score*e, 0, 100)
		}
		out = append(out, j)
	}
	Rank(out)
	return out
}

// Compatibility is 1 - |user-job| / max(user, job, 10), in [0,1].
func Compatibility(userYears, jobYears float64) float64 {
	if userYears < 0 {
		userYears = 0
	}
	if jobYears < 0 {
		jobYears = 0
	}
	denom := math.Max(math.Max(userYears, jobYears), experienceFloorYears)
	return clampFloat(1-math.Abs(userYears-jobYears)/denom, 0, 1)
}

var yearsPattern = regexp.MustCompile(`(?i)(\d{1,2})\s*(?:\+|plus)?\s*(?:-|–|to)?\s*(?:\d{1,2})?\s*\+?\s*(?:years?|yrs?)\b`)

// EstimateRequiredYears returns the smallest "N years" figure in text.
func EstimateRequiredYears(text string) (float64, bool) {
	found := false
	best := 0
	for _, m := range yearsPattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 || n > 40 {
			continue
		}
		if !found || n < best {
			best = n
			found = true
		}
	}
	return float64(best), found
}
