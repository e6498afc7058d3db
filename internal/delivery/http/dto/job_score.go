package dto

import (
	"skill-graph/internal/domain/job"
	"skill-graph/internal/domain/market"
	"skill-graph/internal/domain/matching"
)

type JobRequest struct {
	ID             string   `json:"id" validate:"max=100"`
	Title          string   `json:"title" validate:"max=300"`
	Company        string   `json:"company" validate:"max=300"`
	Location       string   `json:"location" validate:"max=300"`
	Description    string   `json:"description" validate:"max=20000"`
	RequiredSkills []string `json:"required_skills" validate:"max=200,dive,max=200"`
	Salary         *float64 `json:"salary" validate:"omitempty,gte=0"`
	EmployerTier   *int     `json:"employer_tier" validate:"omitempty,gte=1,lte=5"`
	Source         string   `json:"source" validate:"max=100"`
}

func (r JobRequest) Posting() job.Posting {
	return job.Posting{
		ID:             r.ID,
		Title:          r.Title,
		Company:        r.Company,
		Location:       r.Location,
		Description:    r.Description,
		RequiredSkills: r.RequiredSkills,
		Salary:         r.Salary,
		EmployerTier:   r.EmployerTier,
		Source:         r.Source,
	}
}

type ScoreJobsRequest struct {
	UserSkills      []string     `json:"user_skills" validate:"required,min=1,max=200,dive,max=200"`
	YearsExperience *float64     `json:"years_experience" validate:"omitempty,gte=0,lte=60"`
	Jobs            []JobRequest `json:"jobs" validate:"max=5000,dive"`
	Query           string       `json:"query" validate:"max=200"`
	Limit           int          `json:"limit" validate:"gte=0,lte=200"`
}

func (r ScoreJobsRequest) Postings() []job.Posting {
	out := make([]job.Posting, 0, len(r.Jobs))
	for _, j := range r.Jobs {
		out = append(out, j.Posting())
	}
	return out
}

type ScoreJobsResponse struct {
	UserSkills []string                      `json:"user_skills"`
	CorpusSize int                           `json:"corpus_size"`
	Jobs       []matching.ScoredJob          `json:"jobs"`
	Weights    map[string]market.SkillWeight `json:"weights"`
}
