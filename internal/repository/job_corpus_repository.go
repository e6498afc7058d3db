package repository

import (
	"context"

	"skill-graph/internal/database"
	"skill-graph/internal/domain/job"

	"github.com/google/uuid"
)

const (
	defaultCorpusLimit = 500
	maxCorpusLimit     = 5000
)

// JobCorpusRepository reads active postings with their required skills.
type JobCorpusRepository interface {
	FetchCorpus(ctx context.Context, query string, limit int) ([]job.Posting, error)
}

type PostgresJobCorpusRepository struct {
	db database.DB
}

func NewPostgresJobCorpusRepository(db database.DB) *PostgresJobCorpusRepository {
	return &PostgresJobCorpusRepository{db: db}
}

// FetchCorpus returns up to limit active postings whose title or description
// contains query or one of its role synonyms, newest first. An empty query
// matches every active job.
func (r *PostgresJobCorpusRepository) FetchCorpus(ctx context.Context, query string, limit int) ([]job.Posting, error) {
	if limit <= 0 {
		limit = defaultCorpusLimit
	}
	if limit > maxCorpusLimit {
		limit = maxCorpusLimit
	}
	patterns := queryPatterns(query)

	rows, err := r.db.Query(ctx,
		`SELECT j.id,
		        COALESCE(j.title, ''),
		        COALESCE(j.company, ''),
		        COALESCE(j.location, ''),
		        COALESCE(j.description, ''),
		        COALESCE(j.source, ''),
		        COALESCE(array_agg(s.name ORDER BY s.name) FILTER (WHERE s.name IS NOT NULL), '{}')
		 FROM jobs j
		 LEFT JOIN job_skills js ON js.job_id = j.id
		 LEFT JOIN skills s ON s.id = js.skill_id
		 WHERE j.is_active = true
		   AND (cardinality($1::text[]) = 0 OR j.title ILIKE ANY($1) OR j.description ILIKE ANY($1))
		 GROUP BY j.id
		 ORDER BY j.created_at DESC
		 LIMIT $2`,
		patterns, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		var (
			id     uuid.UUID
			p      job.Posting
			skills []string
		)
		if err := rows.Scan(&id, &p.Title, &p.Company, &p.Location, &p.Description, &p.Source, &skills); err != nil {
			return nil, err
		}
		p.ID = id.String()
		p.RequiredSkills = skills
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
