package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"skill-graph/internal/database"

	"github.com/google/uuid"
)

type fakeRow struct {
	id     uuid.UUID
	title  string
	skills []string
}

type fakeRows struct {
	rows []fakeRow
	i    int
	err  error
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Next() bool {
	if r.i >= len(r.rows) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.i-1]
	*dest[0].(*uuid.UUID) = row.id
	*dest[1].(*string) = row.title
	*dest[2].(*string) = "Acme"
	*dest[3].(*string) = "Remote"
	*dest[4].(*string) = "desc"
	*dest[5].(*string) = "seed"
	*dest[6].(*[]string) = row.skills
	return nil
}

type fakeDB struct {
	rows     *fakeRows
	queryErr error
	sql      string
	args     []any
}

func (d *fakeDB) Ping(context.Context) error { return nil }
func (d *fakeDB) Close() error               { return nil }
func (d *fakeDB) QueryRow(context.Context, string, ...any) database.Row {
	return nil
}

func (d *fakeDB) Query(_ context.Context, sql string, args ...any) (database.Rows, error) {
	d.sql = sql
	d.args = args
	if d.queryErr != nil {
		return nil, d.queryErr
	}
	return d.rows, nil
}

func TestFetchCorpus_MapsRows(t *testing.T) {
	id := uuid.New()
	db := &fakeDB{rows: &fakeRows{rows: []fakeRow{
		{id: id, title: "Go Engineer", skills: []string{"go", "postgresql"}},
		{id: uuid.New(), title: "Intern"},
	}}}
	repo := NewPostgresJobCorpusRepository(db)

	out, err := repo.FetchCorpus(context.Background(), "  engineer ", 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(out))
	}
	if out[0].ID != id.String() || out[0].Company != "Acme" || len(out[0].RequiredSkills) != 2 {
		t.Fatalf("unexpected posting: %+v", out[0])
	}
	if out[1].RequiredSkills != nil {
		t.Fatalf("expected no skills for second posting")
	}
	if p := db.args[0].([]string); len(p) != 1 || p[0] != "%engineer%" || db.args[1] != defaultCorpusLimit {
		t.Fatalf("unexpected args: %v", db.args)
	}
	if !strings.Contains(db.sql, "is_active = true") {
		t.Fatalf("expected active filter in query")
	}
}

func TestFetchCorpus_ClampsLimit(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{}}
	if _, err := NewPostgresJobCorpusRepository(db).FetchCorpus(context.Background(), "", 100000); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if db.args[1] != maxCorpusLimit {
		t.Fatalf("expected limit clamp to %d, got %v", maxCorpusLimit, db.args[1])
	}
}

func TestFetchCorpus_Errors(t *testing.T) {
	boom := errors.New("boom")
	if _, err := NewPostgresJobCorpusRepository(&fakeDB{queryErr: boom}).FetchCorpus(context.Background(), "", 10); !errors.Is(err, boom) {
		t.Fatalf("expected query error, got %v", err)
	}
	rowsErr := &fakeDB{rows: &fakeRows{err: boom}}
	if _, err := NewPostgresJobCorpusRepository(rowsErr).FetchCorpus(context.Background(), "", 10); !errors.Is(err, boom) {
		t.Fatalf("expected rows error, got %v", err)
	}
}

func TestQueryPatterns(t *testing.T) {
	if got := queryPatterns("  "); len(got) != 0 {
		t.Fatalf("expected no patterns for empty query, got %v", got)
	}
	got := queryPatterns("Frontend")
	if len(got) != 4 || got[0] != "%frontend%" || got[1] != "%front end%" {
		t.Fatalf("unexpected patterns: %v", got)
	}
	if got := queryPatterns("100%_go"); got[0] != `%100\%\_go%` {
		t.Fatalf("expected escaped pattern, got %q", got[0])
	}
}
