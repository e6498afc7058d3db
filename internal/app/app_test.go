package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"skill-graph/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

const cyclicReference = `{
  "haskell": {
    "nodes": [
      {"id": "a", "title": "A", "difficulty": "beginner"},
      {"id": "b", "title": "B", "difficulty": "beginner"}
    ],
    "edges": [
      {"from": "a", "to": "b", "type": "prerequisite"},
      {"from": "b", "to": "a", "type": "prerequisite"}
    ]
  }
}`

func newTestApp(t *testing.T) *App {
	t.Helper()
	refPath := filepath.Join(t.TempDir(), "graphs.json")
	require.NoError(t, os.WriteFile(refPath, []byte(cyclicReference), 0o600))

	cfg := config.Config{
		App:    config.AppConfig{AppName: "skill-graph-test"},
		Engine: config.EngineConfig{BatchParallelism: 2, ReferenceGraphsPath: refPath},
	}

	c, err := NewContainer(context.Background(), cfg, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return New(c)
}

func do(t *testing.T, a *App, method, path string, body any) semanticResponse {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Fiber.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var sr semanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sr))
	assert.Equal(t, resp.StatusCode, sr.Status)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	return sr
}

func TestAPI_Health(t *testing.T) {
	sr := do(t, newTestApp(t), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, sr.Status)

	var data struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(sr.Data, &data))
	assert.Equal(t, "up", data.Status)
	assert.Equal(t, "disabled", data.Dependencies["postgres"])
	assert.Equal(t, "unavailable", data.Dependencies["redis"])
}

func TestAPI_Skills(t *testing.T) {
	a := newTestApp(t)

	sr := do(t, a, http.MethodPost, "/api/v1/skills/normalize", map[string]any{"skills": []string{"ReactJS", "golang", "react.js"}})
	require.Equal(t, http.StatusOK, sr.Status)
	var norm struct {
		Skills []string `json:"skills"`
	}
	require.NoError(t, json.Unmarshal(sr.Data, &norm))
	assert.Equal(t, []string{"go", "react"}, norm.Skills)

	sr = do(t, a, http.MethodPost, "/api/v1/skills/normalize", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, sr.Status)
	assert.Equal(t, "validation failed", sr.Message)

	sr = do(t, a, http.MethodPost, "/api/v1/skills/similarity", map[string]any{"a": []string{"go", "docker"}, "b": []string{"golang"}})
	require.Equal(t, http.StatusOK, sr.Status)
	var sim struct {
		Similarity float64 `json:"similarity"`
	}
	require.NoError(t, json.Unmarshal(sr.Data, &sim))
	assert.InDelta(t, 0.5, sim.Similarity, 1e-9)
}

func TestAPI_ScoreJobs(t *testing.T) {
	a := newTestApp(t)

	sr := do(t, a, http.MethodPost, "/api/v1/jobs/score", map[string]any{
		"user_skills": []string{"go", "postgres"},
		"jobs": []map[string]any{
			{"id": "fe", "title": "Frontend", "required_skills": []string{"react", "typescript"}},
			{"id": "be", "title": "Backend", "required_skills": []string{"golang", "postgresql"}},
		},
	})
	require.Equal(t, http.StatusOK, sr.Status)
	var out struct {
		CorpusSize int `json:"corpus_size"`
		Jobs       []struct {
			Job struct {
				ID string `json:"id"`
			} `json:"job"`
			Score float64 `json:"score"`
		} `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(sr.Data, &out))
	require.Len(t, out.Jobs, 2)
	assert.Equal(t, 2, out.CorpusSize)
	assert.Equal(t, "be", out.Jobs[0].Job.ID)
	assert.Greater(t, out.Jobs[0].Score, out.Jobs[1].Score)

	sr = do(t, a, http.MethodPost, "/api/v1/jobs/score", map[string]any{"user_skills": []string{"go"}, "query": "backend"})
	assert.Equal(t, http.StatusServiceUnavailable, sr.Status)

	sr = do(t, a, http.MethodPost, "/api/v1/jobs/score", map[string]any{"user_skills": []string{"go"}})
	require.Equal(t, http.StatusOK, sr.Status)
	out.Jobs = nil
	require.NoError(t, json.Unmarshal(sr.Data, &out))
	assert.Empty(t, out.Jobs)
	assert.Equal(t, 0, out.CorpusSize)

	sr = do(t, a, http.MethodPost, "/api/v1/jobs/score", map[string]any{"user_skills": []string{"go"}, "limit": -1})
	assert.Equal(t, http.StatusBadRequest, sr.Status)
}

func TestAPI_LearningPaths(t *testing.T) {
	a := newTestApp(t)

	sr := do(t, a, http.MethodPost, "/api/v1/learning-paths", map[string]any{"target_skill": "elixir", "weeks": 6, "start_date": "2026-01-05"})
	require.Equal(t, http.StatusOK, sr.Status)
	var res struct {
		Path struct {
			Fallback  bool     `json:"fallback"`
			SkillPath []string `json:"skill_path"`
		} `json:"path"`
		Timeline struct {
			TotalWeeks int `json:"total_weeks"`
		} `json:"timeline"`
	}
	require.NoError(t, json.Unmarshal(sr.Data, &res))
	assert.True(t, res.Path.Fallback)
	assert.Len(t, res.Path.SkillPath, 3)
	assert.Equal(t, 6, res.Timeline.TotalWeeks)

	sr = do(t, a, http.MethodPost, "/api/v1/learning-paths", map[string]any{"target_skill": "haskell"})
	assert.Equal(t, http.StatusUnprocessableEntity, sr.Status)

	sr = do(t, a, http.MethodPost, "/api/v1/learning-paths", map[string]any{"target_skill": "go", "start_date": "05/01/2026"})
	assert.Equal(t, http.StatusBadRequest, sr.Status)

	sr = do(t, a, http.MethodPost, "/api/v1/learning-paths/batch", map[string]any{"skills": []string{"elixir", "haskell"}})
	require.Equal(t, http.StatusOK, sr.Status)
	var batch struct {
		Succeeded int  `json:"succeeded"`
		Failed    int  `json:"failed"`
		Partial   bool `json:"partial"`
	}
	require.NoError(t, json.Unmarshal(sr.Data, &batch))
	assert.Equal(t, 1, batch.Succeeded)
	assert.Equal(t, 1, batch.Failed)
	assert.True(t, batch.Partial)
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(":9090")
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)

	_, err = ListenAddr(" ")
	assert.Error(t, err)
}
