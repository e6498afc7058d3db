package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"skill-graph/internal/domain/learning"
)

type fakeClient struct {
	out    string
	err    error
	prompt string
}

func (c *fakeClient) GenerateJSON(_ context.Context, prompt string) (string, error) {
	c.prompt = prompt
	return c.out, c.err
}

func (c *fakeClient) Close() error { return nil }

const validGraph = "```json\n" + `{
  "nodes": [
    {"id": "basics", "title": "Basics", "difficulty": "beginner", "estimated_hours": 8, "connections": ["apps"]},
    {"id": "apps", "title": "Apps", "difficulty": "intermediate", "estimated_hours": 12,
     "project": {"title": "Build an app", "deliverables": ["repo"]}}
  ],
  "edges": [{"from": "basics", "to": "apps", "type": "prerequisite", "strength": 0.9}],
  "skill_path": ["basics", "apps"]
}` + "\n```"

func TestGraphGenerator_ParsesValidPayload(t *testing.T) {
	c := &fakeClient{out: validGraph}
	g := NewGraphGenerator(c)

	data, err := g.Generate(context.Background(), "flutter", []string{"dart"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(data.Nodes) != 2 || len(data.Edges) != 1 {
		t.Fatalf("unexpected graph: %+v", data)
	}
	if data.Nodes[1].Project == nil || data.Nodes[1].Project.Title != "Build an app" {
		t.Fatalf("expected project milestone to decode")
	}
	if data.Edges[0].Type != learning.EdgePrerequisite {
		t.Fatalf("unexpected edge type %q", data.Edges[0].Type)
	}
	if !strings.Contains(c.prompt, `"flutter"`) || !strings.Contains(c.prompt, "dart") {
		t.Fatalf("prompt missing target or current skills")
	}
}

func TestGraphGenerator_RejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"not json",
		`{"nodes": [], "edges": []}`,
		`{"nodes": [{"id": "a", "title": "A", "difficulty": "expert"}], "edges": []}`,
		`{"nodes": [{"id": "a", "title": "A", "difficulty": "beginner"}], "edges": [{"from": "a", "to": "b", "type": "blocks"}]}`,
	}
	for _, raw := range cases {
		_, err := NewGraphGenerator(&fakeClient{out: raw}).Generate(context.Background(), "go", nil)
		if !errors.Is(err, learning.ErrInvalidPayload) {
			t.Fatalf("%q: expected ErrInvalidPayload, got %v", raw, err)
		}
	}
}

func TestGraphGenerator_PropagatesClientError(t *testing.T) {
	boom := errors.New("quota exceeded")
	_, err := NewGraphGenerator(&fakeClient{err: boom}).Generate(context.Background(), "go", nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected client error, got %v", err)
	}
}

func TestCleanJSONBlock(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
	}
	for in, want := range cases {
		if got := CleanJSONBlock(in); got != want {
			t.Fatalf("CleanJSONBlock(%q) = %q, want %q", in, got, want)
		}
	}
}
