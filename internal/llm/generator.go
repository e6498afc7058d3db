package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"skill-graph/internal/domain/learning"

	"github.com/xeipuuv/gojsonschema"
)

const graphSchema = `{
  "type": "object",
  "required": ["nodes", "edges"],
  "properties": {
    "nodes": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "title", "difficulty"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "category": {"type": "string"},
          "difficulty": {"enum": ["beginner", "intermediate", "advanced"]},
          "estimated_hours": {"type": "number", "minimum": 0},
          "connections": {"type": "array", "items": {"type": "string"}},
          "sub_topics": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name"],
              "properties": {
                "name": {"type": "string"},
                "resources": {"type": "array"}
              }
            }
          },
          "project": {"type": ["object", "null"]}
        }
      }
    },
    "edges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["from", "to", "type"],
        "properties": {
          "from": {"type": "string"},
          "to": {"type": "string"},
          "type": {"enum": ["prerequisite", "related"]},
          "strength": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "skill_path": {"type": "array", "items": {"type": "string"}}
  }
}`

var graphSchemaLoader = gojsonschema.NewStringLoader(graphSchema)

// GraphGenerator asks an LLM for a learning graph and accepts only payloads
// that pass the graph schema.
type GraphGenerator struct {
	client Client
}

func NewGraphGenerator(client Client) *GraphGenerator {
	return &GraphGenerator{client: client}
}

func (g *GraphGenerator) Generate(ctx context.Context, targetSkill string, currentSkills []string) (learning.GraphData, error) {
	if g.client == nil {
		return learning.GraphData{}, fmt.Errorf("%w: no llm client", learning.ErrInvalidPayload)
	}
	raw, err := g.client.GenerateJSON(ctx, buildGraphPrompt(targetSkill, currentSkills))
	if err != nil {
		return learning.GraphData{}, err
	}
	return ParseGraph(raw)
}

// ParseGraph validates raw against the graph schema and decodes it.
func ParseGraph(raw string) (learning.GraphData, error) {
	raw = CleanJSONBlock(raw)
	if raw == "" {
		return learning.GraphData{}, fmt.Errorf("%w: empty response", learning.ErrInvalidPayload)
	}

	result, err := gojsonschema.Validate(graphSchemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return learning.GraphData{}, fmt.Errorf("%w: %v", learning.ErrInvalidPayload, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.Field()+": "+e.Description())
		}
		return learning.GraphData{}, fmt.Errorf("%w: %s", learning.ErrInvalidPayload, strings.Join(msgs, "; "))
	}

	var data learning.GraphData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return learning.GraphData{}, fmt.Errorf("%w: %v", learning.ErrInvalidPayload, err)
	}
	return data, nil
}

func buildGraphPrompt(target string, current []string) string {
	known := "none"
	if len(current) > 0 {
		known = strings.Join(current, ", ")
	}
	return fmt.Sprintf(`You are designing a learning roadmap for the skill %q.
The learner already knows: %s.

Return ONLY a JSON object with this shape:
{
  "nodes": [{"id": "kebab-case-id", "title": "...", "description": "...",
             "difficulty": "beginner|intermediate|advanced", "estimated_hours": 10,
             "connections": ["id-of-next-node"],
             "sub_topics": [{"name": "...", "resources": [{"title": "...", "url": "...", "type": "doc|video|course"}]}],
             "project": {"title": "...", "description": "...", "deliverables": ["..."]}}],
  "edges": [{"from": "id", "to": "id", "type": "prerequisite|related", "strength": 0.8}],
  "skill_path": ["id", "..."]
}

Rules:
- 6 to 12 nodes, ordered from fundamentals to advanced topics.
- Every id used in edges, connections or skill_path must exist in nodes.
- Prerequisite edges must not form a cycle.
- Skip topics the learner already knows.`, target, known)
}
