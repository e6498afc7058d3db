package learning

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FallbackGraph is the deterministic three-step chain used when no usable
// graph could be obtained for skill.
func FallbackGraph(skill string) GraphData {
	slug := slugify(skill)
	title := displayName(skill)

	ids := []string{slug + "-foundations", slug + "-intermediate", slug + "-advanced"}
	nodes := []Node{
		{
			ID:             ids[0],
			Title:          title + " Foundations",
			Description:    fmt.Sprintf("Core concepts, terminology and tooling of %s.", title),
			Difficulty:     DifficultyBeginner,
			EstimatedHours: 20,
			Connections:    []string{ids[1]},
			SubTopics:      []SubTopic{{Name: "Fundamentals"}, {Name: "Environment setup"}},
		},
		{
			ID:             ids[1],
			Title:          title + " in Practice",
			Description:    fmt.Sprintf("Applying %s to realistic problems.", title),
			Difficulty:     DifficultyIntermediate,
			EstimatedHours: 30,
			Connections:    []string{ids[2]},
			SubTopics:      []SubTopic{{Name: "Common patterns"}, {Name: "Testing and debugging"}},
		},
		{
			ID:             ids[2],
			Title:          "Advanced " + title,
			Description:    fmt.Sprintf("Performance, architecture and production use of %s.", title),
			Difficulty:     DifficultyAdvanced,
			EstimatedHours: 40,
			SubTopics:      []SubTopic{{Name: "Performance"}, {Name: "Production operations"}},
			Project: &ProjectMilestone{
				Title:        fmt.Sprintf("Capstone: ship a %s project", title),
				Deliverables: []string{"Source repository", "Short write-up of design decisions"},
			},
		},
	}
	return GraphData{
		Nodes: nodes,
		Edges: []Edge{
			{From: ids[0], To: ids[1], Type: EdgePrerequisite, Strength: 1},
			{From: ids[1], To: ids[2], Type: EdgePrerequisite, Strength: 1},
		},
		SkillPath: ids,
	}
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}

func displayName(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
