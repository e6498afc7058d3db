package learning

import (
	"github.com/google/uuid"
)

type Category string

const (
	CategoryFoundation     Category = "foundation"
	CategoryCore           Category = "core"
	CategoryAdvanced       Category = "advanced"
	CategoryProject        Category = "project"
	CategorySpecialization Category = "specialization"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Level maps a difficulty to 1..3; unknown values count as beginner.
func (d Difficulty) Level() int {
	switch d {
	case DifficultyIntermediate:
		return 2
	case DifficultyAdvanced:
		return 3
	default:
		return 1
	}
}

func DifficultyFromLevel(level int) Difficulty {
	switch {
	case level >= 3:
		return DifficultyAdvanced
	case level == 2:
		return DifficultyIntermediate
	default:
		return DifficultyBeginner
	}
}

type EdgeType string

const (
	EdgePrerequisite EdgeType = "prerequisite"
	EdgeRelated      EdgeType = "related"
)

type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	Type  string `json:"type,omitempty"`
}

type SubTopic struct {
	Name      string     `json:"name"`
	Resources []Resource `json:"resources,omitempty"`
}

type ProjectMilestone struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Deliverables []string `json:"deliverables,omitempty"`
}

type Node struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description,omitempty"`
	Category       Category          `json:"category,omitempty"`
	Difficulty     Difficulty        `json:"difficulty"`
	EstimatedHours float64           `json:"estimated_hours"`
	Connections    []string          `json:"connections,omitempty"`
	SubTopics      []SubTopic        `json:"sub_topics,omitempty"`
	Project        *ProjectMilestone `json:"project,omitempty"`
}

type Edge struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Type     EdgeType `json:"type"`
	Strength float64  `json:"strength"`
}

// GraphData is the raw graph a reference provider or generator hands over.
// SkillPath is optional and only checked for dangling ids.
type GraphData struct {
	Nodes     []Node   `json:"nodes"`
	Edges     []Edge   `json:"edges"`
	SkillPath []string `json:"skill_path,omitempty"`
}

type DanglingRef struct {
	// Where is "edge", "connection" or "skill_path".
	Where string `json:"where"`
	From  string `json:"from,omitempty"`
	ID    string `json:"id"`
}

type IntegrityReport struct {
	NodeCount     int           `json:"node_count"`
	EdgeCount     int           `json:"edge_count"`
	Dangling      []DanglingRef `json:"dangling"`
	IsolatedNodes []string      `json:"isolated_nodes"`
	AddedEdges    int           `json:"added_edges"`
	Components    int           `json:"components"`
}

func (r IntegrityReport) OK() bool {
	return len(r.Dangling) == 0 && len(r.IsolatedNodes) == 0
}

type Source string

const (
	SourceReference Source = "reference"
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

type LearningPath struct {
	ID          uuid.UUID       `json:"id"`
	TargetSkill string          `json:"target_skill"`
	TotalHours  float64         `json:"total_hours"`
	Difficulty  Difficulty      `json:"difficulty"`
	Nodes       []Node          `json:"nodes"`
	Edges       []Edge          `json:"edges"`
	SkillPath   []string        `json:"skill_path"`
	Integrity   IntegrityReport `json:"integrity"`
	Warnings    []string        `json:"warnings"`
	Fallback    bool            `json:"fallback"`
	Source      Source          `json:"source"`
}

// OrderedNodes returns the nodes in skill-path order.
func (p LearningPath) OrderedNodes() []Node {
	byID := make(map[string]Node, len(p.Nodes))
	for _, n := range p.Nodes {
		byID[n.ID] = n
	}
	out := make([]Node, 0, len(p.SkillPath))
	for _, id := range p.SkillPath {
		if n, ok := byID[id]; ok {
			out = append(out, n)
		}
	}
	return out
}
