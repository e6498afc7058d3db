package timeline

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"skill-graph/internal/domain/learning"
)

const (
	DefaultTotalWeeks   = 12
	DefaultHoursPerWeek = 10
)

type Project struct {
	Title        string              `json:"title"`
	Description  string              `json:"description,omitempty"`
	Difficulty   learning.Difficulty `json:"difficulty"`
	Deliverables []string            `json:"deliverables,omitempty"`
	Templated    bool                `json:"templated"`
}

type Week struct {
	Number    int        `json:"number"`
	NodeIDs   []string   `json:"node_ids"`
	Topics    []string   `json:"topics"`
	Hours     float64    `json:"hours"`
	Project   Project    `json:"project"`
	Milestone string     `json:"milestone,omitempty"`
	Review    bool       `json:"review"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type Checkpoint struct {
	Week        int      `json:"week"`
	Percent     int      `json:"percent"`
	Deliverable string   `json:"deliverable"`
	Criteria    []string `json:"criteria"`
}

type Timeline struct {
	TotalWeeks   int          `json:"total_weeks"`
	HoursPerWeek float64      `json:"hours_per_week"`
	TotalHours   float64      `json:"total_hours"`
	NodesPerWeek int          `json:"nodes_per_week"`
	Weeks        []Week       `json:"weeks"`
	Checkpoints  []Checkpoint `json:"checkpoints"`
}

var checkpointCriteria = []string{
	"Every topic scheduled so far has been studied",
	"Mini-projects to date are complete and committed",
	"Key concepts can be explained without notes",
}

var checkpointMarks = []struct {
	percent     int
	deliverable string
}{
	{25, "Foundations review"},
	{50, "Midpoint project demo"},
	{75, "Integration project"},
	{100, "Capstone project"},
}

// Distribute spreads ordered nodes over totalWeeks. Weeks left without nodes
// become review weeks.
func Distribute(nodes []learning.Node, totalWeeks int, hoursPerWeek float64) Timeline {
	if totalWeeks <= 0 {
		return Timeline{Weeks: []Week{}, Checkpoints: []Checkpoint{}}
	}
	if len(nodes) == 0 {
		return Timeline{TotalWeeks: totalWeeks, Weeks: []Week{}, Checkpoints: []Checkpoint{}}
	}

	total := 0.0
	for _, n := range nodes {
		total += n.EstimatedHours
	}
	needed := math.Ceil(total / float64(totalWeeks))
	if hoursPerWeek <= 0 || hoursPerWeek > needed {
		hoursPerWeek = needed
	}

	perWeek := (len(nodes) + totalWeeks - 1) / totalWeeks
	checkpoints := Checkpoints(totalWeeks)
	milestones := make(map[int]string, len(checkpoints))
	for _, c := range checkpoints {
		if _, ok := milestones[c.Week]; !ok {
			milestones[c.Week] = c.Deliverable
		}
	}

	weeks := make([]Week, 0, totalWeeks)
	for w := 1; w <= totalWeeks; w++ {
		lo := (w - 1) * perWeek
		hi := lo + perWeek
		if lo > len(nodes) {
			lo = len(nodes)
		}
		if hi > len(nodes) {
			hi = len(nodes)
		}
		slice := nodes[lo:hi]

		week := Week{
			Number:    w,
			NodeIDs:   make([]string, 0, len(slice)),
			Topics:    make([]string, 0, len(slice)),
			Milestone: milestones[w],
			Review:    len(slice) == 0,
		}
		for _, n := range slice {
			week.NodeIDs = append(week.NodeIDs, n.ID)
			week.Topics = append(week.Topics, n.Title)
			week.Hours += n.EstimatedHours
		}
		week.Project = weekProject(slice, week.Topics, ProjectDifficulty(w, totalWeeks))
		weeks = append(weeks, week)
	}

	return Timeline{
		TotalWeeks:   totalWeeks,
		HoursPerWeek: hoursPerWeek,
		TotalHours:   total,
		NodesPerWeek: perWeek,
		Weeks:        weeks,
		Checkpoints:  checkpoints,
	}
}

const (
	beginnerProgressMax     = 0.33
	intermediateProgressMax = 0.66
)

// ProjectDifficulty scales with week/totalWeeks: up to 33% beginner, up to
// 66% intermediate, then advanced.
func ProjectDifficulty(week, totalWeeks int) learning.Difficulty {
	if totalWeeks <= 0 {
		return learning.DifficultyBeginner
	}
	progress := float64(week) / float64(totalWeeks)
	switch {
	case progress <= beginnerProgressMax:
		return learning.DifficultyBeginner
	case progress <= intermediateProgressMax:
		return learning.DifficultyIntermediate
	default:
		return learning.DifficultyAdvanced
	}
}

// Checkpoints returns the 25/50/75/100% marks. Marks that floor to week 0 on
// very short timelines are moved to week 1.
func Checkpoints(totalWeeks int) []Checkpoint {
	out := make([]Checkpoint, 0, len(checkpointMarks))
	for _, m := range checkpointMarks {
		week := totalWeeks * m.percent / 100
		if week < 1 {
			week = 1
		}
		out = append(out, Checkpoint{
			Week:        week,
			Percent:     m.percent,
			Deliverable: m.deliverable,
			Criteria:    append([]string(nil), checkpointCriteria...),
		})
	}
	return out
}

func weekProject(slice []learning.Node, topics []string, d learning.Difficulty) Project {
	for _, n := range slice {
		if n.Project != nil {
			return Project{
				Title:        n.Project.Title,
				Description:  n.Project.Description,
				Difficulty:   d,
				Deliverables: append([]string(nil), n.Project.Deliverables...),
			}
		}
	}
	if len(topics) == 0 {
		return Project{
			Title:       "Review and consolidate",
			Description: "Revisit earlier topics and polish previous mini-projects.",
			Difficulty:  d,
			Templated:   true,
		}
	}
	return Project{
		Title:        fmt.Sprintf("%s mini-project: %s", titleCase(string(d)), strings.Join(topics, " + ")),
		Description:  fmt.Sprintf("Build a small %s project that applies %s.", d, strings.Join(topics, ", ")),
		Difficulty:   d,
		Deliverables: []string{"Working code in a repository", "README describing what was learned"},
		Templated:    true,
	}
}

// Schedule returns a copy with calendar dates. Weeks run seven days from start.
func (t Timeline) Schedule(start time.Time) Timeline {
	out := t
	out.Weeks = make([]Week, len(t.Weeks))
	copy(out.Weeks, t.Weeks)
	y, m, d := start.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, start.Location())
	for i := range out.Weeks {
		s := day.AddDate(0, 0, 7*i)
		e := s.AddDate(0, 0, 6)
		out.Weeks[i].StartDate = &s
		out.Weeks[i].EndDate = &e
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
