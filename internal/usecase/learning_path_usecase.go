package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"skill-graph/internal/domain/learning"
	"skill-graph/internal/domain/timeline"
)

const maxBatchSkills = 25

// ProgressNotifier is told about every finished skill of a batch.
type ProgressNotifier interface {
	NotifyLearningPathReady(skill, status string, fallback bool)
}

type LearningPathParams struct {
	TargetSkill   string
	CurrentSkills []string
	Weeks         int
	HoursPerWeek  float64
	StartDate     *time.Time
}

type LearningPathResult struct {
	Path     learning.LearningPath `json:"path"`
	Timeline timeline.Timeline     `json:"timeline"`
}

type BatchParams struct {
	Skills        []string
	CurrentSkills []string
	Weeks         int
	HoursPerWeek  float64
}

const (
	BatchStatusOK    = "ok"
	BatchStatusError = "error"
)

type BatchItem struct {
	Skill    string              `json:"skill"`
	Status   string              `json:"status"`
	Result   *LearningPathResult `json:"result,omitempty"`
	Error    string              `json:"error,omitempty"`
	Fallback bool                `json:"fallback"`
}

type BatchOutcome struct {
	Items     []BatchItem `json:"items"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Partial   bool        `json:"partial"`
}

type LearningPathUsecase interface {
	Generate(ctx context.Context, p LearningPathParams) (LearningPathResult, error)
	GenerateBatch(ctx context.Context, p BatchParams) (BatchOutcome, error)
}

type LearningPath struct {
	builder     *learning.Builder
	notifier    ProgressNotifier
	parallelism int
	logger      *log.Logger
}

func NewLearningPathUsecase(b *learning.Builder, notifier ProgressNotifier, parallelism int, logger *log.Logger) *LearningPath {
	if logger == nil {
		logger = log.Default()
	}
	return &LearningPath{builder: b, notifier: notifier, parallelism: parallelism, logger: logger}
}

func (u *LearningPath) Generate(ctx context.Context, p LearningPathParams) (LearningPathResult, error) {
	target := strings.TrimSpace(p.TargetSkill)
	if target == "" || p.Weeks < 0 || p.HoursPerWeek < 0 {
		return LearningPathResult{}, ErrInvalidInput
	}

	path, err := u.builder.Build(ctx, target, p.CurrentSkills)
	if err != nil {
		return LearningPathResult{}, err
	}
	return u.withTimeline(path, p.Weeks, p.HoursPerWeek, p.StartDate), nil
}

// GenerateBatch builds one path per skill. A failed skill is reported in its
// item and never fails the batch.
func (u *LearningPath) GenerateBatch(ctx context.Context, p BatchParams) (BatchOutcome, error) {
	skills := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	if len(skills) == 0 || len(skills) > maxBatchSkills || p.Weeks < 0 || p.HoursPerWeek < 0 {
		return BatchOutcome{}, ErrInvalidInput
	}

	results := u.builder.BuildBatch(ctx, skills, p.CurrentSkills, learning.BatchOptions{
		Parallelism: u.parallelism,
		OnDone:      u.notify,
	})

	out := BatchOutcome{Items: make([]BatchItem, 0, len(results))}
	for _, r := range results {
		item := BatchItem{Skill: r.Skill}
		if r.Err != nil {
			item.Status = BatchStatusError
			item.Error = batchErrorMessage(r.Err)
			out.Failed++
		} else {
			res := u.withTimeline(r.Path, p.Weeks, p.HoursPerWeek, nil)
			item.Status = BatchStatusOK
			item.Result = &res
			item.Fallback = r.Path.Fallback
			out.Succeeded++
		}
		out.Items = append(out.Items, item)
	}
	out.Partial = out.Failed > 0 && out.Succeeded > 0

	u.logger.Printf("component=learning_path op=batch status=done skills=%d ok=%d failed=%d",
		len(skills), out.Succeeded, out.Failed)
	return out, nil
}

func (u *LearningPath) withTimeline(path learning.LearningPath, weeks int, hours float64, start *time.Time) LearningPathResult {
	if weeks == 0 {
		weeks = timeline.DefaultTotalWeeks
	}
	if hours == 0 {
		hours = timeline.DefaultHoursPerWeek
	}
	tl := timeline.Distribute(path.OrderedNodes(), weeks, hours)
	if start != nil {
		tl = tl.Schedule(*start)
	}
	return LearningPathResult{Path: path, Timeline: tl}
}

func (u *LearningPath) notify(r learning.BatchResult) {
	if u.notifier == nil {
		return
	}
	status := BatchStatusOK
	if r.Err != nil {
		status = BatchStatusError
	}
	u.notifier.NotifyLearningPathReady(r.Skill, status, r.Path.Fallback)
}

func batchErrorMessage(err error) string {
	var cycle *learning.CycleError
	switch {
	case errors.As(err, &cycle):
		return cycle.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal error"
	}
}
