package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"skill-graph/internal/app"
	"skill-graph/internal/config"
	"skill-graph/internal/domain/job"
	"skill-graph/internal/usecase"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Rank a JSON file of job postings for a skill set",
	Long:  "Computes market weights and the skill co-occurrence graph over the postings in --jobs and ranks them for the skills in --skills.",
	RunE:  runScore,
}

var (
	scoreJobsPath string
	scoreSkills   string
	scoreYears    float64
	scoreLimit    int
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreJobsPath, "jobs", "j", "", "Path to a JSON array of job postings (required)")
	scoreCmd.Flags().StringVarP(&scoreSkills, "skills", "s", "", "Comma separated candidate skills (required)")
	scoreCmd.Flags().Float64Var(&scoreYears, "years", -1, "Candidate years of experience, used when EXPERIENCE_MODE is set")
	scoreCmd.Flags().IntVarP(&scoreLimit, "limit", "n", 20, "Maximum number of ranked jobs to print")

	if err := scoreCmd.MarkFlagRequired("jobs"); err != nil {
		panic(fmt.Sprintf("failed to mark jobs flag as required: %v", err))
	}
	if err := scoreCmd.MarkFlagRequired("skills"); err != nil {
		panic(fmt.Sprintf("failed to mark skills flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(scoreJobsPath)
	if err != nil {
		return fmt.Errorf("failed to read jobs file %s: %w", scoreJobsPath, err)
	}
	var postings []job.Posting
	if err := json.Unmarshal(content, &postings); err != nil {
		return fmt.Errorf("failed to unmarshal jobs JSON: %w", err)
	}
	if len(postings) == 0 {
		return fmt.Errorf("jobs file %s has no postings", scoreJobsPath)
	}

	params := usecase.ScoreParams{
		UserSkills: strings.Split(scoreSkills, ","),
		Jobs:       postings,
		Limit:      scoreLimit,
	}
	if scoreYears >= 0 {
		years := scoreYears
		params.YearsExperience = &years
	}

	core := app.NewCore(config.LoadEngine(), cliLogger())
	res, err := core.NewScoring(nil).Score(cmd.Context(), params)
	if err != nil {
		return err
	}
	return writeJSON(cmd, map[string]any{
		"user_skills": res.UserSkills,
		"corpus_size": res.CorpusSize,
		"jobs":        res.Jobs,
	})
}
