package main

import (
	"fmt"
	"os"
	"time"

	"skill-graph/internal/app"
	"skill-graph/internal/config"
	"skill-graph/internal/domain/learning"
	"skill-graph/internal/llm"
	"skill-graph/internal/reference"
	"skill-graph/internal/usecase"

	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Build a learning path and weekly timeline for a skill",
	Long:  "Builds a validated, ordered learning path for --skill from a reference graph file, the Gemini generator (with --llm) or the deterministic fallback, and spreads it over a weekly timeline.",
	RunE:  runPath,
}

var (
	pathSkill     string
	pathCurrent   []string
	pathReference string
	pathWeeks     int
	pathHours     float64
	pathStart     string
	pathUseLLM    bool
)

func init() {
	pathCmd.Flags().StringVar(&pathSkill, "skill", "", "Target skill (required)")
	pathCmd.Flags().StringSliceVar(&pathCurrent, "current", nil, "Skills the learner already has")
	pathCmd.Flags().StringVarP(&pathReference, "reference", "r", "", "Path to a reference graphs JSON file (defaults to REFERENCE_GRAPHS_PATH)")
	pathCmd.Flags().IntVar(&pathWeeks, "weeks", 12, "Timeline length in weeks")
	pathCmd.Flags().Float64Var(&pathHours, "hours", 10, "Study hours per week")
	pathCmd.Flags().StringVar(&pathStart, "start", "", "Start date (YYYY-MM-DD) to put calendar dates on the weeks")
	pathCmd.Flags().BoolVar(&pathUseLLM, "llm", false, "Ask Gemini for a graph when no reference exists (needs GEMINI_API_KEY)")

	if err := pathCmd.MarkFlagRequired("skill"); err != nil {
		panic(fmt.Sprintf("failed to mark skill flag as required: %v", err))
	}

	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, _ []string) error {
	engineCfg := config.LoadEngine()
	logger := cliLogger()
	core := app.NewCore(engineCfg, logger)

	refPath := pathReference
	if refPath == "" {
		refPath = engineCfg.ReferenceGraphsPath
	}
	refs, err := reference.LoadFile(refPath, core.Normalizer)
	if err != nil {
		return err
	}

	var gen learning.Generator
	if pathUseLLM {
		client, err := llm.NewGeminiClient(cmd.Context(), os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
		if err != nil {
			return err
		}
		defer client.Close()
		gen = llm.NewGraphGenerator(client)
	}

	params := usecase.LearningPathParams{
		TargetSkill:   pathSkill,
		CurrentSkills: pathCurrent,
		Weeks:         pathWeeks,
		HoursPerWeek:  pathHours,
	}
	if pathStart != "" {
		start, err := time.Parse(time.DateOnly, pathStart)
		if err != nil {
			return fmt.Errorf("invalid --start %q: %w", pathStart, err)
		}
		params.StartDate = &start
	}

	uc := core.NewLearningPaths(core.NewBuilder(refs, gen, learning.DefaultGeneratorTimeout), nil)
	res, err := uc.Generate(cmd.Context(), params)
	if err != nil {
		return err
	}
	return writeJSON(cmd, res)
}
