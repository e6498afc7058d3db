package main

import (
	"skill-graph/internal/app"
	"skill-graph/internal/config"
	"skill-graph/internal/usecase"

	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <skills...>",
	Short: "Resolve raw skill mentions to canonical skills",
	Long:  "Resolves raw skill mentions, including comma separated lists and near-miss spellings, to a sorted list of canonical skills.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	core := app.NewCore(config.LoadEngine(), cliLogger())
	skills := usecase.NewSkillUsecase(core.Normalizer, core.Matcher)
	return writeJSON(cmd, map[string][]string{"skills": skills.Normalize(args)})
}
