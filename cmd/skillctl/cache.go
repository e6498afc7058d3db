package main

import (
	"context"
	"fmt"
	"time"

	"skill-graph/internal/config"
	"skill-graph/internal/domain/learning"
	"skill-graph/internal/domain/skill"
	"skill-graph/internal/infrastructure/cache"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the generated learning graph cache",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete cached generated learning graphs from Redis",
	Long:  "Deletes generated learning graphs cached in Redis, for one --skill or for every skill. Run it after changing the reference graphs file or the generator model so stale graphs are not served.",
	RunE:  runCachePurge,
}

var cachePurgeSkill string

func init() {
	cachePurgeCmd.Flags().StringVar(&cachePurgeSkill, "skill", "", "Only purge this skill (default: all skills)")
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}

type purgeOutput struct {
	Pattern string `json:"pattern"`
	Deleted int    `json:"deleted"`
}

func runCachePurge(cmd *cobra.Command, _ []string) error {
	cfg := config.LoadRedis()
	if cfg.Host == "" {
		return fmt.Errorf("REDIS_HOST is not set")
	}

	r := cache.NewRedis(cfg, cliLogger())
	defer func() { _ = r.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	if err := r.Ping(ctx); err != nil {
		return fmt.Errorf("redis unavailable: %w", err)
	}

	target := ""
	if cachePurgeSkill != "" {
		target = skill.NewNormalizer(skill.DefaultVocabulary()).Normalize(cachePurgeSkill)
		if target == "" {
			return fmt.Errorf("skill %q normalizes to nothing", cachePurgeSkill)
		}
	}
	pattern := learning.GraphCachePattern(target)

	deleted, err := r.DeleteByPattern(ctx, pattern)
	if err != nil {
		return fmt.Errorf("failed to purge %s: %w", pattern, err)
	}
	return writeJSON(cmd, purgeOutput{Pattern: pattern, Deleted: deleted})
}
