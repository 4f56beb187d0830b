package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"raidtrack/core/reconcile"
	"raidtrack/feature/ingest"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	ingestFile   string
	ingestDryRun bool
)

// ingestCmd runs one decode and reconcile pass over an export file.
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Decode an export file once and sync its raids",
	Long: `Decodes the saved variables export and reconciles every raid it holds.

Examples:
  # Print the decoded raids without touching Discord
  raidtrack ingest --file ./RaidTrack.lua --dry-run

  # Sync the configured export file once
  raidtrack ingest`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestFile, "file", "", "Export file (defaults to INGEST_FILE)")
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "Print decoded raids without reconciling")
	RootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	defer l.Sync()
	if ingestFile != "" {
		cfg.Ingest.File = ingestFile
	}

	data, err := os.ReadFile(cfg.Ingest.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cfg.Ingest.File, err)
	}

	if ingestDryRun {
		res, err := ingest.NewDecoder(cfg.Ingest, cfg.Discord.GuildID).Decode(string(data))
		if err != nil {
			return fmt.Errorf("parse failed: %w", err)
		}
		for _, skipped := range res.Skipped {
			l.Warn("Record skipped", zap.Int("index", skipped.Index), zap.String("raid_id", skipped.RaidID), zap.String("reason", skipped.Reason))
		}
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		l.Info("Dry-run mode: No changes were made.", zap.String("mode", string(res.Mode)), zap.Int("raids", len(res.Envelopes)))
		return nil
	}

	rt, err := newRuntime(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer rt.close()

	res, err := rt.decoder.Decode(string(data))
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	var summary reconcile.Summary
	failed := 0
	for _, env := range res.Envelopes {
		out, err := rt.reconciler.Reconcile(ctx, env.Scope, env.Raid)
		if err != nil {
			failed++
			l.Error("Raid failed", zap.String("raid_id", env.Raid.RaidID), zap.Error(err))
			continue
		}
		summary.Merge(out.Summary())
	}

	l.Info("Ingest finished",
		zap.String("mode", string(res.Mode)),
		zap.Int("raids", len(res.Envelopes)),
		zap.Int("failed", failed),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("created", summary.Created),
		zap.Int("edited", summary.Edited),
		zap.Int("recreated", summary.Recreated),
		zap.Int("artifact_failures", summary.Failed),
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d raids failed", failed, len(res.Envelopes))
	}
	return nil
}
