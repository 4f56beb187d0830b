package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"raidtrack/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reconcileScope string

// reconcileCmd re-renders stored raids without reading the export.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile [raidId...]",
	Short: "Refresh the announcements of stored raids",
	Long: `Re-renders the announcement of each raid from the stored record and
signups, recreating messages that were deleted from Discord.

Examples:
  raidtrack reconcile r-1 r-2
  raidtrack reconcile r-1 --scope 123456789`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileScope, "scope", "", "Guild used when the record has none (defaults to DISCORD_GUILD_ID)")
	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	defer l.Sync()

	rt, err := newRuntime(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer rt.close()

	scope := reconcileScope
	if scope == "" {
		scope = cfg.Discord.GuildID
	}

	var summary reconcile.Summary
	failed := 0
	for _, raidID := range args {
		out, err := rt.reconciler.Refresh(ctx, scope, raidID)
		if err != nil {
			failed++
			l.Error("Refresh failed", zap.String("raid_id", raidID), zap.Error(err))
			continue
		}
		summary.Merge(out.Summary())
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	}

	l.Info("Refresh finished",
		zap.Int("raids", len(args)),
		zap.Int("failed", failed),
		zap.Int("edited", summary.Edited),
		zap.Int("recreated", summary.Recreated),
		zap.Int("artifact_failures", summary.Failed),
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d raids failed", failed, len(args))
	}
	return nil
}
