package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"raidtrack/core/database"
	"raidtrack/core/storage"
	"raidtrack/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the database schema and the snapshot bucket",
	Long: `Compares the raid tables with the models and checks the snapshot bucket.
Use --fix to create a missing bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context())
	},
}

func init() {
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the snapshot bucket when missing")
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrityChecks(ctx context.Context) error {
	cfg, l, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	defer l.Sync()

	// Both dependencies are optional; a missing one disables its check.
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		l.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
		defer database.Close(db)
	}

	var client storage.Client
	if cfg.Ingest.Archive {
		if c, err := storage.NewClient(cfg.Storage); err != nil {
			l.Warn("Optional storage connection failed", zap.Error(err))
		} else {
			client = c
		}
	}

	svc := integrity.NewService(db, client, cfg.Storage, nil, l)
	report := map[string]any{}
	healthy := true

	if schema, err := svc.CheckSchema(); err != nil {
		report["schema"] = err.Error()
	} else {
		report["schema"] = schema
		healthy = healthy && schema.Matched
	}

	if st, err := svc.CheckStorage(ctx); err != nil {
		report["storage"] = err.Error()
	} else {
		if !st.Exists && fixFlag {
			if err := svc.FixStorage(ctx); err != nil {
				return fmt.Errorf("failed to create bucket: %w", err)
			}
			l.Info("Created snapshot bucket", zap.String("bucket", st.Bucket))
			st.Exists = true
		}
		report["storage"] = st
		healthy = healthy && st.Exists
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if !healthy {
		return fmt.Errorf("integrity checks failed")
	}
	l.Info("All integrity checks passed")
	return nil
}
