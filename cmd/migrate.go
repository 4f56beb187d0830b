package cmd

import (
	"raidtrack/core/database"

	"github.com/spf13/cobra"
)

// migrateCmd creates or updates the raid tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := loadConfigAndLogger()
		if err != nil {
			return err
		}
		defer l.Sync()

		db, err := openDatabase(cfg, l)
		if err != nil {
			return err
		}
		l.Info("Schema is up to date")
		return database.Close(db)
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
