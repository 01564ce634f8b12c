package main

import (
	"fmt"

	"github.com/Veraticus/dex/internal/cli"
	"github.com/Veraticus/dex/internal/config"
	"github.com/Veraticus/dex/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			status, _ := cmd.Flags().GetBool("status")

			store, err := storage.NewSQLiteStorage(config.DatabasePath(viper.GetViper()))
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if !status {
				if err := store.Migrate(ctx); err != nil {
					return fmt.Errorf("failed to run migrations: %w", err)
				}
			}

			version, err := store.SchemaVersion(ctx)
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("Schema version %d of %d (%s)", version, storage.ExpectedSchemaVersion, store.Path())
			if version < storage.ExpectedSchemaVersion {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning(msg))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg))
			}
			return nil
		},
	}

	cmd.Flags().Bool("status", false, "report the schema version without migrating")

	return cmd
}
